// Package integrations provides the HTTP layer for the upstream APIs
// woo-release reads from. Each API has its own subpackage:
//
//   - [github]: milestones, issues, pull requests and the trunk readme
//   - [wordpress]: categories and posts of the developer blog
//
// # Client
//
// [Client] wraps a resty client and is shared by the subpackages. It sends a
// fixed User-Agent, adds a bearer token only when one is given, exposes
// response headers under lower-cased names, and retries 403 responses with a
// bounded, fixed-delay loop from [httputil.Retry]:
//
//	c := integrations.NewClient(integrations.Options{Logger: logger})
//	resp, err := c.Request(ctx, "https://api.github.com/rate_limit", nil, token)
//
// Statuses other than 403 are not retried. [Client.GetJSON] turns them into
// [ErrNotFound] or [ErrNetwork] for callers that only want a decoded 200.
//
// # Caching
//
// [Client.Cached] is a read-through helper over [cache.Cache]. The default
// backend stores nothing.
//
// Every request and cached lookup is reported to the hooks registered in
// [observability].
package integrations
