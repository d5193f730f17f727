// Package httputil provides HTTP helpers shared by the GitHub and WordPress
// clients.
//
// # Retry
//
// [Retry] re-runs an operation while it fails with a [RetryableError]. The
// delay between attempts is fixed and the number of attempts is bounded by a
// [Policy]:
//
//	err := httputil.Retry(ctx, httputil.DefaultPolicy(), func(attempt int) error {
//	    return fetch()
//	})
//
// The wait itself goes through [Policy.Sleep], so tests can replace it with a
// function that returns immediately.
//
// # Pagination
//
// [NextPageURL] reads the rel="next" target out of a Link response header.
// Callers loop until it reports no further page.
package httputil
