package integrations

import (
	"context"
	"errors"
	"time"

	"github.com/bacoords/woo-dev-blog-tools/pkg/buildinfo"
	wooerrors "github.com/bacoords/woo-dev-blog-tools/pkg/errors"
)

const httpTimeout = 30 * time.Second

// DefaultUserAgent identifies woo-release to upstream APIs.
var DefaultUserAgent = buildinfo.UserAgent()

var (
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for transport failures and unexpected statuses.
	ErrNetwork = errors.New("network error")

	// ErrRateLimited is returned once 403 retries are exhausted.
	ErrRateLimited = errors.New("rate limited")
)

// Coded gives an upstream failure an error code: RATE_LIMITED when retries
// ran out, NETWORK_ERROR otherwise. Errors that already carry a code and
// context cancellation are returned unchanged.
func Coded(err error, format string, args ...any) error {
	if err == nil || wooerrors.GetCode(err) != "" ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, ErrRateLimited) {
		return wooerrors.Wrap(wooerrors.ErrCodeRateLimited, err, format, args...)
	}
	return wooerrors.Wrap(wooerrors.ErrCodeNetwork, err, format, args...)
}
