package changelog

import (
	"context"
	"fmt"
	"testing"

	"github.com/bacoords/woo-dev-blog-tools/pkg/errors"
	"github.com/bacoords/woo-dev-blog-tools/pkg/integrations"
)

func TestAugment(t *testing.T) {
	bodies := map[int]string{
		101: "Changes proposed in this Pull Request:\nAdds a thing.\n\nHow to test",
		102: "No template used.",
	}
	a := &Augmenter{
		Logger: quiet,
		Fetch: func(_ context.Context, n int) (string, error) {
			if n == 103 {
				return "", fmt.Errorf("GET: %w", integrations.ErrNetwork)
			}
			return bodies[n], nil
		},
	}

	in := "* Add - thing https://github.com/woocommerce/woocommerce/pull/101\n" +
		"* Fix - other https://github.com/woocommerce/woocommerce/pull/102\n" +
		"* Dev - broken https://github.com/woocommerce/woocommerce/pull/103\n" +
		"plain line"
	want := "* Add - thing https://github.com/woocommerce/woocommerce/pull/101\n" +
		"Changes proposed in this Pull Request:\nAdds a thing.\n" +
		"\n" +
		"* Fix - other https://github.com/woocommerce/woocommerce/pull/102\n" +
		"* Dev - broken https://github.com/woocommerce/woocommerce/pull/103\n" +
		"plain line"

	got, refs, err := a.Augment(context.Background(), in)
	if err != nil {
		t.Fatalf("Augment() failed: %v", err)
	}
	if refs != 3 {
		t.Errorf("refs = %d, want 3", refs)
	}
	if got != want {
		t.Errorf("Augment() = %q, want %q", got, want)
	}
}

func TestAugmentRateLimited(t *testing.T) {
	a := &Augmenter{
		Logger: quiet,
		Fetch: func(context.Context, int) (string, error) {
			return "", integrations.ErrRateLimited
		},
	}
	_, _, err := a.Augment(context.Background(), "see /pull/1")
	if !errors.Is(err, errors.ErrCodeRateLimited) {
		t.Fatalf("Augment() error = %v, want RATE_LIMITED", err)
	}
}
