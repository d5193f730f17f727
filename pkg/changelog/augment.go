package changelog

import (
	"context"
	stderrors "errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bacoords/woo-dev-blog-tools/pkg/errors"
	"github.com/bacoords/woo-dev-blog-tools/pkg/integrations"
)

var pullRefPattern = regexp.MustCompile(`/pull/(\d+)`)

// BodyFetcher returns the description of a pull request.
type BodyFetcher func(ctx context.Context, number int) (string, error)

// Augmenter inserts pull request descriptions into changelog text.
type Augmenter struct {
	Fetch  BodyFetcher
	Logger *log.Logger
}

// Augment returns content with the "Changes proposed" paragraph of every
// referenced pull request inserted, followed by a blank line, right after the
// line that links it. It also returns the number of lines holding a
// reference.
//
// A description that cannot be fetched is logged and skipped. Rate-limit
// exhaustion and cancellation abort.
func (a *Augmenter) Augment(ctx context.Context, content string) (string, int, error) {
	logger := a.Logger
	if logger == nil {
		logger = log.Default()
	}

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	refs := 0
	for _, line := range lines {
		out = append(out, line)

		m := pullRefPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		refs++
		number, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		body, err := a.Fetch(ctx, number)
		switch {
		case err == nil:
		case ctx.Err() != nil:
			return "", refs, ctx.Err()
		case stderrors.Is(err, integrations.ErrRateLimited):
			return "", refs, errors.Wrap(errors.ErrCodeRateLimited, err, "fetch pull request #%d", number)
		default:
			logger.Warn("could not fetch pull request description", "number", number, "err", err)
			continue
		}

		if section := ExtractChangesParagraph(body); section != "" {
			out = append(out, section, "")
			logger.Debug("inserted description", "number", number)
		}
	}
	return strings.Join(out, "\n"), refs, nil
}
