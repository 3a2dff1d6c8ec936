package mediawiki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
	"github.com/custodia-labs/rosetta-mirror/internal/logger"
)

// Batch is one page of a paginated query result.
// Merge returns the receiver extended with the next page.
type Batch[T any] interface {
	Merge(next T) T
}

// Query runs a paginated query and merges every page of the result.
//
// The zero value of T seeds the accumulation. After each response the
// server's continuation, if any, is applied over params and the next page
// is requested, so exactly one request is made per server page.
func Query[T Batch[T]](ctx context.Context, c *Client, params url.Values) (T, error) {
	var acc T
	var cont *Continuation

	for page := 1; ; page++ {
		env, err := c.get(ctx, cont.Apply(params))
		if err != nil {
			return acc, err
		}

		var batch T
		if body := bytes.TrimSpace(env.Query); len(body) > 0 && !bytes.Equal(body, []byte("null")) {
			if err := json.Unmarshal(body, &batch); err != nil {
				return acc, fmt.Errorf("%w: query: %v", domain.ErrMalformedResponse, err)
			}
		}
		acc = acc.Merge(batch)

		cont, err = ParseContinuation(env.Continue)
		if err != nil {
			return acc, err
		}
		if cont == nil {
			logger.Debug("mediawiki: query complete after %d page(s)", page)
			return acc, nil
		}
		logger.Debug("mediawiki: page %d continues with %s", page, cont)
	}
}

// baseParams returns the parameters shared by every query.
func baseParams() url.Values {
	return url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"formatversion": {"2"},
		"continue":      {""},
	}
}
