package mediawiki

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
)

// Continuation is the opaque cursor returned by the server.
// It keeps the server's key order; values are echoed unchanged.
type Continuation struct {
	keys   []string
	values map[string]string
}

// Keys returns the continuation keys in server order.
func (c *Continuation) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Get returns the value of a continuation key.
func (c *Continuation) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Len returns the number of continuation keys.
func (c *Continuation) Len() int {
	return len(c.keys)
}

// Apply returns a copy of params with every continuation pair set.
// Continuation values replace base parameters of the same name.
func (c *Continuation) Apply(params url.Values) url.Values {
	next := make(url.Values, len(params))
	for k, v := range params {
		next[k] = append([]string(nil), v...)
	}
	if c == nil {
		return next
	}
	for _, k := range c.keys {
		next.Set(k, c.values[k])
	}
	return next
}

func (c *Continuation) String() string {
	if c == nil {
		return "<none>"
	}
	parts := make([]string, 0, len(c.keys))
	for _, k := range c.keys {
		parts = append(parts, k+"="+c.values[k])
	}
	return strings.Join(parts, "&")
}

// ParseContinuation decodes the "continue" member of a response.
//
// It returns nil when the member is absent, null or an empty object.
// Any other shape than an object of string values is rejected with
// domain.ErrMalformedResponse.
func ParseContinuation(raw json.RawMessage) (*Continuation, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: continue: %v", domain.ErrMalformedResponse, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: continue is not an object", domain.ErrMalformedResponse)
	}

	c := &Continuation{values: make(map[string]string)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: continue: %v", domain.ErrMalformedResponse, err)
		}
		key, _ := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: continue: %v", domain.ErrMalformedResponse, err)
		}
		value, ok := valTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: continue value for %q is not a string", domain.ErrMalformedResponse, key)
		}

		if _, seen := c.values[key]; !seen {
			c.keys = append(c.keys, key)
		}
		c.values[key] = value
	}

	if len(c.keys) == 0 {
		return nil, nil
	}
	return c, nil
}
