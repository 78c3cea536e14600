package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"tripsplit/internal/core"
)

// BodyParser reads a mutation body once and answers key lookups whether the
// client sent JSON or form-encoded data. Has reports key presence, which is
// what lets handlers apply only the fields a patch actually carries.
type BodyParser struct {
	body     []byte
	jsonData map[string]any
	formData url.Values
}

// ParseBody reads and parses the request body. An empty body parses to an
// empty form, so handlers can treat "no fields" uniformly.
func ParseBody(r *http.Request) (*BodyParser, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	p := &BodyParser{body: body}
	if len(body) == 0 {
		p.formData = url.Values{}
		return p, nil
	}

	if body[0] == '{' || body[0] == '[' {
		p.jsonData = make(map[string]any)
		if err := json.Unmarshal(body, &p.jsonData); err != nil {
			return nil, err
		}
		return p, nil
	}

	p.formData, err = url.ParseQuery(string(body))
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Has reports whether the body carries the key at all, including explicit
// zero values like "" and false.
func (p *BodyParser) Has(key string) bool {
	if p.jsonData != nil {
		_, ok := p.jsonData[key]
		return ok
	}
	return p.formData.Has(key)
}

// Get returns the trimmed, sanitized string value for key, or "".
func (p *BodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return strings.TrimSpace(sanitizeInput(stringValue(val)))
		}
		return ""
	}
	return strings.TrimSpace(sanitizeInput(p.formData.Get(key)))
}

// Amount returns the value for key coerced to a non-negative amount.
func (p *BodyParser) Amount(key string) float64 {
	return core.ParseAmount(p.Get(key))
}

// Count returns the value for key coerced to a count of at least 1.
func (p *BodyParser) Count(key string) int {
	return core.ParseCount(p.Get(key))
}

// Flag returns the value for key read as a boolean. Checkbox-style values
// ("on") count as true.
func (p *BodyParser) Flag(key string) bool {
	switch strings.ToLower(p.Get(key)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// IsJSON returns true if the parsed content was JSON.
func (p *BodyParser) IsJSON() bool {
	return p.jsonData != nil
}

// stringValue converts a decoded JSON value to its string form.
func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// sanitizeInput removes control characters except tab, newline, and carriage
// return, and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// RequireMethod checks the request method against the allowed set, returning
// an error response when it does not match.
func RequireMethod(r *http.Request, methods ...string) *ResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience for POST-only handlers.
func RequirePOST(r *http.Request) *ResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// RequireDeleteOrPOST is a convenience for DELETE/POST handlers.
func RequireDeleteOrPOST(r *http.Request) *ResponseBuilder {
	return RequireMethod(r, http.MethodDelete, http.MethodPost)
}
