package search

import (
	"net/url"
	"strings"
)

// Param is a single query parameter. A raw param carries a pre-encoded fragment
// that is written to the query string as-is.
type Param struct {
	Key   string
	Value string
	raw   bool
}

// Params is an ordered list of query parameters. Unlike url.Values it keeps
// insertion order and allows duplicate keys; some upstream endpoints care.
type Params []Param

// NewParams builds Params from alternating key/value strings.
func NewParams(kv ...string) Params {
	p := make(Params, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		p = append(p, Param{Key: kv[i], Value: kv[i+1]})
	}
	return p
}

// Add appends a key/value pair.
func (p Params) Add(key, value string) Params {
	return append(p, Param{Key: key, Value: value})
}

// AddRaw appends a fragment that is copied verbatim into the query string.
// Empty fragments are ignored.
func (p Params) AddRaw(fragment string) Params {
	fragment = strings.Trim(fragment, "&")
	if fragment == "" {
		return p
	}
	return append(p, Param{Value: fragment, raw: true})
}

// Set replaces the value of the first param named key, or appends it.
func (p Params) Set(key, value string) Params {
	for i := range p {
		if !p[i].raw && p[i].Key == key {
			p[i].Value = value
			return p
		}
	}
	return p.Add(key, value)
}

// Get returns the value of the first param named key.
func (p Params) Get(key string) (string, bool) {
	for _, kv := range p {
		if !kv.raw && kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Clone returns a copy that can be modified independently.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	copy(out, p)
	return out
}

// Encode renders the params as a query string in insertion order.
func (p Params) Encode() string {
	var b strings.Builder
	for _, kv := range p {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		if kv.raw {
			b.WriteString(kv.Value)
			continue
		}
		b.WriteString(url.QueryEscape(kv.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.Value))
	}
	return b.String()
}
