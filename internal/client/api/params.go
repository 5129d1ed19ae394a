package api

import (
	"fmt"
	"net/url"
	"strings"
)

// Param is a single form field.
type Param struct {
	Key   string
	Value string
}

// Params is an insertion-ordered set of form fields. Setting an existing key
// replaces its value in place. The zero value is ready to use.
type Params struct {
	items []Param
}

// NewParams builds Params from alternating key, value arguments. It panics
// when a key has no value.
func NewParams(kv ...any) Params {
	if len(kv)%2 != 0 {
		panic(fmt.Sprintf("api.NewParams: key %v has no value", kv[len(kv)-1]))
	}

	var p Params
	for i := 0; i < len(kv); i += 2 {
		p.Set(fmt.Sprint(kv[i]), kv[i+1])
	}
	return p
}

// Set stores the string form of value under key.
func (p *Params) Set(key string, value any) {
	s := fmt.Sprint(value)
	for i := range p.items {
		if p.items[i].Key == key {
			p.items[i].Value = s
			return
		}
	}
	p.items = append(p.items, Param{Key: key, Value: s})
}

func (p Params) Get(key string) (string, bool) {
	for _, it := range p.items {
		if it.Key == key {
			return it.Value, true
		}
	}
	return "", false
}

func (p Params) Len() int {
	return len(p.items)
}

// Items returns a copy of the fields in insertion order.
func (p Params) Items() []Param {
	return append([]Param(nil), p.items...)
}

func (p Params) Clone() Params {
	return Params{items: p.Items()}
}

// Encode serializes the fields as key=value pairs joined with '&', both sides
// percent-escaped for a query-string shaped body. url.ParseQuery reverses it.
func (p Params) Encode() string {
	var sb strings.Builder
	for i, it := range p.items {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(it.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(it.Value))
	}
	return sb.String()
}
