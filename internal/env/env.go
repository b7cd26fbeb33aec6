// Package env holds the environment handed to launched processes.
//
// An Environment is an explicit value: composing a launch never mutates the
// environment of the calling process.
package env

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrMalformed is returned for environment entries that cannot be carried
// into a child process.
var ErrMalformed = errors.New("malformed environment entry")

// Environment is a set of KEY=VALUE variables.
type Environment struct {
	vars map[string]string
}

// New returns an empty environment.
func New() *Environment {
	return &Environment{vars: make(map[string]string)}
}

// Parse builds an environment from KEY=VALUE pairs as returned by
// os.Environ. Later duplicates win.
func Parse(pairs []string) (*Environment, error) {
	e := New()
	for i, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%w: entry %d has no '=': %q", ErrMalformed, i, pair)
		}
		if key == "" {
			return nil, fmt.Errorf("%w: entry %d has an empty name", ErrMalformed, i)
		}
		if !utf8.ValidString(key) {
			return nil, fmt.Errorf("%w: %q is not valid UTF-8", ErrMalformed, key)
		}
		e.vars[key] = value
	}
	return e, nil
}

// FromOS parses the current process environment.
func FromOS() (*Environment, error) {
	return Parse(os.Environ())
}

// IsUpperName reports whether key has at least one upper-case letter and no
// lower- or title-case letters, e.g. ROS_DOMAIN_ID or PATH2 but not Path, _
// or 123.
func IsUpperName(key string) bool {
	cased := false
	for _, r := range key {
		if unicode.IsLower(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// UpperOnly returns a copy holding only the upper-case names.
func (e *Environment) UpperOnly() *Environment {
	out := New()
	for k, v := range e.vars {
		if IsUpperName(k) {
			out.vars[k] = v
		}
	}
	return out
}

// Get returns the value of key, or "" if unset.
func (e *Environment) Get(key string) string {
	return e.vars[key]
}

// Lookup returns the value of key and whether it is set.
func (e *Environment) Lookup(key string) (string, bool) {
	v, ok := e.vars[key]
	return v, ok
}

// Set sets key to value.
func (e *Environment) Set(key, value string) {
	e.vars[key] = value
}

// AppendPath appends parts to the colon-separated list in key. The existing
// value stays first; empty parts are dropped.
func (e *Environment) AppendPath(key string, parts ...string) {
	var list []string
	if cur, ok := e.vars[key]; ok && cur != "" {
		list = append(list, cur)
	}
	for _, p := range parts {
		if p != "" {
			list = append(list, p)
		}
	}
	e.vars[key] = strings.Join(list, ":")
}

// Len returns the number of variables.
func (e *Environment) Len() int {
	return len(e.vars)
}

// Keys returns the variable names in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.vars))
	for k := range e.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Slice renders the environment as sorted KEY=VALUE pairs, the form
// expected by exec.Cmd.Env.
func (e *Environment) Slice() []string {
	keys := e.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k + "=" + e.vars[k]
	}
	return out
}

// Map returns a copy of the variables.
func (e *Environment) Map() map[string]string {
	m := make(map[string]string, len(e.vars))
	for k, v := range e.vars {
		m[k] = v
	}
	return m
}

// Clone returns an independent copy.
func (e *Environment) Clone() *Environment {
	return &Environment{vars: e.Map()}
}

// MarshalJSON renders the environment as a plain object.
func (e *Environment) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Map())
}

// MarshalYAML renders the environment as a plain mapping.
func (e *Environment) MarshalYAML() (interface{}, error) {
	return e.Map(), nil
}
