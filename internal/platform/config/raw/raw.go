// Package raw reads settings without logging, for code the logger itself depends on
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Source resolves one key
type Source func(key string) (string, bool)

// Env is a prefixed view over a Source
type Env struct {
	prefix string
	src    Source
}

// New reads the process environment
func New() Env { return Env{src: os.LookupEnv} }

// FromMap reads m instead of the environment
func FromMap(m map[string]string) Env {
	return Env{src: func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}}
}

// Prefix nests p under the current prefix
func (e Env) Prefix(p string) Env { return Env{prefix: e.prefix + p, src: e.src} }

// Key is the fully qualified name of k
func (e Env) Key(k string) string { return e.prefix + k }

// Lookup returns the trimmed value; blank counts as unset
func (e Env) Lookup(k string) (string, bool) {
	if e.src == nil {
		return "", false
	}
	v, ok := e.src(e.Key(k))
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Get returns the value of k or def
func (e Env) Get(k, def string) string {
	if v, ok := e.Lookup(k); ok {
		return v
	}
	return def
}

// GetBool returns def when k is unset or unparsable
func (e Env) GetBool(k string, def bool) bool {
	v, ok := e.Lookup(k)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
