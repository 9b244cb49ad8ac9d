// Package config reads typed settings from the environment. Invalid values
// fall back to their default with a warning
package config

import (
	"strconv"
	"strings"
	"time"

	"scribe/internal/platform/config/raw"
	"scribe/internal/platform/logger"
)

// Conf is a prefixed view over the environment, e.g. New().Prefix("CORE_API_")
type Conf struct{ env raw.Env }

// New reads the process environment
func New() Conf { return Conf{env: raw.New()} }

// FromMap reads m instead of the environment
func FromMap(m map[string]string) Conf { return Conf{env: raw.FromMap(m)} }

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{env: c.env.Prefix(p)} }

// MayString returns the value of key or def
func (c Conf) MayString(key, def string) string { return c.env.Get(key, def) }

// MayInt returns the integer at key or def
func (c Conf) MayInt(key string, def int) int {
	return may(c, key, def, strconv.Atoi)
}

// MayBool returns the bool at key or def
func (c Conf) MayBool(key string, def bool) bool {
	return may(c, key, def, strconv.ParseBool)
}

// MayDuration returns the Go duration at key or def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayCSV splits a comma list, dropping blanks. def when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	v, ok := c.env.Lookup(key)
	if !ok {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	v, ok := c.env.Lookup(key)
	if !ok {
		return def
	}
	out, err := parse(v)
	if err != nil {
		logger.Named("config").Warn().
			Str("key", c.env.Key(key)).
			Str("value", v).
			Interface("default", def).
			Msg("invalid value, using default")
		return def
	}
	return out
}
