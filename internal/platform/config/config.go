// Package config reads settings from the environment through prefixed views,
// e.g. New().Prefix("NOTION_").MayDuration("TIMEOUT", 30*time.Second)
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"caserelay/internal/platform/logger"
)

// Conf is a view over env vars sharing a prefix
type Conf struct{ prefix string }

// New returns the unprefixed view
func New() Conf { return Conf{} }

// Prefix narrows the view: New().Prefix("CASES_").Prefix("REDIS_") reads CASES_REDIS_*
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Name is the full env var name for key, for error messages
func (c Conf) Name(key string) string { return c.prefix + key }

func (c Conf) lookup(key string) string { return strings.TrimSpace(os.Getenv(c.Name(key))) }

// parse returns def for an unset key, and warns and returns def for a value fn rejects
func parse[T any](c Conf, key string, def T, fn func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := fn(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Name(key)).Str("value", s).Interface("default", def).
			Msg("unparsable setting, using default")
		return def
	}
	return v
}

// MayString returns the trimmed value or def
func (c Conf) MayString(key, def string) string {
	return parse(c, key, def, func(s string) (string, error) { return s, nil })
}

func (c Conf) MayInt(key string, def int) int { return parse(c, key, def, strconv.Atoi) }

func (c Conf) MayBool(key string, def bool) bool { return parse(c, key, def, strconv.ParseBool) }

func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return parse(c, key, def, time.ParseDuration)
}

func (c Conf) MayFloat64(key string, def float64) float64 {
	return parse(c, key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayCSV splits on commas and drops blanks; def when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.lookup(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value lowercased, or def when unset. A value outside
// allowed is a deployment mistake and panics
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := strings.ToLower(c.MayString(key, def))
	for _, a := range allowed {
		if v == strings.ToLower(a) {
			return v
		}
	}
	logger.Get().Panic().Str("key", c.Name(key)).Str("value", v).Strs("allowed", allowed).Msg("setting not in allowed set")
	return ""
}
