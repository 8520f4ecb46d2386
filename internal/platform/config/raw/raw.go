// Package raw reads environment settings for the logger. config logs through
// the logger, so the logger cannot import config
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is an env prefix such as "LOG_"
type Conf string

// New returns the unprefixed view
func New() Conf { return "" }

// Prefix appends p
func (c Conf) Prefix(p string) Conf { return c + Conf(p) }

// Get returns the trimmed value, or def when unset or blank
func (c Conf) Get(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(string(c) + key)); v != "" {
		return v
	}
	return def
}

// GetBool accepts anything strconv.ParseBool does; anything else is def
func (c Conf) GetBool(key string, def bool) bool {
	b, err := strconv.ParseBool(c.Get(key, ""))
	if err != nil {
		return def
	}
	return b
}

// GetInt returns a non-negative integer or def
func (c Conf) GetInt(key string, def int) int {
	n, err := strconv.Atoi(c.Get(key, ""))
	if err != nil || n < 0 {
		return def
	}
	return n
}
