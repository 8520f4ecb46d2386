// Package logger owns the process zerolog logger. Request and database ids ride
// on the context and are added by C
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"caserelay/internal/platform/config/raw"
)

// Logger is zerolog's logger
type Logger = zerolog.Logger

// Options shapes the root logger. Format "console" is for humans, anything else is JSON
type Options struct {
	Level        string
	Format       string
	Service      string
	Component    string
	Writer       io.Writer
	WithCaller   bool
	SampleEvery  int
	StaticFields map[string]string
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_COMPONENT, LOG_CALLER and LOG_SAMPLE_EVERY
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:       env.Get("LEVEL", "info"),
		Format:      strings.ToLower(env.Get("FORMAT", "console")),
		Service:     env.Get("SERVICE", "caserelay"),
		Component:   env.Get("COMPONENT", ""),
		WithCaller:  env.GetBool("CALLER", false),
		SampleEvery: env.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	initOnce sync.Once
	root     atomic.Pointer[Logger]
)

// Init installs the root logger. Only the first call, or the first Get, counts
func Init(opt Options) {
	initOnce.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := build(opt)
		root.Store(&l)
	})
}

// Get returns the root logger, initializing it from env on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

func build(opt Options) Logger {
	var w io.Writer = os.Stdout
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	fields := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp()
	if opt.Service != "" {
		fields = fields.Str("service", opt.Service)
	}
	if opt.Component != "" {
		fields = fields.Str("component", opt.Component)
	}
	for k, v := range opt.StaticFields {
		fields = fields.Str(k, v)
	}
	if opt.WithCaller {
		fields = fields.Caller()
	}

	l := fields.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

// parseLevel accepts zerolog names plus "warning"; unknown input is info
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

type ctxKey int

const (
	keyRequestID ctxKey = iota
	keyDatabaseID
)

// WithRequest puts the request id on ctx
func WithRequest(ctx context.Context, reqID string) context.Context {
	return withValue(ctx, keyRequestID, reqID)
}

// WithDatabase puts the target database id on ctx
func WithDatabase(ctx context.Context, databaseID string) context.Context {
	return withValue(ctx, keyDatabaseID, databaseID)
}

func withValue(ctx context.Context, k ctxKey, v string) context.Context {
	if v == "" {
		return ctx
	}
	return context.WithValue(ctx, k, v)
}

// C is the root logger plus request_id and database_id from ctx
func C(ctx context.Context) *Logger {
	fields := Get().With()
	if s, _ := ctx.Value(keyRequestID).(string); s != "" {
		fields = fields.Str("request_id", s)
	}
	if s, _ := ctx.Value(keyDatabaseID).(string); s != "" {
		fields = fields.Str("database_id", s)
	}
	l := fields.Logger()
	return &l
}

// Named tags the root logger with a component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
