package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"caserelay/internal/cli"
	"caserelay/internal/platform/logger"
)

func main() {
	// stdout carries the JSON envelope, logs go to stderr
	opt := logger.FromEnv()
	opt.Writer = os.Stderr
	if _, ok := os.LookupEnv("LOG_LEVEL"); !ok {
		opt.Level = "warn"
	}
	logger.Init(opt)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
