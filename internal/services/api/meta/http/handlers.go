// Package http serves liveness, readiness and build info
package http

import (
	"context"
	"net/http"
	"time"

	"caserelay/internal/core/version"
	"caserelay/internal/modkit/httpkit"
)

// readyTimeout bounds all readiness probes together
const readyTimeout = 2 * time.Second

// Check probes one dependency; a nil Fn is reported as skipped
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName   string
	StartedAt     time.Time
	NotionVersion string
	Checks        []Check
	// Now is for tests
	Now func() time.Time
}

// Register mounts /health, /ready and /version
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	h := handlers(d)
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
}

type handlers Deps

// Health is the liveness payload. It never touches Notion
type Health struct {
	OK      bool   `json:"ok" example:"true"`
	Service string `json:"service" example:"caserelay-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime_seconds" example:"300"`
}

// Probe is one readiness check result; Status is ok, fail or skipped
type Probe struct {
	Name   string `json:"name" example:"credential"`
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"NOTION_API_TOKEN is not set"`
}

// Readiness is ok only when no probe failed
type Readiness struct {
	Status string  `json:"status" example:"ok"`
	Checks []Probe `json:"checks"`
}

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} Health
// @Router /meta/health [get]
func (h handlers) health(_ *http.Request) (any, error) {
	return Health{
		OK:      true,
		Service: h.ServiceName,
		Started: h.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(h.Now().Sub(h.StartedAt) / time.Second),
	}, nil
}

// @Summary Readiness: the credential loads and Redis answers when configured
// @Tags Meta
// @Produce json
// @Success 200 {object} Readiness
// @Failure 503 {object} Readiness "a probe failed"
// @Router /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	out := Readiness{Status: "ok", Checks: make([]Probe, 0, len(h.Checks))}
	for _, c := range h.Checks {
		p := Probe{Name: c.Name, Status: "skipped"}
		if c.Fn != nil {
			p.Status = "ok"
			if err := c.Fn(ctx); err != nil {
				p.Status, p.Error = "fail", err.Error()
				out.Status = "fail"
			}
		}
		out.Checks = append(out.Checks, p)
	}

	if out.Status != "ok" {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
	}
	return out, nil
}

// @Summary Build info and the Notion-Version header in use
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h handlers) version(_ *http.Request) (any, error) {
	return version.Info().WithNotion(h.NotionVersion), nil
}
