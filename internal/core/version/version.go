// Package version reports what binary is running
package version

import (
	"runtime/debug"
	"sync"
)

// Set with -ldflags "-X caserelay/internal/core/version.version=v0.1.0 ..."
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// BuildInfo is served by /meta/version and printed by `caserelay version`
type BuildInfo struct {
	Service       string `json:"service"`
	Version       string `json:"version"`
	Commit        string `json:"commit"`
	Date          string `json:"date"`
	NotionVersion string `json:"notion_version,omitempty"`
}

var (
	once sync.Once
	info BuildInfo
)

// Info prefers ldflags values and falls back to the vcs stamp go build embeds
func Info() BuildInfo {
	once.Do(func() {
		bi, _ := debug.ReadBuildInfo()
		info = resolve(bi)
	})
	return info
}

func resolve(bi *debug.BuildInfo) BuildInfo {
	out := BuildInfo{Service: "caserelay-api", Version: version, Commit: commit, Date: date}
	if bi != nil {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && out.Commit == "":
				out.Commit = s.Value
			case s.Key == "vcs.time" && out.Date == "":
				out.Date = s.Value
			}
		}
		if out.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			out.Version = bi.Main.Version
		}
	}
	if len(out.Commit) > 12 {
		out.Commit = out.Commit[:12]
	}
	if out.Commit == "" {
		out.Commit = "none"
	}
	if out.Date == "" {
		out.Date = "unknown"
	}
	return out
}

// WithNotion tags a copy with the Notion-Version header in use
func (b BuildInfo) WithNotion(v string) BuildInfo {
	b.NotionVersion = v
	return b
}
