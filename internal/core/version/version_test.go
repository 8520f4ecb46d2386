package version

import (
	"runtime/debug"
	"testing"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name string
		bi   *debug.BuildInfo
		want BuildInfo
	}{
		{
			name: "no build info",
			want: BuildInfo{Service: "caserelay-api", Version: "dev", Commit: "none", Date: "unknown"},
		},
		{
			name: "vcs stamp",
			bi: &debug.BuildInfo{
				Main: debug.Module{Version: "(devel)"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "0123456789abcdef0123"},
					{Key: "vcs.time", Value: "2025-09-03T13:00:00Z"},
				},
			},
			want: BuildInfo{Service: "caserelay-api", Version: "dev", Commit: "0123456789ab", Date: "2025-09-03T13:00:00Z"},
		},
		{
			name: "module version",
			bi:   &debug.BuildInfo{Main: debug.Module{Version: "v0.1.0"}},
			want: BuildInfo{Service: "caserelay-api", Version: "v0.1.0", Commit: "none", Date: "unknown"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolve(tc.bi); got != tc.want {
				t.Fatalf("got %+v", got)
			}
		})
	}
}

func TestResolve_LdflagsWin(t *testing.T) {
	version, commit, date = "v1.2.3", "abc", "2025-09-02"
	t.Cleanup(func() { version, commit, date = "dev", "", "" })

	got := resolve(&debug.BuildInfo{Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffff"}}})
	if got.Version != "v1.2.3" || got.Commit != "abc" || got.Date != "2025-09-02" {
		t.Fatalf("got %+v", got)
	}
	if got.WithNotion("2025-09-03").NotionVersion != "2025-09-03" {
		t.Fatal("WithNotion")
	}
}
