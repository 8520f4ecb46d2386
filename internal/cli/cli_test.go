package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	kit "caserelay/internal/platform/testkit"
)

const dbID = "40c4cef5c8cd4cb4891a35c3710df6e9"

const dbBody = `{"object":"database","id":"40c4cef5-c8cd-4cb4-891a-35c3710df6e9",
  "title":[{"plain_text":"Legal Cases"}],"data_sources":[{"id":"ds_1","name":"Cases"}]}`

type envelope struct {
	Error   bool            `json:"error"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

// run executes the CLI against a fake upstream with a hermetic environment
func run(t *testing.T, up *kit.Upstream, args ...string) (int, envelope, string) {
	t.Helper()
	for _, k := range []string{"NOTION_DATABASE_ID", "NOTION_CREDENTIAL_SOURCE", "NOTION_API_TOKEN", "CASES_CACHE", "CASES_REDIS_ADDR", "COURTLISTENER_API_KEY"} {
		t.Setenv(k, "")
	}
	t.Setenv("NOTION_RATE_PER_SEC", "0")

	base := []string{"--token", "ntn_cli_test_token_0001", "--notion-url", up.URL, "--compact"}
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), append(args, base...), &stdout, &stderr)

	var env envelope
	if stdout.Len() > 0 {
		if err := json.Unmarshal(stdout.Bytes(), &env); err != nil {
			t.Fatalf("stdout is not an envelope: %v %q", err, stdout.String())
		}
	}
	return code, env, stderr.String()
}

func TestTestConnection_PrintsInfo(t *testing.T) {
	up := kit.NewUpstream(t, map[string]http.HandlerFunc{
		"GET /databases/" + dbID: kit.JSON(200, dbBody),
		"GET /data_sources/ds_1":  kit.JSON(200, `{"object":"data_source","id":"ds_1","properties":{"Title":{},"Court":{}}}`),
	})
	code, env, _ := run(t, up, "test-connection", "-d", dbID)
	if code != 0 || env.Error {
		t.Fatalf("exit %d env %+v", code, env)
	}
	var info struct {
		DataSourceID string   `json:"data_source_id"`
		Properties   []string `json:"properties"`
	}
	_ = json.Unmarshal(env.Data, &info)
	if info.DataSourceID != "ds_1" {
		t.Fatalf("unexpected info %s", env.Data)
	}
}

func TestTestConnection_MissingDatabase(t *testing.T) {
	up := kit.NewUpstream(t, map[string]http.HandlerFunc{
		"GET /databases/" + dbID: kit.JSON(200, dbBody),
	})
	code, env, _ := run(t, up, "test-connection")
	if code != 1 || env.Code != "validation_error" || env.Message != "Database ID is required" {
		t.Fatalf("exit %d env %+v", code, env)
	}
	if up.Total() != 0 {
		t.Fatalf("expected no upstream calls, got %d", up.Total())
	}
}

func TestQuery_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"page size zero", []string{"--page-size", "0"}, "validation_error"},
		{"bad direction", []string{"--sort", "Date:sideways"}, "validation_error"},
		{"empty sort", []string{"--sort", ":ascending"}, "validation_error"},
		{"filter not json", []string{"--filter", "{nope"}, "json_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := kit.NewUpstream(t, nil)
			code, env, _ := run(t, up, append([]string{"query", "-d", dbID}, tt.args...)...)
			if code != 1 || !env.Error || env.Code != tt.code {
				t.Fatalf("exit %d env %+v", code, env)
			}
			if up.Total() != 0 {
				t.Fatalf("expected zero upstream calls, got %d", up.Total())
			}
		})
	}
}

func TestQuery_SendsOptions(t *testing.T) {
	var sent map[string]any
	up := kit.NewUpstream(t, map[string]http.HandlerFunc{
		"GET /databases/" + dbID: kit.JSON(200, dbBody),
		"POST /data_sources/ds_1/query": func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&sent)
			kit.JSON(200, `{"object":"list","results":[],"next_cursor":null,"has_more":false}`)(w, r)
		},
	})
	code, env, _ := run(t, up, "query", "-d", dbID, "--page-size", "10", "--sort", "Date", "--filter", `{"property":"Status","select":{"equals":"Active"}}`)
	if code != 0 || env.Error {
		t.Fatalf("exit %d env %+v", code, env)
	}
	if sent["page_size"] != float64(10) || sent["filter"] == nil {
		t.Fatalf("unexpected body %#v", sent)
	}
	sorts, _ := sent["sorts"].([]any)
	if len(sorts) != 1 || sorts[0].(map[string]any)["direction"] != "descending" {
		t.Fatalf("unexpected sorts %#v", sent["sorts"])
	}
}

func TestCreate_FromFlagsAndFile(t *testing.T) {
	var posted []map[string]any
	routes := map[string]http.HandlerFunc{
		"GET /databases/" + dbID: kit.JSON(200, dbBody),
		"POST /pages": func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			var body map[string]any
			_ = json.Unmarshal(raw, &body)
			posted = append(posted, body)
			kit.JSON(200, `{"object":"page","id":"new","properties":{}}`)(w, r)
		},
	}

	up := kit.NewUpstream(t, routes)
	code, env, _ := run(t, up, "create", "-d", dbID, "--title", "Roe v. Wade", "--court", "Supreme Court", "--tag", "privacy")
	if code != 0 || env.Error {
		t.Fatalf("exit %d env %+v", code, env)
	}

	path := filepath.Join(t.TempDir(), "case.json")
	if err := os.WriteFile(path, []byte(`{"title":"Brown v. Board","status":"Closed"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	code, env, _ = run(t, up, "create", "-d", dbID, "--file", path)
	if code != 0 || env.Error {
		t.Fatalf("exit %d env %+v", code, env)
	}

	if len(posted) != 2 {
		t.Fatalf("expected two creates, got %d", len(posted))
	}
	props, _ := posted[1]["properties"].(map[string]any)
	if _, ok := props["Title"]; !ok {
		t.Fatalf("file record should map to a Title property: %#v", props)
	}
}

func TestCreate_NeedsASource(t *testing.T) {
	up := kit.NewUpstream(t, nil)
	code, env, _ := run(t, up, "create", "-d", dbID)
	if code != 1 || env.Code != "validation_error" {
		t.Fatalf("exit %d env %+v", code, env)
	}
}

func TestDecodeCreateFile(t *testing.T) {
	in, err := decodeCreateFile([]byte(`{"properties":{"Name":{"title":[]}}}`))
	if err != nil || in.Properties == nil || in.Record != nil {
		t.Fatalf("body form: %+v %v", in, err)
	}
	in, err = decodeCreateFile([]byte(`{"title":"Roe"}`))
	if err != nil || in.Record == nil || in.Record.Title != "Roe" {
		t.Fatalf("record form: %+v %v", in, err)
	}
	if _, err := decodeCreateFile([]byte(`{"title":"Roe","color":"red"}`)); err == nil {
		t.Fatal("unknown record fields should be rejected")
	}
	if _, err := decodeCreateFile([]byte(`[1]`)); err == nil {
		t.Fatal("non object should be rejected")
	}
}

func TestExport_WritesFiles(t *testing.T) {
	up := kit.NewUpstream(t, map[string]http.HandlerFunc{
		"GET /databases/" + dbID: kit.JSON(200, dbBody),
		"POST /data_sources/ds_1/query": kit.JSON(200, `{"object":"list","results":[
			{"object":"page","id":"p1","properties":{"Name":{"type":"title","title":[{"plain_text":"Roe"}]},"Status":{"type":"select","select":{"name":"Closed"}}}}
		],"next_cursor":null,"has_more":false}`),
	})
	dir := t.TempDir()
	out := filepath.Join(dir, "nested", "export.json")
	sum := filepath.Join(dir, "summary.json")

	code, env, _ := run(t, up, "export", "-d", dbID, "--out", out, "--summary-out", sum)
	if code != 0 || env.Error {
		t.Fatalf("exit %d env %+v", code, env)
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Count int `json:"count"`
		Cases []struct {
			CaseName string `json:"case_name"`
			Status   string `json:"status"`
		} `json:"cases"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Count != 1 || doc.Cases[0].CaseName != "Roe" || doc.Cases[0].Status != "Closed" {
		t.Fatalf("unexpected document %s", raw)
	}
	if _, err := os.Stat(sum); err != nil {
		t.Fatalf("summary not written: %v", err)
	}
}

func TestCacheForget(t *testing.T) {
	up := kit.NewUpstream(t, nil)
	code, env, _ := run(t, up, "cache", "forget", "-d", "40c4cef5-c8cd-4cb4-891a-35c3710df6e9")
	if code != 0 || env.Error {
		t.Fatalf("exit %d env %+v", code, env)
	}
	var data map[string]string
	_ = json.Unmarshal(env.Data, &data)
	if data["database_id"] != dbID {
		t.Fatalf("unexpected data %s", env.Data)
	}
}

func TestVersion(t *testing.T) {
	t.Setenv("NOTION_VERSION", "")
	up := kit.NewUpstream(t, nil)
	code, env, _ := run(t, up, "version")
	if code != 0 || env.Error {
		t.Fatalf("exit %d env %+v", code, env)
	}
	var data map[string]string
	_ = json.Unmarshal(env.Data, &data)
	if data["service"] != "caserelay-api" || data["notion_version"] != "2025-09-03" {
		t.Fatalf("unexpected data %s", env.Data)
	}
}

func TestUnknownCommand_WritesToStderr(t *testing.T) {
	up := kit.NewUpstream(t, nil)
	code, _, stderr := run(t, up, "frobnicate")
	if code != 1 {
		t.Fatalf("exit %d", code)
	}
	kit.MustContain(t, stderr, "unknown command")
}

func TestParseSorts(t *testing.T) {
	got, err := parseSorts([]string{"Date:Ascending", "Court"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Direction != "ascending" || got[1].Direction != "descending" || got[1].Property != "Court" {
		t.Fatalf("unexpected sorts %+v", got)
	}
	if got, _ := parseSorts(nil); got != nil {
		t.Fatalf("no flags should leave sorts unset, got %+v", got)
	}
}
