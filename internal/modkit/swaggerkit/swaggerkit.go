// Package swaggerkit serves Swagger UI and the OpenAPI document for the API.
// The document is decorated at serve time with the shared error envelope and
// the default failure responses every relay endpoint can produce
package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	httpSwagger "github.com/swaggo/http-swagger"

	phttp "caserelay/internal/platform/net/http"
)

// DocsPath is where the UI lives
const DocsPath = "/api/docs"

// Mount serves the UI under DocsPath and the document at DocsPath/doc.json
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get(DocsPath, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, DocsPath+"/", http.StatusPermanentRedirect)
	})
	r.Get(DocsPath+"/doc.json", serveDoc)
	r.Handle(DocsPath+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(DocsPath+"/doc.json"),
	))
}

func serveDoc(w http.ResponseWriter, _ *http.Request) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
		http.Error(w, "openapi document is not valid JSON", http.StatusInternalServerError)
		return
	}
	decorate(spec, "/api/v1")

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(spec)
}

const errorRef = "#/components/schemas/ErrorResponse"

// defaults are added to every operation that does not declare the status itself
var defaults = map[string]struct {
	description string
	example     map[string]any
}{
	"400": {"Bad Request", map[string]any{
		"error": true, "code": "validation_error", "field": "databaseId",
		"message": "Invalid database ID format. Must be 32 hexadecimal characters.",
	}},
	"500": {"Internal Server Error", map[string]any{
		"error": true, "code": "panic", "message": "Internal server error",
	}},
	"502": {"Notion answered with an error or an unexpected body", map[string]any{
		"error": true, "code": "upstream_malformed_response",
		"message": "Received HTML instead of JSON. Check your API token and database ID.",
	}},
	"503": {"Notion could not be reached", map[string]any{
		"error": true, "code": "unavailable", "message": "Notion API is unavailable",
	}},
}

// decorate pins the document to OpenAPI 3.0.3 (the UI cannot render 3.1), sets the
// server url and fills in ErrorResponse plus the default failure responses
func decorate(spec map[string]any, serverURL string) {
	delete(spec, "swagger")
	if v, _ := spec["openapi"].(string); !strings.HasPrefix(v, "3.0") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": serverURL}}
	}

	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = map[string]any{
			"type":        "object",
			"description": "Error envelope",
			"required":    []any{"error", "message", "code"},
			"properties": map[string]any{
				"error":      map[string]any{"type": "boolean"},
				"message":    map[string]any{"type": "string"},
				"code":       map[string]any{"type": "string"},
				"field":      map[string]any{"type": "string"},
				"retryable":  map[string]any{"type": "boolean"},
				"request_id": map[string]any{"type": "string"},
			},
		}
	}

	paths, _ := spec["paths"].(map[string]any)
	for _, item := range paths {
		ops, _ := item.(map[string]any)
		for _, opAny := range ops {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses := child(op, "responses")
			for status, d := range defaults {
				if _, set := responses[status]; set {
					continue
				}
				responses[status] = map[string]any{
					"description": d.description,
					"content": map[string]any{
						"application/json": map[string]any{
							"schema":  map[string]any{"$ref": errorRef},
							"example": d.example,
						},
					},
				}
			}
		}
	}
}

// child returns m[key] as an object, creating it when missing
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}
