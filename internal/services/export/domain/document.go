// Package domain holds export types
package domain

import (
	"context"
	"time"

	"caserelay/internal/adapters/courtlistener"
)

// CaseDate is the start and optional end of a case date property
type CaseDate struct {
	Start string  `json:"start"`
	End   *string `json:"end"`
}

// CaseSummary is one exported record
type CaseSummary struct {
	ID             string    `json:"id"`
	CreatedTime    string    `json:"created_time"`
	LastEditedTime string    `json:"last_edited_time"`
	CaseName       string    `json:"case_name"`
	CaseDate       *CaseDate `json:"case_date"`
	Court          string    `json:"court"`
	Judge          string    `json:"judge"`
	CaseType       string    `json:"case_type"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes"`

	CourtListener *courtlistener.SearchResult `json:"courtlistener_search"`
}

// SearchStats counts enrichment lookups
type SearchStats struct {
	Total      int     `json:"total_searches"`
	Successful int     `json:"successful_searches"`
	Rate       float64 `json:"search_rate"`
}

// Summary aggregates an export
type Summary struct {
	TotalCases  int            `json:"total_cases"`
	ByStatus    map[string]int `json:"status_distribution"`
	ByCaseType  map[string]int `json:"case_type_distribution"`
	Searches    SearchStats    `json:"courtlistener_searches"`
	RecentCases []string       `json:"recent_cases"`
}

// Document is the full export written to disk or returned over HTTP
type Document struct {
	ExportID             string        `json:"export_id"`
	ExportedAt           time.Time     `json:"exported_at"`
	DatabaseID           string        `json:"database_id"`
	DataSourceID         string        `json:"data_source_id"`
	Count                int           `json:"count"`
	CourtListenerEnabled bool          `json:"courtlistener_enabled"`
	Cases                []CaseSummary `json:"cases"`
	Summary              Summary       `json:"summary"`
}

// Options tunes one export run
type Options struct {
	// Enrich searches CourtListener for every named case when a key is configured
	Enrich bool
	// SearchLimit caps hits per case; 0 uses the client default
	SearchLimit int
	// MaxRecords stops paging once reached; 0 exports everything
	MaxRecords int
}

// ExporterPort is what transports need from the export service
type ExporterPort interface {
	Export(ctx context.Context, databaseID string, o Options) (Document, error)
}
