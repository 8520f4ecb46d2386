// Package domain holds DTOs for the cases http and service contracts
package domain

import "encoding/json"

// TestConnectionInput identifies the database to probe
type TestConnectionInput struct {
	DatabaseID string `json:"databaseId" example:"40c4cef5c8cd4cb4891a35c3710df6e9"`
}

// DataSourceInfo is one data source of a database
type DataSourceInfo struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ConnectionInfo is the database metadata returned by TestConnection
type ConnectionInfo struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Properties     []string         `json:"properties"`
	DataSourceID   string           `json:"data_source_id"`
	DataSources    []DataSourceInfo `json:"data_sources"`
	IsMultiSource  bool             `json:"is_multi_source"`
	CreatedTime    string           `json:"created_time,omitempty"`
	LastEditedTime string           `json:"last_edited_time,omitempty"`
	APIVersion     string           `json:"api_version"`
}

// CreateInput carries either raw upstream properties or a CaseRecord
// When both are set the raw properties win for keys present in both
type CreateInput struct {
	DatabaseID string                     `json:"databaseId" example:"40c4cef5c8cd4cb4891a35c3710df6e9"`
	Properties map[string]json.RawMessage `json:"properties,omitempty" swaggertype:"object"`
	Record     *CaseRecord                `json:"record,omitempty"`
}

// Created describes a newly created record
type Created struct {
	ID             string         `json:"id"`
	URL            string         `json:"url,omitempty"`
	CreatedTime    string         `json:"created_time,omitempty"`
	LastEditedTime string         `json:"last_edited_time,omitempty"`
	Properties     map[string]any `json:"properties"`
	DataSourceID   string         `json:"data_source_id"`
	APIVersion     string         `json:"api_version"`
}

// Sort orders query results by a property or by a record timestamp
type Sort struct {
	Property  string `json:"property,omitempty"`
	Timestamp string `json:"timestamp,omitempty" validate:"omitempty,oneof=created_time last_edited_time"`
	Direction string `json:"direction" validate:"omitempty,oneof=ascending descending"`
}

// QueryInput selects records from the database's data source
type QueryInput struct {
	DatabaseID  string         `json:"databaseId" example:"40c4cef5c8cd4cb4891a35c3710df6e9"`
	Sorts       []Sort         `json:"sorts,omitempty" validate:"omitempty,dive"`
	PageSize    *int           `json:"page_size,omitempty" validate:"omitempty,min=1,max=100" example:"5"`
	Filter      map[string]any `json:"filter,omitempty" swaggertype:"object"`
	StartCursor string         `json:"start_cursor,omitempty"`
}

// Record is one flattened upstream page
type Record struct {
	ID             string         `json:"id"`
	CreatedTime    string         `json:"created_time"`
	LastEditedTime string         `json:"last_edited_time"`
	URL            string         `json:"url,omitempty"`
	Properties     map[string]any `json:"properties"`
}

// QueryResult is one page of records
type QueryResult struct {
	Results      []Record `json:"results"`
	NextCursor   *string  `json:"next_cursor"`
	HasMore      bool     `json:"has_more"`
	TotalCount   int      `json:"total_count"`
	APIVersion   string   `json:"api_version"`
	DataSourceID string   `json:"data_source_id"`
}
