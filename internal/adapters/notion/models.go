package notion

import (
	"encoding/json"
	"strings"
)

// RichText is one rich text run. PlainText is filled on reads; Text on writes
type RichText struct {
	Type      string       `json:"type,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

// TextContent is the content of a text run
type TextContent struct {
	Content string `json:"content"`
}

// PlainText joins the plain text of every run
func PlainText(rts []RichText) string {
	var b strings.Builder
	for _, rt := range rts {
		switch {
		case rt.PlainText != "":
			b.WriteString(rt.PlainText)
		case rt.Text != nil:
			b.WriteString(rt.Text.Content)
		}
	}
	return b.String()
}

// DataSourceRef is an entry of a database's data_sources list
type DataSourceRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Database is the subset of the database object the relay reads
type Database struct {
	Object         string                     `json:"object"`
	ID             string                     `json:"id"`
	Title          []RichText                 `json:"title"`
	URL            string                     `json:"url,omitempty"`
	Properties     map[string]json.RawMessage `json:"properties,omitempty"`
	DataSources    []DataSourceRef            `json:"data_sources"`
	CreatedTime    string                     `json:"created_time"`
	LastEditedTime string                     `json:"last_edited_time"`
}

// DataSource is the subset of the data source object the relay reads
type DataSource struct {
	Object     string                     `json:"object"`
	ID         string                     `json:"id"`
	Title      []RichText                 `json:"title,omitempty"`
	Properties map[string]json.RawMessage `json:"properties"`
}

// Option is a select, status or multi_select choice
type Option struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// DateValue is a date property value
type DateValue struct {
	Start    string  `json:"start"`
	End      *string `json:"end,omitempty"`
	TimeZone *string `json:"time_zone,omitempty"`
}

// PropertyValue is a page property as returned by the upstream
// Only the types the relay flattens get typed fields; Raw keeps the original bytes
type PropertyValue struct {
	ID          string     `json:"id,omitempty"`
	Type        string     `json:"type"`
	Title       []RichText `json:"title,omitempty"`
	RichText    []RichText `json:"rich_text,omitempty"`
	Select      *Option    `json:"select,omitempty"`
	Status      *Option    `json:"status,omitempty"`
	MultiSelect []Option   `json:"multi_select,omitempty"`
	Date        *DateValue `json:"date,omitempty"`
	Number      *float64   `json:"number,omitempty"`
	Checkbox    *bool      `json:"checkbox,omitempty"`
	URL         *string    `json:"url,omitempty"`
	Email       *string    `json:"email,omitempty"`
	PhoneNumber *string    `json:"phone_number,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON keeps the raw bytes alongside the typed view
func (p *PropertyValue) UnmarshalJSON(b []byte) error {
	type plain PropertyValue
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = PropertyValue(v)
	p.Raw = append(json.RawMessage(nil), b...)
	return nil
}

// Page is the subset of the page object the relay reads
type Page struct {
	Object         string                   `json:"object"`
	ID             string                   `json:"id"`
	URL            string                   `json:"url,omitempty"`
	CreatedTime    string                   `json:"created_time"`
	LastEditedTime string                   `json:"last_edited_time"`
	Archived       bool                     `json:"archived,omitempty"`
	Properties     map[string]PropertyValue `json:"properties"`
}

// Sort is one entry of a query's sorts list. Exactly one of Property or Timestamp is set
type Sort struct {
	Property  string `json:"property,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Direction string `json:"direction"`
}

// QueryRequest is the body of POST /data_sources/{id}/query
type QueryRequest struct {
	Sorts       []Sort         `json:"sorts,omitempty"`
	Filter      map[string]any `json:"filter,omitempty"`
	PageSize    int            `json:"page_size,omitempty"`
	StartCursor string         `json:"start_cursor,omitempty"`
}

// QueryResponse is the paginated list returned by a query
type QueryResponse struct {
	Object     string  `json:"object"`
	Results    []Page  `json:"results"`
	NextCursor *string `json:"next_cursor"`
	HasMore    bool    `json:"has_more"`
}

// Parent addresses where a page is created
type Parent struct {
	Type         string `json:"type"`
	DataSourceID string `json:"data_source_id,omitempty"`
	DatabaseID   string `json:"database_id,omitempty"`
}

// DataSourceParent returns the parent reference for a data source
func DataSourceParent(id string) Parent {
	return Parent{Type: "data_source_id", DataSourceID: id}
}

// CreatePageRequest is the body of POST /pages
type CreatePageRequest struct {
	Parent     Parent         `json:"parent"`
	Properties map[string]any `json:"properties"`
}

// Property builders for writes

// TitleProp builds a title property value
func TitleProp(s string) map[string]any { return map[string]any{"title": textRuns(s)} }

// RichTextProp builds a rich_text property value
func RichTextProp(s string) map[string]any { return map[string]any{"rich_text": textRuns(s)} }

// SelectProp builds a select property value
func SelectProp(name string) map[string]any { return map[string]any{"select": Option{Name: name}} }

// MultiSelectProp builds a multi_select property value
func MultiSelectProp(names ...string) map[string]any {
	opts := make([]Option, 0, len(names))
	for _, n := range names {
		opts = append(opts, Option{Name: n})
	}
	return map[string]any{"multi_select": opts}
}

// DateProp builds a date property value from an ISO 8601 start
func DateProp(start string) map[string]any { return map[string]any{"date": DateValue{Start: start}} }

func textRuns(s string) []RichText {
	return []RichText{{Type: "text", Text: &TextContent{Content: s}}}
}
