package service

import (
	"encoding/json"
	"strings"

	"caserelay/internal/adapters/notion"
	"caserelay/internal/core/textclean"
	perr "caserelay/internal/platform/errors"
	"caserelay/internal/platform/net/http/bind"
	"caserelay/internal/services/cases/domain"
)

const (
	defaultPageSize = 5
	maxPageSize     = 100
)

// buildProperties merges a CaseRecord and raw properties and checks for a title entry
func buildProperties(in domain.CreateInput) (map[string]any, error) {
	if in.Record == nil && len(in.Properties) == 0 {
		return nil, perr.WithField(perr.Validationf("Properties are required"), "properties")
	}

	out := map[string]any{}
	if in.Record != nil {
		if err := bind.Struct(in.Record); err != nil {
			e, _ := perr.As(err)
			return nil, perr.WithField(err, "record."+e.Field())
		}
		for k, v := range recordProperties(*in.Record) {
			out[k] = v
		}
	}
	for k, raw := range in.Properties {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, perr.WithField(perr.Validationf("Property %q must be an object", k), "properties")
		}
		out[k] = raw
	}

	for _, v := range out {
		if isTitle(v) {
			return out, nil
		}
	}
	if _, ok := out[domain.PropTitle]; ok {
		return nil, perr.WithField(perr.Validationf("Title property must have 'title' field"), "properties")
	}
	return nil, perr.WithField(perr.Validationf("Title property is required"), "properties")
}

func isTitle(v any) bool {
	switch t := v.(type) {
	case map[string]any:
		_, ok := t["title"]
		return ok
	case json.RawMessage:
		var obj map[string]json.RawMessage
		if json.Unmarshal(t, &obj) != nil {
			return false
		}
		_, ok := obj["title"]
		return ok
	}
	return false
}

// recordProperties maps form fields onto typed properties; blank fields are left out
func recordProperties(r domain.CaseRecord) map[string]any {
	out := map[string]any{
		domain.PropTitle: notion.TitleProp(clean(r.Title)),
	}
	text := map[string]string{
		domain.PropCaseNumber: r.CaseNumber,
		domain.PropCourt:      r.Court,
		domain.PropJudge:      r.Judge,
		domain.PropParties:    r.Parties,
		domain.PropSummary:    r.Summary,
		domain.PropOutcome:    r.Outcome,
	}
	for name, v := range text {
		if c := clean(v); c != "" {
			out[name] = notion.RichTextProp(c)
		}
	}
	selects := map[string]string{
		domain.PropStatus:   r.Status,
		domain.PropType:     r.Type,
		domain.PropPriority: r.Priority,
	}
	for name, v := range selects {
		if c := option(v); c != "" {
			out[name] = notion.SelectProp(c)
		}
	}
	if d := strings.TrimSpace(r.Date); d != "" {
		out[domain.PropDate] = notion.DateProp(d)
	}
	if tags := tagNames(r.Tags); len(tags) > 0 {
		out[domain.PropTags] = notion.MultiSelectProp(tags...)
	}
	return out
}

func clean(s string) string { return textclean.Clip(textclean.Plain(s), textclean.MaxRichText) }

// option names may not contain commas upstream
func option(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(textclean.Plain(s), ",", " "))
}

func tagNames(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		o := option(t)
		if o == "" {
			continue
		}
		k := strings.ToLower(o)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, o)
	}
	return out
}

// buildQuery validates query input and applies defaults
func buildQuery(in domain.QueryInput) (notion.QueryRequest, error) {
	if err := bind.Struct(in); err != nil {
		return notion.QueryRequest{}, err
	}

	q := notion.QueryRequest{
		PageSize:    defaultPageSize,
		Filter:      in.Filter,
		StartCursor: strings.TrimSpace(in.StartCursor),
	}
	if in.PageSize != nil {
		if *in.PageSize < 1 || *in.PageSize > maxPageSize {
			return q, perr.WithField(perr.Validationf("Page size must be an integer between 1 and %d", maxPageSize), "page_size")
		}
		q.PageSize = *in.PageSize
	}

	if len(in.Sorts) == 0 {
		q.Sorts = []notion.Sort{{Timestamp: "created_time", Direction: "descending"}}
		return q, nil
	}
	for _, s := range in.Sorts {
		ns, err := toSort(s)
		if err != nil {
			return q, perr.WithField(err, "sorts")
		}
		q.Sorts = append(q.Sorts, ns)
	}
	return q, nil
}

// toSort accepts the older {"property":"created_time"} spelling for timestamp sorts
func toSort(s domain.Sort) (notion.Sort, error) {
	prop := strings.TrimSpace(s.Property)
	ts := strings.TrimSpace(s.Timestamp)
	if ts == "" && (prop == "created_time" || prop == "last_edited_time") {
		ts, prop = prop, ""
	}
	if (prop == "") == (ts == "") {
		return notion.Sort{}, perr.Validationf("Each sort needs exactly one of property or timestamp")
	}
	dir := s.Direction
	if dir == "" {
		dir = "ascending"
	}
	return notion.Sort{Property: prop, Timestamp: ts, Direction: dir}, nil
}
