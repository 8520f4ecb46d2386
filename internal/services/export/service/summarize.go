package service

import (
	"math"
	"sort"
	"strings"

	"caserelay/internal/adapters/notion"
	"caserelay/internal/services/export/domain"
)

// property names tried in order; forms built by hand used several spellings
var (
	nameProps  = []string{"Name", "Case Name", "Title"}
	dateProps  = []string{"Date", "Case Date"}
	typeProps  = []string{"Case Type", "Type"}
	notesProps = []string{"Notes", "Summary"}
)

const recentCases = 5

// Summarize reduces one page to a CaseSummary
func Summarize(p notion.Page) domain.CaseSummary {
	props := p.Properties
	out := domain.CaseSummary{
		ID:             p.ID,
		CreatedTime:    p.CreatedTime,
		LastEditedTime: p.LastEditedTime,
		Court:          joinRuns(props["Court"].RichText, " "),
		Judge:          joinRuns(props["Judge"].RichText, " "),
		Status:         optionOf(props["Status"]),
	}

	for _, k := range nameProps {
		if v, ok := props[k]; ok && len(v.Title) > 0 {
			out.CaseName = strings.TrimSpace(notion.PlainText(v.Title))
			break
		}
	}
	for _, k := range dateProps {
		if v, ok := props[k]; ok && v.Date != nil {
			out.CaseDate = &domain.CaseDate{Start: v.Date.Start, End: v.Date.End}
			break
		}
	}
	for _, k := range typeProps {
		if s := optionOf(props[k]); s != "" {
			out.CaseType = s
			break
		}
	}
	for _, k := range notesProps {
		if v, ok := props[k]; ok && len(v.RichText) > 0 {
			out.Notes = joinRuns(v.RichText, "\n")
			break
		}
	}
	return out
}

// SummarizeAll aggregates status and type counts, search stats and the latest case names
func SummarizeAll(cases []domain.CaseSummary) domain.Summary {
	s := domain.Summary{
		TotalCases:  len(cases),
		ByStatus:    map[string]int{},
		ByCaseType:  map[string]int{},
		RecentCases: []string{},
	}
	for _, c := range cases {
		if c.Status != "" {
			s.ByStatus[c.Status]++
		}
		if c.CaseType != "" {
			s.ByCaseType[c.CaseType]++
		}
		if c.CourtListener != nil {
			s.Searches.Total++
			if len(c.CourtListener.Results) > 0 {
				s.Searches.Successful++
			}
		}
	}
	if s.Searches.Total > 0 {
		rate := float64(s.Searches.Successful) / float64(s.Searches.Total) * 100
		s.Searches.Rate = math.Round(rate*100) / 100
	}

	sorted := make([]domain.CaseSummary, len(cases))
	copy(sorted, cases)
	// undated cases sort last
	sort.SliceStable(sorted, func(i, j int) bool { return dateKey(sorted[i]) > dateKey(sorted[j]) })
	for i := 0; i < len(sorted) && i < recentCases; i++ {
		s.RecentCases = append(s.RecentCases, sorted[i].CaseName)
	}
	return s
}

func dateKey(c domain.CaseSummary) string {
	if c.CaseDate == nil || c.CaseDate.Start == "" {
		return "0000-00-00"
	}
	return c.CaseDate.Start
}

func optionOf(v notion.PropertyValue) string {
	switch {
	case v.Select != nil:
		return v.Select.Name
	case v.Status != nil:
		return v.Status.Name
	}
	return ""
}

func joinRuns(rts []notion.RichText, sep string) string {
	parts := make([]string, 0, len(rts))
	for _, rt := range rts {
		parts = append(parts, notion.PlainText([]notion.RichText{rt}))
	}
	return strings.Join(parts, sep)
}
