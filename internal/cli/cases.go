package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	perr "caserelay/internal/platform/errors"
	"caserelay/internal/services/cases/domain"
)

func newTestConnectionCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "test-connection",
		Short: "Check the token and database, and list the database's properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := g.open(cmd.Context())
			if err != nil {
				return g.emit(cmd, a.reqID, false, nil, err)
			}
			defer a.close()

			info, err := a.cases.TestConnection(a.ctx, domain.TestConnectionInput{DatabaseID: g.databaseID()})
			return g.emit(cmd, a.reqID, false, info, err)
		},
	}
}

func newQueryCmd(g *globals) *cobra.Command {
	var (
		pageSize int
		sorts    []string
		filter   string
		cursor   string
	)
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query records, newest first unless --sort is given",
		Long: `Query records of the database.

--sort takes property:direction and may repeat, e.g. --sort "Date:descending".
--filter takes a Notion filter object as JSON, or @path to read it from a file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := g.open(cmd.Context())
			if err != nil {
				return g.emit(cmd, a.reqID, false, nil, err)
			}
			defer a.close()

			in := domain.QueryInput{DatabaseID: g.databaseID(), StartCursor: cursor}
			if cmd.Flags().Changed("page-size") {
				in.PageSize = &pageSize
			}
			if in.Sorts, err = parseSorts(sorts); err != nil {
				return g.emit(cmd, a.reqID, false, nil, err)
			}
			if filter != "" {
				raw, err := readInline(filter)
				if err != nil {
					return g.emit(cmd, a.reqID, false, nil, perr.WithField(err, "filter"))
				}
				if err := json.Unmarshal(raw, &in.Filter); err != nil {
					return g.emit(cmd, a.reqID, false, nil,
						perr.WithField(perr.Wrap(err, perr.ErrorCodeJSON, "filter must be a JSON object"), "filter"))
				}
			}

			out, err := a.cases.QueryRecords(a.ctx, in)
			return g.emit(cmd, a.reqID, false, out, err)
		},
	}
	f := cmd.Flags()
	f.IntVar(&pageSize, "page-size", 5, "records per page, 1 to 100")
	f.StringArrayVar(&sorts, "sort", nil, "property:direction, repeatable")
	f.StringVar(&filter, "filter", "", "filter object as JSON or @file")
	f.StringVar(&cursor, "cursor", "", "start cursor from a previous page")
	return cmd
}

func newCreateCmd(g *globals) *cobra.Command {
	var (
		file  string
		props string
		rec   domain.CaseRecord
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a record from a JSON file, raw properties, or flags",
		Long: `Create a record in the database.

--file reads either a case record ({"title":...}) or a request body
({"properties":{...}} or {"record":{...}}). --properties takes a raw Notion
property map. Otherwise the record is built from --title and friends.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := g.open(cmd.Context())
			if err != nil {
				return g.emit(cmd, a.reqID, false, nil, err)
			}
			defer a.close()

			in, err := createInput(file, props, rec)
			if err != nil {
				return g.emit(cmd, a.reqID, false, nil, err)
			}
			in.DatabaseID = g.databaseID()

			out, err := a.cases.CreateRecord(a.ctx, in)
			return g.emit(cmd, a.reqID, true, out, err)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "", "JSON file with a case record or a request body")
	f.StringVar(&props, "properties", "", "raw property map as JSON or @file")
	f.StringVar(&rec.Title, "title", "", "case title")
	f.StringVar(&rec.CaseNumber, "case-number", "", "case number")
	f.StringVar(&rec.Court, "court", "", "court")
	f.StringVar(&rec.Judge, "judge", "", "judge")
	f.StringVar(&rec.Date, "date", "", "date, YYYY-MM-DD")
	f.StringVar(&rec.Status, "status", "", "status")
	f.StringVar(&rec.Parties, "parties", "", "parties")
	f.StringVar(&rec.Type, "type", "", "case type")
	f.StringVar(&rec.Summary, "summary", "", "summary")
	f.StringVar(&rec.Outcome, "outcome", "", "outcome")
	f.StringArrayVar(&rec.Tags, "tag", nil, "tag, repeatable")
	f.StringVar(&rec.Priority, "priority", "", "priority")
	return cmd
}

// createInput picks the first populated source: file, then raw properties, then flags
func createInput(file, props string, rec domain.CaseRecord) (domain.CreateInput, error) {
	switch {
	case file != "":
		raw, err := os.ReadFile(file)
		if err != nil {
			return domain.CreateInput{}, perr.WithField(perr.Wrap(err, perr.ErrorCodeValidation, "cannot read --file"), "file")
		}
		return decodeCreateFile(raw)
	case props != "":
		raw, err := readInline(props)
		if err != nil {
			return domain.CreateInput{}, perr.WithField(err, "properties")
		}
		var m map[string]json.RawMessage
		if err := json.Unmarshal(raw, &m); err != nil {
			return domain.CreateInput{}, perr.WithField(perr.Wrap(err, perr.ErrorCodeJSON, "properties must be a JSON object"), "properties")
		}
		return domain.CreateInput{Properties: m}, nil
	case rec.Title != "":
		return domain.CreateInput{Record: &rec}, nil
	default:
		return domain.CreateInput{}, perr.WithField(perr.Validationf("one of --file, --properties or --title is required"), "title")
	}
}

// decodeCreateFile accepts a request body or a bare case record
func decodeCreateFile(raw []byte) (domain.CreateInput, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return domain.CreateInput{}, perr.WithField(perr.Wrap(err, perr.ErrorCodeJSON, "file must hold a JSON object"), "file")
	}
	_, hasProps := probe["properties"]
	_, hasRecord := probe["record"]

	if hasProps || hasRecord {
		var in domain.CreateInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return domain.CreateInput{}, perr.WithField(perr.Wrap(err, perr.ErrorCodeJSON, "invalid request body"), "file")
		}
		return in, nil
	}

	var rec domain.CaseRecord
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return domain.CreateInput{}, perr.WithField(perr.Wrap(err, perr.ErrorCodeJSON, "invalid case record"), "file")
	}
	return domain.CreateInput{Record: &rec}, nil
}

// parseSorts reads property:direction pairs; direction defaults to descending
func parseSorts(in []string) ([]domain.Sort, error) {
	out := make([]domain.Sort, 0, len(in))
	for _, s := range in {
		name, dir, _ := strings.Cut(s, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, perr.WithField(perr.Validationf("sort %q has no property", s), "sort")
		}
		dir = strings.ToLower(strings.TrimSpace(dir))
		if dir == "" {
			dir = "descending"
		}
		out = append(out, domain.Sort{Property: name, Direction: dir})
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// readInline returns v, or the contents of the file when v starts with @
func readInline(v string) ([]byte, error) {
	if path, ok := strings.CutPrefix(v, "@"); ok {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeValidation, "cannot read "+path)
		}
		return b, nil
	}
	return []byte(v), nil
}
