package cli

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"caserelay/internal/core/dbid"
	perr "caserelay/internal/platform/errors"
	exportdomain "caserelay/internal/services/export/domain"
)

// exported is what the export command prints
type exported struct {
	ExportID     string               `json:"export_id"`
	Count        int                  `json:"count"`
	Path         string               `json:"path"`
	SummaryPath  string               `json:"summary_path,omitempty"`
	DataSourceID string               `json:"data_source_id"`
	Summary      exportdomain.Summary `json:"summary"`
}

func newExportCmd(g *globals) *cobra.Command {
	var (
		o          exportdomain.Options
		out        string
		summaryOut string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every record of the database to a JSON file",
		Long: `Export every record of the database as one JSON document.

With --enrich and a CourtListener key, each named case is searched and the
hits are stored next to the case. --summary-out writes the aggregate block
to its own file; pass an empty value to skip it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := g.open(cmd.Context())
			if err != nil {
				return g.emit(cmd, a.reqID, false, nil, err)
			}
			defer a.close()

			doc, err := a.export.Export(a.ctx, g.databaseID(), o)
			if err != nil {
				return g.emit(cmd, a.reqID, false, nil, err)
			}
			if err := writeJSON(out, doc); err != nil {
				return g.emit(cmd, a.reqID, false, nil, perr.WithField(err, "out"))
			}
			if summaryOut != "" {
				if err := writeJSON(summaryOut, doc.Summary); err != nil {
					return g.emit(cmd, a.reqID, false, nil, perr.WithField(err, "summary-out"))
				}
			}
			return g.emit(cmd, a.reqID, false, exported{
				ExportID:     doc.ExportID,
				Count:        doc.Count,
				Path:         out,
				SummaryPath:  summaryOut,
				DataSourceID: doc.DataSourceID,
				Summary:      doc.Summary,
			}, nil)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&o.Enrich, "enrich", false, "search CourtListener for each named case")
	f.IntVar(&o.SearchLimit, "search-limit", 0, "hits kept per case (default 5, max 20)")
	f.IntVar(&o.MaxRecords, "limit", 0, "stop after this many records, 0 exports all")
	f.StringVarP(&out, "out", "o", filepath.Join("data", "notion-data.json"), "document path")
	f.StringVar(&summaryOut, "summary-out", filepath.Join("data", "summary.json"), "summary path, empty to skip")
	return cmd
}

func newCacheCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the data source cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "forget",
		Short: "Drop the cached data source of the database so the next call resolves it again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := g.open(cmd.Context())
			if err != nil {
				return g.emit(cmd, a.reqID, false, nil, err)
			}
			defer a.close()

			id, err := dbid.Normalize(g.databaseID())
			if err != nil {
				return g.emit(cmd, a.reqID, false, nil, err)
			}
			err = a.cases.Forget(a.ctx, id)
			return g.emit(cmd, a.reqID, false, map[string]string{"database_id": id, "forgotten": "true"}, err)
		},
	})
	return cmd
}

// writeJSON writes v indented, creating parent directories
func writeJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return perr.Wrap(err, perr.ErrorCodeUnknown, "cannot create "+dir)
		}
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "cannot encode export")
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "cannot write "+path)
	}
	return nil
}
