// Package cli is the caserelay command line: the same cases and export
// services the API serves, run once against the configured database
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"caserelay/internal/adapters/courtlistener"
	"caserelay/internal/adapters/credential"
	"caserelay/internal/adapters/notion"
	"caserelay/internal/core/version"
	"caserelay/internal/modkit"
	"caserelay/internal/platform/config"
	pnet "caserelay/internal/platform/net"
)

// globals are the persistent flags; each one overrides its env counterpart
type globals struct {
	token     string
	database  string
	notionURL string
	timeout   time.Duration
	cache     string
	redisAddr string
	clKey     string
	clURL     string
	compact   bool
}

// errReported marks a failure whose envelope was already written to stdout
var errReported = errors.New("reported")

// NewRootCommand builds the caserelay command tree
func NewRootCommand() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   "caserelay",
		Short: "caserelay - Notion legal case database relay",
		Long: `caserelay talks to a Notion legal case database.

Every command prints one JSON envelope: {"error":false,"data":...} on success
or {"error":true,"code":...,"message":...} on failure. The exit code is 1 on failure.

Settings come from the environment (NOTION_*, CASES_*, COURTLISTENER_*);
flags take precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&g.token, "token", "", "Notion integration token (overrides NOTION_API_TOKEN and NOTION_CREDENTIAL_SOURCE)")
	pf.StringVarP(&g.database, "database", "d", "", "database id, 32 hex characters (default $NOTION_DATABASE_ID)")
	pf.StringVar(&g.notionURL, "notion-url", "", "Notion API base URL (default $NOTION_BASE_URL)")
	pf.DurationVar(&g.timeout, "timeout", 0, "per request timeout (default $NOTION_TIMEOUT)")
	pf.StringVar(&g.cache, "cache", "", "data source cache: memory or redis (default $CASES_CACHE)")
	pf.StringVar(&g.redisAddr, "redis-addr", "", "redis address for --cache=redis (default $CASES_REDIS_ADDR)")
	pf.StringVar(&g.clKey, "courtlistener-key", "", "CourtListener API key (default $COURTLISTENER_API_KEY)")
	pf.StringVar(&g.clURL, "courtlistener-url", "", "CourtListener API base URL (default $COURTLISTENER_BASE_URL)")
	pf.BoolVar(&g.compact, "compact", false, "print the envelope on one line")

	cmd.AddCommand(
		newTestConnectionCmd(g),
		newQueryCmd(g),
		newCreateCmd(g),
		newExportCmd(g),
		newCacheCmd(g),
		newVersionCmd(g),
	)
	return cmd
}

func newVersionCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build info and the Notion-Version header this build sends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.emit(cmd, "", false, version.Info().WithNotion(notion.NewClient(modkit.NotionOptions(config.New()), nil).Version()), nil)
		},
	}
}

// Execute runs the command tree and returns the process exit code
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(stderr, "error:", err)
		}
		return 1
	}
	return 0
}

// databaseID resolves the target database from the flag or NOTION_DATABASE_ID
func (g *globals) databaseID() string {
	if g.database != "" {
		return g.database
	}
	return config.New().MayString("NOTION_DATABASE_ID", "")
}

// deps builds the shared deps from env and applies flag overrides
func (g *globals) deps(ctx context.Context) (modkit.Deps, func(), error) {
	root := config.New()
	d, closeFn, err := modkit.Wire(ctx, root)
	if err != nil {
		return d, closeFn, err
	}

	if g.token != "" {
		d.Creds = credential.Static(g.token)
	}
	no := modkit.NotionOptions(root)
	if g.notionURL != "" {
		no.BaseURL = g.notionURL
	}
	if g.timeout > 0 {
		no.Timeout = g.timeout
	}
	d.Notion = notion.NewClient(no, d.Creds)

	if g.redisAddr != "" {
		cc := root.Prefix("CASES_")
		rc := redis.NewClient(&redis.Options{
			Addr:     g.redisAddr,
			Password: cc.MayString("REDIS_PASSWORD", ""),
			DB:       cc.MayInt("REDIS_DB", 0),
		})
		prev := closeFn
		if d.Redis != nil {
			prev()
			prev = func() {}
		}
		d.Redis = rc
		closeFn = func() {
			prev()
			_ = rc.Close()
		}
	}

	if g.clKey != "" || g.clURL != "" {
		cl := root.Prefix("COURTLISTENER_")
		key := g.clKey
		if key == "" {
			key = cl.MayString("API_KEY", "")
		}
		base := g.clURL
		if base == "" {
			base = cl.MayString("BASE_URL", "")
		}
		d.CourtListener = courtlistener.NewClient(courtlistener.Options{BaseURL: base, APIKey: key})
	}
	return d, closeFn, nil
}

// emit writes the envelope for (data, err) and maps failure to errReported
func (g *globals) emit(cmd *cobra.Command, reqID string, created bool, data any, err error) error {
	var w pnet.Wire
	switch {
	case err != nil:
		_, w = pnet.Error(err, reqID)
	case created:
		_, w = pnet.Created(data, reqID)
	default:
		_, w = pnet.OK(data, reqID)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if !g.compact {
		enc.SetIndent("", "  ")
	}
	if encErr := enc.Encode(w); encErr != nil {
		return encErr
	}
	if err != nil {
		return errReported
	}
	return nil
}
