package modkit

import (
	"context"

	"caserelay/internal/adapters/courtlistener"
	"caserelay/internal/adapters/credential"
	"caserelay/internal/adapters/notion"
	"caserelay/internal/platform/config"
	"caserelay/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Wire builds Deps from the root config
// the returned close func releases the redis client when one was opened
func Wire(ctx context.Context, root config.Conf) (Deps, func(), error) {
	creds, err := credential.FromConfig(ctx, root)
	if err != nil {
		return Deps{}, func() {}, err
	}
	// a bearer on the request context wins over the configured source
	creds = credential.Passthrough{Next: creds}

	d := Deps{
		Log:    *logger.Get(),
		Cfg:    root,
		Creds:  creds,
		Notion: notion.NewClient(NotionOptions(root), creds),
	}

	closer := func() {}
	cc := root.Prefix("CASES_")
	if addr := cc.MayString("REDIS_ADDR", ""); addr != "" {
		rc := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cc.MayString("REDIS_PASSWORD", ""),
			DB:       cc.MayInt("REDIS_DB", 0),
		})
		d.Redis = rc
		closer = func() {
			if err := rc.Close(); err != nil {
				logger.Named("wire").Warn().Err(err).Msg("redis close failed")
			}
		}
	}

	cl := root.Prefix("COURTLISTENER_")
	if key := cl.MayString("API_KEY", ""); key != "" {
		d.CourtListener = courtlistener.NewClient(courtlistener.Options{
			BaseURL: cl.MayString("BASE_URL", ""),
			APIKey:  key,
			Timeout: cl.MayDuration("TIMEOUT", 0),
		})
	}
	return d, closer, nil
}

// NotionOptions reads NOTION_* client settings
// NOTION_RATE_PER_SEC=0 turns client side pacing off
func NotionOptions(root config.Conf) notion.Options {
	n := root.Prefix("NOTION_")
	rps := n.MayFloat64("RATE_PER_SEC", notion.DefaultRatePerSec)
	if rps <= 0 {
		rps = -1
	}
	return notion.Options{
		BaseURL:    n.MayString("BASE_URL", ""),
		Version:    n.MayString("VERSION", ""),
		UserAgent:  n.MayString("USER_AGENT", ""),
		Timeout:    n.MayDuration("TIMEOUT", 0),
		RatePerSec: rps,
	}
}
