package modkit

import (
	"caserelay/internal/adapters/courtlistener"
	"caserelay/internal/adapters/credential"
	"caserelay/internal/adapters/notion"
	"caserelay/internal/platform/config"
	"caserelay/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Deps is what Wire builds and every module constructor receives.
// A zero Deps is valid for tests that only mount routes.
type Deps struct {
	Log    logger.Logger
	Cfg    config.Conf
	Creds  credential.Provider
	Notion notion.Dispatcher

	// nil keeps data source ids in process memory
	Redis redis.UniversalClient

	// nil or disabled means exports are not enriched
	CourtListener *courtlistener.Client
}
