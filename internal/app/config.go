package app

import (
	"github.com/planweave/planweave-backend/internal/pkg/parallel"
	"github.com/planweave/planweave-backend/internal/platform/logger"
	"github.com/planweave/planweave-backend/internal/utils"
)

type Config struct {
	Environment     string
	HTTPPort        string
	CatalogSeedPath string
	EnrichPoolSize  int
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Environment:     utils.GetEnv("APP_ENV", "development", log),
		HTTPPort:        utils.GetEnv("HTTP_PORT", "8080", log),
		CatalogSeedPath: utils.GetEnv("CATALOG_SEED_PATH", "configs/technologies.yaml", log),
		EnrichPoolSize:  utils.GetEnvAsInt("ENRICH_POOL_SIZE", parallel.DefaultSize(), log),
	}
}
