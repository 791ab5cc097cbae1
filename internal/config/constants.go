package config

import "time"

const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultEnvironment = "dev"
	DefaultLogDir      = "logs"
	DefaultDBName      = "lootvault"

	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultTradeExpiryInterval    = 15 * time.Minute
	DefaultMissionRefreshInterval = time.Hour
)

// Paths to JSON configuration files synced at startup
const (
	ConfigPathCatalog = "configs/catalog.json"
)
