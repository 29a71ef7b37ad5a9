package config

import (
	"os"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	Port            string
	DBPath          string
	JWTSecret       string
	RegionsPath     string        // optional JSON file with geofence polygons
	CliqueNodeLimit int           // max nodes per band subgraph before the band is skipped
	CliqueTimeout   time.Duration // wall-clock budget per band
}

// Load 加载配置
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/affinity/affinity.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	nodeLimit := 500
	if v := os.Getenv("CLIQUE_NODE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			nodeLimit = n
		}
	}

	cliqueTimeout := 30 * time.Second
	if v := os.Getenv("CLIQUE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cliqueTimeout = d
		}
	}

	return &Config{
		Port:            port,
		DBPath:          dbPath,
		JWTSecret:       jwtSecret,
		RegionsPath:     os.Getenv("REGIONS_PATH"),
		CliqueNodeLimit: nodeLimit,
		CliqueTimeout:   cliqueTimeout,
	}
}
