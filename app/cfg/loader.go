package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBHost     string `long:"db-host" env:"DB_HOST" default:"localhost" description:"Database host"`
	DBPort     string `long:"db-port" env:"DB_PORT" default:"5432" description:"Database port"`
	DBUser     string `long:"db-user" env:"DB_USER" default:"globe_user" description:"Database user"`
	DBPassword string `long:"db-password" env:"DB_PASSWORD" default:"globe_password" description:"Database password (required)" required:"true"`
	DBName     string `long:"db-name" env:"DB_NAME" default:"globe_news" description:"Database name"`

	// Application configuration
	Port           string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	SourcesFile    string `long:"sources-file" env:"SOURCES_FILE" description:"Optional YAML file overriding the built-in feed source list"`
	WorkerCount    int    `long:"worker-count" env:"WORKER_COUNT" default:"4" description:"Number of concurrent feed fetch workers"`
	FetchInterval  int    `long:"fetch-interval" env:"FETCH_INTERVAL" default:"1800" description:"Interval between fetch runs in seconds"`
	RunArticleCap  int    `long:"run-article-cap" env:"RUN_ARTICLE_CAP" default:"200" description:"Maximum new articles persisted per fetch run"`
	PerFeedLimit   int    `long:"per-feed-limit" env:"PER_FEED_LIMIT" default:"10" description:"Maximum entries processed per feed per run"`
	FeedTimeout    int    `long:"feed-timeout" env:"FEED_TIMEOUT" default:"45" description:"Feed fetch timeout in seconds"`
	ArticleTimeout int    `long:"article-timeout" env:"ARTICLE_TIMEOUT" default:"25" description:"Article content fetch timeout in seconds"`
	APIAccessKey   string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Africa/Kigali)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBHost:         raw.DBHost,
		DBPort:         raw.DBPort,
		DBUser:         raw.DBUser,
		DBPassword:     raw.DBPassword,
		DBName:         raw.DBName,
		Port:           raw.Port,
		SourcesFile:    raw.SourcesFile,
		WorkerCount:    raw.WorkerCount,
		FetchInterval:  raw.FetchInterval,
		RunArticleCap:  raw.RunArticleCap,
		PerFeedLimit:   raw.PerFeedLimit,
		FeedTimeout:    raw.FeedTimeout,
		ArticleTimeout: raw.ArticleTimeout,
		APIAccessKey:   raw.APIAccessKey,
		UserAgent:      raw.UserAgent,
		Timezone:       raw.Timezone,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
