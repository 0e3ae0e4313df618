// Package config loads modgraph settings from defaults, an optional
// .modgraph.toml, a .env file and MODGRAPH_* environment variables.
// Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/matzehuels/modgraph/pkg/cache"
	apperr "github.com/matzehuels/modgraph/pkg/errors"
	"github.com/matzehuels/modgraph/pkg/pipeline"
	"github.com/matzehuels/modgraph/pkg/render/nodelink"
)

// FileName is the base name of the optional config file.
const FileName = ".modgraph"

// EnvPrefix prefixes environment overrides, e.g. MODGRAPH_RANKDIR.
const EnvPrefix = "MODGRAPH"

// CacheConfig selects the artifact cache backend. Caching is off unless Dir
// or RedisURL is set.
type CacheConfig struct {
	Dir      string        `mapstructure:"dir"`
	TTL      time.Duration `mapstructure:"ttl"`
	RedisURL string        `mapstructure:"redis_url"`
	Prefix   string        `mapstructure:"prefix"`
}

// Config holds all runtime configuration for one invocation.
type Config struct {
	Input       string      `mapstructure:"input"`
	Programme   string      `mapstructure:"programme"`
	RankDir     string      `mapstructure:"rankdir"`
	RankSep     float64     `mapstructure:"ranksep"`
	Format      string      `mapstructure:"format"`
	YearColours []string    `mapstructure:"year_colours"`
	Strict      bool        `mapstructure:"strict"`
	Cache       CacheConfig `mapstructure:"cache"`
}

// Load reads configuration. An explicit path must exist; otherwise
// .modgraph.toml is looked up in the working directory and then in
// $XDG_CONFIG_HOME/modgraph, and its absence is not an error.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "modgraph"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, apperr.Wrap(apperr.ErrCodeConfigLoad, err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, apperr.Wrap(apperr.ErrCodeConfigLoad, err, "decode config")
	}
	cfg.RankDir = strings.ToUpper(cfg.RankDir)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input", pipeline.DefaultInput)
	v.SetDefault("programme", "")
	v.SetDefault("rankdir", pipeline.DefaultRankDir)
	v.SetDefault("ranksep", pipeline.DefaultRankSep)
	v.SetDefault("format", string(pipeline.DefaultFormat))
	v.SetDefault("year_colours", nodelink.DefaultYearColours)
	v.SetDefault("strict", false)
	v.SetDefault("cache.dir", "")
	v.SetDefault("cache.ttl", cache.TTLArtifact)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.prefix", "modgraph:")
}
