package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Kakao    KakaoConfig    `yaml:"kakao" mapstructure:"kakao"`
	Naver    NaverConfig    `yaml:"naver" mapstructure:"naver"`
	Data     DataConfig     `yaml:"data" mapstructure:"data"`
	Collect  CollectConfig  `yaml:"collect" mapstructure:"collect"`
	Enrich   EnrichConfig   `yaml:"enrich" mapstructure:"enrich"`
	Classify ClassifyConfig `yaml:"classify" mapstructure:"classify"`
	Boundary BoundaryConfig `yaml:"boundary" mapstructure:"boundary"`
	Browse   BrowseConfig   `yaml:"browse" mapstructure:"browse"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// KakaoConfig holds Kakao Local API settings.
type KakaoConfig struct {
	RestKey      string `yaml:"rest_key" mapstructure:"rest_key"`
	BaseURL      string `yaml:"base_url" mapstructure:"base_url"`
	PlaceBaseURL string `yaml:"place_base_url" mapstructure:"place_base_url"`
}

// NaverConfig holds Naver search API credentials.
type NaverConfig struct {
	ClientID     string `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret"`
	BaseURL      string `yaml:"base_url" mapstructure:"base_url"`
	Display      int    `yaml:"display" mapstructure:"display"`
}

// DataConfig locates the snapshot files.
type DataConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// CollectConfig configures the collection pipeline.
type CollectConfig struct {
	Sources     []string `yaml:"sources" mapstructure:"sources"`
	RegionsFile string   `yaml:"regions_file" mapstructure:"regions_file"`
	Regions     []string `yaml:"regions" mapstructure:"regions"`
	Charset     string   `yaml:"charset" mapstructure:"charset"`
	MaxPages    int      `yaml:"max_pages" mapstructure:"max_pages"`
	Concurrency int      `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimit   float64  `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// EnrichConfig configures the detail-page enrichment pass.
type EnrichConfig struct {
	Files         []string `yaml:"files" mapstructure:"files"`
	BatchSize     int      `yaml:"batch_size" mapstructure:"batch_size"`
	SaveInterval  int      `yaml:"save_interval" mapstructure:"save_interval"`
	TimeoutSecs   int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	SettleMillis  int      `yaml:"settle_millis" mapstructure:"settle_millis"`
	Browser       bool     `yaml:"browser" mapstructure:"browser"`
	ChromePath    string   `yaml:"chrome_path" mapstructure:"chrome_path"`
	OverridesFile string   `yaml:"overrides_file" mapstructure:"overrides_file"`
}

// Timeout returns the per-navigation timeout.
func (c EnrichConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// ClassifyConfig holds keyword tables for suspect-group and denomination tagging.
type ClassifyConfig struct {
	CultKeywords  []string `yaml:"cult_keywords" mapstructure:"cult_keywords"`
	Denominations []string `yaml:"denominations" mapstructure:"denominations"`
}

// BoundaryConfig locates the 시군구 boundary shapefile.
type BoundaryConfig struct {
	Shapefile string `yaml:"shapefile" mapstructure:"shapefile"`
	NameField string `yaml:"name_field" mapstructure:"name_field"`
	CodeField string `yaml:"code_field" mapstructure:"code_field"`
	Charset   string `yaml:"charset" mapstructure:"charset"`
}

// BrowseConfig configures list and map derivation.
type BrowseConfig struct {
	PageSize         int `yaml:"page_size" mapstructure:"page_size"`
	ClusterThreshold int `yaml:"cluster_threshold" mapstructure:"cluster_threshold"`
	MaxMarkers       int `yaml:"max_markers" mapstructure:"max_markers"`
	CacheTTLMins     int `yaml:"cache_ttl_mins" mapstructure:"cache_ttl_mins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from .env.local, file and environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env.local")

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FAITHMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Secrets have no default; bind them so AutomaticEnv picks them up on Unmarshal.
	for _, key := range []string{"kakao.rest_key", "naver.client_id", "naver.client_secret"} {
		if err := v.BindEnv(key); err != nil {
			return nil, eris.Wrapf(err, "config: bind env %s", key)
		}
	}

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("kakao.base_url", "https://dapi.kakao.com")
	v.SetDefault("kakao.place_base_url", "https://place.map.kakao.com")
	v.SetDefault("naver.base_url", "https://openapi.naver.com")
	v.SetDefault("naver.display", 5)
	v.SetDefault("data.dir", "data")
	v.SetDefault("collect.sources", []string{"kakao"})
	v.SetDefault("collect.charset", "utf-8")
	v.SetDefault("collect.max_pages", 3)
	v.SetDefault("collect.concurrency", 20)
	v.SetDefault("collect.rate_limit", 20.0)
	v.SetDefault("enrich.files", []string{"churches.json", "catholics.json", "temples.json", "cults.json"})
	v.SetDefault("enrich.batch_size", 15)
	v.SetDefault("enrich.save_interval", 500)
	v.SetDefault("enrich.timeout_secs", 12)
	v.SetDefault("enrich.settle_millis", 1500)
	v.SetDefault("enrich.browser", true)
	v.SetDefault("boundary.name_field", "SIG_KOR_NM")
	v.SetDefault("boundary.code_field", "SIG_CD")
	v.SetDefault("boundary.charset", "euc-kr")
	v.SetDefault("browse.page_size", 20)
	v.SetDefault("browse.cluster_threshold", 500)
	v.SetDefault("browse.max_markers", 200)
	v.SetDefault("browse.cache_ttl_mins", 10)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the keys a command needs. Unknown sections validate only
// the always-required settings.
func (c *Config) Validate(section string) error {
	var missing []string

	if c.Data.Dir == "" {
		missing = append(missing, "data.dir is required")
	}

	switch section {
	case "collect":
		for _, src := range c.Collect.Sources {
			switch src {
			case "kakao":
				if c.Kakao.RestKey == "" {
					missing = append(missing, "kakao.rest_key is required")
				}
			case "naver":
				if c.Naver.ClientID == "" {
					missing = append(missing, "naver.client_id is required")
				}
				if c.Naver.ClientSecret == "" {
					missing = append(missing, "naver.client_secret is required")
				}
			}
		}
		if c.Collect.MaxPages <= 0 {
			missing = append(missing, "collect.max_pages must be positive")
		}
		if c.Collect.Concurrency <= 0 {
			missing = append(missing, "collect.concurrency must be positive")
		}
	case "enrich":
		if c.Enrich.BatchSize <= 0 {
			missing = append(missing, "enrich.batch_size must be positive")
		}
		if c.Enrich.TimeoutSecs <= 0 {
			missing = append(missing, "enrich.timeout_secs must be positive")
		}
	case "regions":
		if c.Boundary.Shapefile == "" {
			missing = append(missing, "boundary.shapefile is required")
		}
		if c.Boundary.NameField == "" {
			missing = append(missing, "boundary.name_field is required")
		}
	case "browse":
		if c.Browse.PageSize <= 0 {
			missing = append(missing, "browse.page_size must be positive")
		}
	}

	if len(missing) > 0 {
		return eris.Errorf("config: %s", strings.Join(missing, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
