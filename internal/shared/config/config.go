package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"resume-site/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port             string
	Env              string
	CORSAllowOrigin  []string
	DataSource       string
	DataFile         string
	DatabaseURL      string
	ProfileSlug      string
	PDFPageSize      string
	ObjectStoreType  string
	LocalStoreDir    string
	AWSRegion        string
	S3Bucket         string
	S3Prefix         string
	ExportRatePerSec float64
	ExportBurst      int
}

const (
	DataSourceEmbedded = "embedded"
	DataSourceFile     = "file"
	DataSourcePostgres = "postgres"
)

// Load reads configuration from the environment, optional .env files and an
// optional resume-site.yaml in the working directory.
func Load() Config {
	cfg, err := LoadFile("")
	if err != nil {
		telemetry.Warn("config.file_unreadable", map[string]any{"err": err.Error()})
	}
	return cfg
}

// LoadFile is Load with an explicit config file. An empty path searches the
// working directory for resume-site.yaml.
func LoadFile(path string) (Config, error) {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env")
	_ = godotenv.Load("cmd/.env")

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var readErr error
	if path != "" {
		v.SetConfigFile(path)
		readErr = v.ReadInConfig()
	} else {
		v.SetConfigName("resume-site")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				readErr = err
			}
		}
	}

	env := normalizeEnv(v.GetString("ENV"))
	cfg := Config{
		Port:             v.GetString("PORT"),
		Env:              env,
		CORSAllowOrigin:  splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		DataSource:       normalizeDataSource(v.GetString("DATA_SOURCE")),
		DataFile:         v.GetString("DATA_FILE"),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		ProfileSlug:      v.GetString("PROFILE_SLUG"),
		PDFPageSize:      v.GetString("PDF_PAGE_SIZE"),
		ObjectStoreType:  normalizeStoreType(v.GetString("OBJECT_STORE")),
		LocalStoreDir:    v.GetString("LOCAL_STORE_DIR"),
		AWSRegion:        v.GetString("AWS_REGION"),
		S3Bucket:         v.GetString("S3_BUCKET"),
		S3Prefix:         v.GetString("S3_PREFIX"),
		ExportRatePerSec: v.GetFloat64("EXPORT_RATE_PER_SEC"),
		ExportBurst:      v.GetInt("EXPORT_BURST"),
	}

	if cfg.DataSource == DataSourcePostgres && cfg.DatabaseURL == "" {
		telemetry.Warn("config.database_url_missing", map[string]any{"data_source": cfg.DataSource})
	}
	return cfg, readErr
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "dev")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000")
	v.SetDefault("DATA_SOURCE", DataSourceEmbedded)
	v.SetDefault("DATA_FILE", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("PROFILE_SLUG", "default")
	v.SetDefault("PDF_PAGE_SIZE", "A4")
	v.SetDefault("OBJECT_STORE", "local")
	v.SetDefault("LOCAL_STORE_DIR", "./data")
	v.SetDefault("AWS_REGION", "")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_PREFIX", "")
	v.SetDefault("EXPORT_RATE_PER_SEC", 2.0)
	v.SetDefault("EXPORT_BURST", 10)
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeDataSource(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "file", "yaml", "json":
		return DataSourceFile
	case "postgres", "pg", "db":
		return DataSourcePostgres
	default:
		return DataSourceEmbedded
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
