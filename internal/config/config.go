package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	AI struct {
		BaseURL  string        `mapstructure:"base_url"`
		Language string        `mapstructure:"language"`
		Timeout  time.Duration `mapstructure:"timeout"`
		APIKey   string        `mapstructure:"api_key"`
	} `mapstructure:"ai"`
	Storage struct {
		Dir   string `mapstructure:"dir"`
		MinIO struct {
			Endpoint  string `mapstructure:"endpoint"`
			AccessKey string `mapstructure:"access_key"`
			SecretKey string `mapstructure:"secret_key"`
			Bucket    string `mapstructure:"bucket"`
			UseSSL    bool   `mapstructure:"use_ssl"`
		} `mapstructure:"minio"`
	} `mapstructure:"storage"`
	Chrome struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"chrome"`
}

// Notes collects non-fatal problems hit while loading, for the caller to log
// once a logger exists.
type Notes []string

// LoadConfig reads an optional .env and config.yaml from dir, then applies
// environment overrides.
func LoadConfig(dir string) (cfg Config, notes Notes, err error) {
	if dir == "" {
		dir = "."
	}
	if lerr := godotenv.Load(dir + "/.env"); lerr != nil {
		notes = append(notes, ".env file not found, using environment only")
	}

	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if rerr := v.ReadInConfig(); rerr != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(rerr, &nf) {
			return cfg, notes, rerr
		}
		notes = append(notes, "config.yaml not found, using defaults and environment")
	}

	v.SetDefault("app.port", "3000")
	v.SetDefault("app.env", "development")
	v.SetDefault("ai.base_url", "http://ai-service:8000")
	v.SetDefault("ai.language", "English")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("storage.dir", "resume-data/generated")
	v.SetDefault("storage.minio.bucket", "resumes")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("app.port", "PORT", "APP_PORT")
	_ = v.BindEnv("app.env", "APP_ENV")
	_ = v.BindEnv("db.dsn", "DB_DSN", "EXPORTS_DATABASE_URL")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("ai.base_url", "AI_SERVICE_URL")
	_ = v.BindEnv("ai.language", "AI_LANGUAGE")
	_ = v.BindEnv("ai.timeout", "AI_TIMEOUT")
	_ = v.BindEnv("ai.api_key", "AI_API_KEY")
	_ = v.BindEnv("storage.dir", "STORAGE_DIR")
	_ = v.BindEnv("storage.minio.endpoint", "MINIO_ENDPOINT")
	_ = v.BindEnv("storage.minio.access_key", "MINIO_ACCESS_KEY")
	_ = v.BindEnv("storage.minio.secret_key", "MINIO_SECRET_KEY")
	_ = v.BindEnv("storage.minio.bucket", "MINIO_BUCKET")
	_ = v.BindEnv("storage.minio.use_ssl", "MINIO_USE_SSL")
	_ = v.BindEnv("chrome.path", "CHROME_PATH")

	err = v.Unmarshal(&cfg)
	return cfg, notes, err
}
