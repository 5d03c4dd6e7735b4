package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type App struct {
	Port        string `mapstructure:"port"`
	Env         string `mapstructure:"env"`
	FrontendURL string `mapstructure:"frontend_url"`
	StaticDir   string `mapstructure:"static_dir"`
	BodyLimitMB int    `mapstructure:"body_limit_mb"`
}

type Postgres struct {
	URI          string `mapstructure:"uri"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type Redis struct {
	URI string `mapstructure:"uri"`
}

type Buckets struct {
	Images     string `mapstructure:"images"`
	Videos     string `mapstructure:"videos"`
	Albums     string `mapstructure:"albums"`
	Thumbnails string `mapstructure:"thumbnails"`
}

type R2 struct {
	AccountID     string  `mapstructure:"account_id"`
	AccessKey     string  `mapstructure:"access_key"`
	SecretKey     string  `mapstructure:"secret_key"`
	Endpoint      string  `mapstructure:"endpoint"`
	PublicBaseURL string  `mapstructure:"public_base_url"`
	Buckets       Buckets `mapstructure:"buckets"`
}

type Auth struct {
	AdminEmail      string `mapstructure:"admin_email"`
	AdminPassword   string `mapstructure:"admin_password"`
	SecretKey       string `mapstructure:"secret_key"`
	CookieName      string `mapstructure:"cookie_name"`
	SessionTTLHours int    `mapstructure:"session_ttl_hours"`
	LoginAttempts   int    `mapstructure:"login_attempts"`
	LoginWindowMin  int    `mapstructure:"login_window_minutes"`
}

type Upload struct {
	ImageMaxMB      int `mapstructure:"image_max_mb"`
	VideoMaxMB      int `mapstructure:"video_max_mb"`
	AlbumMaxMB      int `mapstructure:"album_max_mb"`
	BulkConcurrency int `mapstructure:"bulk_concurrency"`
}

type Contact struct {
	RelayURL        string  `mapstructure:"relay_url"`
	WhatsAppNumber  string  `mapstructure:"whatsapp_number"`
	StudioAddress   string  `mapstructure:"studio_address"`
	RateLimitPerMin float64 `mapstructure:"rate_limit_per_minute"`
	RateLimitBurst  int     `mapstructure:"rate_limit_burst"`
}

type Config struct {
	App                  App      `mapstructure:"app"`
	Postgres             Postgres `mapstructure:"postgres"`
	Redis                Redis    `mapstructure:"redis"`
	R2                   R2       `mapstructure:"r2"`
	Auth                 Auth     `mapstructure:"auth"`
	Upload               Upload   `mapstructure:"upload"`
	Contact              Contact  `mapstructure:"contact"`
	RemoteTimeoutSeconds int      `mapstructure:"remote_timeout_seconds"`

	RemoteTimeout time.Duration `mapstructure:"-"`
	SessionTTL    time.Duration `mapstructure:"-"`
	LoginWindow   time.Duration `mapstructure:"-"`
}

var defaults = map[string]any{
	"app.port":                      "8080",
	"app.env":                       "development",
	"app.frontend_url":              "http://localhost:5173",
	"app.static_dir":                "./web/dist",
	"app.body_limit_mb":             512,
	"postgres.uri":                  "",
	"postgres.max_open_conns":       10,
	"redis.uri":                     "",
	"r2.account_id":                 "",
	"r2.access_key":                 "",
	"r2.secret_key":                 "",
	"r2.endpoint":                   "",
	"r2.public_base_url":            "",
	"r2.buckets.images":             "gallery-images",
	"r2.buckets.videos":             "gallery-videos",
	"r2.buckets.albums":             "gallery-albums",
	"r2.buckets.thumbnails":         "gallery-thumbnails",
	"auth.admin_email":              "admin@picturesmilestudio.com",
	"auth.admin_password":           "admin123",
	"auth.secret_key":               "",
	"auth.cookie_name":              "studio_session",
	"auth.session_ttl_hours":        12,
	"auth.login_attempts":           10,
	"auth.login_window_minutes":     15,
	"upload.image_max_mb":           5,
	"upload.video_max_mb":           100,
	"upload.album_max_mb":           50,
	"upload.bulk_concurrency":       1,
	"contact.relay_url":             "https://formspree.io/f/your-form-id",
	"contact.whatsapp_number":       "917682991297",
	"contact.studio_address":        "Picture Smile Studio, Kalla, Deogarh, Odisha, India 768110",
	"contact.rate_limit_per_minute": 5,
	"contact.rate_limit_burst":      3,
	"remote_timeout_seconds":        30,
}

// LoadConfig reads an optional .env file, an optional YAML file named by
// CONFIG_FILE, then the environment. Keys map to upper-case env names with
// dots replaced by underscores (r2.account_id -> R2_ACCOUNT_ID).
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("no %s file loaded: %v", envFile, err)
		}
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Auth.SecretKey == "" {
		if cfg.IsProduction() {
			return nil, errors.New("AUTH_SECRET_KEY is required")
		}
		log.Println("AUTH_SECRET_KEY not set, using an insecure development key")
		cfg.Auth.SecretKey = "dev-secret-change-me"
	}
	if cfg.Upload.BulkConcurrency < 1 {
		cfg.Upload.BulkConcurrency = 1
	}
	if cfg.RemoteTimeoutSeconds <= 0 {
		cfg.RemoteTimeoutSeconds = 30
	}

	cfg.RemoteTimeout = time.Duration(cfg.RemoteTimeoutSeconds) * time.Second
	cfg.SessionTTL = time.Duration(cfg.Auth.SessionTTLHours) * time.Hour
	cfg.LoginWindow = time.Duration(cfg.Auth.LoginWindowMin) * time.Minute

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
