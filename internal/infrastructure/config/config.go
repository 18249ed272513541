package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	sharedConfig "github.com/cerberus-dev/cerberus/internal/shared/config"
)

type Config struct {
	Server      sharedConfig.ServerConfig      `mapstructure:"server"`
	Database    sharedConfig.DatabaseConfig    `mapstructure:"database"`
	Logger      sharedConfig.LoggerConfig      `mapstructure:"logger"`
	Redis       sharedConfig.RedisConfig       `mapstructure:"redis"`
	Email       sharedConfig.EmailConfig       `mapstructure:"email"`
	Auth        sharedConfig.AuthConfig        `mapstructure:"auth"`
	Storage     sharedConfig.StorageConfig     `mapstructure:"storage"`
	Uploads     sharedConfig.UploadConfig      `mapstructure:"uploads"`
	InternalAPI sharedConfig.InternalAPIConfig `mapstructure:"internal_api"`
	App         sharedConfig.AppConfig         `mapstructure:"app"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("CERBERUS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine, defaults and env cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Watch re-reads the logger section whenever the config file changes and
// hands it to onChange. Other sections require a restart.
func Watch(onChange func(event fsnotify.Event, cfg sharedConfig.LoggerConfig)) {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		var lc sharedConfig.LoggerConfig
		if err := viper.UnmarshalKey("logger", &lc); err != nil {
			return
		}
		appConfigMu.Lock()
		if appConfig != nil {
			appConfig.Logger = lc
		}
		appConfigMu.Unlock()
		onChange(e, lc)
	})
	viper.WatchConfig()
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.base_url", "http://localhost:3000")
	viper.SetDefault("server.admin_path", "")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "cerberus")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 50)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Email defaults
	viper.SetDefault("email.smtp_host", "smtp.hostinger.com")
	viper.SetDefault("email.smtp_port", 465)
	viper.SetDefault("email.smtp_user", "")
	viper.SetDefault("email.smtp_password", "")
	viper.SetDefault("email.smtp_ssl", true)
	viper.SetDefault("email.from_address", "noreply@cerberusdev.pro")
	viper.SetDefault("email.from_name", "Cerberus Dev")
	viper.SetDefault("email.admin_email", "")
	viper.SetDefault("email.bulk_workers", 4)

	// Auth defaults
	viper.SetDefault("auth.bcrypt_cost", 10)
	viper.SetDefault("auth.session.cookie_name", "cerberus_sid")
	viper.SetDefault("auth.session.cookie_secret", "change-me-in-production")
	viper.SetDefault("auth.session.secure", false)
	viper.SetDefault("auth.session.ttl_hours", 24)
	viper.SetDefault("auth.login_limit.limit", 10)
	viper.SetDefault("auth.login_limit.window_minutes", 5)
	viper.SetDefault("auth.contact_limit.limit", 5)
	viper.SetDefault("auth.contact_limit.window_minutes", 10)
	viper.SetDefault("auth.reset_token.secret", "change-me-in-production")
	viper.SetDefault("auth.reset_token.ttl_minutes", 30)
	viper.SetDefault("auth.policy_model", "")

	// Storage scanner defaults
	viper.SetDefault("storage.scan_interval_hours", 6)
	viper.SetDefault("storage.default_limit_mb", 5000)
	viper.SetDefault("storage.default_alert_threshold", 80)
	viper.SetDefault("storage.alert_cooldown_hours", 24)

	// Upload defaults
	viper.SetDefault("uploads.dir", "./public/uploads")
	viper.SetDefault("uploads.public_prefix", "/uploads")
	viper.SetDefault("uploads.max_bytes", 10*1024*1024)

	viper.SetDefault("internal_api.api_key", "")

	// App defaults
	viper.SetDefault("app.name", "Cerberus Dev")
	viper.SetDefault("app.timezone", "America/Mexico_City")
	viper.SetDefault("app.portal_url", "http://localhost:3000/cliente")
	viper.SetDefault("app.login_url", "http://localhost:3000/login")
}
