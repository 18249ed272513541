package config

import (
	"fmt"
	"strings"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AdminPath      string   `mapstructure:"admin_path"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// GetAdminPath returns the admin mount prefix without a trailing slash.
// An empty value mounts the private API at the root.
func (s *ServerConfig) GetAdminPath() string {
	p := strings.TrimRight(s.AdminPath, "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	SMTPSSL      bool   `mapstructure:"smtp_ssl"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
	AdminEmail   string `mapstructure:"admin_email"`
	BulkWorkers  int    `mapstructure:"bulk_workers"`
}

type SessionConfig struct {
	CookieName   string `mapstructure:"cookie_name"`
	CookieSecret string `mapstructure:"cookie_secret"`
	Secure       bool   `mapstructure:"secure"`
	TTLHours     int    `mapstructure:"ttl_hours"`
}

func (s *SessionConfig) TTL() time.Duration {
	if s.TTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(s.TTLHours) * time.Hour
}

type LoginRateLimitConfig struct {
	Limit         int `mapstructure:"limit"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type ResetTokenConfig struct {
	Secret     string `mapstructure:"secret"`
	TTLMinutes int    `mapstructure:"ttl_minutes"`
}

type AuthConfig struct {
	BcryptCost  int                  `mapstructure:"bcrypt_cost"`
	Session     SessionConfig        `mapstructure:"session"`
	LoginLimit  LoginRateLimitConfig `mapstructure:"login_limit"`
	ContactRate LoginRateLimitConfig `mapstructure:"contact_limit"`
	ResetToken  ResetTokenConfig     `mapstructure:"reset_token"`
	PolicyModel string               `mapstructure:"policy_model"`
}

type StorageConfig struct {
	ScanIntervalHours     int     `mapstructure:"scan_interval_hours"`
	DefaultLimitMB        float64 `mapstructure:"default_limit_mb"`
	DefaultAlertThreshold int     `mapstructure:"default_alert_threshold"`
	AlertCooldownHours    int     `mapstructure:"alert_cooldown_hours"`
}

func (s *StorageConfig) ScanInterval() time.Duration {
	if s.ScanIntervalHours <= 0 {
		return 6 * time.Hour
	}
	return time.Duration(s.ScanIntervalHours) * time.Hour
}

func (s *StorageConfig) AlertCooldown() time.Duration {
	if s.AlertCooldownHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(s.AlertCooldownHours) * time.Hour
}

type UploadConfig struct {
	Dir          string `mapstructure:"dir"`
	PublicPrefix string `mapstructure:"public_prefix"`
	MaxBytes     int64  `mapstructure:"max_bytes"`
}

type InternalAPIConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type AppConfig struct {
	Name      string `mapstructure:"name"`
	Timezone  string `mapstructure:"timezone"`
	PortalURL string `mapstructure:"portal_url"`
	LoginURL  string `mapstructure:"login_url"`
}
