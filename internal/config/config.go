// Package config loads runtime startup configuration from YAML.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 2334
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "wellspring"
	defaultDBCharset  = "utf8mb4"
	defaultBackupDir  = "./backups"
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	Database       DatabaseConfig `yaml:"database"`
	RedisURL       string         `yaml:"redis_url"`
	JWTSecret      string         `yaml:"jwt_secret"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	AppVersion     string         `yaml:"app_version"`
	BuildInfo      string         `yaml:"build_info"`
	Backup         BackupConfig   `yaml:"backup"`
	S3             S3Config       `yaml:"s3"`
}

type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
}

// BackupConfig controls local backup artifacts and the auto-backup job.
type BackupConfig struct {
	Dir             string `yaml:"dir"`
	AutoEnable      bool   `yaml:"auto_enable"`
	IntervalMinutes int    `yaml:"interval_minutes"`
	KeepCount       int    `yaml:"keep_count"`
	S3PathTemplate  string `yaml:"s3_path_template"`
}

// S3Config carries credentials for off-site artifact upload.
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PathStyleAccess bool   `yaml:"path_style_access"`
}

// Load reads the YAML config at path and applies defaults. A missing file is
// not an error: the zero config plus defaults is a runnable development setup.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	if path == "" {
		path = DefaultConfigPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Fall through to defaults.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Port <= 0 {
		c.Port = defaultPort
	}
	if c.Env == "" {
		c.Env = defaultEnv
	}
	if c.Database.Host == "" {
		c.Database.Host = defaultDBHost
	}
	if c.Database.Port <= 0 {
		c.Database.Port = defaultDBPort
	}
	if c.Database.User == "" {
		c.Database.User = defaultDBUser
	}
	if c.Database.Password == "" {
		c.Database.Password = defaultDBPassword
	}
	if c.Database.Name == "" {
		c.Database.Name = defaultDBName
	}
	if c.Database.Charset == "" {
		c.Database.Charset = defaultDBCharset
	}
	if c.Backup.Dir == "" {
		c.Backup.Dir = defaultBackupDir
	}
	if c.Backup.IntervalMinutes <= 0 {
		c.Backup.IntervalMinutes = 12 * 60
	}
	if c.Backup.KeepCount <= 0 {
		c.Backup.KeepCount = 30
	}
}

// DSN returns the MySQL DSN, built from parts unless given verbatim.
func (c *AppConfig) DSN() string {
	if dsn := strings.TrimSpace(c.Database.DSN); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.Database.User, c.Database.Password,
		c.Database.Host, c.Database.Port,
		c.Database.Name, c.Database.Charset)
}

// IsProd reports whether the server runs in production mode.
func (c *AppConfig) IsProd() bool {
	return strings.EqualFold(c.Env, "production")
}
