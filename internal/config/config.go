package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	DB     DBConfig
	Seller SellerConfig
	Backup BackupConfig
	CORS   CORSConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// StoreConfig selects and configures the register store.
type StoreConfig struct {
	// Driver is "workbook" or "postgres".
	Driver string `mapstructure:"driver"`
	// WorkbookPath is the .xlsx file used by the workbook driver.
	WorkbookPath string `mapstructure:"workbook_path"`
}

// DBConfig holds PostgreSQL connection settings for the postgres driver.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// SellerConfig identifies the seller the register belongs to. The seller
// state is the default used to classify supplies when a request omits it.
type SellerConfig struct {
	Name  string `mapstructure:"name"`
	GSTIN string `mapstructure:"gstin"`
	State string `mapstructure:"state"`
}

// BackupConfig holds S3 snapshot backup settings.
type BackupConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the
// BRICKLEDGER_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BRICKLEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Store defaults
	v.SetDefault("store.driver", "workbook")
	v.SetDefault("store.workbook_path", "Flyash_Bricks_Daily_Invoice_Register.xlsx")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "brickledger")
	v.SetDefault("db.password", "brickledger_secret")
	v.SetDefault("db.name", "brickledger_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Seller defaults
	v.SetDefault("seller.name", "")
	v.SetDefault("seller.gstin", "")
	v.SetDefault("seller.state", "")

	// Backup defaults
	v.SetDefault("backup.enabled", false)
	v.SetDefault("backup.region", "ap-south-1")
	v.SetDefault("backup.bucket", "")
	v.SetDefault("backup.endpoint", "")
	v.SetDefault("backup.access_key", "")
	v.SetDefault("backup.secret_key", "")
	v.SetDefault("backup.prefix", "register-backups")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "BRICKLEDGER_SERVER_PORT",
		"server.read_timeout":  "BRICKLEDGER_SERVER_READ_TIMEOUT",
		"server.write_timeout": "BRICKLEDGER_SERVER_WRITE_TIMEOUT",
		"server.environment":   "BRICKLEDGER_SERVER_ENVIRONMENT",
		"store.driver":         "BRICKLEDGER_STORE_DRIVER",
		"store.workbook_path":  "BRICKLEDGER_STORE_WORKBOOK_PATH",
		"db.host":              "BRICKLEDGER_DB_HOST",
		"db.port":              "BRICKLEDGER_DB_PORT",
		"db.user":              "BRICKLEDGER_DB_USER",
		"db.password":          "BRICKLEDGER_DB_PASSWORD",
		"db.name":              "BRICKLEDGER_DB_NAME",
		"db.sslmode":           "BRICKLEDGER_DB_SSLMODE",
		"db.max_open":          "BRICKLEDGER_DB_MAX_OPEN",
		"db.max_idle":          "BRICKLEDGER_DB_MAX_IDLE",
		"seller.name":          "BRICKLEDGER_SELLER_NAME",
		"seller.gstin":         "BRICKLEDGER_SELLER_GSTIN",
		"seller.state":         "BRICKLEDGER_SELLER_STATE",
		"backup.enabled":       "BRICKLEDGER_BACKUP_ENABLED",
		"backup.region":        "BRICKLEDGER_BACKUP_REGION",
		"backup.bucket":        "BRICKLEDGER_BACKUP_BUCKET",
		"backup.endpoint":      "BRICKLEDGER_BACKUP_ENDPOINT",
		"backup.access_key":    "BRICKLEDGER_BACKUP_ACCESS_KEY",
		"backup.secret_key":    "BRICKLEDGER_BACKUP_SECRET_KEY",
		"backup.prefix":        "BRICKLEDGER_BACKUP_PREFIX",
		"cors.allowed_origins": "BRICKLEDGER_CORS_ALLOWED_ORIGINS",
		"log.level":            "BRICKLEDGER_LOG_LEVEL",
		"log.format":           "BRICKLEDGER_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BRICKLEDGER_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BRICKLEDGER_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Store = StoreConfig{
		Driver:       v.GetString("store.driver"),
		WorkbookPath: v.GetString("store.workbook_path"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Seller = SellerConfig{
		Name:  v.GetString("seller.name"),
		GSTIN: v.GetString("seller.gstin"),
		State: v.GetString("seller.state"),
	}
	cfg.Backup = BackupConfig{
		Enabled:   v.GetBool("backup.enabled"),
		Region:    v.GetString("backup.region"),
		Bucket:    v.GetString("backup.bucket"),
		Endpoint:  v.GetString("backup.endpoint"),
		AccessKey: v.GetString("backup.access_key"),
		SecretKey: v.GetString("backup.secret_key"),
		Prefix:    v.GetString("backup.prefix"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	if cfg.Store.Driver != "workbook" && cfg.Store.Driver != "postgres" {
		return nil, fmt.Errorf("unknown store driver %q (want workbook or postgres)", cfg.Store.Driver)
	}
	return cfg, nil
}
