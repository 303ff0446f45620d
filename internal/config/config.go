package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr           string        `yaml:"addr"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	DB             Database      `yaml:"database"`
}

// Database holds everything the connection provider needs. URL, when set,
// is used verbatim instead of the DSN built from the other fields.
type Database struct {
	Driver   string `yaml:"driver"`
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnectRetries  int           `yaml:"connect_retries"`
	ConnectInterval time.Duration `yaml:"connect_interval"`
	EnsureSchema    bool          `yaml:"ensure_schema"`
}

// Defaults returns the configuration used when nothing else is provided.
func Defaults() Config {
	return Config{
		Addr:           ":8080",
		RequestTimeout: 5 * time.Second,
		DB: Database{
			Driver:          "mysql",
			Host:            "localhost",
			Port:            "3306",
			Name:            "casacaribe_db",
			User:            "usuario_app",
			Password:        "tu_password_segura",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
			ConnectRetries:  10,
			ConnectInterval: time.Second,
			EnsureSchema:    true,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file named
// by CONFIG_FILE, and finally the environment.
func Load() (Config, error) {
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

// LoadFile is Load with an explicit YAML path; an empty path skips the file.
func LoadFile(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return cfg, err
		}
	}
	cfg.applyEnv()
	if err := cfg.DB.check(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Addr = getenv("ADDR", c.Addr)
	c.RequestTimeout = duration(os.Getenv("HTTP_REQUEST_TIMEOUT"), c.RequestTimeout)

	d := &c.DB
	d.Driver = strings.ToLower(getenv("DB_DRIVER", d.Driver))
	d.URL = getenv("DATABASE_URL", d.URL)
	d.Host = getenv("DB_HOST", d.Host)
	d.Port = getenv("DB_PORT", d.Port)
	d.Name = getenv("DB_NAME", d.Name)
	d.User = getenv("DB_USER", d.User)
	d.Password = getenv("DB_PASSWORD", d.Password)
	d.MaxOpenConns = atoi(os.Getenv("DB_MAX_OPEN_CONNS"), d.MaxOpenConns)
	d.MaxIdleConns = atoi(os.Getenv("DB_MAX_IDLE_CONNS"), d.MaxIdleConns)
	d.ConnMaxLifetime = duration(os.Getenv("DB_CONN_MAX_LIFETIME"), d.ConnMaxLifetime)
	d.ConnectRetries = atoi(os.Getenv("DB_CONNECT_RETRIES"), d.ConnectRetries)
	d.ConnectInterval = duration(os.Getenv("DB_CONNECT_INTERVAL"), d.ConnectInterval)
	if v := os.Getenv("DB_ENSURE_SCHEMA"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			d.EnsureSchema = b
		}
	}
}

func (d Database) check() error {
	switch d.Driver {
	case "mysql", "postgres", "pgx", "sqlite3":
		return nil
	}
	return fmt.Errorf("config: unsupported DB_DRIVER %q", d.Driver)
}

// DSN returns the driver-specific data source name.
func (d Database) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	switch d.Driver {
	case "postgres", "pgx":
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(d.User, d.Password),
			Host:     d.Host + ":" + d.Port,
			Path:     "/" + d.Name,
			RawQuery: "sslmode=disable",
		}
		return u.String()
	case "sqlite3":
		return d.Name
	}

	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = d.Host + ":" + d.Port
	cfg.DBName = d.Name
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	cfg.Params["charset"] = "utf8mb4"
	return cfg.FormatDSN()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

func duration(s string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
