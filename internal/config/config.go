package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"sakura/internal/pg"
)

type Config struct {
	Port       string `json:"port" yaml:"port"`
	SchemaPath string `json:"schemaPath" yaml:"schemaPath"` // schema.prisma с enum'ами

	// Загрузки лендинга
	UploadDir       string `json:"uploadDir" yaml:"uploadDir"`
	UploadURLPrefix string `json:"uploadURLPrefix" yaml:"uploadURLPrefix"`
	DefaultExt      string `json:"defaultExt" yaml:"defaultExt"`
	MaxUploadMB     int    `json:"maxUploadMB" yaml:"maxUploadMB"`

	FrontendDir string   `json:"frontendDir" yaml:"frontendDir"` // пусто = фронт не раздаём
	CORSOrigins []string `json:"corsOrigins" yaml:"corsOrigins"`

	// Postgres опционален: без него dropdown и загрузки работают
	DBURL       string `json:"dbUrl" yaml:"dbUrl"`
	AutoMigrate bool   `json:"autoMigrate" yaml:"autoMigrate"`
	DBMaxOpen   int    `json:"dbMaxOpenConns" yaml:"dbMaxOpenConns"`
	DBMaxIdle   int    `json:"dbMaxIdleConns" yaml:"dbMaxIdleConns"`
	DBConnLife  int    `json:"dbConnLifetimeMinutes" yaml:"dbConnLifetimeMinutes"`
	DBPingSecs  int    `json:"dbPingTimeout" yaml:"dbPingTimeout"`

	LogLevel        string `json:"logLevel" yaml:"logLevel"`
	LogFormat       string `json:"logFormat" yaml:"logFormat"`             // json | console
	ShutdownTimeout int    `json:"shutdownTimeout" yaml:"shutdownTimeout"` // секунды
}

const DefaultPath = "sakura.yaml"

func def() Config {
	return Config{
		Port:       "8000",
		SchemaPath: "prisma/schema.prisma",

		UploadDir:       "uploads",
		UploadURLPrefix: "/uploads",
		DefaultExt:      ".jpg",
		MaxUploadMB:     32,

		FrontendDir: "",
		CORSOrigins: []string{"*"},

		DBURL:       "",
		AutoMigrate: false,
		DBMaxOpen:   10,
		DBMaxIdle:   5,
		DBConnLife:  30,
		DBPingSecs:  5,

		LogLevel:        "info",
		LogFormat:       "json",
		ShutdownTimeout: 10,
	}
}

func Default() Config { return def() }

// loadFile: .yaml/.yml — YAML, остальное — JSON
func loadFile(path string, c *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, c)
	default:
		err = json.Unmarshal(b, c)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getenvBool(k string, fallback bool) bool {
	if v, ok := os.LookupEnv(k); ok {
		if b, ok := parseBool(v); ok {
			return b
		}
	}
	return fallback
}

func getenvInt(k string, fallback int) int {
	if v, ok := os.LookupEnv(k); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

func getenvList(k string, fallback []string) []string {
	v, ok := os.LookupEnv(k)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	return splitList(v)
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBool(v string) (bool, bool) {
	switch strings.TrimSpace(strings.ToLower(v)) {
	case "1", "true", "yes":
		return true, true
	case "0", "false", "no":
		return false, true
	}
	return false, false
}

func applyEnv(cfg *Config) {
	cfg.Port = getenv("SAKURA_PORT", cfg.Port)
	cfg.SchemaPath = getenv("SAKURA_SCHEMA_PATH", cfg.SchemaPath)
	cfg.UploadDir = getenv("SAKURA_UPLOAD_DIR", cfg.UploadDir)
	cfg.UploadURLPrefix = getenv("SAKURA_UPLOAD_URL_PREFIX", cfg.UploadURLPrefix)
	cfg.DefaultExt = getenv("SAKURA_DEFAULT_EXT", cfg.DefaultExt)
	cfg.MaxUploadMB = getenvInt("SAKURA_MAX_UPLOAD_MB", cfg.MaxUploadMB)
	cfg.FrontendDir = getenv("SAKURA_FRONTEND_DIR", cfg.FrontendDir)
	cfg.CORSOrigins = getenvList("SAKURA_CORS_ORIGINS", cfg.CORSOrigins)
	// DATABASE_URL — как в prisma/.env
	cfg.DBURL = getenv("SAKURA_DB_URL", getenv("DATABASE_URL", cfg.DBURL))
	cfg.AutoMigrate = getenvBool("SAKURA_AUTO_MIGRATE", cfg.AutoMigrate)
	cfg.LogLevel = getenv("SAKURA_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getenv("SAKURA_LOG_FORMAT", cfg.LogFormat)
	cfg.DBMaxOpen = getenvInt("SAKURA_DB_MAX_OPEN_CONNS", cfg.DBMaxOpen)
	cfg.DBMaxIdle = getenvInt("SAKURA_DB_MAX_IDLE_CONNS", cfg.DBMaxIdle)
	cfg.DBConnLife = getenvInt("SAKURA_DB_CONN_LIFETIME_MINUTES", cfg.DBConnLife)
	cfg.DBPingSecs = getenvInt("SAKURA_DB_PING_TIMEOUT", cfg.DBPingSecs)
	cfg.ShutdownTimeout = getenvInt("SAKURA_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
}

// LoadWithPath: дефолты -> файл (если есть) -> ENV.
// Отсутствующий файл по умолчанию не ошибка, битый — ошибка.
func LoadWithPath(path string) (Config, error) {
	cfg := def()
	if path != "" {
		if st, err := os.Stat(path); err == nil && !st.IsDir() {
			if err := loadFile(path, &cfg); err != nil {
				return cfg, err
			}
		} else if path != DefaultPath {
			return cfg, fmt.Errorf("config %s: %w", path, errOrNotFile(err))
		}
	}
	applyEnv(&cfg)
	cfg.normalize()
	return cfg, nil
}

func errOrNotFile(err error) error {
	if err != nil {
		return err
	}
	return errors.New("is a directory")
}

func (c *Config) normalize() {
	c.Port = strings.TrimSpace(c.Port)
	c.UploadURLPrefix = "/" + strings.Trim(strings.TrimSpace(c.UploadURLPrefix), "/")
	if c.DefaultExt != "" && !strings.HasPrefix(c.DefaultExt, ".") {
		c.DefaultExt = "." + c.DefaultExt
	}
	c.DefaultExt = strings.ToLower(c.DefaultExt)
}

func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is empty")
	}
	if strings.TrimSpace(c.UploadDir) == "" {
		return errors.New("uploadDir is empty")
	}
	if c.UploadURLPrefix == "/" {
		return errors.New("uploadURLPrefix must not be root")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("maxUploadMB must be positive, got %d", c.MaxUploadMB)
	}
	if c.DefaultExt == "" || c.DefaultExt == "." {
		return errors.New("defaultExt is empty")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdownTimeout must be positive, got %d", c.ShutdownTimeout)
	}
	if c.DBMaxOpen <= 0 || c.DBMaxIdle < 0 || c.DBConnLife < 0 || c.DBPingSecs <= 0 {
		return fmt.Errorf("bad postgres pool settings: open=%d idle=%d lifetime=%dm ping=%ds",
			c.DBMaxOpen, c.DBMaxIdle, c.DBConnLife, c.DBPingSecs)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unknown logFormat %q (json|console)", c.LogFormat)
	}
	return nil
}

func (c Config) Addr() string { return ":" + c.Port }

func (c Config) MaxUploadBytes() int64 { return int64(c.MaxUploadMB) << 20 }

func (c Config) ShutdownDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// DBPool — настройки пула для pg.Open
func (c Config) DBPool() pg.Pool {
	return pg.Pool{
		MaxOpenConns:    c.DBMaxOpen,
		MaxIdleConns:    c.DBMaxIdle,
		ConnMaxLifetime: time.Duration(c.DBConnLife) * time.Minute,
		PingTimeout:     time.Duration(c.DBPingSecs) * time.Second,
	}
}

// ===== FLAGS =====

// RegisterFlags вешает флаги на команду; применяются поверх файла и ENV в Load.
func RegisterFlags(fs *pflag.FlagSet) {
	d := def()
	fs.String("config", DefaultPath, "Path to config file (JSON or YAML)")
	fs.String("port", d.Port, "HTTP port")
	fs.String("schema", d.SchemaPath, "Path to schema.prisma")
	fs.String("upload-dir", d.UploadDir, "Directory for landing uploads")
	fs.String("upload-url-prefix", d.UploadURLPrefix, "Public URL prefix of uploaded files")
	fs.Int("max-upload-mb", d.MaxUploadMB, "Max upload request size, MB")
	fs.String("frontend-dir", d.FrontendDir, "Built frontend bundle (empty = off)")
	fs.StringSlice("cors-origins", d.CORSOrigins, "Allowed CORS origins")
	fs.String("db", d.DBURL, "Postgres URL (empty = no database)")
	fs.Bool("auto-migrate", d.AutoMigrate, "Create Postgres enum types on startup")
	fs.String("log-level", d.LogLevel, "Log level (debug|info|warn|error)")
	fs.String("log-format", d.LogFormat, "Log format (json|console)")
	fs.Int("db-max-open-conns", d.DBMaxOpen, "Postgres pool: max open connections")
	fs.Int("shutdown-timeout", d.ShutdownTimeout, "Graceful shutdown timeout, seconds")
}

// Load читает --config и применяет явно заданные флаги.
func Load(fs *pflag.FlagSet) (Config, error) {
	path, _ := fs.GetString("config")
	if !fs.Changed("config") {
		path = getenv("SAKURA_CONFIG", path)
	}
	cfg, err := LoadWithPath(path)
	if err != nil {
		return cfg, err
	}
	applyFlags(fs, &cfg)
	cfg.normalize()
	return cfg, cfg.Validate()
}

func applyFlags(fs *pflag.FlagSet, cfg *Config) {
	str := func(name string, dst *string) {
		if fs.Lookup(name) != nil && fs.Changed(name) {
			v, _ := fs.GetString(name)
			*dst = strings.TrimSpace(v)
		}
	}
	str("port", &cfg.Port)
	str("schema", &cfg.SchemaPath)
	str("upload-dir", &cfg.UploadDir)
	str("upload-url-prefix", &cfg.UploadURLPrefix)
	str("frontend-dir", &cfg.FrontendDir)
	str("db", &cfg.DBURL)
	str("log-level", &cfg.LogLevel)
	str("log-format", &cfg.LogFormat)

	if fs.Lookup("max-upload-mb") != nil && fs.Changed("max-upload-mb") {
		cfg.MaxUploadMB, _ = fs.GetInt("max-upload-mb")
	}
	if fs.Lookup("db-max-open-conns") != nil && fs.Changed("db-max-open-conns") {
		cfg.DBMaxOpen, _ = fs.GetInt("db-max-open-conns")
	}
	if fs.Lookup("shutdown-timeout") != nil && fs.Changed("shutdown-timeout") {
		cfg.ShutdownTimeout, _ = fs.GetInt("shutdown-timeout")
	}
	if fs.Lookup("cors-origins") != nil && fs.Changed("cors-origins") {
		cfg.CORSOrigins, _ = fs.GetStringSlice("cors-origins")
	}
	if fs.Lookup("auto-migrate") != nil && fs.Changed("auto-migrate") {
		cfg.AutoMigrate, _ = fs.GetBool("auto-migrate")
	}
}
