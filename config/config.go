package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Server struct {
	Host string
	Port int
}

type DB struct {
	Driver string // "mysql" or "sqlite"
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
	Path   string // sqlite file path
}

type Session struct {
	Secret     string
	Issuer     string
	CookieName string
	ExpMin     int
}

type SMTP struct {
	Host    string
	Port    int
	User    string
	Pass    string
	From    string
	To      string
	Timeout time.Duration
}

type Admin struct {
	Email    string
	Password string
	Name     string
}

type Config struct {
	Server      Server
	DB          DB
	Session     Session
	SMTP        SMTP
	Admin       Admin
	TemplateDir string
}

// Load reads the YAML config at path and applies environment overrides.
// Secrets (session secret, DB password, SMTP credentials) are expected
// to come from the environment, e.g. INKWELL_SESSION_SECRET.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("inkwell")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.pass", "")
	v.SetDefault("db.name", "inkwell")
	v.SetDefault("db.path", "inkwell.db")
	v.SetDefault("session.cookie_name", "inkwell_session")
	v.SetDefault("session.issuer", "inkwell")
	v.SetDefault("session.exp_min", 1440)
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.timeout", "10s")
	v.SetDefault("admin.email", "admin@example.com")
	v.SetDefault("admin.name", "Admin")
	v.SetDefault("template_dir", "templates")

	// The config file is optional; defaults plus environment are enough
	// for development.
	_ = v.ReadInConfig()

	cfg := &Config{
		Server: Server{Host: v.GetString("server.host"), Port: v.GetInt("server.port")},
		DB: DB{
			Driver: v.GetString("db.driver"),
			Host:   v.GetString("db.host"),
			Port:   v.GetInt("db.port"),
			User:   v.GetString("db.user"),
			Pass:   v.GetString("db.pass"),
			Name:   v.GetString("db.name"),
			Path:   v.GetString("db.path"),
		},
		Session: Session{
			Secret:     v.GetString("session.secret"),
			Issuer:     v.GetString("session.issuer"),
			CookieName: v.GetString("session.cookie_name"),
			ExpMin:     v.GetInt("session.exp_min"),
		},
		SMTP: SMTP{
			Host:    v.GetString("smtp.host"),
			Port:    v.GetInt("smtp.port"),
			User:    v.GetString("smtp.user"),
			Pass:    v.GetString("smtp.pass"),
			From:    v.GetString("smtp.from"),
			To:      v.GetString("smtp.to"),
			Timeout: v.GetDuration("smtp.timeout"),
		},
		Admin: Admin{
			Email:    v.GetString("admin.email"),
			Password: v.GetString("admin.password"),
			Name:     v.GetString("admin.name"),
		},
		TemplateDir: v.GetString("template_dir"),
	}
	if cfg.Session.Secret == "" {
		cfg.Session.Secret = "dev-secret"
	}
	if cfg.Session.ExpMin <= 0 {
		cfg.Session.ExpMin = 1440
	}
	if cfg.SMTP.Timeout <= 0 {
		cfg.SMTP.Timeout = 10 * time.Second
	}
	return cfg, nil
}
