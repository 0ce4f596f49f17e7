package config

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/JQ-Origin/Library-Document-Borrowing-System/pkg/circuit_breaker"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/pkg/kafka"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/pkg/logger"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/pkg/postgres"
	"github.com/kelseyhightower/envconfig"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"LIBRARY_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"LIBRARY_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE" default:"10s"`
	// origins allowed to send the session cookie cross-site; empty keeps the API same-origin
	AllowOrigins []string `yaml:"allowOrigins" envconfig:"LIBRARY_CORS_ORIGINS"`
}

type Redis struct {
	Addr     string `yaml:"addr" envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `yaml:"password" envconfig:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" envconfig:"REDIS_DB"`
}

type Session struct {
	Secret     string        `yaml:"secret" envconfig:"SESSION_SECRET" required:"true"`
	TTL        time.Duration `yaml:"ttl" envconfig:"SESSION_TTL" default:"24h"`
	CookieName string        `yaml:"cookieName" envconfig:"SESSION_COOKIE" default:"library_session"`
	Secure     bool          `yaml:"secure" envconfig:"SESSION_SECURE"`
	LoginPath  string        `yaml:"loginPath" envconfig:"SESSION_LOGIN_PATH" default:"/login"`
}

type Library struct {
	LoanPeriodDays  int    `yaml:"loanPeriodDays" envconfig:"LIBRARY_LOAN_PERIOD_DAYS" default:"30"`
	MaxActiveLoans  int    `yaml:"maxActiveLoans" envconfig:"LIBRARY_MAX_ACTIVE_LOANS" default:"5"`
	DefaultPassword string `yaml:"defaultPassword" envconfig:"LIBRARY_DEFAULT_PASSWORD" default:"123456"`

	CatalogPageSize int `yaml:"catalogPageSize" envconfig:"LIBRARY_CATALOG_PAGE_SIZE" default:"10"`
	SearchPageSize  int `yaml:"searchPageSize" envconfig:"LIBRARY_SEARCH_PAGE_SIZE" default:"12"`
	BorrowPageSize  int `yaml:"borrowPageSize" envconfig:"LIBRARY_BORROW_PAGE_SIZE" default:"15"`
	UserPageSize    int `yaml:"userPageSize" envconfig:"LIBRARY_USER_PAGE_SIZE" default:"10"`

	AdminUsername string `yaml:"adminUsername" envconfig:"LIBRARY_ADMIN_USERNAME"`
	AdminPassword string `yaml:"adminPassword" envconfig:"LIBRARY_ADMIN_PASSWORD"`
	AdminEmail    string `yaml:"adminEmail" envconfig:"LIBRARY_ADMIN_EMAIL"`

	// guards the loan event producer
	Events circuit_breaker.Settings `yaml:"events"`
}

type Config struct {
	Server   HTTPServer   `yaml:"server"`
	Database postgres.DB  `yaml:"db"`
	Redis    Redis        `yaml:"redis"`
	Session  Session      `yaml:"session"`
	Kafka    kafka.Config `yaml:"kafka"`
	Log      logger.Log   `yaml:"log"`
	Library  Library      `yaml:"library"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment once; options are applied after the environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		config, err := Load(ops...)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
	})

	return cfg
}

func Load(ops ...Option) (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, err
	}
	for _, op := range ops {
		op(&config)
	}
	if config.Session.Secret == "" {
		return nil, errors.New("session secret is empty")
	}
	return &config, nil
}
