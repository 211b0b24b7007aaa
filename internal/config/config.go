// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"DATABASE_URL"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	Session                 `yaml:"session"`
	Club                    `yaml:"club"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"localhost:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env-default:"localhost:6379"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// Session структура для настройки сессий: секрет подписи cookie
// и время жизни серверной сессии.
type Session struct {
	CookieSecret string        `yaml:"cookie_secret" env:"SESSION_SECRET"`
	SessionTTL   time.Duration `yaml:"session_ttl" env-default:"24h"`
}

// Club хранит секретные слова для повышения привилегий. Значения
// приходят из окружения и не должны попадать в исходники.
type Club struct {
	MemberPassphrase string `yaml:"member_passphrase" env:"MEMBER_PASSPHRASE"`
	AdminPassphrase  string `yaml:"admin_passphrase" env:"ADMIN_PASSPHRASE"`
}

// MustLoad функция для загрузки конфига, путь берется из переменной CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	if cfg.CookieSecret == "" {
		log.Fatal("session cookie secret is not set")
	}
	if cfg.MemberPassphrase == "" || cfg.AdminPassphrase == "" {
		log.Fatal("club passphrases are not set")
	}
	// Секретные слова участника и администратора обязаны различаться.
	if strings.EqualFold(cfg.MemberPassphrase, cfg.AdminPassphrase) {
		log.Fatal("member and admin passphrases must differ")
	}
	return &cfg
}

// IsProd сообщает, работает ли сервис в продакшен-окружении.
// Управляет флагом Secure у сессионной cookie.
func (c *Config) IsProd() bool {
	return c.Env == "prod"
}
