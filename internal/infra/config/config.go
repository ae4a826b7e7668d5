/*
MIT License

Copyright (c) 2025 Первый Бит

Данная лицензия разрешает использование, копирование, изменение, слияние, публикацию, распространение,
лицензирование и/или продажу копий программного обеспечения при соблюдении следующих условий:

В вышеуказанном уведомлении об авторских правах и данном уведомлении о разрешении должны быть включены все копии
или значимые части программного обеспечения.

ПРОГРАММНОЕ ОБЕСПЕЧЕНИЕ ПРЕДОСТАВЛЯЕТСЯ "КАК ЕСТЬ", БЕЗ ГАРАНТИЙ ЛЮБОГО РОДА, ЯВНЫХ ИЛИ ПОДРАЗУМЕВАЕМЫХ,
ВКЛЮЧАЯ, НО НЕ ОГРАНИЧИВАЯСЬ, ГАРАНТИЯМИ КОММЕРЧЕСКОЙ ПРИГОДНОСТИ, СООТВЕТСТВИЯ ДЛЯ ОПРЕДЕЛЕННОЙ ЦЕЛИ И
НЕНАРУШЕНИЯ ПРАВ. НИ В КОЕМ СЛУЧАЕ АВТОРЫ ИЛИ ПРАВООБЛАДАТЕЛИ НЕ НЕСУТ ОТВЕТСТВЕННОСТИ ПО ИСКАМ,
УСЛОВИЯМ, ДАМГЕ или другим обязательствам, возникающим из, или в связи с использованием, или иным образом
связанным с данным программным обеспечением.
*/

package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config содержит параметры конфигурации приложения.
// Значения берутся из YAML-файла, затем переопределяются переменными окружения (и файлом .env).
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
	} `yaml:"server"`
	TelegramBot struct {
		Token       string        `yaml:"token"`
		Mode        string        `yaml:"mode"`
		WebhookURL  string        `yaml:"webhook_url"`
		ListenAddr  string        `yaml:"listen_addr"`
		PollTimeout time.Duration `yaml:"poll_timeout"`
	} `yaml:"telegram_bot"`
	Database struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"dbname"`
	} `yaml:"database"`
	Redis struct {
		DSN string `yaml:"dsn"`
	} `yaml:"redis"`
	Admins []int64 `yaml:"admins"`
	Export struct {
		ThrottleTTL  time.Duration `yaml:"throttle_ttl"`
		Mode         string        `yaml:"mode"`
		PollInterval time.Duration `yaml:"poll_interval"`
	} `yaml:"export"`
	Quiz struct {
		ThrottleTTL time.Duration `yaml:"throttle_ttl"`
		ImagesDir   string        `yaml:"images_dir"`
		PromoURL    string        `yaml:"promo_url"`
		PromoButton string        `yaml:"promo_button"`
		DeleteDelay time.Duration `yaml:"delete_delay"`
	} `yaml:"quiz"`
	Timezone string `yaml:"timezone"`
	Log      struct {
		Level string `yaml:"level"`
		Debug bool   `yaml:"debug"`
	} `yaml:"log"`
}

// Default возвращает конфигурацию со значениями по умолчанию.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = "8080"
	cfg.TelegramBot.Mode = "polling"
	cfg.TelegramBot.ListenAddr = ":8443"
	cfg.TelegramBot.PollTimeout = 10 * time.Second
	cfg.Database.Host = "localhost"
	cfg.Database.Port = "5432"
	cfg.Redis.DSN = "redis://localhost:6379/0"
	cfg.Export.ThrottleTTL = 3 * time.Second
	cfg.Export.Mode = "reject"
	cfg.Export.PollInterval = time.Second
	cfg.Quiz.ThrottleTTL = 3 * time.Second
	cfg.Quiz.ImagesDir = "images"
	cfg.Quiz.PromoButton = "Подробнее"
	cfg.Quiz.DeleteDelay = 330 * time.Millisecond
	cfg.Timezone = "Europe/Moscow"
	cfg.Log.Level = "info"
	return cfg
}

// LoadConfig загружает конфигурацию. Пустой filename означает работу только на переменных окружения.
func LoadConfig(filename string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.TelegramBot.Token, "TELEGRAM_BOT_TOKEN")
	setString(&c.TelegramBot.Mode, "BOT_MODE")
	setString(&c.TelegramBot.WebhookURL, "WEBHOOK_URL")
	setString(&c.TelegramBot.ListenAddr, "LISTEN_ADDR")
	setString(&c.Redis.DSN, "REDIS_CACHE_DSN")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.Export.Mode, "EXPORT_MODE")
	setString(&c.Timezone, "TIMEZONE")
	setString(&c.Log.Level, "LOG_LEVEL")

	if v := os.Getenv("DEBUG"); v != "" {
		c.Log.Debug = v == "true" || v == "1"
	}
	if v, ok := os.LookupEnv("ADMINS"); ok {
		ids, err := ParseAdminIDs(v)
		if err != nil {
			return err
		}
		c.Admins = ids
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate проверяет обязательные параметры.
func (c *Config) Validate() error {
	if c.TelegramBot.Token == "" {
		return errors.New("telegram bot token is not set")
	}
	if len(c.Admins) == 0 {
		return errors.New("admins list is empty")
	}
	switch c.TelegramBot.Mode {
	case "polling":
	case "webhook":
		if c.TelegramBot.WebhookURL == "" {
			return errors.New("webhook url is required in webhook mode")
		}
	default:
		return fmt.Errorf("unknown bot mode %q", c.TelegramBot.Mode)
	}
	if c.Export.ThrottleTTL <= 0 || c.Export.PollInterval <= 0 {
		return errors.New("export durations must be positive")
	}
	if c.Quiz.ThrottleTTL <= 0 {
		return errors.New("quiz throttle ttl must be positive")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// ParseAdminIDs разбирает список Telegram-ID администраторов, разделённых запятой.
func ParseAdminIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid admin id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, errors.New("admins list is empty")
	}
	return ids, nil
}

// DatabaseDSN собирает строку подключения к PostgreSQL.
func (c *Config) DatabaseDSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Database.User, c.Database.Password),
		Host:   net.JoinHostPort(c.Database.Host, c.Database.Port),
		Path:   "/" + c.Database.Name,
	}
	return u.String()
}

// Location возвращает часовой пояс для отображения дат.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// HTTPAddr адрес HTTP-сервера проверки состояния.
func (c *Config) HTTPAddr() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}
