package config

import (
	"fmt"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Допустимые значения переключаемых режимов.
const (
	TokenBackendFirestore = "firestore"
	TokenBackendRedis     = "redis"

	SenderNameModeLookup      = "lookup"
	SenderNameModeTrustCaller = "trust-caller"

	PushProviderFCM  = "fcm"
	PushProviderStub = "stub"
)

type Config struct {
	Env        string `yaml:"env" env:"APP_ENV" env-default:"development"`
	ServerPort string `yaml:"server_port" env:"SERVER_PORT" env-default:"8080"`
	Log        LogConfig
	Firebase   FirebaseConfig
	Redis      RedisConfig
	Tokens     TokenConfig
	Dispatch   DispatchConfig
	Version    VersionConfig
	CORS       CORSConfig
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type FirebaseConfig struct {
	// Путь к файлу ключа сервис-аккаунта. Без него сервис не стартует.
	CredentialsPath string `yaml:"credentials_path" env:"FIREBASE_CREDENTIALS_PATH" env-required:"true"`
	ProjectID       string `yaml:"project_id" env:"FIREBASE_PROJECT_ID"`
}

type RedisConfig struct {
	// Опционально: нужен только при TOKEN_BACKEND=redis
	// (и для rate limiter, если задан)
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type TokenConfig struct {
	// Какое хранилище обслуживает чтение/запись токенов: firestore или redis.
	// Проверка существования пользователя всегда идет через Firestore.
	Backend string `yaml:"backend" env:"TOKEN_BACKEND" env-default:"firestore"`
	// Проверять ли существование записи пользователя перед записью токена.
	// По умолчанию выключено - запись работает как upsert.
	RequireUser bool `yaml:"require_user" env:"TOKEN_REQUIRE_USER" env-default:"false"`
}

type DispatchConfig struct {
	// lookup - имя отправителя подтверждается по хранилищу записей,
	// trust-caller - используется имя из запроса как есть.
	SenderNameMode string `yaml:"sender_name_mode" env:"SENDER_NAME_MODE" env-default:"lookup"`
	// fcm - реальная отправка, stub - заглушка для development:
	// уведомления логируются, в FCM ничего не уходит.
	PushProvider string `yaml:"push_provider" env:"PUSH_PROVIDER" env-default:"fcm"`
	// Таймаут на каждый внешний вызов (Firestore, FCM)
	CallTimeout time.Duration `yaml:"call_timeout" env:"EXTERNAL_CALL_TIMEOUT" env-default:"10s"`
	// Лимит запросов на отправку уведомлений (в минуту на IP)
	RateLimitPerMinute uint `yaml:"rate_limit_per_minute" env:"DISPATCH_RATE_LIMIT" env-default:"120"`
}

type VersionConfig struct {
	Current       string   `yaml:"current" env:"APP_CURRENT_VERSION" env-default:"1.0.0"`
	Latest        string   `yaml:"latest" env:"APP_LATEST_VERSION" env-default:"1.0.0"`
	LatestCode    int      `yaml:"latest_code" env:"APP_LATEST_VERSION_CODE" env-default:"1"`
	DownloadURL   string   `yaml:"download_url" env:"APP_DOWNLOAD_URL"`
	ReleaseNotes  []string `yaml:"release_notes" env:"APP_RELEASE_NOTES" env-separator:";"`
	IsForceUpdate bool     `yaml:"is_force_update" env:"APP_FORCE_UPDATE" env-default:"false"`
	MinVersion    string   `yaml:"min_version" env:"APP_MIN_VERSION" env-default:"1.0.0"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

// LoadConfig читает config.yml, а при его отсутствии - только переменные окружения.
func LoadConfig() (*Config, error) {
	configPath := "config.yml" // Путь по умолчанию

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v. Попытка чтения из переменных окружения.", configPath, err)
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Tokens.Backend {
	case TokenBackendFirestore, TokenBackendRedis:
	default:
		return fmt.Errorf("неизвестный TOKEN_BACKEND: %q (ожидается %q или %q)",
			c.Tokens.Backend, TokenBackendFirestore, TokenBackendRedis)
	}
	if c.Tokens.Backend == TokenBackendRedis && c.Redis.Addr == "" {
		return fmt.Errorf("TOKEN_BACKEND=redis требует REDIS_ADDR")
	}

	switch c.Dispatch.SenderNameMode {
	case SenderNameModeLookup, SenderNameModeTrustCaller:
	default:
		return fmt.Errorf("неизвестный SENDER_NAME_MODE: %q (ожидается %q или %q)",
			c.Dispatch.SenderNameMode, SenderNameModeLookup, SenderNameModeTrustCaller)
	}

	switch c.Dispatch.PushProvider {
	case PushProviderFCM, PushProviderStub:
	default:
		return fmt.Errorf("неизвестный PUSH_PROVIDER: %q (ожидается %q или %q)",
			c.Dispatch.PushProvider, PushProviderFCM, PushProviderStub)
	}

	return nil
}
