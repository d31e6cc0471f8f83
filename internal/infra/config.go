package infra

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config — корневая структура конфигурации консоли.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	API      APIConfig      `mapstructure:"api"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Activity ActivityConfig `mapstructure:"activity"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig описывает настройки локального HTTP-сервера консоли.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	LoginPath    string        `mapstructure:"login_path"` // Куда UI уводит оператора после 401
}

// Addr возвращает адрес для http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// APIConfig описывает удаленный REST API инвентаря.
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"` // Пустое значение — ошибка на каждом сетевом вызове
	Timeout   time.Duration `mapstructure:"timeout"`
	LoginPath string        `mapstructure:"login_path"`
}

// GatewayConfig содержит настройки защиты исходящих запросов.
type GatewayConfig struct {
	RateLimit float64 `mapstructure:"rate_limit"` // запросов в секунду, 0 — без лимита
	RateBurst int     `mapstructure:"rate_burst"`

	// Настройки Circuit Breaker для удаленного API
	CBMaxRequests         uint32        `mapstructure:"cb_max_requests"`
	CBInterval            time.Duration `mapstructure:"cb_interval"`
	CBTimeout             time.Duration `mapstructure:"cb_timeout"`
	CBConsecutiveFailures uint32        `mapstructure:"cb_consecutive_failures"` // 0 — предохранитель выключен
}

// StorageConfig описывает, где живет токен сессии.
type StorageConfig struct {
	Backend          string `mapstructure:"backend"` // file, redis, postgres, memory, none
	FilePath         string `mapstructure:"file_path"`
	EncryptionSecret string `mapstructure:"encryption_secret"`
	Namespace        string `mapstructure:"namespace"`

	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// RedisConfig описывает подключение к Redis.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// PostgresConfig описывает подключение к PostgreSQL.
type PostgresConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int    `mapstructure:"max_conns"`
}

// ActivityConfig настраивает журнал действий оператора.
type ActivityConfig struct {
	BufferSize    int           `mapstructure:"buffer_size"`
	BatchSize     int           `mapstructure:"batch_size"`
	FlushInterval time.Duration `mapstructure:"flush_interval"`
	FeedSize      int           `mapstructure:"feed_size"`
	Persist       bool          `mapstructure:"persist"` // писать журнал в Postgres
}

// LoggerConfig настраивает поведение zap логгера.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// LoadConfig инициализирует конфигурацию, объединяя значения из .env, файла и ENV.
func LoadConfig(paths ...string) (*Config, error) {
	// .env необязателен: в контейнере переменные приходят снаружи
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./configs"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// API_BASE_URL=https://... перекроет api.base_url
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Если файла нет — работаем на ENV и дефолтах
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	cfg.API.BaseURL = strings.TrimSuffix(strings.TrimSpace(cfg.API.BaseURL), "/")
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.login_path", "/login")

	// base_url без дефолта: его отсутствие должно быть видно на первом же запросе
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.timeout", 20*time.Second)
	v.SetDefault("api.login_path", "/api/auth/login")

	v.SetDefault("gateway.rate_limit", 20.0)
	v.SetDefault("gateway.rate_burst", 10)
	v.SetDefault("gateway.cb_max_requests", 3)
	v.SetDefault("gateway.cb_interval", 5*time.Second)
	v.SetDefault("gateway.cb_timeout", 30*time.Second)
	v.SetDefault("gateway.cb_consecutive_failures", 5)

	// Пустые дефолты нужны, чтобы AutomaticEnv видел ключи без config.yaml
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.file_path", "")
	v.SetDefault("storage.encryption_secret", "")
	v.SetDefault("storage.namespace", StoreNamespace)
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.postgres.url", "")
	v.SetDefault("storage.postgres.max_conns", 5)

	v.SetDefault("activity.buffer_size", 1000)
	v.SetDefault("activity.batch_size", 100)
	v.SetDefault("activity.flush_interval", 500*time.Millisecond)
	v.SetDefault("activity.feed_size", 50)
	v.SetDefault("activity.persist", false)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
}
