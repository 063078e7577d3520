package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		quoteDSNValue(config.User), quoteDSNValue(config.Pass), quoteDSNValue(config.Host),
		quoteDSNValue(config.Port), quoteDSNValue(config.Name),
	)
}

// GetURL is the same connection in URL form, as goose expects it. Credentials are escaped.
func (config *DbServer) GetURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(config.User, config.Pass),
		Host:     net.JoinHostPort(config.Host, config.Port),
		Path:     "/" + config.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// quoteDSNValue single-quotes a keyword/value DSN value when it is empty or has spaces, quotes or backslashes.
func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, " '\\\t") {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type PriceProvider struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type PriceCache struct {
	TTLSeconds int `mapstructure:"ttl_seconds"`
	// Store is "file" or "redis".
	Store    string `mapstructure:"store"`
	FilePath string `mapstructure:"file_path"`
	RedisKey string `mapstructure:"redis_key"`
}

type MarketsCache struct {
	TTLSeconds int `mapstructure:"ttl_seconds"`
	Limit      int `mapstructure:"limit"`
}

type Deposits struct {
	MaturationSeconds  int `mapstructure:"maturation_seconds"`
	PollIntervalMillis int `mapstructure:"poll_interval_millis"`
	// Addresses maps coin to network to custodial address.
	Addresses map[string]map[string]string `mapstructure:"addresses"`
}

type Ticker struct {
	IntervalMillis int `mapstructure:"interval_millis"`
	BufferSize     int `mapstructure:"buffer_size"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type Admin struct {
	APIKey string `mapstructure:"api_key"`
}

type UserCache struct {
	MaxItems   int64 `mapstructure:"max_items"`
	TTLSeconds int   `mapstructure:"ttl_seconds"`
}

type AppConfig struct {
	HTTPServer    HTTPServer    `mapstructure:"http_server"`
	DbServer      DbServer      `mapstructure:"db_server"`
	HTTPClient    HTTPClient    `mapstructure:"http_client"`
	Logging       Logging       `mapstructure:"logging"`
	PriceProvider PriceProvider `mapstructure:"price_provider"`
	PriceCache    PriceCache    `mapstructure:"price_cache"`
	MarketsCache  MarketsCache  `mapstructure:"markets_cache"`
	Deposits      Deposits      `mapstructure:"deposits"`
	Ticker        Ticker        `mapstructure:"ticker"`
	Redis         Redis         `mapstructure:"redis"`
	Admin         Admin         `mapstructure:"admin"`
	UserCache     UserCache     `mapstructure:"user_cache"`
}

func Init() (*AppConfig, error) {
	return Load("config.yaml")
}

// Load reads the yaml file at path, applies defaults and env overrides.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	// .env is a local convenience, deployments pass real env vars
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetDefault("http_server.port", "8080")
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("logging.level", "info")
	v.SetDefault("price_provider.base_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("price_cache.ttl_seconds", 30)
	v.SetDefault("price_cache.store", "file")
	v.SetDefault("price_cache.file_path", "instance/price_cache.json")
	v.SetDefault("price_cache.redis_key", "cryptodesk:price_cache")
	v.SetDefault("markets_cache.ttl_seconds", 30)
	v.SetDefault("markets_cache.limit", 10)
	v.SetDefault("deposits.maturation_seconds", 15)
	v.SetDefault("deposits.poll_interval_millis", 3000)
	v.SetDefault("ticker.interval_millis", 1500)
	v.SetDefault("ticker.buffer_size", 16)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("user_cache.max_items", 1024)
	v.SetDefault("user_cache.ttl_seconds", 60)

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// secrets and hosts
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("price_provider.api_key", "COINGECKO_API_KEY")
	_ = v.BindEnv("price_cache.store", "PRICE_CACHE_STORE")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("admin.api_key", "ADMIN_API_KEY")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.Deposits.Addresses = normalizeAddressBook(cfg.Deposits.Addresses)

	return &cfg, nil
}

// normalizeAddressBook upper-cases coin and network keys; viper lower-cases map keys.
func normalizeAddressBook(in map[string]map[string]string) map[string]map[string]string {
	out := make(map[string]map[string]string, len(in))
	for coin, networks := range in {
		c := strings.ToUpper(strings.TrimSpace(coin))
		if out[c] == nil {
			out[c] = make(map[string]string, len(networks))
		}
		for network, addr := range networks {
			out[c][strings.ToUpper(strings.TrimSpace(network))] = strings.TrimSpace(addr)
		}
	}
	return out
}
