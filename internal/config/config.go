package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	MapSourcePostgres = "postgres"
	MapSourcePBF      = "pbf"
)

type Config struct {
	Server ServerConfig
	OSMDB  DatabaseConfig
	Redis  RedisConfig
	Cache  CacheConfig
	Log    LogConfig
	Map    MapConfig
	Engine EngineConfig
	Stream StreamConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	RouteCacheTTL time.Duration
	StatsCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

// MapConfig - источник дорожного графа
type MapConfig struct {
	Source      string
	PBFPath     string
	Highways    []string
	LoadTimeout time.Duration
}

// EngineConfig - параметры поиска маршрутов и автодополнения
type EngineConfig struct {
	RouteTimeout         time.Duration
	AutocompleteLimit    int
	AutocompleteMaxLimit int
	RouteRateLimit       float64
	RouteRateBurst       int
}

// StreamConfig - поток событий популярности локаций
type StreamConfig struct {
	Enabled       bool
	Name          string
	ConsumerGroup string
	ReadTimeout   time.Duration
	BatchSize     int
}

// Load - загрузка конфигурации из .env в рабочей директории и переменных окружения
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom - загрузка конфигурации из указанного файла. Отсутствие файла
// не является ошибкой, тогда используются только переменные окружения
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),

			CORSOrigins: v.GetString("API_CORS_ORIGINS"),
		},
		OSMDB: DatabaseConfig{
			Host:            v.GetString("OSM_DB_HOST"),
			Port:            v.GetInt("OSM_DB_PORT"),
			User:            v.GetString("OSM_DB_USER"),
			Password:        v.GetString("OSM_DB_PASSWORD"),
			DBName:          v.GetString("OSM_DB_NAME"),
			SSLMode:         v.GetString("OSM_DB_SSLMODE"),
			MaxConns:        v.GetInt("OSM_DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("OSM_DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("OSM_DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("OSM_DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			RouteCacheTTL: time.Duration(v.GetInt("ROUTE_CACHE_TTL")) * time.Second,
			StatsCacheTTL: time.Duration(v.GetInt("STATS_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Map: MapConfig{
			Source:      strings.ToLower(v.GetString("MAP_SOURCE")),
			PBFPath:     v.GetString("MAP_PBF_PATH"),
			Highways:    parseList(v.GetString("MAP_HIGHWAYS")),
			LoadTimeout: time.Duration(v.GetInt("MAP_LOAD_TIMEOUT")) * time.Second,
		},
		Engine: EngineConfig{
			RouteTimeout:         time.Duration(v.GetInt("ROUTE_TIMEOUT")) * time.Millisecond,
			AutocompleteLimit:    v.GetInt("AUTOCOMPLETE_LIMIT"),
			AutocompleteMaxLimit: v.GetInt("AUTOCOMPLETE_MAX_LIMIT"),
			RouteRateLimit:       v.GetFloat64("ROUTE_RATE_LIMIT"),
			RouteRateBurst:       v.GetInt("ROUTE_RATE_BURST"),
		},
		Stream: StreamConfig{
			Enabled:       v.GetBool("STREAM_ENABLED"),
			Name:          v.GetString("STREAM_NAME"),
			ConsumerGroup: v.GetString("STREAM_CONSUMER_GROUP"),
			ReadTimeout:   time.Duration(v.GetInt("STREAM_READ_TIMEOUT")) * time.Millisecond,
			BatchSize:     v.GetInt("STREAM_BATCH_SIZE"),
		},
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Server.CORSOrigins == "" {
		c.Server.CORSOrigins = "*"
	}
	if c.OSMDB.SSLMode == "" {
		c.OSMDB.SSLMode = "disable"
	}
	if c.OSMDB.MaxConns == 0 {
		c.OSMDB.MaxConns = 10
	}
	if c.OSMDB.MaxIdleConns == 0 {
		c.OSMDB.MaxIdleConns = 5
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Cache.RouteCacheTTL == 0 {
		c.Cache.RouteCacheTTL = 10 * time.Minute
	}
	if c.Cache.StatsCacheTTL == 0 {
		c.Cache.StatsCacheTTL = time.Minute
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Map.Source == "" {
		c.Map.Source = MapSourcePostgres
	}
	if len(c.Map.Highways) == 0 {
		c.Map.Highways = []string{
			"motorway", "trunk", "primary", "secondary", "tertiary", "unclassified",
			"residential", "living_street", "motorway_link", "trunk_link", "primary_link",
			"secondary_link", "tertiary_link",
		}
	}
	if c.Map.LoadTimeout == 0 {
		c.Map.LoadTimeout = 5 * time.Minute
	}
	if c.Engine.RouteTimeout == 0 {
		c.Engine.RouteTimeout = 2000 * time.Millisecond
	}
	if c.Engine.AutocompleteLimit == 0 {
		c.Engine.AutocompleteLimit = 20
	}
	if c.Engine.AutocompleteMaxLimit == 0 {
		c.Engine.AutocompleteMaxLimit = 100
	}
	if c.Engine.RouteRateLimit == 0 {
		c.Engine.RouteRateLimit = 20
	}
	if c.Engine.RouteRateBurst == 0 {
		c.Engine.RouteRateBurst = 40
	}
	if c.Stream.Name == "" {
		c.Stream.Name = "streams:location_hits"
	}
	if c.Stream.ConsumerGroup == "" {
		c.Stream.ConsumerGroup = "popularity"
	}
	if c.Stream.ReadTimeout == 0 {
		c.Stream.ReadTimeout = 5000 * time.Millisecond
	}
	if c.Stream.BatchSize == 0 {
		c.Stream.BatchSize = 50
	}
}

// Validate - проверка согласованности параметров
func (c *Config) Validate() error {
	switch c.Map.Source {
	case MapSourcePostgres:
	case MapSourcePBF:
		if c.Map.PBFPath == "" {
			return fmt.Errorf("MAP_PBF_PATH is required when MAP_SOURCE=%s", MapSourcePBF)
		}
	default:
		return fmt.Errorf("unknown MAP_SOURCE %q", c.Map.Source)
	}
	if c.Engine.AutocompleteLimit > c.Engine.AutocompleteMaxLimit {
		return fmt.Errorf("AUTOCOMPLETE_LIMIT %d exceeds AUTOCOMPLETE_MAX_LIMIT %d",
			c.Engine.AutocompleteLimit, c.Engine.AutocompleteMaxLimit)
	}
	return nil
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.OSMDB.Host,
		c.OSMDB.Port,
		c.OSMDB.User,
		c.OSMDB.Password,
		c.OSMDB.DBName,
		c.OSMDB.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
