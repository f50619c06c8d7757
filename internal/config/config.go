package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	Worker   WorkerConfig
	Valhalla ValhallaConfig
	OSRM     OSRMConfig
	Overpass OverpassConfig
	POI      POIConfig
	Routing  RoutingConfig
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

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled         bool
	ConsumerGroup   string
	ShutdownTimeout time.Duration
}

// ValhallaConfig - основной бэкенд маршрутизации
type ValhallaConfig struct {
	URL           string
	Timeout       time.Duration
	HealthTimeout time.Duration
	Language      string
}

// OSRMConfig - публичный резервный бэкенд
type OSRMConfig struct {
	URL     string
	Timeout time.Duration
}

// OverpassConfig - удалённый источник POI
type OverpassConfig struct {
	URL           string
	FallbackURLs  []string
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

type POIConfig struct {
	CacheTTL                 time.Duration
	MaxSearchRadius          float64
	DefaultSearchRadius      float64
	RadiusRemoteAugmentation bool
}

type RoutingConfig struct {
	MaxWaypoints        int
	MaxRouteDistance    float64
	CorridorWidthFactor float64
	CorridorMaxWidth    float64
	MinWaypointSpacing  float64
	POISearchLimit      int
	HealthCacheTTL      time.Duration
	RouteTTL            time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("API_CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "routes")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("WORKER_ENABLED", true)
	v.SetDefault("WORKER_CONSUMER_GROUP", "route-generation-workers")
	v.SetDefault("WORKER_SHUTDOWN_TIMEOUT", 30)

	v.SetDefault("VALHALLA_URL", "http://localhost:8002")
	v.SetDefault("VALHALLA_TIMEOUT", 30)
	v.SetDefault("VALHALLA_HEALTH_TIMEOUT", 5)
	v.SetDefault("VALHALLA_LANGUAGE", "ru-RU")

	v.SetDefault("OSRM_URL", "https://router.project-osrm.org")
	v.SetDefault("OSRM_TIMEOUT", 30)

	v.SetDefault("OVERPASS_URL", "https://overpass-api.de/api/interpreter")
	v.SetDefault("OVERPASS_FALLBACK_URLS", "https://overpass.kumi.systems/api/interpreter,https://maps.mail.ru/osm/tools/overpass/api/interpreter")
	v.SetDefault("OVERPASS_TIMEOUT", 30)
	v.SetDefault("OVERPASS_RETRY_ATTEMPTS", 2)
	v.SetDefault("OVERPASS_RETRY_DELAY", 1000)

	v.SetDefault("POI_CACHE_TTL", 86400)
	v.SetDefault("POI_MAX_SEARCH_RADIUS", 50000)
	v.SetDefault("POI_DEFAULT_SEARCH_RADIUS", 5000)
	v.SetDefault("POI_RADIUS_REMOTE_AUGMENTATION", false)

	v.SetDefault("ROUTING_MAX_WAYPOINTS", 10)
	v.SetDefault("ROUTING_MAX_ROUTE_DISTANCE", 1000000)
	v.SetDefault("ROUTING_CORRIDOR_WIDTH_FACTOR", 0.1)
	v.SetDefault("ROUTING_CORRIDOR_MAX_WIDTH", 20000)
	v.SetDefault("ROUTING_MIN_WAYPOINT_SPACING", 2000)
	v.SetDefault("ROUTING_POI_SEARCH_LIMIT", 100)
	v.SetDefault("ROUTING_HEALTH_CACHE_TTL", 30)
	v.SetDefault("ROUTING_ROUTE_TTL", 86400)
}

// Load читает конфигурацию из .env (если есть) и переменных окружения
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile читает конфигурацию из указанного env-файла; отсутствие файла не ошибка
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Env:         v.GetString("API_ENV"),
			CORSOrigins: v.GetString("API_CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:         v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:   v.GetString("WORKER_CONSUMER_GROUP"),
			ShutdownTimeout: time.Duration(v.GetInt("WORKER_SHUTDOWN_TIMEOUT")) * time.Second,
		},
		Valhalla: ValhallaConfig{
			URL:           strings.TrimRight(v.GetString("VALHALLA_URL"), "/"),
			Timeout:       time.Duration(v.GetInt("VALHALLA_TIMEOUT")) * time.Second,
			HealthTimeout: time.Duration(v.GetInt("VALHALLA_HEALTH_TIMEOUT")) * time.Second,
			Language:      v.GetString("VALHALLA_LANGUAGE"),
		},
		OSRM: OSRMConfig{
			URL:     strings.TrimRight(v.GetString("OSRM_URL"), "/"),
			Timeout: time.Duration(v.GetInt("OSRM_TIMEOUT")) * time.Second,
		},
		Overpass: OverpassConfig{
			URL:           v.GetString("OVERPASS_URL"),
			FallbackURLs:  splitList(v.GetString("OVERPASS_FALLBACK_URLS")),
			Timeout:       time.Duration(v.GetInt("OVERPASS_TIMEOUT")) * time.Second,
			RetryAttempts: v.GetInt("OVERPASS_RETRY_ATTEMPTS"),
			RetryDelay:    time.Duration(v.GetInt("OVERPASS_RETRY_DELAY")) * time.Millisecond,
		},
		POI: POIConfig{
			CacheTTL:                 time.Duration(v.GetInt("POI_CACHE_TTL")) * time.Second,
			MaxSearchRadius:          v.GetFloat64("POI_MAX_SEARCH_RADIUS"),
			DefaultSearchRadius:      v.GetFloat64("POI_DEFAULT_SEARCH_RADIUS"),
			RadiusRemoteAugmentation: v.GetBool("POI_RADIUS_REMOTE_AUGMENTATION"),
		},
		Routing: RoutingConfig{
			MaxWaypoints:        v.GetInt("ROUTING_MAX_WAYPOINTS"),
			MaxRouteDistance:    v.GetFloat64("ROUTING_MAX_ROUTE_DISTANCE"),
			CorridorWidthFactor: v.GetFloat64("ROUTING_CORRIDOR_WIDTH_FACTOR"),
			CorridorMaxWidth:    v.GetFloat64("ROUTING_CORRIDOR_MAX_WIDTH"),
			MinWaypointSpacing:  v.GetFloat64("ROUTING_MIN_WAYPOINT_SPACING"),
			POISearchLimit:      v.GetInt("ROUTING_POI_SEARCH_LIMIT"),
			HealthCacheTTL:      time.Duration(v.GetInt("ROUTING_HEALTH_CACHE_TTL")) * time.Second,
			RouteTTL:            time.Duration(v.GetInt("ROUTING_ROUTE_TTL")) * time.Second,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Valhalla.URL == "" && c.OSRM.URL == "" {
		return errors.New("config: at least one routing backend URL is required")
	}
	if c.Routing.MaxWaypoints <= 0 {
		return fmt.Errorf("config: ROUTING_MAX_WAYPOINTS must be positive, got %d", c.Routing.MaxWaypoints)
	}
	if c.Routing.CorridorWidthFactor <= 0 || c.Routing.CorridorMaxWidth <= 0 {
		return errors.New("config: corridor width factor and max width must be positive")
	}
	if c.Routing.MinWaypointSpacing < 0 {
		return errors.New("config: ROUTING_MIN_WAYPOINT_SPACING must not be negative")
	}
	if c.POI.DefaultSearchRadius > c.POI.MaxSearchRadius {
		return fmt.Errorf("config: default search radius %.0f exceeds max %.0f",
			c.POI.DefaultSearchRadius, c.POI.MaxSearchRadius)
	}
	if c.Overpass.RetryAttempts < 1 {
		return errors.New("config: OVERPASS_RETRY_ATTEMPTS must be at least 1")
	}
	return nil
}

func splitList(s string) []string {
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
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
