package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	commoncfg "github.com/Ahmed-Morsi888/Doctor-system/common/config"
)

// 偏好存储后端
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// 记录事件后端
const (
	EventsNone  = "none"
	EventsRedis = "redis"
	EventsMQTT  = "mqtt"
)

// Config clinic-data 服务配置
type Config struct {
	App struct {
		Name    string
		Version string
	}
	HTTP struct {
		Addr string
	}
	Log struct {
		Level  string
		Format string
	}
	Preferences struct {
		Backend   string
		KeyPrefix string
	}
	List struct {
		SearchDebounce time.Duration
		PageSize       int
	}
	API struct {
		URL     string // 为空时记录在本地创建
		Token   string
		Timeout time.Duration
	}
	Events struct {
		Backend     string
		Stream      string
		TopicPrefix string
	}
	Database commoncfg.DatabaseConfig
	Redis    commoncfg.RedisConfig
	MQTT     commoncfg.MQTTConfig
}

func Load() *Config {
	cfg := &Config{}
	cfg.App.Name = getEnv("APP_NAME", "clinic-data")
	cfg.App.Version = getEnv("APP_VERSION", "dev")
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")
	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Preferences.Backend = oneOf(getEnv("PREFERENCES_BACKEND", BackendRedis), BackendRedis, BackendRedis, BackendPostgres, BackendMemory)
	cfg.Preferences.KeyPrefix = getEnv("PREFERENCES_KEY_PREFIX", "clinic:preferences:")

	cfg.List.SearchDebounce = time.Duration(parseInt(getEnv("SEARCH_DEBOUNCE_MS", "300"), 300)) * time.Millisecond
	cfg.List.PageSize = parseInt(getEnv("PAGE_SIZE", "10"), 10)
	if cfg.List.PageSize <= 0 {
		cfg.List.PageSize = 10
	}

	cfg.API.URL = getEnv("API_URL", "")
	cfg.API.Token = getEnv("API_TOKEN", "")
	cfg.API.Timeout = time.Duration(parseInt(getEnv("API_TIMEOUT_SECONDS", "10"), 10)) * time.Second

	cfg.Events.Backend = oneOf(getEnv("EVENTS_BACKEND", EventsNone), EventsNone, EventsNone, EventsRedis, EventsMQTT)
	cfg.Events.Stream = getEnv("EVENTS_STREAM", "clinic:record-events")
	cfg.Events.TopicPrefix = getEnv("MQTT_TOPIC_PREFIX", "clinic/records")

	cfg.Database = commoncfg.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "postgres",
		Database: "clinic",
		SSLMode:  "disable",
		MaxConns: 10,
		MaxIdle:  2,
	}
	cfg.Database.LoadFromEnv("DB")

	cfg.Redis = commoncfg.RedisConfig{Addr: "localhost:6379"}
	cfg.Redis.LoadFromEnv("REDIS")

	cfg.MQTT = commoncfg.MQTTConfig{Broker: "tcp://localhost:1883", ClientID: "clinic-data"}
	cfg.MQTT.LoadFromEnv("MQTT")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

// oneOf 小写后不在 allowed 中时返回 def
func oneOf(v, def string, allowed ...string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return def
}
