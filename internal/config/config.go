package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// Config 配置主体
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	DB      DBConfig      `mapstructure:"database"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Cache   CacheConfig   `mapstructure:"cache"`
	JWT     JWTConfig     `mapstructure:"jwt"`
	SMTP    SMTPConfig    `mapstructure:"smtp"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	Storage StorageConfig `mapstructure:"storage"`
	Outbox  OutboxConfig  `mapstructure:"outbox"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DBConfig 数据库配置; driver 为 mysql 或 sqlite
type DBConfig struct {
	Driver      string `mapstructure:"driver"`
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	LogLevel    string `mapstructure:"log_level"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// CacheConfig 列表页缓存; driver 为 redis 或 memory
type CacheConfig struct {
	Driver   string `mapstructure:"driver"`
	IndexTTL int    `mapstructure:"index_ttl"`
	Size     int    `mapstructure:"size"`
}

func (c CacheConfig) IndexTTLDuration() time.Duration {
	return time.Duration(c.IndexTTL) * time.Second
}

type JWTConfig struct {
	AccessSecret  string `mapstructure:"access_secret"`
	RefreshSecret string `mapstructure:"refresh_secret"`
	AccessTTL     int    `mapstructure:"access_ttl"`
	RefreshTTL    int    `mapstructure:"refresh_ttl"`
}

func (c JWTConfig) AccessTTLDuration() time.Duration {
	return time.Duration(c.AccessTTL) * time.Minute
}

func (c JWTConfig) RefreshTTLDuration() time.Duration {
	return time.Duration(c.RefreshTTL) * time.Hour
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// StorageConfig 图片存储; driver 为 local 或 minio
type StorageConfig struct {
	Driver    string      `mapstructure:"driver"`
	MediaRoot string      `mapstructure:"media_root"`
	MediaURL  string      `mapstructure:"media_url"`
	MaxSize   int64       `mapstructure:"max_size"`
	MinIO     MinIOConfig `mapstructure:"minio"`
}

type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	PublicURL string `mapstructure:"public_url"`
}

type OutboxConfig struct {
	BatchSize     int    `mapstructure:"batch_size"`
	Interval      int    `mapstructure:"interval"`
	MaxRetry      int    `mapstructure:"max_retry"`
	RetentionDays int    `mapstructure:"retention_days"`
	CleanupSpec   string `mapstructure:"cleanup_spec"`
}

func (c OutboxConfig) IntervalDuration() time.Duration {
	return time.Duration(c.Interval) * time.Millisecond
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.level", "info")

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.dsn", "user:password@tcp(127.0.0.1:3306)/yatube?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 50)
	v.SetDefault("database.max_lifetime", 60)
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("cache.driver", "redis")
	v.SetDefault("cache.index_ttl", 20)
	v.SetDefault("cache.size", 1024)

	v.SetDefault("jwt.access_secret", "")
	v.SetDefault("jwt.refresh_secret", "")
	v.SetDefault("jwt.access_ttl", 30)
	v.SetDefault("jwt.refresh_ttl", 24)

	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "Yatube <no-reply@yatube.local>")

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "yatube.events")

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.media_root", "./media")
	v.SetDefault("storage.media_url", "/media/")
	v.SetDefault("storage.max_size", 5<<20)
	v.SetDefault("storage.minio.endpoint", "")
	v.SetDefault("storage.minio.access_key", "")
	v.SetDefault("storage.minio.secret_key", "")
	v.SetDefault("storage.minio.bucket", "yatube")
	v.SetDefault("storage.minio.use_ssl", false)
	v.SetDefault("storage.minio.public_url", "")

	v.SetDefault("outbox.batch_size", 200)
	v.SetDefault("outbox.interval", 1000)
	v.SetDefault("outbox.max_retry", 5)
	v.SetDefault("outbox.retention_days", 7)
	v.SetDefault("outbox.cleanup_spec", "@daily")
}

// Load 从 configDir/config.yaml 读取配置, YATUBE_ 前缀的环境变量覆盖文件配置
func Load(configDir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("YATUBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.JWT.AccessSecret == "" || cfg.JWT.RefreshSecret == "" {
		return nil, errors.New("jwt.access_secret and jwt.refresh_secret must be set")
	}
	return &cfg, nil
}

// LoadConfig 加载配置并填充 Cfg
func LoadConfig(configDir string) error {
	cfg, err := Load(configDir)
	if err != nil {
		return err
	}
	Cfg = cfg
	return nil
}
