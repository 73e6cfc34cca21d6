package cfg

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/joho/godotenv"
)

// Поддерживаемые драйверы хранилища документов.
const (
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Http    *HTTPConfig
	Grpc    *GRPCConfig
	Store   *StoreCfg
	Breaker *BreakerCfg
	Redis   *RedisCfg
	Kafka   *KafkaCfg
}

type HTTPConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type GRPCConfig struct {
	Enabled        bool
	Port           string
	NetworkMode    string
	HealthInterval time.Duration
}

type StoreCfg struct {
	Driver         string
	URL            string        // строка подключения (DATABASE_URL)
	DBName         string        // имя базы данных (DATABASE_NAME)
	URLSet         bool          // DATABASE_URL присутствует в окружении
	NameSet        bool          // DATABASE_NAME присутствует в окружении
	ConnectTimeout time.Duration // таймаут первичного подключения
	MigrationsURL  string        // источник миграций для postgres
}

type BreakerCfg struct {
	Enabled      bool
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

// RedisCfg описывает кэш каталога. Пустой Addr отключает кэш.
type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	CatalogTTL  time.Duration
}

func (c *RedisCfg) Enabled() bool {
	return c != nil && c.Addr != ""
}

// KafkaCfg описывает публикацию событий о подписчиках. Пустой список брокеров отключает публикацию.
type KafkaCfg struct {
	Brokers           []string
	Topic             string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
	WriteTimeout      time.Duration
}

func (c *KafkaCfg) Enabled() bool {
	return c != nil && len(c.Brokers) > 0
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
// Если рядом лежит .env, его значения подмешиваются в окружение без перезаписи существующих.
func Load(log logger.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf(".env file could not be parsed: %v", err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	grpc, err := loadGRPCConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	store, err := loadStoreCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	breaker, err := loadBreakerCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:    http,
		Grpc:    grpc,
		Store:   store,
		Breaker: breaker,
		Redis:   redis,
		Kafka:   kafka,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort            = "8000"
		defaultReadTimeout     = 5 * time.Second
		defaultWriteTimeout    = 10 * time.Second
		defaultIdleTimeout     = 60 * time.Second
		defaultShutdownTimeout = 10 * time.Second
	)

	// PORT приоритетнее HTTP_PORT
	port := getEnvOrDefault("PORT", getEnvOrDefault("HTTP_PORT", defaultPort))

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if err != nil {
		log.Errorf(err, "invalid SHUTDOWN_TIMEOUT")
		return nil, err
	}

	return &HTTPConfig{
		Port:            port,
		ReadTimeout:     readTimeout,
		WriteTimeout:    writeTimeout,
		IdleTimeout:     idleTimeout,
		ShutdownTimeout: shutdownTimeout,
	}, nil
}

func loadGRPCConfig(log logger.Logger) (*GRPCConfig, error) {
	const (
		defaultEnabled        = true
		defaultPort           = "8091"
		defaultNetworkMode    = "tcp"
		defaultHealthInterval = 15 * time.Second
	)

	enabled, err := parseBoolEnv("GRPC_ENABLED", defaultEnabled)
	if err != nil {
		log.Errorf(err, "invalid GRPC_ENABLED")
		return nil, err
	}

	interval, err := parseDurationEnv("GRPC_HEALTH_INTERVAL", defaultHealthInterval)
	if err != nil {
		log.Errorf(err, "invalid GRPC_HEALTH_INTERVAL")
		return nil, err
	}

	return &GRPCConfig{
		Enabled:        enabled,
		Port:           getEnvOrDefault("GRPC_PORT", defaultPort),
		NetworkMode:    getEnvOrDefault("GRPC_NETWORK_MODE", defaultNetworkMode),
		HealthInterval: interval,
	}, nil
}

func loadStoreCfg(log logger.Logger) (*StoreCfg, error) {
	const (
		defaultDriver         = StoreDriverMongo
		defaultConnectTimeout = 5 * time.Second
		defaultMigrationsURL  = "file://db/migrations"
	)

	driver := strings.ToLower(getEnvOrDefault("STORE_DRIVER", defaultDriver))
	switch driver {
	case StoreDriverMongo, StoreDriverPostgres, StoreDriverMemory:
	default:
		err := e.Wrap(fmt.Sprintf("STORE_DRIVER=%q", driver), e.ErrUnknownStoreDriver)
		log.Errorf(err, "invalid STORE_DRIVER")
		return nil, err
	}

	connectTimeout, err := parseDurationEnv("DATABASE_CONNECT_TIMEOUT", defaultConnectTimeout)
	if err != nil {
		log.Errorf(err, "invalid DATABASE_CONNECT_TIMEOUT")
		return nil, err
	}

	url := getEnv("DATABASE_URL")
	name := getEnv("DATABASE_NAME")

	return &StoreCfg{
		Driver:         driver,
		URL:            url,
		DBName:         name,
		URLSet:         url != "",
		NameSet:        name != "",
		ConnectTimeout: connectTimeout,
		MigrationsURL:  getEnvOrDefault("MIGRATIONS_URL", defaultMigrationsURL),
	}, nil
}

func loadBreakerCfg(log logger.Logger) (*BreakerCfg, error) {
	const (
		defaultEnabled      = true
		defaultMaxRequests  = 1
		defaultInterval     = 10 * time.Second
		defaultTimeout      = 30 * time.Second
		defaultMinRequests  = 5
		defaultFailureRatio = 0.5
	)

	enabled, err := parseBoolEnv("STORE_BREAKER_ENABLED", defaultEnabled)
	if err != nil {
		log.Errorf(err, "invalid STORE_BREAKER_ENABLED")
		return nil, err
	}

	maxRequests, err := parseIntEnv("STORE_BREAKER_MAX_REQUESTS", defaultMaxRequests)
	if err != nil {
		log.Errorf(err, "invalid STORE_BREAKER_MAX_REQUESTS")
		return nil, err
	}

	interval, err := parseDurationEnv("STORE_BREAKER_INTERVAL", defaultInterval)
	if err != nil {
		log.Errorf(err, "invalid STORE_BREAKER_INTERVAL")
		return nil, err
	}

	timeout, err := parseDurationEnv("STORE_BREAKER_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid STORE_BREAKER_TIMEOUT")
		return nil, err
	}

	minRequests, err := parseIntEnv("STORE_BREAKER_MIN_REQUESTS", defaultMinRequests)
	if err != nil {
		log.Errorf(err, "invalid STORE_BREAKER_MIN_REQUESTS")
		return nil, err
	}

	ratio := defaultFailureRatio
	if v := getEnv("STORE_BREAKER_FAILURE_RATIO"); v != "" {
		ratio, err = strconv.ParseFloat(v, 64)
		if err != nil || ratio <= 0 || ratio > 1 {
			err = e.Wrap("STORE_BREAKER_FAILURE_RATIO", e.ErrIncorrectEnvVariable)
			log.Errorf(err, "invalid STORE_BREAKER_FAILURE_RATIO")
			return nil, err
		}
	}

	return &BreakerCfg{
		Enabled:      enabled,
		MaxRequests:  uint32(maxRequests),
		Interval:     interval,
		Timeout:      timeout,
		MinRequests:  uint32(minRequests),
		FailureRatio: ratio,
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultDB           = 0
		defaultMaxRetries   = 1
		defaultDialTimeout  = 2 * time.Second
		defaultReadTimeout  = time.Second
		defaultWriteTimeout = time.Second
		defaultCatalogTTL   = time.Minute
	)

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("REDIS_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid REDIS_MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("REDIS_DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("REDIS_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid REDIS_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("REDIS_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid REDIS_WRITE_TIMEOUT")
		return nil, err
	}

	catalogTTL, err := parseDurationEnv("CATALOG_TTL", defaultCatalogTTL)
	if err != nil {
		log.Errorf(err, "invalid CATALOG_TTL")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        getEnv("REDIS_ADDR"),
		Password:    getEnv("REDIS_PASSWORD"),
		User:        getEnv("REDIS_USER"),
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		CatalogTTL:  catalogTTL,
	}, nil
}

func loadKafkaCfg(log logger.Logger) (*KafkaCfg, error) {
	const (
		defaultTopic             = "storefront.subscribers"
		defaultNetworkMode       = "tcp"
		defaultPartitions        = 1
		defaultReplicationFactor = 1
		defaultWriteTimeout      = 10 * time.Second
	)

	var brokers []string
	for _, b := range strings.Split(getEnv("KAFKA_BROKERS"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	writeTimeout, err := parseDurationEnv("KAFKA_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid KAFKA_WRITE_TIMEOUT")
		return nil, err
	}

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		log.Errorf(err, "invalid KAFKA_PARTITIONS")
		return nil, err
	}

	replicationFactor, err := parseIntEnv("KAFKA_REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		log.Errorf(err, "invalid KAFKA_REPLICATION_FACTOR")
		return nil, err
	}

	return &KafkaCfg{
		Brokers:           brokers,
		Topic:             getEnvOrDefault("KAFKA_SUBSCRIBER_TOPIC", defaultTopic),
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		WriteTimeout:      writeTimeout,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil || intValue < 0 {
		return defaultValue, e.Wrap(key, e.ErrIncorrectEnvVariable)
	}

	return intValue, nil
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue, e.Wrap(key, e.ErrIncorrectEnvVariable)
	}

	return b, nil
}
