package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	OTPStrategyProvider   = "provider"
	OTPStrategySelfIssued = "self_issued"
)

type (
	APP struct {
		Name string
		Host string
		Port string
		Env  string
	}
	Store struct {
		Driver string
	}
	Mongo struct {
		URI      string
		Database string
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}
	Redis struct {
		URL               string
		OTPRequestsPerMin int
	}
	OTP struct {
		Strategy       string
		Expiry         time.Duration
		DevLookup      bool
		FirebaseAPIKey string
	}
	Grant struct {
		Secret string
		TTL    time.Duration
	}
	Timeouts struct {
		List     time.Duration
		Mutation time.Duration
		OTP      time.Duration
	}

	Config struct {
		App      APP
		Store    Store
		Mongo    Mongo
		DB       DB
		MQ       MQ
		Redis    Redis
		OTP      OTP
		Grant    Grant
		Timeouts Timeouts
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	// bare numbers are seconds
	if s, err := strconv.Atoi(v); err == nil && s > 0 {
		return time.Duration(s) * time.Second
	}
	return def
}

func getInt(key string, def int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return def
}

func Load() Config {
	app := APP{
		Name: getEnv("SERVICE_NAME", "useradmin"),
		Host: getEnv("SERVICE_HOST", ""),
		Port: getEnv("SERVICE_PORT", "8080"),
		Env:  getEnv("SERVICE_ENV", ""),
	}
	store := Store{
		Driver: strings.ToLower(getEnv("STORE_DRIVER", StoreMongo)),
	}
	mongo := Mongo{
		URI:      getEnv("MONGO_URI", ""),
		Database: getEnv("MONGO_DATABASE", "useradmin"),
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", ""),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", "useradmin.events"),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", "useradmin.audit"),
	}
	redis := Redis{
		URL:               getEnv("REDIS_URL", ""),
		OTPRequestsPerMin: getInt("OTP_REQUESTS_PER_MINUTE", 5),
	}
	otp := OTP{
		Strategy:       strings.ToLower(getEnv("OTP_STRATEGY", OTPStrategySelfIssued)),
		Expiry:         getDuration("OTP_EXPIRY", 10*time.Minute),
		DevLookup:      getBool("OTP_DEV_LOOKUP", false),
		FirebaseAPIKey: getEnv("FIREBASE_API_KEY", ""),
	}
	grant := Grant{
		Secret: getEnv("GRANT_SECRET", ""),
		TTL:    getDuration("GRANT_TTL", 2*time.Minute),
	}
	timeouts := Timeouts{
		List:     getDuration("TIMEOUT_LIST", 10*time.Second),
		Mutation: getDuration("TIMEOUT_MUTATION", 5*time.Second),
		OTP:      getDuration("TIMEOUT_OTP", 5*time.Second),
	}

	return Config{
		App:      app,
		Store:    store,
		Mongo:    mongo,
		DB:       db,
		MQ:       mq,
		Redis:    redis,
		OTP:      otp,
		Grant:    grant,
		Timeouts: timeouts,
	}
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case StoreMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required for store driver %q", c.Store.Driver)
		}
	case StorePostgres:
		if _, err := c.DBDSN(); err != nil {
			return err
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	switch c.OTP.Strategy {
	case OTPStrategyProvider:
		if c.OTP.FirebaseAPIKey == "" {
			return fmt.Errorf("FIREBASE_API_KEY is required for otp strategy %q", c.OTP.Strategy)
		}
	case OTPStrategySelfIssued:
	default:
		return fmt.Errorf("unknown otp strategy %q", c.OTP.Strategy)
	}

	if c.Grant.Secret == "" {
		return fmt.Errorf("GRANT_SECRET is required")
	}

	return nil
}

func (c Config) IsProduction() bool {
	switch c.App.Env {
	case "release", "prod", "production":
		return true
	}
	return false
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

// MQEnabled reports whether audit events should be shipped to RabbitMQ.
func (c Config) MQEnabled() bool { return c.MQ.Host != "" }

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
