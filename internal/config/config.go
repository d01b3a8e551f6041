package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type AppConf struct {
	Env             string `mapstructure:"env"`
	Port            int    `mapstructure:"port"`
	ShutdownSeconds int    `mapstructure:"shutdown_seconds"`
	RateLimitPerMin int    `mapstructure:"rate_limit_per_min"`
}

type StoreConf struct {
	Driver string `mapstructure:"driver"`
}

type MongoConf struct {
	URI                string `mapstructure:"uri"`
	Database           string `mapstructure:"database"`
	UsersCollection    string `mapstructure:"users_collection"`
	PostsCollection    string `mapstructure:"posts_collection"`
	MessagesCollection string `mapstructure:"messages_collection"`
	OpTimeoutSeconds   int    `mapstructure:"op_timeout_seconds"`
	ConnectMaxSeconds  int    `mapstructure:"connect_max_seconds"`
}

type RedisConf struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type KafkaConf struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type CORSConf struct {
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

type Config struct {
	App   AppConf   `mapstructure:"app"`
	Store StoreConf `mapstructure:"store"`
	Mongo MongoConf `mapstructure:"mongo"`
	Redis RedisConf `mapstructure:"redis"`
	Kafka KafkaConf `mapstructure:"kafka"`
	CORS  CORSConf  `mapstructure:"cors"`

	// derived
	ShutdownTimeout time.Duration
	OpTimeout       time.Duration
	ConnectTimeout  time.Duration
}

func (c *Config) Development() bool { return c.App.Env == "development" }

// Load reads path (optional; a missing file is not an error), then .env, then
// the process environment. MONGO_URI overrides mongo.uri, APP_PORT overrides
// app.port and so on.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// names the service has always been deployed with
	_ = v.BindEnv("app.port", "APP_PORT", "PORT")
	_ = v.BindEnv("mongo.uri", "MONGO_URI", "MONGODB_URI")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if s := v.GetString("kafka.brokers"); s != "" && len(cfg.Kafka.Brokers) <= 1 {
		cfg.Kafka.Brokers = splitList(s)
	}

	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSeconds) * time.Second
	cfg.OpTimeout = time.Duration(cfg.Mongo.OpTimeoutSeconds) * time.Second
	cfg.ConnectTimeout = time.Duration(cfg.Mongo.ConnectMaxSeconds) * time.Second

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "production")
	v.SetDefault("app.port", 5000)
	v.SetDefault("app.shutdown_seconds", 15)
	v.SetDefault("app.rate_limit_per_min", 0)
	v.SetDefault("store.driver", DriverMongo)
	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.database", "socialDB")
	v.SetDefault("mongo.users_collection", "socialusers")
	v.SetDefault("mongo.posts_collection", "posts")
	v.SetDefault("mongo.messages_collection", "messages")
	v.SetDefault("mongo.op_timeout_seconds", 5)
	v.SetDefault("mongo.connect_max_seconds", 30)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "social:ratelimit")
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "social.messages")
	v.SetDefault("cors.allowed_origins", "*")
}

func validate(cfg *Config) error {
	if cfg.App.Port <= 0 {
		return errors.New("app.port missing or invalid")
	}
	if cfg.App.RateLimitPerMin < 0 {
		return errors.New("app.rate_limit_per_min must not be negative")
	}
	if cfg.Mongo.OpTimeoutSeconds <= 0 {
		return errors.New("mongo.op_timeout_seconds must be positive")
	}
	if cfg.Mongo.ConnectMaxSeconds <= 0 {
		// zero would make the connect backoff retry forever
		return errors.New("mongo.connect_max_seconds must be positive")
	}

	switch cfg.Store.Driver {
	case DriverMemory:
	case DriverMongo:
		if cfg.Mongo.URI == "" {
			return errors.New("mongo.uri missing (set MONGO_URI)")
		}
		if cfg.Mongo.Database == "" {
			return errors.New("mongo.database missing")
		}
	default:
		return errors.New("store.driver must be mongo or memory")
	}

	if len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.Topic == "" {
		return errors.New("kafka.topic required when kafka.brokers is set")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
