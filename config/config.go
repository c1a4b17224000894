package config

import (
	"fmt"
	"sync"

	"hotel/shared/constant"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"production"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT"      default:"5000"       validate:"required,numeric"`
		Host     string `envconfig:"HOST"      default:"0.0.0.0"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"5"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name          string `envconfig:"NAME"           default:"hotel-api"`
		Version       string `envconfig:"VERSION"        default:"1.0.0"`
		Timezone      string `envconfig:"TIMEZONE"       default:"UTC"`
		SwaggerEnable bool   `envconfig:"SWAGGER_ENABLE"`
		CORS          struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS" default:"true"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"   default:"Content-Type,Authorization"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"   default:"GET,POST,PUT,DELETE,OPTIONS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"   default:"*"`
			Enable           bool     `envconfig:"ENABLE"            default:"true"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"   default:"300"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"100" validate:"gte=1"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"  validate:"gte=1"`
		} `envconfig:"RATE_LIMITER"`
		MaxBodyBytes int64 `envconfig:"MAX_BODY_BYTES" default:"10485760"`
	} `envconfig:"APP"`

	Cache struct {
		Enable bool `envconfig:"ENABLE"`
		Redis  struct {
			Primary struct {
				Host     string `envconfig:"HOST" default:"localhost"`
				Port     string `envconfig:"PORT" default:"6379"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	DB struct {
		Driver string `envconfig:"DRIVER" default:"mongo" validate:"oneof=mongo postgres"`
		Mongo  struct {
			URI            string `envconfig:"URI"             default:"mongodb://localhost:27017"`
			Name           string `envconfig:"NAME"            default:"hotel"`
			TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS" default:"10"`
			Transactions   bool   `envconfig:"TRANSACTIONS"`
		} `envconfig:"MONGO"`
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"       default:"3"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MigrationTable string `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Prefix         string `envconfig:"PREFIX"`
			Read           struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Enable       bool     `envconfig:"ENABLE"`
		Brokers      []string `envconfig:"BROKERS"       default:"localhost:9092"`
		TopicBooking string   `envconfig:"TOPIC_BOOKING" default:"hotel.bookings"`
		SASL         struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
	} `envconfig:"KAFKA"`

	Metrics struct {
		Enable bool   `envconfig:"ENABLE" default:"true"`
		Port   string `envconfig:"PORT"   default:"9100"`
	} `envconfig:"METRICS"`

	External struct {
		Otel struct {
			Enable      bool    `envconfig:"ENABLE"`
			Endpoint    string  `envconfig:"ENDPOINT"`
			SampleRatio float64 `envconfig:"SAMPLE_RATIO" default:"1" validate:"gte=0,lte=1"`
		} `envconfig:"OTEL"`
		S3 struct {
			Enable     bool   `envconfig:"ENABLE"`
			Region     string `envconfig:"REGION"      default:"us-east-1"`
			Endpoint   string `envconfig:"ENDPOINT"`
			AccessKey  string `envconfig:"ACCESS_KEY"`
			SecretKey  string `envconfig:"SECRET_KEY"`
			BucketName string `envconfig:"BUCKET_NAME"`
			PublicURL  string `envconfig:"PUBLIC_URL"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

// IsDevelopment reports whether diagnostic details may be exposed to clients.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == constant.ServerEnvDevelopment
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

// Load reads the configuration from the environment and checks it.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing environment variables: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Init loads .env, if present, and the process environment into the shared Config once.
func Init() error {
	var err error

	once.Do(func() {
		if loadErr := godotenv.Load(".env"); loadErr != nil {
			log.Warn().Err(loadErr).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		var loaded *Config

		loaded, err = Load()
		if err != nil {
			return
		}

		conf = *loaded
		initialized = true

		log.Info().Str("driver", conf.DB.Driver).Msg("Service configuration initialized successfully")
	})

	return err
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
