package config

import (
	"fmt"
	"planets-galaxy/internal/shared/utils"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Database    DatabaseConfig
	Redis       RedisConfig
	Logging     LoggingConfig
	Generator   GeneratorConfig
}

type RedisConfig struct {
	Enabled  bool
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
	LockTTL  time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	WritesPerSecond float64
	WriteBurst      int
}

type LoggingConfig struct {
	Level      string
	Format     string
	JSONFormat bool
}

type GeneratorConfig struct {
	Seed              string
	Scale             string
	Store             string
	FieldsPerSector   int
	DetourProbability float64
	AxisBias          float64
	LanesFile         string
}

var GlobalConfig *Config

func Init() error {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	config, err := Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	GlobalConfig = config
	return nil
}

// Load reads the configuration from the environment without touching GlobalConfig
func Load() (*Config, error) {
	config := &Config{
		Environment: utils.GetEnv("ENVIRONMENT", "development"),
		Database:    loadDatabaseConfig(),
		Redis:       loadRedisConfig(),
		Logging:     loadLoggingConfig(),
		Generator:   loadGeneratorConfig(),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func loadRedisConfig() RedisConfig {
	enabled := utils.GetEnv("REDIS_ENABLED", "false") == "true"
	db, _ := strconv.Atoi(utils.GetEnv("REDIS_DB", "0"))
	lockTTL, _ := strconv.Atoi(utils.GetEnv("REDIS_LOCK_TTL_SECONDS", "600"))

	return RedisConfig{
		Enabled:  enabled,
		URL:      utils.GetEnv("REDIS_URL", ""),
		Host:     utils.GetEnv("REDIS_HOST", "localhost"),
		Port:     utils.GetEnv("REDIS_PORT", "6379"),
		Password: utils.GetEnv("REDIS_PASSWORD", ""),
		DB:       db,
		LockTTL:  time.Duration(lockTTL) * time.Second,
	}
}

func loadDatabaseConfig() DatabaseConfig {
	maxOpenConns, _ := strconv.Atoi(utils.GetEnv("DB_MAX_OPEN_CONNS", "10"))
	maxIdleConns, _ := strconv.Atoi(utils.GetEnv("DB_MAX_IDLE_CONNS", "5"))
	connMaxLifetime, _ := strconv.Atoi(utils.GetEnv("DB_CONN_MAX_LIFETIME_MINUTES", "5"))

	return DatabaseConfig{
		Host:            utils.GetEnv("DB_HOST", "localhost"),
		Port:            utils.GetEnv("DB_PORT", "5432"),
		User:            utils.GetEnv("DB_USER", "postgres"),
		Password:        utils.GetEnv("DB_PASSWORD", "postgres"),
		Name:            utils.GetEnv("DB_NAME", "planets"),
		SSLMode:         utils.GetEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    maxOpenConns,
		MaxIdleConns:    maxIdleConns,
		ConnMaxLifetime: time.Duration(connMaxLifetime) * time.Minute,
		WritesPerSecond: utils.GetEnvFloat("DB_WRITES_PER_SECOND", 50),
		WriteBurst:      utils.GetEnvInt("DB_WRITE_BURST", 10),
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")
	jsonFormat := environment == "production" || utils.GetEnv("LOG_FORMAT", "text") == "json"

	return LoggingConfig{
		Level:      utils.GetEnv("LOG_LEVEL", "info"),
		Format:     utils.GetEnv("LOG_FORMAT", "text"),
		JSONFormat: jsonFormat,
	}
}

func loadGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:              utils.GetEnv("GALAXY_SEED", "planets"),
		Scale:             utils.GetEnv("GALAXY_SCALE", "medium"),
		Store:             utils.GetEnv("GALAXY_STORE", "postgres"),
		FieldsPerSector:   utils.GetEnvInt("GALAXY_FIELDS_PER_SECTOR", 20),
		DetourProbability: utils.GetEnvFloat("HYPERLANE_DETOUR_PROBABILITY", 0.15),
		AxisBias:          utils.GetEnvFloat("HYPERLANE_AXIS_BIAS", 0.70),
		LanesFile:         utils.GetEnv("HYPERLANE_LANES_FILE", ""),
	}
}

func (c *Config) validate() error {
	if c.Generator.Seed == "" {
		return fmt.Errorf("GALAXY_SEED is required")
	}

	switch c.Generator.Scale {
	case "small", "medium", "large", "auto":
	default:
		return fmt.Errorf("GALAXY_SCALE must be one of small, medium, large, auto")
	}

	switch c.Generator.Store {
	case "postgres", "memory":
	default:
		return fmt.Errorf("GALAXY_STORE must be postgres or memory")
	}

	if c.Generator.FieldsPerSector < 5 {
		return fmt.Errorf("GALAXY_FIELDS_PER_SECTOR must be at least 5")
	}

	if c.Generator.DetourProbability < 0 || c.Generator.DetourProbability > 1 {
		return fmt.Errorf("HYPERLANE_DETOUR_PROBABILITY must be within [0,1]")
	}

	if c.Generator.AxisBias < 0 || c.Generator.AxisBias > 1 {
		return fmt.Errorf("HYPERLANE_AXIS_BIAS must be within [0,1]")
	}

	if c.Generator.Store == "postgres" {
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
		if c.Database.WritesPerSecond <= 0 {
			return fmt.Errorf("DB_WRITES_PER_SECOND must be positive")
		}
	}

	return nil
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
