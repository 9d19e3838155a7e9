package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	envPort                  = "PORT"
	envServerReadTimeout     = "SERVER_READ_TIMEOUT"
	envServerWriteTimeout    = "SERVER_WRITE_TIMEOUT"
	envServerShutdownTimeout = "SERVER_SHUTDOWN_TIMEOUT"
	envDBHost                = "DB_HOST"
	envDBPort                = "DB_PORT"
	envDBName                = "DB_NAME"
	envDBUser                = "DB_USER"
	envDBPassword            = "DB_PASSWORD"
	envDBSSLMode             = "DB_SSL_MODE"
	envDBMaxConns            = "DB_MAX_CONNS"
	envDBMinConns            = "DB_MIN_CONNS"
	envAWSRegion             = "AWS_REGION"
	envAWSAccessKeyID        = "AWS_ACCESS_KEY_ID"
	envAWSSecretAccessKey    = "AWS_SECRET_ACCESS_KEY"
	envS3Bucket              = "S3_BUCKET_NAME"
	envCognitoUserPoolID     = "COGNITO_USER_POOL_ID"
	envCognitoClientID       = "COGNITO_CLIENT_ID"
	envCognitoClientSecret   = "COGNITO_CLIENT_SECRET"
	envCognitoJWKSURL        = "COGNITO_JWKS_URL"
	envDownloadURLTTL        = "DOWNLOAD_URL_TTL"
	envMaxUploadSize         = "MAX_UPLOAD_SIZE"
)

const (
	defaultServerPort         = "8080"
	defaultServerReadTimeout  = 10 * time.Second
	defaultServerWriteTimeout = 30 * time.Second
	defaultServerShutdown     = 10 * time.Second
	defaultDBHost             = "localhost"
	defaultDBPort             = 5432
	defaultDBName             = "cloudstore"
	defaultDBUser             = "cloudstore_app"
	defaultDBSSLMode          = "disable"
	defaultDBMaxConns         = 25
	defaultDBMinConns         = 5
	defaultPresignedURLTTL    = 15 * time.Minute
	defaultMaxUploadSize      = int64(512 * 1024 * 1024)

	errPortRequiredFmt           = "PORT must be set"
	errDBPasswordRequiredFmt     = "DB_PASSWORD must be set"
	errRegionRequiredFmt         = "AWS_REGION must be set"
	errBucketRequiredFmt         = "S3_BUCKET_NAME must be set"
	errUserPoolRequiredFmt       = "COGNITO_USER_POOL_ID must be set"
	errCognitoClientRequiredFmt  = "COGNITO_CLIENT_ID must be set"
	errInvalidConfigurationFmt   = "invalid configuration: %w"
	errRequiredEnvNotSetFmt      = "required environment variable %s is not set"
	defaultCognitoJWKSURLPattern = "https://cognito-idp.%s.amazonaws.com/%s/.well-known/jwks.json"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	AWS      AWSConfig
	Cognito  CognitoConfig
	App      AppConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
	MaxConns int
	MinConns int
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
}

type CognitoConfig struct {
	UserPoolID   string
	ClientID     string
	ClientSecret string
	JWKSURL      string
}

type AppConfig struct {
	PresignedURLTTL time.Duration
	MaxUploadSize   int64
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv(envPort, defaultServerPort),
			ReadTimeout:     getDurationEnv(envServerReadTimeout, defaultServerReadTimeout),
			WriteTimeout:    getDurationEnv(envServerWriteTimeout, defaultServerWriteTimeout),
			ShutdownTimeout: getDurationEnv(envServerShutdownTimeout, defaultServerShutdown),
		},
		Database: DatabaseConfig{
			Host:     getEnv(envDBHost, defaultDBHost),
			Port:     getIntEnv(envDBPort, defaultDBPort),
			Database: getEnv(envDBName, defaultDBName),
			User:     getEnv(envDBUser, defaultDBUser),
			Password: requireEnv(envDBPassword),
			SSLMode:  getEnv(envDBSSLMode, defaultDBSSLMode),
			MaxConns: getIntEnv(envDBMaxConns, defaultDBMaxConns),
			MinConns: getIntEnv(envDBMinConns, defaultDBMinConns),
		},
		AWS: AWSConfig{
			Region:          requireEnv(envAWSRegion),
			AccessKeyID:     requireEnv(envAWSAccessKeyID),
			SecretAccessKey: requireEnv(envAWSSecretAccessKey),
			BucketName:      requireEnv(envS3Bucket),
		},
		Cognito: CognitoConfig{
			UserPoolID:   requireEnv(envCognitoUserPoolID),
			ClientID:     requireEnv(envCognitoClientID),
			ClientSecret: getEnv(envCognitoClientSecret, ""),
			JWKSURL:      getEnv(envCognitoJWKSURL, ""),
		},
		App: AppConfig{
			PresignedURLTTL: getDurationEnv(envDownloadURLTTL, defaultPresignedURLTTL),
			MaxUploadSize:   getInt64Env(envMaxUploadSize, defaultMaxUploadSize),
		},
	}

	if cfg.Cognito.JWKSURL == "" {
		cfg.Cognito.JWKSURL = fmt.Sprintf(defaultCognitoJWKSURLPattern, cfg.AWS.Region, cfg.Cognito.UserPoolID)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf(errPortRequiredFmt)
	}

	if c.Database.Password == "" {
		return fmt.Errorf(errDBPasswordRequiredFmt)
	}

	if c.AWS.Region == "" {
		return fmt.Errorf(errRegionRequiredFmt)
	}

	if c.AWS.BucketName == "" {
		return fmt.Errorf(errBucketRequiredFmt)
	}

	if c.Cognito.UserPoolID == "" {
		return fmt.Errorf(errUserPoolRequiredFmt)
	}

	if c.Cognito.ClientID == "" {
		return fmt.Errorf(errCognitoClientRequiredFmt)
	}

	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func requireEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf(errRequiredEnvNotSetFmt, key))
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}
