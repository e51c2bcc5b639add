package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	DocumentStore DocumentStoreConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Admin         AdminConfig
	Storage       StorageConfig
	Security      SecurityConfig
	CORS          CORSConfig
	Jobs          JobsConfig
}

type ServerConfig struct {
	Port     string
	Env      string
	LogLevel string
	// BasePath prefixes root relative asset references.
	BasePath string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + strconv.Itoa(c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// Document store backends.
const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

type DocumentStoreConfig struct {
	Backend        string
	MongoURI       string
	MongoDatabase  string
	ConnectTimeout time.Duration
}

type RedisConfig struct {
	URL      string
	Password string
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// AdminConfig is the single administrator allowed on admin routes.
type AdminConfig struct {
	Email        string
	Name         string
	PasswordHash string
}

type StorageConfig struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	UsePathStyle    bool
	// UploadPartSize is the multipart chunk size in bytes; 0 keeps the SDK default.
	UploadPartSize  int64
	SignedURLExpiry time.Duration
	MaxUploadBytes  int64
	StallTimeout    time.Duration
	DeleteTimeout   time.Duration
	ResolveWorkers  int
}

// Enabled reports whether an object store bucket is configured.
func (c StorageConfig) Enabled() bool {
	return strings.TrimSpace(c.Bucket) != ""
}

type SecurityConfig struct {
	SessionEncryptionKey string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type JobsConfig struct {
	OrphanSweepInterval time.Duration
	OrphanGracePeriod   time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:     getEnv("SERVER_PORT", "8080"),
			Env:      getEnv("SERVER_ENV", "development"),
			LogLevel: getEnv("LOG_LEVEL", ""),
			BasePath: strings.TrimRight(getEnv("BASE_PATH", ""), "/"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "veab"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		DocumentStore: DocumentStoreConfig{
			Backend:        strings.ToLower(getEnv("DOCUMENT_STORE", BackendPostgres)),
			MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDatabase:  getEnv("MONGO_DATABASE", "veab"),
			ConnectTimeout: getEnvAsDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Admin: AdminConfig{
			Email:        strings.ToLower(strings.TrimSpace(getEnv("ADMIN_EMAIL", ""))),
			Name:         getEnv("ADMIN_NAME", "Site Admin"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Storage: StorageConfig{
			Bucket:          getEnv("S3_BUCKET", ""),
			Region:          getEnv("S3_REGION", "ap-south-1"),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			UsePathStyle:    getEnvAsBool("S3_USE_PATH_STYLE", false),
			UploadPartSize:  int64(getEnvAsInt("S3_UPLOAD_PART_SIZE", 0)),
			SignedURLExpiry: getEnvAsDuration("SIGNED_URL_EXPIRY", 15*time.Minute),
			MaxUploadBytes:  int64(getEnvAsInt("UPLOAD_MAX_BYTES", 5<<20)),
			StallTimeout:    getEnvAsDuration("UPLOAD_STALL_TIMEOUT", 60*time.Second),
			DeleteTimeout:   getEnvAsDuration("OBJECT_DELETE_TIMEOUT", 10*time.Second),
			ResolveWorkers:  getEnvAsInt("IMAGE_RESOLVE_WORKERS", 32),
		},
		Security: SecurityConfig{
			SessionEncryptionKey: getEnv("SESSION_ENCRYPTION_KEY", "0000000000000000000000000000000000000000000000000000000000000000"), // 32-bytes hex string
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Jobs: JobsConfig{
			OrphanSweepInterval: getEnvAsDuration("ORPHAN_SWEEP_INTERVAL", 6*time.Hour),
			OrphanGracePeriod:   getEnvAsDuration("ORPHAN_GRACE_PERIOD", 24*time.Hour),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
