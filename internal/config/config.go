package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"note-share-be/internal/constant"
)

const (
	StoreJSON     = "json"
	StoreBolt     = "bolt"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"

	BlobS3    = "s3"
	BlobMinio = "minio"
)

type Config struct {
	Port        string
	BodyLimitMB int

	StoreDriver        string
	DataFile           string
	BoltPath           string
	DBConnectionString string
	MongoURI           string
	MongoDatabase      string

	BlobDriver        string
	BlobEndpoint      string
	BlobRegion        string
	BlobAccessKey     string
	BlobSecretKey     string
	BlobBucket        string
	BlobPublicBaseURL string
	BlobFolder        string

	NoteEventsTopic string
}

// Load reads the process environment. Call godotenv.Load first to pick up a
// .env file.
func Load() (Config, error) {
	cfg := Config{
		Port:               getEnv("PORT", "3000"),
		StoreDriver:        strings.ToLower(getEnv("STORE_DRIVER", StoreJSON)),
		DataFile:           getEnv("DATA_FILE", "data/notes.json"),
		BoltPath:           getEnv("BOLT_PATH", "data/notes.db"),
		DBConnectionString: os.Getenv("DB_CONNECTION_STRING"),
		MongoURI:           getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:      getEnv("MONGODB_DATABASE", "notes"),
		BlobDriver:         strings.ToLower(getEnv("BLOB_DRIVER", BlobS3)),
		BlobEndpoint:       os.Getenv("BLOB_ENDPOINT"),
		BlobRegion:         getEnv("BLOB_REGION", "garage"),
		BlobAccessKey:      os.Getenv("BLOB_ACCESS_KEY"),
		BlobSecretKey:      os.Getenv("BLOB_SECRET_KEY"),
		BlobBucket:         os.Getenv("BLOB_BUCKET"),
		BlobPublicBaseURL:  os.Getenv("BLOB_PUBLIC_BASE_URL"),
		BlobFolder:         getEnv("BLOB_FOLDER", constant.DefaultBlobFolder),
		NoteEventsTopic:    getEnv("NOTE_EVENTS_TOPIC", "note-events"),
	}

	limit, err := strconv.Atoi(getEnv("BODY_LIMIT_MB", "50"))
	if err != nil || limit <= 0 {
		return Config{}, fmt.Errorf("BODY_LIMIT_MB must be a positive integer, got %q", os.Getenv("BODY_LIMIT_MB"))
	}
	cfg.BodyLimitMB = limit

	switch cfg.StoreDriver {
	case StoreJSON, StoreBolt, StoreMongo:
	case StorePostgres:
		if cfg.DBConnectionString == "" {
			return Config{}, fmt.Errorf("DB_CONNECTION_STRING is required for STORE_DRIVER=postgres")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	switch cfg.BlobDriver {
	case BlobS3, BlobMinio:
	default:
		return Config{}, fmt.Errorf("unknown BLOB_DRIVER %q", cfg.BlobDriver)
	}
	if cfg.BlobEndpoint == "" || cfg.BlobBucket == "" {
		return Config{}, fmt.Errorf("BLOB_ENDPOINT and BLOB_BUCKET are required")
	}

	return cfg, nil
}

func (c Config) BodyLimitBytes() int {
	return c.BodyLimitMB * 1024 * 1024
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
