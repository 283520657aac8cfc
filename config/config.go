package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"paintrack/internal/infrastructure/broker"
	"paintrack/internal/infrastructure/database"
	"paintrack/internal/infrastructure/imageproc"
	"paintrack/internal/infrastructure/minio"
	"paintrack/internal/infrastructure/s3"
	"paintrack/internal/presentation/middleware"
	"paintrack/pkg/logger"
)

const (
	VisibilityPolicy = "policy"
	VisibilityACL    = "acl"
	VisibilityNone   = "none"
)

// Config represents the configs used by services on system.
type Config struct {
	Environment     string                 `yaml:"environment"`
	HTTP            HTTPConfig             `yaml:"http"`
	MinIOClient     minio.ClientConfig     `yaml:"minio_client"`
	MinIOUploader   minio.UploaderConfig   `yaml:"minio_uploader"`
	MinIORemover    minio.RemoverConfig    `yaml:"minio_remover"`
	S3ACL           s3.Config              `yaml:"s3_acl"`
	Upload          middleware.GuardConfig `yaml:"upload"`
	Image           ImageConfig            `yaml:"image"`
	DBConfig        database.Config        `yaml:"db_config"`
	BrokerConfig    broker.Config          `yaml:"redis_broker_config"`
	PublisherConfig broker.PublisherConfig `yaml:"publisher_config"`
	Logger          logger.Config          `yaml:"logger"`
	JWTSecret       string                 `yaml:"-"`
}

type HTTPConfig struct {
	Address   string `yaml:"address"`
	BodyLimit string `yaml:"body_limit"`
	// RateLimit is requests per second per client IP; zero disables it.
	RateLimit         float64 `yaml:"rate_limit"`
	ShutdownTimeoutMS int64   `yaml:"shutdown_timeout_in_ms"`
}

type ImageConfig struct {
	Quality   int `yaml:"quality"`
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`
	// MaxConcurrentTranscodes defaults to the number of CPUs.
	MaxConcurrentTranscodes int64            `yaml:"max_concurrent_transcodes"`
	ResponsiveSizes         []imageproc.Size `yaml:"responsive_sizes"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}
	defer file.Close()

	config := &Config{}

	decoder := yaml.NewDecoder(file)

	if err := decoder.Decode(config); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	if config.Environment != "prod" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, Error{
				reason: err.Error(),
			}
		}
	}

	config.MinIOClient.AccessKey = os.Getenv("MINIO_ROOT_USER")
	config.MinIOClient.SecretKey = os.Getenv("MINIO_ROOT_PASSWORD")
	config.S3ACL.AccessKey = config.MinIOClient.AccessKey
	config.S3ACL.SecretKey = config.MinIOClient.SecretKey
	config.DBConfig.URI = os.Getenv("DATABASE_URI")
	config.BrokerConfig.URI = os.Getenv("BROKER_URI")
	config.JWTSecret = os.Getenv("JWT_SECRET")

	config.applyDefaults()

	if err = config.basicCheck(); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Image.Quality == 0 {
		c.Image.Quality = imageproc.DefaultQuality
	}
	if c.Image.MaxConcurrentTranscodes == 0 {
		c.Image.MaxConcurrentTranscodes = int64(runtime.NumCPU())
	}
	if len(c.Image.ResponsiveSizes) == 0 {
		c.Image.ResponsiveSizes = imageproc.DefaultSizes()
	}
	if c.MinIOUploader.Visibility == "" {
		c.MinIOUploader.Visibility = VisibilityPolicy
	}
	if c.MinIOUploader.PublicPrefix == "" {
		c.MinIOUploader.PublicPrefix = "users/"
	}
	if c.MinIORemover.Bucket == "" {
		c.MinIORemover.Bucket = c.MinIOUploader.Bucket
	}
}

// basicCheck validates the basic stuff in config.
func (c *Config) basicCheck() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	if c.MinIOUploader.Bucket == "" {
		return errors.New("minio_uploader.bucket is required")
	}
	if c.MinIORemover.Bucket != c.MinIOUploader.Bucket {
		return errors.New("minio_remover.bucket must match minio_uploader.bucket")
	}
	switch c.MinIOUploader.Visibility {
	case VisibilityPolicy, VisibilityNone:
	case VisibilityACL:
		if c.S3ACL.Region == "" {
			return errors.New("s3_acl.region is required for acl visibility")
		}
	default:
		return fmt.Errorf("unknown minio_uploader.visibility %q", c.MinIOUploader.Visibility)
	}

	if c.Upload.MaxFileSizeMB <= 0 {
		return errors.New("upload.max_file_size_mb must be positive")
	}
	if c.Upload.MaxFiles < 1 {
		return errors.New("upload.max_files must be at least 1")
	}
	if len(c.Upload.AllowedMimeTypes) == 0 {
		return errors.New("upload.allowed_mime_types must not be empty")
	}

	if c.Image.Quality < 1 || c.Image.Quality > 100 {
		return fmt.Errorf("image.quality must be within 1-100, got %d", c.Image.Quality)
	}
	if c.Image.MaxWidth < 0 || c.Image.MaxHeight < 0 {
		return errors.New("image.max_width and image.max_height must not be negative")
	}
	if c.Image.MaxConcurrentTranscodes < 1 {
		return errors.New("image.max_concurrent_transcodes must be at least 1")
	}
	for _, size := range c.Image.ResponsiveSizes {
		if size.Width <= 0 || size.Height <= 0 || size.Label == "" {
			return fmt.Errorf("invalid responsive size %+v", size)
		}
	}

	return nil
}
