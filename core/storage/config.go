package storage

// DefaultEndpoint is used when no endpoint override is configured.
const DefaultEndpoint = "s3.amazonaws.com"

// Config holds configuration for the storage provider.
type Config struct {
	// Endpoint overrides the default service endpoint (e.g. a MinIO host). Empty means AWS S3.
	Endpoint string `mapstructure:"endpoint" default:""`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:""`
	// UseSSL indicates whether to use SSL/TLS for connections to a scheme-less endpoint.
	UseSSL bool `mapstructure:"use_ssl" default:"true"`
	// Bucket is the name of the bucket content is stored in.
	Bucket string `mapstructure:"bucket" default:"content"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// AutoCreateBucket creates the bucket at startup when it is missing.
	AutoCreateBucket bool `mapstructure:"auto_create_bucket" default:"false"`
}
