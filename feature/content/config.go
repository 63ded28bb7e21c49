package content

// Config holds the content store settings that are independent of the storage provider.
type Config struct {
	// Protocol is the locator protocol tag this store accepts (e.g. "store" in store://...).
	Protocol string `mapstructure:"protocol" default:"store"`
	// RootDirectory is prepended to every key. A leading "/" is stripped.
	RootDirectory string `mapstructure:"root_directory" default:""`
	// KeyMode selects how locators map to keys: "prefixed" or "legacy".
	KeyMode string `mapstructure:"key_mode" default:"prefixed"`
	// StagingDir is where writers stage content before upload. Empty means the OS temp dir.
	StagingDir string `mapstructure:"staging_dir" default:""`
	// CleanupStaging removes a staging file once its upload succeeded.
	CleanupStaging bool `mapstructure:"cleanup_staging" default:"true"`
	// UploadFailurePolicy is "propagate" (Close returns the error) or "suppress" (log only).
	UploadFailurePolicy string `mapstructure:"upload_failure_policy" default:"propagate"`
	// DeleteFailurePolicy is "propagate" (Delete returns the error) or "suppress" (log only).
	DeleteFailurePolicy string `mapstructure:"delete_failure_policy" default:"propagate"`
}

// FailurePolicy decides whether a remote write failure reaches the caller.
type FailurePolicy string

const (
	// FailurePropagate returns the failure to the caller after logging it.
	FailurePropagate FailurePolicy = "propagate"
	// FailureSuppress only logs the failure.
	FailureSuppress FailurePolicy = "suppress"
)

// ParseFailurePolicy validates a configured policy. Empty means FailurePropagate.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(s) {
	case "", FailurePropagate:
		return FailurePropagate, nil
	case FailureSuppress:
		return FailureSuppress, nil
	default:
		return "", &ConfigError{Field: "failure_policy", Value: s}
	}
}

// KeyMode selects the locator to key mapping scheme.
type KeyMode string

const (
	// KeyModePrefixed derives root_directory + "/" + relative path.
	KeyModePrefixed KeyMode = "prefixed"
	// KeyModeLegacy uses the full locator as the key, for buckets written by older deployments.
	KeyModeLegacy KeyMode = "legacy"
)

// ParseKeyMode validates a configured key mode. Empty means KeyModePrefixed.
func ParseKeyMode(s string) (KeyMode, error) {
	switch KeyMode(s) {
	case "", KeyModePrefixed:
		return KeyModePrefixed, nil
	case KeyModeLegacy:
		return KeyModeLegacy, nil
	default:
		return "", &ConfigError{Field: "key_mode", Value: s}
	}
}
