package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/pders01/version-archive/internal/models"
	"github.com/spf13/viper"
)

// Config keys
const (
	KeyVersion     = "build.version"
	KeyCommitSha   = "build.commit_sha"
	KeyBuildDate   = "build.build_date"
	KeyDescription = "build.description"
	KeyArtifactURL = "build.artifact_url"

	KeyArchiveRoot = "archive.root"

	KeyProductName = "site.product_name"
	KeyLatestURL   = "site.latest_url"
	KeyCommitURL   = "site.commit_url"

	KeyPublishEnabled = "publish.enabled"
	KeyPublishName    = "publish.user_name"
	KeyPublishEmail   = "publish.user_email"
	KeyPublishRemote  = "publish.remote"
)

var (
	// ErrVersionRequired is returned when no version identifier was provided
	ErrVersionRequired = errors.New("VERSION environment variable is required")
	// ErrInvalidVersion is returned when the version cannot be used as a directory name
	ErrInvalidVersion = errors.New("invalid version")
)

// envBindings maps config keys to the environment variables CI sets
var envBindings = map[string]string{
	KeyVersion:        "VERSION",
	KeyCommitSha:      "COMMIT_SHA",
	KeyBuildDate:      "BUILD_DATE",
	KeyDescription:    "DESCRIPTION",
	KeyArtifactURL:    "ARTIFACT_URL",
	KeyPublishEnabled: "GITHUB_ACTIONS",
}

// SiteConfig holds the links rendered into each landing page
type SiteConfig struct {
	ProductName string
	LatestURL   string
	CommitURL   string
}

// PublishConfig controls the git commit and push after archiving
type PublishConfig struct {
	Enabled   bool
	UserName  string
	UserEmail string
	Remote    string
}

// Config is everything one archive run needs, resolved once at startup
type Config struct {
	Build       models.BuildInfo
	ArtifactURL string
	ArchiveRoot string
	Site        SiteConfig
	Publish     PublishConfig
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyArchiveRoot, models.DefaultArchiveRoot)
	v.SetDefault(KeyProductName, "μPMT")
	v.SetDefault(KeyLatestURL, "https://upmt.github.io/upmt/")
	v.SetDefault(KeyCommitURL, "https://github.com/upmt/upmt/commit/")
	v.SetDefault(KeyPublishEnabled, false)
	v.SetDefault(KeyPublishName, "GitHub Actions")
	v.SetDefault(KeyPublishEmail, "actions@github.com")
	v.SetDefault(KeyPublishRemote, "")
}

// BindEnv binds the build and publish keys to their environment variables
func BindEnv(v *viper.Viper) error {
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed to bind %s to %s: %w", key, env, err)
		}
	}
	return nil
}

// Load reads a Config out of v. Absent build fields are left empty.
func Load(v *viper.Viper) Config {
	return Config{
		Build: models.BuildInfo{
			Version:     v.GetString(KeyVersion),
			CommitSha:   v.GetString(KeyCommitSha),
			BuildDate:   v.GetString(KeyBuildDate),
			Description: v.GetString(KeyDescription),
		},
		ArtifactURL: v.GetString(KeyArtifactURL),
		ArchiveRoot: v.GetString(KeyArchiveRoot),
		Site: SiteConfig{
			ProductName: v.GetString(KeyProductName),
			LatestURL:   v.GetString(KeyLatestURL),
			CommitURL:   v.GetString(KeyCommitURL),
		},
		Publish: PublishConfig{
			Enabled:   flagSet(v.GetString(KeyPublishEnabled)),
			UserName:  v.GetString(KeyPublishName),
			UserEmail: v.GetString(KeyPublishEmail),
			Remote:    v.GetString(KeyPublishRemote),
		},
	}
}

// flagSet reports whether a CI style flag is on. Boolean literals are honoured
// and any other non-empty value counts as set.
func flagSet(value string) bool {
	if value == "" {
		return false
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return true
}

// Validate checks the fields an archive run cannot do without
func (c Config) Validate() error {
	if c.Build.Version == "" {
		return ErrVersionRequired
	}
	if err := models.ValidateVersion(c.Build.Version); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidVersion, err)
	}
	if c.ArchiveRoot == "" {
		return fmt.Errorf("archive root is empty")
	}
	return nil
}

// GetArchiveRoot returns the archive root from the global config
func GetArchiveRoot() string {
	return viper.GetString(KeyArchiveRoot)
}
