package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Vault    VaultConfig       `yaml:"vault"`
	Database DatabaseConfig    `yaml:"database"`
	Storage  StorageConfig     `yaml:"storage"`
	Auth     AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Vault.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration for serve mode.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns the HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// VaultConfig holds the vault location and the note directory layout.
type VaultConfig struct {
	Path        string `yaml:"path"`
	ContentsDir string `yaml:"contents_dir"`
	EventsDir   string `yaml:"events_dir"`
	DaysDir     string `yaml:"days_dir"`
	// AssetDir is an optional directory outside the vault that also
	// participates in asset resolution.
	AssetDir string `yaml:"asset_dir"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.ContentsDir, validation.Required),
		validation.Field(&c.EventsDir, validation.Required),
		validation.Field(&c.DaysDir, validation.Required),
	)
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// Validate validates the database configuration.
func (c *DatabaseConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DSN, validation.Required),
	)
}

// StorageConfig holds the S3-compatible object storage settings.
type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	// PublicBaseURL overrides the URL prefix written to the database for
	// uploaded assets. When empty, endpoint/bucket is used.
	PublicBaseURL string `yaml:"public_base_url"`
}

// Validate validates the storage configuration.
func (c *StorageConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Endpoint, validation.Required),
		validation.Field(&c.Region, validation.Required),
		validation.Field(&c.AccessKey, validation.Required),
		validation.Field(&c.SecretKey, validation.Required),
		validation.Field(&c.Bucket, validation.Required),
	)
}

// AuthConfig holds authentication configuration for serve mode.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Vault: VaultConfig{
			Path:        "./vault",
			ContentsDir: "01_Contents",
			EventsDir:   "02_Events",
			DaysDir:     "03_Days",
		},
		Storage: StorageConfig{
			Region: "us-east-1",
			Bucket: "endcards",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
