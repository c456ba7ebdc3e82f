package config

import (
	"errors"
	"reflect"
	"strings"

	"locize-sync/core/database"
	"locize-sync/core/logger"
	"locize-sync/core/server"
	"locize-sync/core/storage"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ConfigName is the base name of the optional config file (locize-sync.yaml, .json, .toml).
const ConfigName = "locize-sync"

// Store backends.
const (
	BackendLocize   = "locize"
	BackendBucket   = "bucket"
	BackendDatabase = "database"
)

// Resolver modes.
const (
	ResolverPrompt    = "prompt"
	ResolverFile      = "file"
	ResolverReference = "reference"
	ResolverSkip      = "skip"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Store selects the translation store backend.
	Store StoreConfig `mapstructure:"store"`
	// Locize holds configuration for the locize API backend.
	Locize LocizeConfig `mapstructure:"locize"`
	// Storage holds configuration for the object storage backend (S3, MinIO).
	Storage storage.Config `mapstructure:"storage"`
	// Database holds configuration for the SQL backend.
	Database database.Config `mapstructure:"database"`
	// Server holds configuration for serve mode.
	Server server.Config `mapstructure:"server"`
	// FindKeys holds configuration for source key discovery.
	FindKeys FindKeysConfig `mapstructure:"find_keys"`
	// Resolver holds configuration for how missing translations are supplied.
	Resolver ResolverConfig `mapstructure:"resolver"`
}

// StoreConfig selects the backend and namespace.
type StoreConfig struct {
	// Backend is one of locize, bucket, database.
	Backend string `mapstructure:"backend" default:"locize"`
	// Namespace is the translation namespace kept in sync.
	Namespace string `mapstructure:"namespace" default:"common"`
}

// LocizeConfig holds locize project settings.
type LocizeConfig struct {
	// ProjectID is the locize project id.
	ProjectID string `mapstructure:"project_id" default:""`
	// APIKey is the write key used for missing-translation requests.
	APIKey string `mapstructure:"api_key" default:""`
	// Version is the project version (e.g. latest, production).
	Version string `mapstructure:"version" default:"latest"`
	// BaseURL is the API base URL.
	BaseURL string `mapstructure:"base_url" default:"https://api.locize.app"`
	// TimeoutSeconds is the per-request timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// FindKeysConfig controls the source scanner.
type FindKeysConfig struct {
	// Root is the source root to scan. Empty means the working directory.
	Root string `mapstructure:"root" default:""`
	// Extensions lists the file extensions to scan.
	Extensions []string `mapstructure:"extensions" default:".js,.jsx,.ts,.tsx,.vue,.html"`
	// Ignore lists glob patterns of paths to skip.
	Ignore []string `mapstructure:"ignore" default:"**/node_modules/**,**/.git/**,**/dist/**,**/build/**"`
	// Functions lists the translation function names whose first argument is a key.
	Functions []string `mapstructure:"functions" default:"t,i18n.t,i18next.t,$t"`
	// Unique drops repeated keys, keeping the first occurrence.
	Unique bool `mapstructure:"unique" default:"true"`
}

// ResolverConfig controls how missing translations are resolved.
type ResolverConfig struct {
	// Mode is one of prompt, file, reference, skip.
	Mode string `mapstructure:"mode" default:"prompt"`
	// AnswersFile is the JSON answers document used by the file mode.
	AnswersFile string `mapstructure:"answers_file" default:""`
	// ReferenceLanguage overrides the store's reference language for the reference mode.
	ReferenceLanguage string `mapstructure:"reference_language" default:""`
}

// LoadConfig loads configuration from environment variables, a .env file and
// an optional locize-sync config file in path.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. CI)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// 2. Optional config file
	v.SetConfigName(ConfigName)
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	// Map environment variables to nested keys (e.g. LOCIZE_API_KEY -> locize.api_key)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the settings the selected backend and resolver need.
func (c *Config) Validate() error {
	return validation.Errors{
		"store": validation.ValidateStruct(&c.Store,
			validation.Field(&c.Store.Backend, validation.Required, validation.In(BackendLocize, BackendBucket, BackendDatabase)),
			validation.Field(&c.Store.Namespace, validation.Required),
		),
		"locize": validation.ValidateStruct(&c.Locize,
			validation.Field(&c.Locize.ProjectID, validation.When(c.Store.Backend == BackendLocize, validation.Required)),
			validation.Field(&c.Locize.BaseURL, validation.When(c.Store.Backend == BackendLocize, validation.Required)),
			validation.Field(&c.Locize.Version, validation.When(c.Store.Backend == BackendLocize, validation.Required)),
		),
		"storage": validation.ValidateStruct(&c.Storage,
			validation.Field(&c.Storage.Bucket, validation.When(c.Store.Backend == BackendBucket, validation.Required)),
			validation.Field(&c.Storage.Endpoint, validation.When(c.Store.Backend == BackendBucket, validation.Required)),
		),
		"database": validation.ValidateStruct(&c.Database,
			validation.Field(&c.Database.Driver, validation.When(c.Store.Backend == BackendDatabase, validation.Required, validation.In("mysql", "sqlite"))),
			validation.Field(&c.Database.Name, validation.When(c.Store.Backend == BackendDatabase, validation.Required)),
		),
		"resolver": validation.ValidateStruct(&c.Resolver,
			validation.Field(&c.Resolver.Mode, validation.Required, validation.In(ResolverPrompt, ResolverFile, ResolverReference, ResolverSkip)),
			validation.Field(&c.Resolver.AnswersFile, validation.When(c.Resolver.Mode == ResolverFile, validation.Required)),
		),
	}.Filter()
}

// ValidateWrite checks the settings needed to write to the store.
func (c *Config) ValidateWrite() error {
	return validation.Errors{
		"locize": validation.ValidateStruct(&c.Locize,
			validation.Field(&c.Locize.APIKey, validation.When(c.Store.Backend == BackendLocize, validation.Required)),
		),
	}.Filter()
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
