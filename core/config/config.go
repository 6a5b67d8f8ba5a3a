package config

import (
	"reflect"
	"strings"

	"jobwatch/core/archive"
	"jobwatch/core/database"
	"jobwatch/core/dataset"
	"jobwatch/core/logger"
	"jobwatch/core/reconcile"
	"jobwatch/core/server"
	"jobwatch/feature/export"
	"jobwatch/feature/notify"
	"jobwatch/feature/scrape"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Dataset holds configuration for the posting dataset store.
	Dataset dataset.Config `mapstructure:"dataset"`
	// Scrape holds configuration for the listing-page extractor.
	Scrape scrape.Config `mapstructure:"scrape"`
	// Reconcile holds the reconciliation engine settings.
	Reconcile reconcile.Config `mapstructure:"reconcile"`
	// Export holds the spreadsheet export settings.
	Export export.Config `mapstructure:"export"`
	// Mail holds the SMTP digest settings.
	Mail notify.MailConfig `mapstructure:"mail"`
	// Telegram holds the optional telegram channel settings.
	Telegram notify.TelegramConfig `mapstructure:"telegram"`
	// Database holds configuration for the relational mirror.
	Database database.Config `mapstructure:"database"`
	// Archive holds configuration for the object storage run archive.
	Archive archive.Config `mapstructure:"archive"`
	// Server holds configuration for the HTTP API.
	Server server.Config `mapstructure:"server"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SCRAPE_END_PAGE -> scrape.end_page)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
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
