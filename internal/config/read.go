package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/blogwire/blogwire/internal/entity"
)

var dialects = map[string]bool{
	entity.DialectBlogger1:       true,
	entity.DialectMetaWeblog:     true,
	entity.DialectMovableType:    true,
	entity.DialectWordpressBuggy: true,
	entity.DialectGData:          true,
}

// Read loads the configuration file and overlays BLOGWIRE_* environment
// variables on top of it. An empty path skips the file and uses the
// environment alone.
func Read(configPath string) (*entity.Config, error) {
	var config entity.Config

	if configPath != "" {
		contents, err := os.ReadFile(configPath)

		if err != nil {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}

		if err = json.Unmarshal(contents, &config); err != nil {
			return nil, fmt.Errorf("could not parse config file: %w", err)
		}
	}

	if err := env.Parse(&config); err != nil {
		return nil, fmt.Errorf("could not parse environment: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validate(config *entity.Config) error {
	if config.URL == "" {
		return fmt.Errorf("url is required")
	}

	if config.Username == "" {
		return fmt.Errorf("username is required")
	}

	if config.Dialect == "" {
		config.Dialect = entity.DialectMetaWeblog
	}

	if !dialects[config.Dialect] {
		return fmt.Errorf("unknown dialect: %s", config.Dialect)
	}

	return nil
}
