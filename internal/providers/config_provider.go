package providers

import (
	"cellar/internal/structures"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultCatalogTimeout = 10 * time.Second

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("cache.ttl", 300)

	_ = v.BindEnv("logger.level", "CELLAR_LOG_LEVEL")
	_ = v.BindEnv("catalog.source", "CELLAR_CATALOG_SOURCE")
	_ = v.BindEnv("persistence.filePath", "CELLAR_STORE_PATH")
	_ = v.BindEnv("cache.enabled", "CELLAR_CACHE_ENABLED")
	_ = v.BindEnv("cache.size", "CELLAR_CACHE_SIZE")
	_ = v.BindEnv("webServer.port", "CELLAR_PORT")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	if conf.Catalog.Timeout <= 0 {
		conf.Catalog.Timeout = defaultCatalogTimeout
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "FlintCellar"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
