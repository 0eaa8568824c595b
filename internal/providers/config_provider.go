package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"cpd/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "CPD_LOG_LEVEL")
	viper.BindEnv("persistence.filePath", "CPD_DATA_FILE")
	viper.BindEnv("persistence.compression", "CPD_COMPRESSION")
	viper.BindEnv("persistence.saveInterval", "CPD_SAVE_INTERVAL")
	viper.BindEnv("cache.enabled", "CPD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "CPD_CACHE_SIZE")
	viper.BindEnv("planner.gptUrl", "CPD_GPT_URL")
	viper.BindEnv("planner.gptPassword", "CPD_GPT_PASSWORD")

	viper.SetDefault("persistence.compression", "none")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "ContentPlannerDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
