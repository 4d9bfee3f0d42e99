package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/datagrid/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "GRIDVIEW"
)

// Config keys.
const (
	cfgKeySource         = "source"
	cfgKeyPageSize       = "page_size"
	cfgKeyTVMazeEndpoint = "tvmaze.endpoint"
	cfgKeyTVMazeQuery    = "tvmaze.query"
	cfgKeyTVMazeTimeout  = "tvmaze.timeout"
	cfgKeyJSONLPath      = "jsonl.path"
	cfgKeySQLitePath     = "sqlite.path"
	cfgKeySQLiteTable    = "sqlite.table"
	cfgKeyLogLevel       = "log_level"
	cfgKeyLogFile        = "log_file"
)

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml is not an error; defaults apply. Every key can be overridden
// from the environment as GRIDVIEW_<KEY> with dots replaced by underscores,
// for example GRIDVIEW_TVMAZE_QUERY.
func loadConfig(configDir string) (types.Config, error) {
	v := newViper()
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c types.Config
	if err := v.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// newViper returns a Viper instance with every key defaulted so that
// environment overrides reach Unmarshal.
func newViper() *viper.Viper {
	d := types.DefaultConfig()

	v := viper.New()
	v.SetDefault(cfgKeySource, d.Source)
	v.SetDefault(cfgKeyPageSize, d.PageSize)
	v.SetDefault(cfgKeyTVMazeEndpoint, d.TVMaze.Endpoint)
	v.SetDefault(cfgKeyTVMazeQuery, d.TVMaze.Query)
	v.SetDefault(cfgKeyTVMazeTimeout, d.TVMaze.Timeout)
	v.SetDefault(cfgKeyJSONLPath, "")
	v.SetDefault(cfgKeySQLitePath, "")
	v.SetDefault(cfgKeySQLiteTable, "")
	v.SetDefault(cfgKeyLogLevel, d.LogLevel)
	v.SetDefault(cfgKeyLogFile, "")

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// configPath returns the location of config.yaml in configDir.
func configPath(configDir string) string {
	return filepath.Join(configDir, configFileExt)
}

// configExists reports whether config.yaml is present in configDir.
func configExists(configDir string) (bool, error) {
	_, err := os.Stat(configPath(configDir))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat config file: %w", err)
}
