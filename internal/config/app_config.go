package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/codedigest/cdigest/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds digest defaults read from configuration files.
// Pointer fields distinguish "unset" from an explicit false/zero.
type ApplicationConfiguration struct {
	Format           string   `mapstructure:"format"`
	File             string   `mapstructure:"file"`
	MaxSizeKilobytes *int     `mapstructure:"max_size"`
	ShowSize         *bool    `mapstructure:"show_size"`
	ShowIgnored      *bool    `mapstructure:"show_ignored"`
	TokenizerModel   string   `mapstructure:"model"`
	Ignore           []string `mapstructure:"ignore"`
	NoDefaultIgnores *bool    `mapstructure:"no_default_ignores"`
	Clipboard        *bool    `mapstructure:"clipboard"`
}

// LoadApplicationConfiguration loads configuration from the global file in the
// user's home directory and the local file in the working directory, merging
// local values over global ones.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := options.ExplicitFilePath
	if localPath == "" {
		localPath = filepath.Join(workingDirectory, utils.ConfigFileName)
	} else if !filepath.IsAbs(localPath) {
		localPath = filepath.Join(workingDirectory, localPath)
	}
	localConfig, loadErr := loadConfigurationFromPath(localPath)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	merged.Ignore = utils.DeduplicatePatterns(merged.Ignore)
	return merged, nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var configuration ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&configuration); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.File != "" {
		result.File = override.File
	}
	if override.MaxSizeKilobytes != nil {
		result.MaxSizeKilobytes = cloneInt(override.MaxSizeKilobytes)
	}
	if override.ShowSize != nil {
		result.ShowSize = cloneBool(override.ShowSize)
	}
	if override.ShowIgnored != nil {
		result.ShowIgnored = cloneBool(override.ShowIgnored)
	}
	if override.TokenizerModel != "" {
		result.TokenizerModel = override.TokenizerModel
	}
	if len(override.Ignore) > 0 {
		result.Ignore = append([]string{}, utils.DeduplicatePatterns(override.Ignore)...)
	}
	if override.NoDefaultIgnores != nil {
		result.NoDefaultIgnores = cloneBool(override.NoDefaultIgnores)
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
