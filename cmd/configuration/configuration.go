// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package configuration

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

const (
	// DefaultConfigFileName is the name of the configuration file in NavforgeHomeDir
	DefaultConfigFileName = "config"
	// NavforgeHomeDir is the navforge directory in the user home
	NavforgeHomeDir = ".navforge"
	// NavforgeConfigEnv names the environment variable overriding the configuration file path
	NavforgeConfigEnv = "NAVFORGECONFIG"
)

// Loader loads the user configuration
type Loader interface {
	Load() (*Config, error)
}

// DefaultConfigurationLoader loads the file named by NAVFORGECONFIG or $HOME/.navforge/config
type DefaultConfigurationLoader struct{}

// Load implements Loader. A missing configuration file yields an empty configuration.
func (d *DefaultConfigurationLoader) Load() (*Config, error) {
	if configFilePath, found := os.LookupEnv(NavforgeConfigEnv); found {
		if configFilePath == "" {
			return nil, fmt.Errorf("the provided environment variable %s is set to empty string", NavforgeConfigEnv)
		}
		return load(configFilePath)
	}
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return load(filepath.Join(userHomeDir, NavforgeHomeDir, DefaultConfigFileName))
}

func load(configFilePath string) (*Config, error) {
	stat, err := os.Stat(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			klog.V(6).Infof("no configuration file %s", configFilePath)
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to get file info for configuration file path %s: %w", configFilePath, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("the config file path %s is directory, instead of file", configFilePath)
	}
	configFile, err := os.ReadFile(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %s: %w", configFilePath, err)
	}
	config := &Config{}
	if err := yaml.Unmarshal(configFile, config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %s: %w", configFilePath, err)
	}
	return config, nil
}
