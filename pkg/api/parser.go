// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a site configuration file format
type Format string

const (
	// YAML is the default format
	YAML Format = "yaml"
	// JSON format
	JSON Format = "json"
	// TOML format
	TOML Format = "toml"
)

// FormatOf picks the format from a file name extension
func FormatOf(fileName string) (Format, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	case ".toml":
		return TOML, nil
	}
	return "", fmt.Errorf("unsupported configuration file extension of %s. Must be one of %v", fileName, []string{".yaml", ".yml", ".json", ".toml"})
}

// Parse decodes a site configuration
func Parse(b []byte, format Format) (*Site, error) {
	site := &Site{}
	switch format {
	case YAML:
		if err := yaml.Unmarshal(b, site); err != nil {
			return nil, err
		}
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(b))
		if err := dec.Decode(site); err != nil {
			return nil, err
		}
	case TOML:
		if err := toml.Unmarshal(b, site); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return site, nil
}

// ParseDocument decodes a site configuration into generic values, as needed
// for schema validation
func ParseDocument(b []byte, format Format) (interface{}, error) {
	var doc interface{}
	var err error
	switch format {
	case YAML:
		err = yaml.Unmarshal(b, &doc)
	case JSON:
		err = json.Unmarshal(b, &doc)
	case TOML:
		var m map[string]interface{}
		err = toml.Unmarshal(b, &m)
		doc = m
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Serialize encodes a site configuration
func Serialize(site *Site, format Format) ([]byte, error) {
	switch format {
	case YAML:
		return yaml.Marshal(site)
	case JSON:
		return json.MarshalIndent(site, "", "  ")
	case TOML:
		return toml.Marshal(site)
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// ReadFile reads and decodes a site configuration file. It returns the raw
// content too, for callers that validate it against the schema.
func ReadFile(path string) (*Site, []byte, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read site configuration %s: %w", path, err)
	}
	site, err := Parse(b, format)
	if err != nil {
		return nil, nil, fmt.Errorf("can't parse site configuration %s %s content: %w", path, format, err)
	}
	return site, b, nil
}
