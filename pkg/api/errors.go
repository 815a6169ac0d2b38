// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package api

import "fmt"

// ConfigurationError signals a malformed configuration entry
type ConfigurationError struct {
	// Field is the path of the offending field, e.g. sidebar[0].items[1].link
	Field string
	// Value is the offending value
	Value string
	// Reason describes the violated rule
	Reason string
}

// Error returns "invalid <field> "<value>": <reason>"
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// AssetNotFoundError signals that a path referenced by the configuration does not exist
type AssetNotFoundError struct {
	// Field is the path of the referencing field, e.g. head[2].href
	Field string
	// Path is the referenced asset
	Path string
}

// Error returns "<field> references missing asset "<path>""
func (e *AssetNotFoundError) Error() string {
	return fmt.Sprintf("%s references missing asset %q", e.Field, e.Path)
}
