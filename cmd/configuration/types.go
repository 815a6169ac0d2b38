// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package configuration

// Config holds the user level defaults of navforge. Command line flags take precedence.
type Config struct {
	// ContentDir is the directory of the content documents, relative to the project directory
	ContentDir *string `yaml:"contentDir,omitempty"`
	// PublicDir is the directory of the static assets, relative to the project directory
	PublicDir *string `yaml:"publicDir,omitempty"`
	// CacheHome is the cache directory of GitHub API responses
	CacheHome *string `yaml:"cacheHome,omitempty"`
	// ContentExtensions are the file extensions of content documents
	ContentExtensions []string `yaml:"contentExtensions,omitempty"`
}
