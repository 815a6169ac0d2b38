// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

// options are the command line flags, NAVFORGE_* environment variables and
// user configuration merged by viper
type options struct {
	ManifestPath         string   `mapstructure:"manifest"`
	DestinationPath      string   `mapstructure:"destination"`
	ProjectDir           string   `mapstructure:"project-dir"`
	ContentDir           string   `mapstructure:"content-dir"`
	PublicDir            string   `mapstructure:"public-dir"`
	ContentExtensions    []string `mapstructure:"content-extensions"`
	SkipLinkValidation   bool     `mapstructure:"skip-link-validation"`
	SkipAssetValidation  bool     `mapstructure:"skip-asset-validation"`
	SkipSchemaValidation bool     `mapstructure:"skip-schema-validation"`
	CheckSocial          bool     `mapstructure:"check-social"`
	GitHubOAuthTokenEnv  string   `mapstructure:"github-oauth-token-env"`
	CacheDir             string   `mapstructure:"cache-dir"`
	FailFast             bool     `mapstructure:"fail-fast"`
	DryRun               bool     `mapstructure:"dry-run"`
	MetricsFile          string   `mapstructure:"metrics-file"`
}
