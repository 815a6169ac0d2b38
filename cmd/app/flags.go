// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/sourceyorg/navforge/cmd/configuration"
	"github.com/sourceyorg/navforge/pkg/content"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configureFlags defines the flags shared by the build, validate and watch commands
func configureFlags(command *cobra.Command, vip *viper.Viper) {
	flags := command.PersistentFlags()
	bind := func(name string) {
		_ = vip.BindPFlag(name, flags.Lookup(name))
	}

	flags.StringP("manifest", "f", "",
		"Site configuration path (.yaml, .yml, .json or .toml).")
	bind("manifest")

	flags.StringP("destination", "d", "",
		"Destination path of the navigation bundle.")
	bind("destination")

	flags.String("project-dir", "",
		"Project directory. Defaults to the git worktree root enclosing the site configuration, or its directory outside a repository.")
	bind("project-dir")

	flags.String("content-dir", "src/content/docs",
		"Directory of the content documents sidebar links resolve to, relative to the project directory.")
	bind("content-dir")

	flags.String("public-dir", "public",
		"Directory of the static assets root-relative asset paths resolve to, relative to the project directory.")
	bind("public-dir")

	flags.StringSlice("content-extensions", content.DefaultExtensions,
		"File extensions of content documents, in probing order.")
	bind("content-extensions")

	flags.Bool("skip-link-validation", false,
		"Sidebar links will not be resolved to content documents.")
	bind("skip-link-validation")

	flags.Bool("skip-asset-validation", false,
		"Favicon, head and stylesheet assets will not be checked for existence.")
	bind("skip-asset-validation")

	flags.Bool("skip-schema-validation", false,
		"The site configuration will not be validated against the JSON Schema.")
	bind("skip-schema-validation")

	flags.Bool("check-social", false,
		"Check that the social GitHub link references an existing account or repository. Requires network access.")
	bind("check-social")

	flags.String("github-oauth-token-env", "GITHUB_TOKEN",
		"Environment variable holding the GitHub token used by --check-social. Unauthenticated access if it is empty.")
	bind("github-oauth-token-env")

	cacheDir := ""
	userHomeDir, err := os.UserHomeDir()
	if err == nil {
		// default value $HOME/.navforge/cache
		cacheDir = filepath.Join(userHomeDir, configuration.NavforgeHomeDir, "cache")
	}
	flags.String("cache-dir", cacheDir,
		"Cache directory of GitHub API responses.")
	bind("cache-dir")

	flags.Bool("fail-fast", true,
		"Stop at the first error. Disable to report all errors of a build.")
	bind("fail-fast")

	flags.Bool("dry-run", false,
		"Runs the build end-to-end but instead of writing files, it will output the projected file hierarchy to the standard output.")
	bind("dry-run")

	flags.String("metrics-file", "",
		"If specified, build metrics are written to this file in the Prometheus text format.")
	bind("metrics-file")
}

// applyUserConfig makes the user configuration the defaults of the matching flags
func applyUserConfig(vip *viper.Viper, config *configuration.Config) {
	if config.ContentDir != nil {
		vip.SetDefault("content-dir", *config.ContentDir)
	}
	if config.PublicDir != nil {
		vip.SetDefault("public-dir", *config.PublicDir)
	}
	if config.CacheHome != nil {
		vip.SetDefault("cache-dir", *config.CacheHome)
	}
	if len(config.ContentExtensions) > 0 {
		vip.SetDefault("content-extensions", config.ContentExtensions)
	}
}

// AddFlags adds go flags to rootCmd
func AddFlags(rootCmd *cobra.Command) {
	flag.CommandLine.VisitAll(func(gf *flag.Flag) {
		rootCmd.PersistentFlags().AddGoFlag(gf)
	})
}
