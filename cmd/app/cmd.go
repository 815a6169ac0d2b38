// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/sourceyorg/navforge/cmd/configuration"
	"github.com/sourceyorg/navforge/cmd/gendocs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

// EnvPrefix prefixes the environment variables overriding flags, e.g. NAVFORGE_CONTENT_DIR
const EnvPrefix = "NAVFORGE"

var initKlogFlags sync.Once

// NewCommand creates a new root command and propagates
// the context to its Run callback closures
func NewCommand(ctx context.Context) *cobra.Command {
	return newCommand(ctx, new(configuration.DefaultConfigurationLoader))
}

func newCommand(ctx context.Context, loader configuration.Loader) *cobra.Command {
	vip := viper.New()
	vip.SetEnvPrefix(EnvPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vip.AutomaticEnv()

	// run wraps a command function with the user configuration loading
	run := func(f func(context.Context, *viper.Viper, io.Writer) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			config, err := loader.Load()
			if err != nil {
				return err
			}
			applyUserConfig(vip, config)
			return f(ctx, vip, cmd.OutOrStdout())
		}
	}

	cmd := &cobra.Command{
		Use:   "navforge",
		Short: "Build and validate the navigation of a documentation site",
		Long: `navforge checks a documentation site configuration (title, favicon, head
assets, stylesheets, social links and sidebar) and writes the validated
navigation bundle consumed by the site framework.`,
		Args: cobra.NoArgs,
		RunE: run(exec),
	}
	configureFlags(cmd, vip)

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check a site configuration and report all errors without writing",
		Args:  cobra.NoArgs,
		RunE:  run(validate),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "watch",
		Short: "Rebuild the navigation bundle whenever the configuration, content or assets change",
		Args:  cobra.NoArgs,
		RunE:  run(watch),
	})
	cmd.AddCommand(NewSchemaCmd())
	cmd.AddCommand(NewVersionCmd())
	cmd.AddCommand(newCompletionCmd())
	cmd.AddCommand(gendocs.NewGenCmdDocs())

	initKlogFlags.Do(func() { klog.InitFlags(nil) })
	AddFlags(cmd)

	return cmd
}
