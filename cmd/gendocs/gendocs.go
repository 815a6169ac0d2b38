// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package gendocs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"k8s.io/klog/v2"
)

// generator writes the reference of a command tree into a directory
type generator func(root *cobra.Command, dir string) error

var generators = map[string]generator{
	"md": doc.GenMarkdownTree,
	"man": func(root *cobra.Command, dir string) error {
		return doc.GenManTree(root, &doc.GenManHeader{
			Title:   strings.ToUpper(root.Name()),
			Manual:  root.Name() + " Command Reference",
			Section: "1",
		}, dir)
	},
	"rest": doc.GenReSTTree,
	"yaml": doc.GenYamlTree,
}

// formats lists the supported formats in stable order
func formats() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type options struct {
	format      string
	destination string
}

func (o *options) generator() (generator, error) {
	gen, ok := generators[o.format]
	if !ok {
		return nil, fmt.Errorf("unknown format %q, must be one of %s", o.format, strings.Join(formats(), ", "))
	}
	return gen, nil
}

// NewGenCmdDocs creates the command writing the reference documentation of
// the whole command tree
func NewGenCmdDocs() *cobra.Command {
	o := &options{}
	command := &cobra.Command{
		Use:   "gen-cmd-docs",
		Short: "Generates commands reference documentation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, err := o.generator()
			if err != nil {
				return err
			}
			dir := filepath.Clean(o.destination)
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return fmt.Errorf("failed to create %s: %w", dir, err)
			}
			root := cmd.Root()
			root.DisableAutoGenTag = true
			if err := gen(root, dir); err != nil {
				return fmt.Errorf("failed to generate %s reference in %s: %w", o.format, dir, err)
			}
			klog.Infof("%s reference written to %s", o.format, dir)
			return nil
		},
	}
	command.Flags().StringVar(&o.format, "format", "md",
		fmt.Sprintf("Documentation format, one of %s.", strings.Join(formats(), ", ")))
	command.Flags().StringVarP(&o.destination, "destination", "d", "",
		"Directory the documentation is written to. Created if missing.")
	_ = command.MarkFlagRequired("destination")
	return command
}
