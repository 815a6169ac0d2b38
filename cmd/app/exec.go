// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sourceyorg/navforge/pkg/api"
	"github.com/sourceyorg/navforge/pkg/assets"
	"github.com/sourceyorg/navforge/pkg/content"
	"github.com/sourceyorg/navforge/pkg/git"
	"github.com/sourceyorg/navforge/pkg/github"
	"github.com/sourceyorg/navforge/internal/must"
	"github.com/sourceyorg/navforge/pkg/metrics"
	"github.com/sourceyorg/navforge/pkg/navigation"
	"github.com/sourceyorg/navforge/pkg/osfakes/osshim"
	"github.com/sourceyorg/navforge/pkg/render"
	"github.com/sourceyorg/navforge/pkg/schema"
	"github.com/sourceyorg/navforge/pkg/writers"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

// builder runs the checks on a site configuration and writes its navigation bundle
type builder struct {
	options
	os  osshim.Os
	git git.Git
	out io.Writer
	// httpClient is the GitHub API client of the social check, built on demand if nil
	httpClient *http.Client
}

func newBuilder(o options, out io.Writer) *builder {
	return &builder{
		options: o,
		os:      &osshim.OsShim{},
		git:     git.NewGit(),
		out:     out,
	}
}

func exec(ctx context.Context, vip *viper.Viper, out io.Writer) error {
	o, err := unmarshalOptions(vip, true)
	if err != nil {
		return err
	}
	return newBuilder(o, out).run(ctx, false)
}

func validate(ctx context.Context, vip *viper.Viper, out io.Writer) error {
	o, err := unmarshalOptions(vip, false)
	if err != nil {
		return err
	}
	o.FailFast = false
	return newBuilder(o, out).run(ctx, true)
}

// unmarshalOptions reads the merged options and checks the required ones
func unmarshalOptions(vip *viper.Viper, writes bool) (options, error) {
	var o options
	if err := vip.Unmarshal(&o); err != nil {
		return o, err
	}
	var missing []string
	if o.ManifestPath == "" {
		missing = append(missing, `"manifest"`)
	}
	if writes && o.DestinationPath == "" && !o.DryRun {
		missing = append(missing, `"destination"`)
	}
	if len(missing) > 0 {
		return o, fmt.Errorf("required flag(s) %s not set", strings.Join(missing, ", "))
	}
	return o, nil
}

// run builds the site and records the build metrics. With validateOnly
// nothing is written.
func (b *builder) run(ctx context.Context, validateOnly bool) error {
	start := time.Now()
	m := metrics.NewBuild()
	if b.httpClient == nil && b.CheckSocial {
		token := os.Getenv(b.GitHubOAuthTokenEnv)
		if token == "" {
			klog.Infof("%s is not set, using unauthenticated github access", b.GitHubOAuthTokenEnv)
		}
		b.httpClient = metrics.InstrumentClient(github.NewHTTPClient(ctx, token, filepath.Join(b.CacheDir, "diskv", github.Host)))
	}
	sidebar, err := b.build(ctx, validateOnly)
	m.ObserveError(err)
	m.ObserveDuration(time.Since(start))
	if err == nil {
		m.ObserveSidebar(sidebar)
	}
	if b.MetricsFile != "" {
		if merr := m.WriteToTextfile(b.MetricsFile); merr != nil {
			klog.Warning(merr)
		}
	}
	return err
}

func (b *builder) build(ctx context.Context, validateOnly bool) ([]*api.Group, error) {
	klog.Infof("Manifest: %s", b.ManifestPath)
	site, err := b.load()
	if err != nil {
		return nil, err
	}
	projectDir, err := b.projectDir()
	if err != nil {
		return nil, err
	}
	var errs *multierror.Error
	// collect returns err when the build must stop
	collect := func(err error) error {
		if err == nil {
			return nil
		}
		if b.FailFast {
			return err
		}
		errs = multierror.Append(errs, err)
		return nil
	}
	if err := collect(api.ValidateSite(site, b.FailFast)); err != nil {
		return nil, err
	}
	var transformations []navigation.Transformation
	if !b.SkipLinkValidation {
		contentDir := resolve(projectDir, b.ContentDir)
		klog.V(4).Infof("content directory: %s", contentDir)
		transformations = append(transformations, content.NewIndex(b.os, contentDir, b.ContentExtensions).ResolveLinks())
	}
	var sidebar []*api.Group
	if b.FailFast {
		if sidebar, err = navigation.Build(site.Sidebar, transformations...); err != nil {
			return nil, err
		}
	} else if err := collect(navigation.Validate(site.Sidebar, transformations...)); err != nil {
		return nil, err
	}
	if !b.SkipAssetValidation {
		publicDir := resolve(projectDir, b.PublicDir)
		klog.V(4).Infof("public directory: %s", publicDir)
		checker := assets.NewChecker(b.os, projectDir, publicDir)
		if err := collect(checker.Check(site, b.FailFast)); err != nil {
			return nil, err
		}
	}
	if b.CheckSocial && site.Social != nil && site.Social.GitHub != "" {
		checker := github.NewChecker(b.httpClient)
		if err := collect(checker.Check(ctx, "social.github", site.Social.GitHub)); err != nil {
			return nil, err
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	if sidebar == nil {
		// validated in collect mode above
		if sidebar, err = navigation.Build(site.Sidebar); err != nil {
			return nil, err
		}
	}
	if validateOnly {
		fmt.Fprintf(b.out, "%s is valid\n", b.ManifestPath)
		return sidebar, nil
	}
	return sidebar, b.write(site, sidebar)
}

// load reads the site configuration, validating it against the schema before decoding
func (b *builder) load() (*api.Site, error) {
	format, err := api.FormatOf(b.ManifestPath)
	if err != nil {
		return nil, err
	}
	raw, err := b.os.ReadFile(b.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read site configuration %s: %w", b.ManifestPath, err)
	}
	if !b.SkipSchemaValidation {
		doc, err := api.ParseDocument(raw, format)
		if err != nil {
			return nil, fmt.Errorf("can't parse site configuration %s %s content: %w", b.ManifestPath, format, err)
		}
		// the generated schema always compiles
		validator := must.Succeed(schema.NewValidator())
		if err := validator.Validate(doc); err != nil {
			var merr *multierror.Error
			if b.FailFast && errors.As(err, &merr) {
				err = merr.Errors[0]
			}
			return nil, fmt.Errorf("%s: %w", b.ManifestPath, err)
		}
	}
	site, err := api.Parse(raw, format)
	if err != nil {
		return nil, fmt.Errorf("can't parse site configuration %s %s content: %w", b.ManifestPath, format, err)
	}
	return site, nil
}

func (b *builder) projectDir() (string, error) {
	if b.ProjectDir != "" {
		return b.ProjectDir, nil
	}
	return git.ProjectDir(b.git, b.ManifestPath)
}

func (b *builder) write(site *api.Site, sidebar []*api.Group) error {
	nav, err := render.NewNavigation(site.Title, sidebar).Marshal()
	if err != nil {
		return err
	}
	head, err := render.Head(site)
	if err != nil {
		return err
	}
	var (
		w     writers.Writer
		flush func() error
	)
	if b.DryRun {
		dryRun := writers.NewDryRunWriter(b.out, b.DestinationPath)
		w, flush = dryRun, dryRun.Flush
	} else {
		klog.Infof("Output dir: %s", b.DestinationPath)
		w, flush = writers.NewFSWriter(b.os, b.DestinationPath), func() error { return nil }
	}
	if err := w.Write(render.NavigationFile, "", nav); err != nil {
		return err
	}
	if err := w.Write(render.HeadFile, "", head); err != nil {
		return err
	}
	return flush()
}

// resolve joins relative directories to the project directory
func resolve(projectDir, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(projectDir, dir)
}
