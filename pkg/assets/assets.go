// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package assets

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/sourceyorg/navforge/pkg/api"
	"github.com/sourceyorg/navforge/pkg/internal/link"
	"github.com/sourceyorg/navforge/pkg/osfakes/osshim"
	"k8s.io/klog/v2"
)

// Checker verifies that the files referenced by a site configuration exist
type Checker struct {
	os osshim.Os
	// projectDir is the base of relative paths, e.g. ./src/styles/custom.css
	projectDir string
	// publicDir is the base of root-relative paths, e.g. /favicon-32x32.png
	publicDir string
}

// NewChecker creates a Checker
func NewChecker(os osshim.Os, projectDir, publicDir string) *Checker {
	return &Checker{os: os, projectDir: projectDir, publicDir: publicDir}
}

// Reference is an asset path together with the field referencing it
type Reference struct {
	Field string
	Path  string
}

// References lists the asset references of a site configuration in
// configuration order. Absolute URLs are left out.
func References(site *api.Site) []Reference {
	var refs []Reference
	add := func(field, path string) {
		if path == "" || link.IsAbsoluteURL(path) {
			return
		}
		refs = append(refs, Reference{Field: field, Path: path})
	}
	add("favicon", site.Favicon)
	for i, asset := range site.Head {
		if asset != nil {
			add(fmt.Sprintf("head[%d].href", i), asset.Href)
		}
	}
	for i, css := range site.CustomCSS {
		add(fmt.Sprintf("customCss[%d]", i), css)
	}
	return refs
}

// Resolve maps an asset path to a file path: root-relative paths live in the
// public directory, all others are relative to the project directory
func (c *Checker) Resolve(path string) string {
	return filepath.Join(c.base(path), filepath.FromSlash(path))
}

func (c *Checker) base(path string) string {
	if strings.HasPrefix(path, "/") {
		return c.publicDir
	}
	return c.projectDir
}

// Check verifies all asset references of site. With failFast the first
// missing asset is returned as *api.AssetNotFoundError, otherwise all are collected.
func (c *Checker) Check(site *api.Site, failFast bool) error {
	var errs *multierror.Error
	for _, ref := range References(site) {
		if err := c.check(ref); err != nil {
			if failFast {
				return err
			}
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

func (c *Checker) check(ref Reference) error {
	file := c.Resolve(ref.Path)
	base := c.base(ref.Path)
	if rel, err := filepath.Rel(base, file); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return &api.ConfigurationError{Field: ref.Field, Value: ref.Path, Reason: fmt.Sprintf("must not point outside %s", base)}
	}
	isDir, err := c.os.IsDir(file)
	if err != nil {
		if c.os.IsNotExist(err) {
			return &api.AssetNotFoundError{Field: ref.Field, Path: ref.Path}
		}
		return fmt.Errorf("failed to check %s asset %s: %w", ref.Field, file, err)
	}
	if isDir {
		return &api.AssetNotFoundError{Field: ref.Field, Path: ref.Path}
	}
	klog.V(6).Infof("%s: %s found at %s", ref.Field, ref.Path, file)
	return nil
}
