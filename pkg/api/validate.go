// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/hashicorp/go-multierror"
)

var sizesPattern = regexp.MustCompile(`^[1-9][0-9]*x[1-9][0-9]*$`)

// HeadRelations are the link relations accepted in head assets
var HeadRelations = []string{"icon", "apple-touch-icon", "manifest"}

// ValidateSite checks the site-level fields of a configuration. The sidebar
// must be present, its entries are left to the navigation builder. With failFast the first violation is
// returned, otherwise all of them are collected.
func ValidateSite(site *Site, failFast bool) error {
	var errs *multierror.Error
	report := func(err *ConfigurationError) bool {
		errs = multierror.Append(errs, err)
		return failFast
	}
	if site == nil {
		return &ConfigurationError{Field: "site", Reason: "configuration is empty"}
	}
	if site.Title == "" {
		if report(&ConfigurationError{Field: "title", Reason: "must not be empty"}) {
			return errs.Errors[0]
		}
	}
	if site.Sidebar == nil {
		if report(&ConfigurationError{Field: "sidebar", Reason: "is required, use [] for an empty sidebar"}) {
			return errs.Errors[0]
		}
	}
	for i, asset := range site.Head {
		if err := validateHeadAsset(fmt.Sprintf("head[%d]", i), asset); err != nil {
			if report(err) {
				return errs.Errors[0]
			}
		}
	}
	for i, css := range site.CustomCSS {
		if css == "" {
			if report(&ConfigurationError{Field: fmt.Sprintf("customCss[%d]", i), Reason: "must not be empty"}) {
				return errs.Errors[0]
			}
		}
	}
	if site.Social != nil && site.Social.GitHub != "" {
		u, err := url.Parse(site.Social.GitHub)
		if err != nil || u.Scheme != "https" || u.Host == "" {
			if report(&ConfigurationError{Field: "social.github", Value: site.Social.GitHub, Reason: "must be an absolute https URL"}) {
				return errs.Errors[0]
			}
		}
	}
	if site.Image != nil && site.Image.Service != nil && site.Image.Service.Entrypoint == "" {
		if report(&ConfigurationError{Field: "image.service.entrypoint", Reason: "must not be empty"}) {
			return errs.Errors[0]
		}
	}
	return errs.ErrorOrNil()
}

func validateHeadAsset(field string, asset *HeadAsset) *ConfigurationError {
	if asset == nil {
		return &ConfigurationError{Field: field, Reason: "must not be empty"}
	}
	valid := false
	for _, rel := range HeadRelations {
		if asset.Rel == rel {
			valid = true
			break
		}
	}
	if !valid {
		return &ConfigurationError{Field: field + ".rel", Value: asset.Rel, Reason: fmt.Sprintf("must be one of %v", HeadRelations)}
	}
	if asset.Href == "" {
		return &ConfigurationError{Field: field + ".href", Reason: "must not be empty"}
	}
	if asset.Sizes != "" && !sizesPattern.MatchString(asset.Sizes) {
		return &ConfigurationError{Field: field + ".sizes", Value: asset.Sizes, Reason: "must have the form WxH"}
	}
	return nil
}
