// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v43/github"
	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/peterbourgon/diskv"
	"github.com/sourceyorg/navforge/pkg/api"
	"golang.org/x/oauth2"
	"k8s.io/klog/v2"
)

// Host is the GitHub host social links are expected on
const Host = "github.com"

// NewHTTPClient builds the HTTP client of the GitHub API. An empty accessToken
// means unauthenticated access. With a cachePath responses are cached on disk.
func NewHTTPClient(ctx context.Context, accessToken string, cachePath string) *http.Client {
	base := http.DefaultTransport
	if len(accessToken) > 0 {
		// if token provided replace base RoundTripper
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
		base = oauth2.NewClient(ctx, ts).Transport
	}
	if cachePath == "" {
		return &http.Client{Transport: base}
	}
	flatTransform := func(s string) []string { return []string{} }
	d := diskv.New(diskv.Options{
		BasePath:     cachePath,
		Transform:    flatTransform,
		CacheSizeMax: 100 * 1024 * 1024,
	})
	cacheTransport := &httpcache.Transport{
		Transport:           base,
		Cache:               diskcache.NewWithDiskv(d),
		MarkCachedResponses: true,
	}
	return cacheTransport.Client()
}

// Checker checks that social GitHub links point to existing accounts or repositories
type Checker struct {
	client *github.Client
}

// NewChecker creates a Checker using httpClient for API calls
func NewChecker(httpClient *http.Client) *Checker {
	return &Checker{client: github.NewClient(httpClient)}
}

// NewCheckerWithClient creates a Checker on top of a prepared API client
func NewCheckerWithClient(client *github.Client) *Checker {
	return &Checker{client: client}
}

// ParseURL splits https://github.com/<owner>[/<repo>] into its owner and
// optional repository name
func ParseURL(rawURL string) (owner string, repo string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("couldn't parse url: %s", rawURL)
	}
	if u.Host != Host && u.Host != "www."+Host {
		return "", "", fmt.Errorf("%s is not a %s URL", rawURL, Host)
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	switch {
	case len(segments) == 1 && segments[0] != "":
		return segments[0], "", nil
	case len(segments) == 2:
		return segments[0], strings.TrimSuffix(segments[1], ".git"), nil
	}
	return "", "", fmt.Errorf("%s must reference an account or a repository", rawURL)
}

// Check verifies the account or repository referenced by rawURL exists.
// A missing one is reported as *api.AssetNotFoundError attributed to field.
func (c *Checker) Check(ctx context.Context, field string, rawURL string) error {
	owner, repo, err := ParseURL(rawURL)
	if err != nil {
		return &api.ConfigurationError{Field: field, Value: rawURL, Reason: err.Error()}
	}
	var resp *github.Response
	if repo == "" {
		_, resp, err = c.client.Users.Get(ctx, owner)
	} else {
		_, resp, err = c.client.Repositories.Get(ctx, owner, repo)
	}
	if resp != nil {
		klog.V(4).Infof("%s: GitHub rate limit remaining %d/%d", field, resp.Rate.Remaining, resp.Rate.Limit)
	}
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return &api.AssetNotFoundError{Field: field, Path: rawURL}
		}
		return fmt.Errorf("failed to check %s %s: %w", field, rawURL, err)
	}
	return nil
}
