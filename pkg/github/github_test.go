// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package github_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"

	gh "github.com/google/go-github/v43/github"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
	"github.com/sourceyorg/navforge/pkg/api"
	"github.com/sourceyorg/navforge/pkg/github"
)

var _ = Describe("ParseURL", func() {
	DescribeTable("splits GitHub URLs",
		func(rawURL, owner, repo string) {
			o, r, err := github.ParseURL(rawURL)
			Expect(err).NotTo(HaveOccurred())
			Expect(o).To(Equal(owner))
			Expect(r).To(Equal(repo))
		},
		Entry("repository", "https://github.com/sourceyorg/sourcey", "sourceyorg", "sourcey"),
		Entry("repository with trailing slash", "https://github.com/sourceyorg/sourcey/", "sourceyorg", "sourcey"),
		Entry("clone URL", "https://github.com/sourceyorg/sourcey.git", "sourceyorg", "sourcey"),
		Entry("organization", "https://github.com/sourceyorg", "sourceyorg", ""),
	)

	DescribeTable("rejects other URLs",
		func(rawURL string) {
			_, _, err := github.ParseURL(rawURL)
			Expect(err).To(HaveOccurred())
		},
		Entry("other host", "https://gitlab.com/sourceyorg/sourcey"),
		Entry("no owner", "https://github.com/"),
		Entry("too deep", "https://github.com/sourceyorg/sourcey/tree/main"),
	)
})

var _ = Describe("Checker", func() {
	var (
		server  *httptest.Server
		checker *github.Checker
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/sourceyorg/sourcey", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"id": 1, "name": "sourcey", "full_name": "sourceyorg/sourcey"}`)
		})
		mux.HandleFunc("/users/sourceyorg", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"login": "sourceyorg", "type": "Organization"}`)
		})
		mux.HandleFunc("/repos/sourceyorg/broken", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		server = httptest.NewServer(mux)
		client := gh.NewClient(nil)
		baseURL, err := url.Parse(server.URL + "/")
		Expect(err).NotTo(HaveOccurred())
		client.BaseURL = baseURL
		checker = github.NewCheckerWithClient(client)
	})

	AfterEach(func() {
		server.Close()
	})

	It("accepts an existing repository", func() {
		Expect(checker.Check(ctx, "social.github", "https://github.com/sourceyorg/sourcey")).To(Succeed())
	})

	It("accepts an existing organization", func() {
		Expect(checker.Check(ctx, "social.github", "https://github.com/sourceyorg")).To(Succeed())
	})

	It("reports a missing repository", func() {
		err := checker.Check(ctx, "social.github", "https://github.com/sourceyorg/missing")
		Expect(err).To(Equal(&api.AssetNotFoundError{Field: "social.github", Path: "https://github.com/sourceyorg/missing"}))
	})

	It("reports a malformed link as configuration error", func() {
		err := checker.Check(ctx, "social.github", "https://example.com/sourceyorg")
		Expect(err).To(BeAssignableToTypeOf(&api.ConfigurationError{}))
	})

	It("wraps other API failures", func() {
		err := checker.Check(ctx, "social.github", "https://github.com/sourceyorg/broken")
		Expect(err).To(HaveOccurred())
		Expect(err).NotTo(BeAssignableToTypeOf(&api.AssetNotFoundError{}))
		Expect(err.Error()).To(ContainSubstring("failed to check social.github"))
	})
})

var _ = Describe("NewHTTPClient", func() {
	It("serves repeated requests from the disk cache", func() {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			Expect(r.Header.Get("Authorization")).To(Equal("Bearer s0m3tok3n"))
			w.Header().Set("Cache-Control", "max-age=3600")
			fmt.Fprint(w, `{"login":"sourceyorg"}`)
		}))
		defer server.Close()
		cacheDir, err := os.MkdirTemp("", "navforge-cache")
		Expect(err).NotTo(HaveOccurred())
		defer os.RemoveAll(cacheDir)

		client := github.NewHTTPClient(context.Background(), "s0m3tok3n", cacheDir)
		for i := 0; i < 2; i++ {
			resp, err := client.Get(server.URL + "/users/sourceyorg")
			Expect(err).NotTo(HaveOccurred())
			_, err = io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Body.Close()).To(Succeed())
			if i == 1 {
				Expect(resp.Header.Get("X-From-Cache")).To(Equal("1"))
			}
		}
		Expect(calls).To(Equal(1))
	})
})
