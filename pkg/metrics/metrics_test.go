// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package metrics_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sourceyorg/navforge/pkg/api"
	"github.com/sourceyorg/navforge/pkg/metrics"
)

var _ = Describe("Metrics", func() {
	var build *metrics.Build

	BeforeEach(func() {
		build = metrics.NewBuild()
	})

	It("counts sidebar groups and items", func() {
		build.ObserveSidebar([]*api.Group{
			{Label: "Guides", Items: []*api.Item{{Label: "A", Link: "/a/"}, {Label: "B", Link: "/b/"}}},
			{Label: "Reference", Items: []*api.Item{{Label: "C", Link: "/c/"}}},
		})
		expected := `
# HELP navforge_sidebar_groups Number of sidebar groups of the last build.
# TYPE navforge_sidebar_groups gauge
navforge_sidebar_groups 2
# HELP navforge_sidebar_items Number of sidebar items of the last build.
# TYPE navforge_sidebar_items gauge
navforge_sidebar_items 3
`
		Expect(testutil.GatherAndCompare(build.Registry(), strings.NewReader(expected),
			"navforge_sidebar_groups", "navforge_sidebar_items")).To(Succeed())
	})

	It("counts errors by type through wrappers and error lists", func() {
		var merr *multierror.Error
		merr = multierror.Append(merr,
			&api.ConfigurationError{Field: "title", Reason: "must not be empty"},
			fmt.Errorf("content: %w", &api.AssetNotFoundError{Field: "sidebar[0].items[0].link", Path: "/a/"}),
			&api.AssetNotFoundError{Field: "favicon", Path: "/favicon.svg"},
		)
		build.ObserveError(merr)
		build.ObserveError(errors.New("boom"))
		build.ObserveError(nil)

		dir, err := os.MkdirTemp("", "metrics")
		Expect(err).NotTo(HaveOccurred())
		defer os.RemoveAll(dir)
		path := filepath.Join(dir, "navforge.prom")
		Expect(build.WriteToTextfile(path)).To(Succeed())
		b, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).To(ContainSubstring(`navforge_build_errors_total{type="configuration"} 1`))
		Expect(string(b)).To(ContainSubstring(`navforge_build_errors_total{type="asset_not_found"} 2`))
		Expect(string(b)).To(ContainSubstring(`navforge_build_errors_total{type="other"} 1`))
	})

	It("records build durations", func() {
		build.ObserveDuration(200 * time.Millisecond)
		Expect(testutil.GatherAndCount(build.Registry(), "navforge_build_duration_seconds")).To(Equal(1))
	})

	It("meters instrumented client requests", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()
		client := metrics.InstrumentClient(&http.Client{})
		resp, err := client.Get(server.URL)
		Expect(err).NotTo(HaveOccurred())
		resp.Body.Close()
		Expect(testutil.GatherAndCount(build.Registry(), "navforge_github_api_requests_total")).To(Equal(1))
	})

	DescribeTable("classifies errors",
		func(err error, want string) {
			Expect(metrics.ErrorType(err)).To(Equal(want))
		},
		Entry("configuration", &api.ConfigurationError{}, metrics.ErrorTypeConfiguration),
		Entry("wrapped missing asset", fmt.Errorf("x: %w", &api.AssetNotFoundError{}), metrics.ErrorTypeAssetNotFound),
		Entry("wrapped schema violations", fmt.Errorf("site.yaml: %w", multierror.Append(nil, &api.ConfigurationError{Field: "sidebar[0].items"})), metrics.ErrorTypeConfiguration),
		Entry("other", errors.New("x"), metrics.ErrorTypeOther),
	)
})
