// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package api_test

import (
	"errors"

	"github.com/hashicorp/go-multierror"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
	"github.com/sourceyorg/navforge/pkg/api"
)

var _ = Describe("ValidateSite", func() {
	var site *api.Site

	BeforeEach(func() {
		site = &api.Site{
			Title:   "Docs",
			Favicon: "/images/favicon.ico",
			Head: []*api.HeadAsset{
				{Rel: "apple-touch-icon", Href: "/apple-touch-icon.png", Sizes: "180x180"},
				{Rel: "manifest", Href: "/site.webmanifest"},
			},
			Social:  &api.Social{GitHub: "https://github.com/sourceyorg/sourcey"},
			Image:   &api.Image{Service: &api.ImageService{Entrypoint: "astro/assets/services/sharp"}},
			Sidebar: []*api.Group{},
		}
	})

	It("accepts a valid site", func() {
		Expect(api.ValidateSite(site, true)).To(Succeed())
	})

	It("rejects a nil site", func() {
		Expect(api.ValidateSite(nil, true)).To(HaveOccurred())
	})

	DescribeTable("reports the offending field",
		func(mutate func(s *api.Site), field string) {
			mutate(site)
			err := api.ValidateSite(site, true)
			var cfgErr *api.ConfigurationError
			Expect(errors.As(err, &cfgErr)).To(BeTrue())
			Expect(cfgErr.Field).To(Equal(field))
		},
		Entry("empty title", func(s *api.Site) { s.Title = "" }, "title"),
		Entry("unknown rel", func(s *api.Site) { s.Head[0].Rel = "stylesheet" }, "head[0].rel"),
		Entry("empty href", func(s *api.Site) { s.Head[1].Href = "" }, "head[1].href"),
		Entry("malformed sizes", func(s *api.Site) { s.Head[0].Sizes = "180" }, "head[0].sizes"),
		Entry("zero sizes", func(s *api.Site) { s.Head[0].Sizes = "0x0" }, "head[0].sizes"),
		Entry("nil head asset", func(s *api.Site) { s.Head[1] = nil }, "head[1]"),
		Entry("empty stylesheet", func(s *api.Site) { s.CustomCSS = []string{""} }, "customCss[0]"),
		Entry("relative github link", func(s *api.Site) { s.Social.GitHub = "github.com/sourceyorg" }, "social.github"),
		Entry("omitted sidebar", func(s *api.Site) { s.Sidebar = nil }, "sidebar"),
		Entry("empty image entrypoint", func(s *api.Site) { s.Image.Service.Entrypoint = "" }, "image.service.entrypoint"),
	)

	DescribeTable("agrees with the schema on the sidebar key",
		func(format api.Format, content string, valid bool) {
			parsed, err := api.Parse([]byte(content), format)
			Expect(err).NotTo(HaveOccurred())
			if valid {
				Expect(api.ValidateSite(parsed, true)).To(Succeed())
				return
			}
			Expect(api.ValidateSite(parsed, true)).To(MatchError(&api.ConfigurationError{Field: "sidebar", Reason: "is required, use [] for an empty sidebar"}))
		},
		Entry("empty yaml sidebar", api.YAML, "title: Docs\nsidebar: []\n", true),
		Entry("empty json sidebar", api.JSON, `{"title": "Docs", "sidebar": []}`, true),
		Entry("omitted yaml sidebar", api.YAML, "title: Docs\n", false),
		Entry("omitted json sidebar", api.JSON, `{"title": "Docs"}`, false),
	)

	It("collects all violations when not failing fast", func() {
		site.Title = ""
		site.Head[0].Sizes = "big"
		err := api.ValidateSite(site, false)
		var merr *multierror.Error
		Expect(errors.As(err, &merr)).To(BeTrue())
		Expect(merr.Errors).To(HaveLen(2))
	})

	It("stops at the first violation when failing fast", func() {
		site.Title = ""
		site.Head[0].Sizes = "big"
		err := api.ValidateSite(site, true)
		Expect(err).To(BeAssignableToTypeOf(&api.ConfigurationError{}))
		Expect(err.Error()).To(Equal(`invalid title "": must not be empty`))
	})
})
