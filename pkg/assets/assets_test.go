// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package assets_test

import (
	"errors"
	"testing/fstest"

	"github.com/hashicorp/go-multierror"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/sourceyorg/navforge/pkg/api"
	"github.com/sourceyorg/navforge/pkg/assets"
	"github.com/sourceyorg/navforge/pkg/osfakes/osshim/osshimfakes"
)

var project = fstest.MapFS{
	"site/public/images/favicon.ico":   {Data: []byte{0}},
	"site/public/favicon-32x32.png":    {Data: []byte{0}},
	"site/public/site.webmanifest":     {Data: []byte("{}")},
	"site/public/apple-touch-icon.png": {Data: []byte{0}},
	"site/src/styles/custom.css":       {Data: []byte("body{}")},
}

var _ = Describe("Checker", func() {
	var (
		site    *api.Site
		checker *assets.Checker
	)

	BeforeEach(func() {
		site = &api.Site{
			Title:   "Docs",
			Favicon: "/images/favicon.ico",
			Head: []*api.HeadAsset{
				{Rel: "apple-touch-icon", Href: "/apple-touch-icon.png", Sizes: "180x180"},
				{Rel: "icon", Href: "/favicon-32x32.png", Sizes: "32x32"},
				{Rel: "icon", Href: "https://cdn.example.com/favicon-16x16.png", Sizes: "16x16"},
				{Rel: "manifest", Href: "/site.webmanifest"},
			},
			CustomCSS: []string{"./src/styles/custom.css"},
		}
		checker = assets.NewChecker(osshimfakes.FromFS(project), "site", "site/public")
	})

	It("lists references skipping absolute URLs", func() {
		Expect(assets.References(site)).To(Equal([]assets.Reference{
			{Field: "favicon", Path: "/images/favicon.ico"},
			{Field: "head[0].href", Path: "/apple-touch-icon.png"},
			{Field: "head[1].href", Path: "/favicon-32x32.png"},
			{Field: "head[3].href", Path: "/site.webmanifest"},
			{Field: "customCss[0]", Path: "./src/styles/custom.css"},
		}))
	})

	It("resolves root-relative paths in the public directory", func() {
		Expect(checker.Resolve("/site.webmanifest")).To(Equal("site/public/site.webmanifest"))
		Expect(checker.Resolve("./src/styles/custom.css")).To(Equal("site/src/styles/custom.css"))
	})

	It("accepts existing assets", func() {
		Expect(checker.Check(site, true)).To(Succeed())
	})

	It("reports a missing head asset", func() {
		site.Head[1].Href = "/favicon-64x64.png"
		err := checker.Check(site, true)
		var notFound *api.AssetNotFoundError
		Expect(errors.As(err, &notFound)).To(BeTrue())
		Expect(notFound).To(Equal(&api.AssetNotFoundError{Field: "head[1].href", Path: "/favicon-64x64.png"}))
		Expect(err.Error()).To(Equal(`head[1].href references missing asset "/favicon-64x64.png"`))
	})

	It("rejects paths leaving their base directory", func() {
		site.Head[3].Href = "/../src/styles/custom.css"
		site.CustomCSS = []string{"../outside.css", "./src/../src/styles/custom.css"}
		err := checker.Check(site, false)
		var merr *multierror.Error
		Expect(errors.As(err, &merr)).To(BeTrue())
		Expect(merr.Errors).To(ConsistOf(
			&api.ConfigurationError{Field: "head[3].href", Value: "/../src/styles/custom.css", Reason: "must not point outside site/public"},
			&api.ConfigurationError{Field: "customCss[0]", Value: "../outside.css", Reason: "must not point outside site"},
		))
	})

	It("reports a directory as missing asset", func() {
		site.Favicon = "/images"
		Expect(checker.Check(site, true)).To(BeAssignableToTypeOf(&api.AssetNotFoundError{}))
	})

	It("collects all missing assets", func() {
		site.Favicon = "/favicon.ico"
		site.CustomCSS = append(site.CustomCSS, "./src/styles/theme.css")
		err := checker.Check(site, false)
		var merr *multierror.Error
		Expect(errors.As(err, &merr)).To(BeTrue())
		Expect(merr.Errors).To(HaveLen(2))
	})
})
