// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package api

// Site models the configuration of a documentation website. It is handed over
// verbatim to the static-site framework once navforge has validated it.
type Site struct {
	// Title is the site display name.
	//
	// Mandatory
	Title string `yaml:"title" json:"title" toml:"title" jsonschema:"minLength=1"`
	// Favicon is the root-relative path of the favicon asset, resolved
	// against the public directory.
	//
	// Optional
	Favicon string `yaml:"favicon,omitempty" json:"favicon,omitempty" toml:"favicon,omitempty"`
	// Head lists the icon and manifest links injected into every page head.
	//
	// Optional
	Head []*HeadAsset `yaml:"head,omitempty" json:"head,omitempty" toml:"head,omitempty"`
	// CustomCSS lists stylesheet paths relative to the project root.
	//
	// Optional
	CustomCSS []string `yaml:"customCss,omitempty" json:"customCss,omitempty" toml:"customCss,omitempty"`
	// Social holds links to the project on social platforms.
	//
	// Optional
	Social *Social `yaml:"social,omitempty" json:"social,omitempty" toml:"social,omitempty"`
	// Sidebar is the navigation menu. Group and item order is display order.
	//
	// Mandatory, an empty sidebar is written as []
	Sidebar []*Group `yaml:"sidebar" json:"sidebar" toml:"sidebar"`
	// Image configures the image-processing backend of the framework.
	//
	// Optional
	Image *Image `yaml:"image,omitempty" json:"image,omitempty" toml:"image,omitempty"`
}

// Group is a labelled section of the sidebar.
type Group struct {
	// Label is the section heading. Should be unique among sibling groups.
	Label string `yaml:"label" json:"label" toml:"label"`
	// Items are the entries of the section, in display order.
	Items []*Item `yaml:"items" json:"items" toml:"items"`
}

// Item is a single sidebar entry pointing to a content document.
type Item struct {
	// Label is the entry text.
	Label string `yaml:"label" json:"label" toml:"label"`
	// Link is a root-relative path beginning and ending with "/",
	// e.g. /guides/getting-started/
	Link string `yaml:"link" json:"link" toml:"link"`
}

// HeadAsset is a link element injected into the document head.
type HeadAsset struct {
	// Rel is the link relation: icon, apple-touch-icon or manifest.
	Rel string `yaml:"rel" json:"rel" toml:"rel" jsonschema:"enum=icon,enum=apple-touch-icon,enum=manifest"`
	// Href is the asset path or an absolute URL.
	Href string `yaml:"href" json:"href" toml:"href"`
	// Sizes has the form WxH, e.g. 32x32.
	Sizes string `yaml:"sizes,omitempty" json:"sizes,omitempty" toml:"sizes,omitempty"`
}

// Social holds the project social links
type Social struct {
	GitHub string `yaml:"github,omitempty" json:"github,omitempty" toml:"github,omitempty"`
}

// Image configures image processing
type Image struct {
	Service *ImageService `yaml:"service,omitempty" json:"service,omitempty" toml:"service,omitempty"`
}

// ImageService names the image-processing backend
type ImageService struct {
	Entrypoint string `yaml:"entrypoint" json:"entrypoint" toml:"entrypoint"`
}

// Copy returns a deep copy of the group, items included
func (g *Group) Copy() *Group {
	out := &Group{Label: g.Label}
	if g.Items != nil {
		out.Items = make([]*Item, 0, len(g.Items))
	}
	for _, item := range g.Items {
		if item == nil {
			out.Items = append(out.Items, nil)
			continue
		}
		c := *item
		out.Items = append(out.Items, &c)
	}
	return out
}
