// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sourceyorg/navforge/pkg/api"
	"github.com/sourceyorg/navforge/pkg/navigation"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// NavigationFile is the bundle file holding the navigation tree
	NavigationFile = "navigation.json"
	// HeadFile is the bundle file holding the rendered head links
	HeadFile = "head.html"
)

// Navigation is the navigation bundle consumed by the site framework
type Navigation struct {
	Title   string             `json:"title"`
	Sidebar []*api.Group       `json:"sidebar"`
	Pages   []*navigation.Page `json:"pages"`
}

// NewNavigation assembles the navigation bundle from a validated sidebar
func NewNavigation(title string, sidebar []*api.Group) *Navigation {
	if sidebar == nil {
		sidebar = []*api.Group{}
	}
	return &Navigation{
		Title:   title,
		Sidebar: sidebar,
		Pages:   navigation.Flatten(sidebar),
	}
}

// Marshal encodes the bundle as indented JSON
func (n *Navigation) Marshal() ([]byte, error) {
	b, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal navigation: %w", err)
	}
	return append(b, '\n'), nil
}

// Head renders the favicon and head assets of a site as <link> elements,
// one per line, favicon first
func Head(site *api.Site) ([]byte, error) {
	var nodes []*html.Node
	if site.Favicon != "" {
		nodes = append(nodes, link(&api.HeadAsset{Rel: "icon", Href: site.Favicon}))
	}
	for _, a := range site.Head {
		if a == nil {
			continue
		}
		nodes = append(nodes, link(a))
	}
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return nil, fmt.Errorf("failed to render head link %s: %w", n.Attr[1].Val, err)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func link(a *api.HeadAsset) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Link,
		Data:     "link",
		Attr: []html.Attribute{
			{Key: "rel", Val: a.Rel},
			{Key: "href", Val: a.Href},
		},
	}
	if a.Sizes != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "sizes", Val: a.Sizes})
	}
	return n
}
