// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package navigation

import "github.com/sourceyorg/navforge/pkg/api"

// Page is a sidebar item in reading order, with links to its neighbours
type Page struct {
	Label string `yaml:"label" json:"label"`
	Link  string `yaml:"link" json:"link"`
	// Group is the label of the sidebar group holding the page
	Group string `yaml:"group" json:"group"`
	// Position is the zero-based reading order index
	Position int       `yaml:"position" json:"position"`
	Prev     *PageLink `yaml:"prev,omitempty" json:"prev,omitempty"`
	Next     *PageLink `yaml:"next,omitempty" json:"next,omitempty"`
}

// PageLink references a neighbouring page
type PageLink struct {
	Label string `yaml:"label" json:"label"`
	Link  string `yaml:"link" json:"link"`
}

// Flatten lists the items of a built sidebar in display order. Pagination
// runs across group boundaries, the first page has no Prev and the last no Next.
func Flatten(groups []*api.Group) []*Page {
	pages := []*Page{}
	for _, group := range groups {
		for _, item := range group.Items {
			pages = append(pages, &Page{
				Label:    item.Label,
				Link:     item.Link,
				Group:    group.Label,
				Position: len(pages),
			})
		}
	}
	for i, page := range pages {
		if i > 0 {
			page.Prev = &PageLink{Label: pages[i-1].Label, Link: pages[i-1].Link}
		}
		if i < len(pages)-1 {
			page.Next = &PageLink{Label: pages[i+1].Label, Link: pages[i+1].Link}
		}
	}
	return pages
}
