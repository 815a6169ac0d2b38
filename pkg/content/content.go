// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package content

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sourceyorg/navforge/pkg/api"
	"github.com/sourceyorg/navforge/pkg/internal/link"
	"github.com/sourceyorg/navforge/pkg/navigation"
	"github.com/sourceyorg/navforge/pkg/osfakes/osshim"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"k8s.io/klog/v2"
)

// DefaultExtensions are the content document extensions probed for a link
var DefaultExtensions = []string{".md", ".mdx"}

// Document is a content document a sidebar link resolves to
type Document struct {
	// Link is the root-relative link of the document
	Link string
	// Path is the file path of the document
	Path string
	// Title is the front matter title, if any
	Title string
	// Draft is the front matter draft flag
	Draft bool
	// FrontMatter holds all front matter properties
	FrontMatter map[string]interface{}
}

// Index resolves root-relative links to documents under a content directory
type Index struct {
	os         osshim.Os
	dir        string
	extensions []string
	md         goldmark.Markdown
	documents  map[string]*Document
}

// NewIndex creates an Index over dir. A nil or empty extensions list
// falls back to DefaultExtensions.
func NewIndex(os osshim.Os, dir string, extensions []string) *Index {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	return &Index{
		os:         os,
		dir:        dir,
		extensions: exts,
		md:         goldmark.New(goldmark.WithExtensions(meta.Meta)),
		documents:  map[string]*Document{},
	}
}

// Candidates lists the file paths probed for a link, in probing order:
// /a/b/ -> a/b.md, a/b.mdx, a/b/index.md, a/b/index.mdx
func (x *Index) Candidates(l string) []string {
	segments := link.Segments(l)
	var candidates []string
	if len(segments) > 0 {
		base := filepath.Join(append([]string{x.dir}, segments...)...)
		for _, ext := range x.extensions {
			candidates = append(candidates, base+ext)
		}
	}
	index := filepath.Join(append(append([]string{x.dir}, segments...), "index")...)
	for _, ext := range x.extensions {
		candidates = append(candidates, index+ext)
	}
	return candidates
}

// Lookup returns the document a link resolves to, or an *api.AssetNotFoundError
// attributed to field when no candidate exists
func (x *Index) Lookup(field, l string) (*Document, error) {
	if doc, ok := x.documents[l]; ok {
		return doc, nil
	}
	for _, candidate := range x.Candidates(l) {
		isDir, err := x.os.IsDir(candidate)
		if err != nil {
			if x.os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to probe %s for %s: %w", candidate, field, err)
		}
		if isDir {
			continue
		}
		doc, err := x.read(l, candidate)
		if err != nil {
			return nil, err
		}
		klog.V(6).Infof("%s resolved to %s", l, candidate)
		x.documents[l] = doc
		return doc, nil
	}
	return nil, &api.AssetNotFoundError{Field: field, Path: l}
}

func (x *Index) read(l, path string) (*Document, error) {
	src, err := x.os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content document %s: %w", path, err)
	}
	ctx := parser.NewContext()
	x.md.Parser().Parse(text.NewReader(src), parser.WithContext(ctx))
	fm, err := meta.TryGet(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't parse front matter of %s: %w", path, err)
	}
	doc := &Document{Link: l, Path: path, FrontMatter: fm}
	if title, ok := fm["title"].(string); ok {
		doc.Title = title
	}
	if draft, ok := fm["draft"].(bool); ok {
		doc.Draft = draft
	}
	return doc, nil
}

// ResolveLinks is a navigation transformation checking that every item link
// resolves to a document. Malformed links are skipped, the builder reports them.
func (x *Index) ResolveLinks() navigation.Transformation {
	return func(field string, _ *api.Group, item *api.Item) error {
		if item == nil || link.ValidateRootRelative(item.Link) != nil {
			return nil
		}
		doc, err := x.Lookup(field+".link", item.Link)
		if err != nil {
			return err
		}
		if doc.Draft {
			klog.Warningf("%s links to draft document %s", field, doc.Path)
		}
		return nil
	}
}

// Documents returns the documents resolved so far, keyed by link
func (x *Index) Documents() map[string]*Document {
	return x.documents
}
