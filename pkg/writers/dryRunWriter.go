// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package writers

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"
)

// DryRunWriter records writes instead of performing them and prints
// the projected file tree on Flush
type DryRunWriter struct {
	Root  string
	out   io.Writer
	files []*file
	t1    time.Time
	now   func() time.Time
}

type file struct {
	path string
	size int
}

// NewDryRunWriter creates a dry run writer printing to out
func NewDryRunWriter(out io.Writer, root string) *DryRunWriter {
	return &DryRunWriter{
		Root: root,
		out:  out,
		t1:   time.Now(),
		now:  time.Now,
	}
}

func (d *DryRunWriter) Write(name, p string, blob []byte) error {
	if name == "" {
		return fmt.Errorf("no file name for blob under %s", p)
	}
	d.files = append(d.files, &file{
		path: path.Join(d.Root, p, name),
		size: len(blob),
	})
	return nil
}

// Flush formats and writes the dry-run result to the
// underlying writer
func (d *DryRunWriter) Flush() error {
	var b bytes.Buffer
	sort.SliceStable(d.files, func(i, j int) bool { return d.files[i].path < d.files[j].path })
	format(d.files, &b)
	fmt.Fprintf(&b, "\nBuild finished in %f seconds\n", d.now().Sub(d.t1).Seconds())
	if _, err := d.out.Write(b.Bytes()); err != nil {
		return fmt.Errorf("failed to flush dry run result: %w", err)
	}
	return nil
}

// format prints each path segment once, indented by depth, and the
// size next to the file names
func format(files []*file, b *bytes.Buffer) {
	seen := map[string]bool{}
	for _, f := range files {
		segments := strings.Split(strings.TrimPrefix(f.path, "/"), "/")
		for i, s := range segments {
			p := strings.Join(segments[:i+1], "/")
			if seen[p] {
				continue
			}
			seen[p] = true
			b.WriteString(strings.Repeat("  ", i))
			if i == len(segments)-1 {
				fmt.Fprintf(b, "%s (%d bytes)\n", s, f.size)
				continue
			}
			fmt.Fprintf(b, "%s\n", s)
		}
	}
}
