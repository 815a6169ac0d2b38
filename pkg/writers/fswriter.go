// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package writers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sourceyorg/navforge/pkg/osfakes/osshim"
	"k8s.io/klog/v2"
)

// FSWriter is implementation of Writer interface for writing blobs to the file system
type FSWriter struct {
	Root string
	os   osshim.Os
}

// NewFSWriter creates a writer rooted at root
func NewFSWriter(os osshim.Os, root string) *FSWriter {
	return &FSWriter{Root: root, os: os}
}

func (f *FSWriter) Write(name, path string, blob []byte) error {
	if name == "" {
		return fmt.Errorf("no file name for blob under %s", path)
	}
	p := filepath.Join(f.Root, path)
	if err := f.os.MkdirAll(p, os.ModePerm); err != nil {
		return fmt.Errorf("error creating directory %s: %w", p, err)
	}
	filePath := filepath.Join(p, name)
	if err := f.os.WriteFile(filePath, blob, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", filePath, err)
	}
	klog.V(6).Infof("written %s (%d bytes)", filePath, len(blob))
	return nil
}
