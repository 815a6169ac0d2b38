// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package osshimfakes

import (
	"errors"
	"io/fs"
	"path/filepath"
)

// FromFS creates a FakeOs reading from fsys. Paths are cleaned and converted
// to slash form, so fsys must hold them relative, e.g. "docs/guides/a.md".
// Writes are recorded only.
func FromFS(fsys fs.FS) *FakeOs {
	fake := &FakeOs{}
	fake.ReadFileCalls(func(name string) ([]byte, error) {
		return fs.ReadFile(fsys, filepath.ToSlash(filepath.Clean(name)))
	})
	fake.IsNotExistCalls(func(err error) bool {
		return errors.Is(err, fs.ErrNotExist)
	})
	fake.IsDirCalls(func(path string) (bool, error) {
		stat, err := fs.Stat(fsys, filepath.ToSlash(filepath.Clean(path)))
		if err != nil {
			return false, err
		}
		return stat.IsDir(), nil
	})
	return fake
}
