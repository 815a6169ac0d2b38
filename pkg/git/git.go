// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package git

import (
	"errors"
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"k8s.io/klog/v2"
)

// Git interface defines gogit git API
type Git interface {
	PlainOpenWithOptions(path string, o *gogit.PlainOpenOptions) (Repository, error)
}

// Repository interface defines gogit repository API
type Repository interface {
	// Root returns the worktree root directory
	Root() (string, error)
}

type git struct {
	repository *gogit.Repository
}

// NewGit creates new git struct
func NewGit() Git {
	return &git{}
}

// PlainOpenWithOptions calls git repository API PlainOpenWithOptions
func (g *git) PlainOpenWithOptions(path string, o *gogit.PlainOpenOptions) (Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(path, o)
	return &git{repository: repo}, err
}

// Root returns the root of the repository worktree
func (g *git) Root() (string, error) {
	w, err := g.repository.Worktree()
	if err != nil {
		return "", err
	}
	return w.Filesystem.Root(), nil
}

// RepositoryRoot returns the root of the git worktree enclosing dir.
// The boolean is false when dir is not inside a worktree.
func RepositoryRoot(g Git, dir string) (string, bool, error) {
	repo, err := g.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to open repository at %s: %w", dir, err)
	}
	root, err := repo.Root()
	if err != nil {
		if errors.Is(err, gogit.ErrIsBareRepository) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get worktree of repository at %s: %w", dir, err)
	}
	return root, true, nil
}

// ProjectDir resolves the project directory of a site configuration file:
// the enclosing worktree root, or the directory of the file outside a repository
func ProjectDir(g Git, configFile string) (string, error) {
	abs, err := filepath.Abs(configFile)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", configFile, err)
	}
	dir := filepath.Dir(abs)
	root, ok, err := RepositoryRoot(g, dir)
	if err != nil {
		return "", err
	}
	if !ok {
		klog.V(4).Infof("%s is not in a git repository, using %s as project directory", configFile, dir)
		return dir, nil
	}
	klog.V(4).Infof("using repository root %s as project directory", root)
	return root, nil
}
