// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

const debounce = 300 * time.Millisecond

func watch(ctx context.Context, vip *viper.Viper, out io.Writer) error {
	o, err := unmarshalOptions(vip, true)
	if err != nil {
		return err
	}
	b := newBuilder(o, out)
	set, err := b.watchSet()
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()
	if err := set.add(watcher); err != nil {
		return err
	}
	return watchLoop(ctx, watcher, set.relevant, func() {
		start := time.Now()
		if err := b.run(ctx, false); err != nil {
			klog.Errorf("build failed: %v", err)
			return
		}
		klog.Infof("built %s in %s", b.ManifestPath, time.Since(start).Round(time.Millisecond))
	})
}

// watchSet holds the inputs of a build. Build outputs are excluded so that
// writing them doesn't trigger another build.
type watchSet struct {
	manifest string
	trees    []string
	excluded []string
	// metrics is the metrics file, written through temporary files named after it
	metrics string
}

func (b *builder) watchSet() (*watchSet, error) {
	projectDir, err := b.projectDir()
	if err != nil {
		return nil, err
	}
	manifest, err := filepath.Abs(b.ManifestPath)
	if err != nil {
		return nil, err
	}
	set := &watchSet{manifest: manifest}
	if !b.SkipLinkValidation {
		set.trees = append(set.trees, resolve(projectDir, b.ContentDir))
	}
	if !b.SkipAssetValidation {
		set.trees = append(set.trees, resolve(projectDir, b.PublicDir))
	}
	if !b.DryRun {
		set.excluded = append(set.excluded, b.DestinationPath)
	}
	if b.MetricsFile != "" {
		if set.metrics, err = filepath.Abs(b.MetricsFile); err != nil {
			return nil, err
		}
	}
	for i, tree := range set.trees {
		if set.trees[i], err = filepath.Abs(tree); err != nil {
			return nil, err
		}
	}
	for i, path := range set.excluded {
		if set.excluded[i], err = filepath.Abs(path); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// add watches the manifest directory without its subdirectories and the
// content and public trees recursively
func (s *watchSet) add(watcher *fsnotify.Watcher) error {
	// editors replace files on save, so the manifest's directory is watched
	if err := watcher.Add(filepath.Dir(s.manifest)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.manifest, err)
	}
	for _, tree := range s.trees {
		if err := addTree(watcher, tree, s.skip); err != nil {
			return err
		}
	}
	return nil
}

// relevant reports whether a change of path affects the build
func (s *watchSet) relevant(path string) bool {
	if s.skip(path) {
		return false
	}
	if path == s.manifest {
		return true
	}
	for _, tree := range s.trees {
		if within(path, tree) {
			return true
		}
	}
	return false
}

func (s *watchSet) skip(path string) bool {
	if s.metrics != "" && strings.HasPrefix(path, s.metrics) {
		return true
	}
	for _, excluded := range s.excluded {
		if within(path, excluded) {
			return true
		}
	}
	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if segment == ".git" {
			return true
		}
	}
	return false
}

// within reports whether path is dir or lies below it
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// watchLoop builds once, then on every settled burst of relevant events until ctx is done
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, relevant func(path string) bool, build func()) error {
	build()
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			klog.Info("stopped watching")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod || !relevant(event.Name) {
				continue
			}
			klog.V(4).Infof("%s %s", event.Op, event.Name)
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(watcher, event.Name, func(path string) bool { return !relevant(path) }); err != nil {
						klog.Warning(err)
					}
				}
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			klog.Warningf("watch error: %v", err)
		case <-timer.C:
			build()
		}
	}
}

// addTree watches dir and its subdirectories except those skip matches.
// A missing dir is skipped.
func addTree(watcher *fsnotify.Watcher, dir string, skip func(path string) bool) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == dir {
				klog.Warningf("%s does not exist, not watching it", dir)
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if skip(path) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		klog.V(6).Infof("watching %s", path)
		return nil
	})
}
