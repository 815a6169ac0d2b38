// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	. "github.com/onsi/ginkgo"
	"github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
	"github.com/sourceyorg/navforge/pkg/content"
	"github.com/sourceyorg/navforge/pkg/render"
)

var _ = Describe("Watch", func() {
	var (
		dir     string
		watcher *fsnotify.Watcher
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "navforge-watch")
		Expect(err).NotTo(HaveOccurred())
		Expect(os.MkdirAll(filepath.Join(dir, "guides"), os.ModePerm)).To(Succeed())
		Expect(os.MkdirAll(filepath.Join(dir, ".git", "objects"), os.ModePerm)).To(Succeed())
		watcher, err = fsnotify.NewWatcher()
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(watcher.Close()).To(Succeed())
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("watches nested directories and skips missing and excluded ones", func() {
		set := &watchSet{}
		Expect(addTree(watcher, dir, set.skip)).To(Succeed())
		Expect(watcher.WatchList()).To(ConsistOf(dir, filepath.Join(dir, "guides")))
		Expect(addTree(watcher, filepath.Join(dir, "missing"), set.skip)).To(Succeed())
	})

	It("builds once on start and once per burst of changes until stopped", func() {
		Expect(addTree(watcher, dir, func(string) bool { return false })).To(Succeed())
		var builds int32
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error)
		go func() {
			defer GinkgoRecover()
			done <- watchLoop(ctx, watcher, func(string) bool { return true }, func() { atomic.AddInt32(&builds, 1) })
		}()
		Eventually(func() int32 { return atomic.LoadInt32(&builds) }).Should(Equal(int32(1)))

		for _, name := range []string{"a.md", "b.md", "c.md"} {
			Expect(os.WriteFile(filepath.Join(dir, "guides", name), []byte("# x\n"), 0644)).To(Succeed())
		}
		Eventually(func() int32 { return atomic.LoadInt32(&builds) }, 5*time.Second).Should(Equal(int32(2)))
		Consistently(func() int32 { return atomic.LoadInt32(&builds) }, 2*debounce).Should(Equal(int32(2)))

		cancel()
		Eventually(done).Should(Receive(BeNil()))
	})

	Context("watch set", func() {
		var set *watchSet

		BeforeEach(func() {
			set = &watchSet{
				manifest: filepath.Join(dir, "site.yaml"),
				trees:    []string{filepath.Join(dir, "src", "content", "docs"), filepath.Join(dir, "public")},
				excluded: []string{filepath.Join(dir, "public", "out")},
				metrics:  filepath.Join(dir, "src", "content", "docs", "navforge.prom"),
			}
		})

		table.DescribeTable("relevant changes",
			func(path string, expected bool) {
				Expect(set.relevant(filepath.Join(dir, filepath.FromSlash(path)))).To(Equal(expected))
			},
			table.Entry("manifest", "site.yaml", true),
			table.Entry("content document", "src/content/docs/guides/deploy.md", true),
			table.Entry("public asset", "public/favicon.svg", true),
			table.Entry("manifest sibling", "README.md", false),
			table.Entry("destination", "public/out/navigation.json", false),
			table.Entry("destination directory", "public/out", false),
			table.Entry("destination sibling", "public/outline.svg", true),
			table.Entry("metrics file", "src/content/docs/navforge.prom", false),
			table.Entry("metrics temporary file", "src/content/docs/navforge.prom123456", false),
			table.Entry("git metadata", "public/.git/index", false),
		)
	})

	Context("project with the destination inside", func() {
		var (
			b      *builder
			builds int32
			cancel context.CancelFunc
			done   chan error
		)

		BeforeEach(func() {
			builds = 0
			writeFiles(dir, map[string]string{
				"site.yaml": siteYAML,
				"src/content/docs/guides/getting-started.md": "# Getting started\n",
				"src/content/docs/guides/deploy.md":          "# Deploy\n",
				"src/content/docs/reference/cli.md":          "# CLI\n",
				"src/styles/custom.css":                      "body {}\n",
				"public/favicon.svg":                         "<svg/>",
				"public/favicon-32x32.png":                   "png",
				"public/site.webmanifest":                    "{}",
				".git/HEAD":                                  "ref: refs/heads/main\n",
			})
			b = newBuilder(options{
				ManifestPath:      filepath.Join(dir, "site.yaml"),
				DestinationPath:   filepath.Join(dir, "out"),
				ProjectDir:        dir,
				ContentDir:        "src/content/docs",
				PublicDir:         "public",
				ContentExtensions: content.DefaultExtensions,
				FailFast:          true,
				MetricsFile:       filepath.Join(dir, "navforge.prom"),
			}, io.Discard)
			set, err := b.watchSet()
			Expect(err).NotTo(HaveOccurred())
			Expect(set.add(watcher)).To(Succeed())

			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())
			done = make(chan error)
			go func() {
				defer GinkgoRecover()
				done <- watchLoop(ctx, watcher, set.relevant, func() {
					defer GinkgoRecover()
					Expect(b.run(ctx, false)).To(Succeed())
					atomic.AddInt32(&builds, 1)
				})
			}()
			Eventually(func() int32 { return atomic.LoadInt32(&builds) }).Should(Equal(int32(1)))
		})

		AfterEach(func() {
			cancel()
			Eventually(done).Should(Receive(BeNil()))
		})

		It("builds once while the project is idle", func() {
			Expect(filepath.Join(dir, "out", render.NavigationFile)).To(BeARegularFile())
			Consistently(func() int32 { return atomic.LoadInt32(&builds) }, 6*debounce).Should(Equal(int32(1)))
		})

		It("ignores writes to the destination and git metadata", func() {
			writeFiles(dir, map[string]string{
				"out/extra.json": "{}",
				".git/index":     "index",
			})
			Consistently(func() int32 { return atomic.LoadInt32(&builds) }, 4*debounce).Should(Equal(int32(1)))
		})

		It("rebuilds once when the manifest changes", func() {
			writeFiles(dir, map[string]string{"site.yaml": siteYAML})
			Eventually(func() int32 { return atomic.LoadInt32(&builds) }, 5*time.Second).Should(Equal(int32(2)))
			Consistently(func() int32 { return atomic.LoadInt32(&builds) }, 4*debounce).Should(Equal(int32(2)))
		})
	})
})
