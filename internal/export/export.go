// Package export writes the content repository out as static files.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/devchandra/devsite/api"
	"github.com/devchandra/devsite/blog/domain"
	"github.com/devchandra/devsite/blog/seo"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	postsFile      = "posts.json"
	categoriesFile = "categories.json"
	sitemapFile    = "sitemap.xml"
	postsDir       = "posts"

	defaultConcurrency = 8
)

// Exporter renders the repository into outputDir.
type Exporter struct {
	posts       domain.PostRepository
	outputDir   string
	concurrency int
	now         func() time.Time
}

func NewExporter(posts domain.PostRepository, outputDir string) *Exporter {
	return &Exporter{
		posts:       posts,
		outputDir:   outputDir,
		concurrency: defaultConcurrency,
		now:         time.Now,
	}
}

// Build writes posts.json, categories.json, one posts/{key}.json per listed
// post and sitemap.xml. Stale per-post files from an earlier build are removed.
func (e *Exporter) Build(ctx context.Context) error {
	start := e.now()

	posts, err := e.posts.ListPosts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}

	categories, err := e.posts.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	postDir := filepath.Join(e.outputDir, postsDir)
	if err := os.RemoveAll(postDir); err != nil {
		return fmt.Errorf("failed to clear %s: %w", postDir, err)
	}
	if err := os.MkdirAll(postDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", postDir, err)
	}

	if err := writeJSON(filepath.Join(e.outputDir, postsFile), api.NewPostList(posts)); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(e.outputDir, categoriesFile), api.NewCategoryList(categories)); err != nil {
		return err
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(e.concurrency)
	for _, p := range posts {
		eg.Go(func() error {
			content, err := e.posts.GetPost(egCtx, p.Key)
			if err != nil {
				return fmt.Errorf("failed to get post %s: %w", p.Key, err)
			}
			return writeJSON(filepath.Join(postDir, p.Key+".json"), api.NewPostDetail(content))
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := seo.WriteSitemapXML(&buf, seo.Sitemap(posts, start.UTC())); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(e.outputDir, sitemapFile), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", sitemapFile, err)
	}

	log.Info().
		Str("output_dir", e.outputDir).
		Int("posts", len(posts)).
		Int("categories", len(categories)).
		Dur("took", time.Since(start)).
		Msg("Export complete")

	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
