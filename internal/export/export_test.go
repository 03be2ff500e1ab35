package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/devchandra/devsite/api"
	"github.com/devchandra/devsite/blog/application"
	"github.com/devchandra/devsite/blog/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeContent(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func readJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

func newTestExporter(t *testing.T, contentDir string) (*Exporter, string) {
	t.Helper()
	out := t.TempDir()
	service := application.NewPostService(persistence.NewFileSource(contentDir))

	e := NewExporter(service, out)
	e.now = func() time.Time { return time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC) }
	return e, out
}

func TestExporter_Build(t *testing.T) {
	contentDir := t.TempDir()
	writeContent(t, contentDir, map[string]string{
		"first.mdx":  "---\ntitle: First\ndate: 2024-01-01\ncategory: Books\ntags: [a, b]\n---\nHello world\n",
		"second.md":  "---\ntitle: Second\ndate: 2024-05-01\n---\nMore words here\n",
		"hidden.mdx": "---\ntitle: Hidden\ndate: 2024-06-01\ndraft: true\n---\nSecret\n",
	})

	e, out := newTestExporter(t, contentDir)
	require.NoError(t, e.Build(context.Background()))

	var list api.PostList
	readJSON(t, filepath.Join(out, postsFile), &list)
	require.Equal(t, 2, list.Count)
	assert.Equal(t, "second", list.Posts[0].Slug)
	assert.Equal(t, "first", list.Posts[1].Slug)
	assert.Equal(t, []string{"a", "b"}, list.Posts[1].Tags)

	var categories api.CategoryList
	readJSON(t, filepath.Join(out, categoriesFile), &categories)
	assert.Equal(t, []string{"Books", "Uncategorized"}, categories.Categories)

	var detail api.PostDetail
	readJSON(t, filepath.Join(out, postsDir, "first.json"), &detail)
	assert.Equal(t, "First", detail.Meta.Title)
	assert.Contains(t, detail.Content, "Hello world")
	assert.Equal(t, "https://devchandra.com/blog/first", detail.Metadata.Canonical)

	assert.NoFileExists(t, filepath.Join(out, postsDir, "hidden.json"))

	sitemap, err := os.ReadFile(filepath.Join(out, sitemapFile))
	require.NoError(t, err)
	assert.Contains(t, string(sitemap), "<loc>https://devchandra.com/blog/second</loc>")
	assert.Contains(t, string(sitemap), "<lastmod>2024-07-01</lastmod>")
	assert.NotContains(t, string(sitemap), "hidden")
}

func TestExporter_BuildRemovesStalePosts(t *testing.T) {
	contentDir := t.TempDir()
	writeContent(t, contentDir, map[string]string{
		"keep.md": "---\ntitle: Keep\n---\nbody\n",
		"gone.md": "---\ntitle: Gone\n---\nbody\n",
	})

	e, out := newTestExporter(t, contentDir)
	require.NoError(t, e.Build(context.Background()))
	assert.FileExists(t, filepath.Join(out, postsDir, "gone.json"))

	require.NoError(t, os.Remove(filepath.Join(contentDir, "gone.md")))
	require.NoError(t, e.Build(context.Background()))

	assert.FileExists(t, filepath.Join(out, postsDir, "keep.json"))
	assert.NoFileExists(t, filepath.Join(out, postsDir, "gone.json"))
}

func TestExporter_BuildEmptyStore(t *testing.T) {
	e, out := newTestExporter(t, filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, e.Build(context.Background()))

	var list api.PostList
	readJSON(t, filepath.Join(out, postsFile), &list)
	assert.Equal(t, 0, list.Count)
	assert.NotNil(t, list.Posts)

	var categories api.CategoryList
	readJSON(t, filepath.Join(out, categoriesFile), &categories)
	assert.Empty(t, categories.Categories)

	assert.DirExists(t, filepath.Join(out, postsDir))
	assert.FileExists(t, filepath.Join(out, sitemapFile))
}
