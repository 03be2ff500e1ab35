package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devchandra/devsite/api"
	"github.com/devchandra/devsite/blog/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepository struct {
	posts  []domain.Post
	bodies map[string]string
	err    error
}

func (s *stubRepository) ListPosts(ctx context.Context) ([]domain.Post, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.posts, nil
}

func (s *stubRepository) GetPost(ctx context.Context, key string) (*domain.PostContent, error) {
	if s.err != nil {
		return nil, s.err
	}
	if key == "" {
		return nil, domain.ErrInvalidKey
	}
	for _, p := range s.posts {
		if p.Key == key {
			return &domain.PostContent{Post: p, Body: []byte(s.bodies[key])}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrPostNotFound, key)
}

func (s *stubRepository) ListCategories(ctx context.Context) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []string{"Books", "Leadership"}, nil
}

func (s *stubRepository) ListPostsByCategory(ctx context.Context, category string) ([]domain.Post, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.Post
	for _, p := range s.posts {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestRouter(repo domain.PostRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(repo)
}

func sampleRepository() *stubRepository {
	return &stubRepository{
		posts: []domain.Post{
			{Key: "atomic-habits", Title: "Atomic Habits", PublishedDate: "2024-02-01", Category: "Books", Tags: []string{"habits"}, ReadingTime: "1 min read"},
			{Key: "leading", Title: "Leading", PublishedDate: "2024-01-01", Category: "Leadership", Tags: []string{}, ReadingTime: "2 min read"},
		},
		bodies: map[string]string{"atomic-habits": "# Atomic Habits"},
	}
}

func serve(t *testing.T, router *gin.Engine, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetPosts(t *testing.T) {
	router := newTestRouter(sampleRepository())

	w := serve(t, router, "/posts/v1/")
	require.Equal(t, http.StatusOK, w.Code)

	var list api.PostList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 2, list.Count)
	require.Len(t, list.Posts, 2)
	assert.Equal(t, "atomic-habits", list.Posts[0].Slug)
	assert.Equal(t, "1 min read", list.Posts[0].ReadingTime)
}

func TestGetPosts_ByCategory(t *testing.T) {
	router := newTestRouter(sampleRepository())

	tests := []struct {
		name      string
		target    string
		wantSlugs []string
	}{
		{name: "match", target: "/posts/v1/?category=Leadership", wantSlugs: []string{"leading"}},
		{name: "no match", target: "/posts/v1/?category=Nothing", wantSlugs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, router, tt.target)
			require.Equal(t, http.StatusOK, w.Code)

			var list api.PostList
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))

			slugs := make([]string, 0, len(list.Posts))
			for _, p := range list.Posts {
				slugs = append(slugs, p.Slug)
			}
			assert.Equal(t, tt.wantSlugs, slugs)
			assert.Equal(t, len(tt.wantSlugs), list.Count)
		})
	}
}

func TestGetPost(t *testing.T) {
	router := newTestRouter(sampleRepository())

	w := serve(t, router, "/posts/v1/atomic-habits")
	require.Equal(t, http.StatusOK, w.Code)

	var detail api.PostDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Atomic Habits", detail.Meta.Title)
	assert.Equal(t, "# Atomic Habits", detail.Content)
	assert.Equal(t, "https://devchandra.com/blog/atomic-habits", detail.Metadata.Canonical)
	assert.Equal(t, "Article", detail.JSONLD.Type)
	assert.Equal(t, "habits", detail.JSONLD.Keywords)
}

func TestGetPost_NotFound(t *testing.T) {
	router := newTestRouter(sampleRepository())

	w := serve(t, router, "/posts/v1/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "post not found")
}

func TestGetCategories(t *testing.T) {
	router := newTestRouter(sampleRepository())

	w := serve(t, router, "/categories/v1/")
	require.Equal(t, http.StatusOK, w.Code)

	var list api.CategoryList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, []string{"Books", "Leadership"}, list.Categories)
}

func TestGetSitemap(t *testing.T) {
	router := newTestRouter(sampleRepository())

	w := serve(t, router, "/sitemap.xml")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/xml"))

	body := w.Body.String()
	assert.Contains(t, body, "<loc>https://devchandra.com/blog/atomic-habits</loc>")
	assert.Contains(t, body, "<lastmod>2024-02-01</lastmod>")
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(&stubRepository{})

	w := serve(t, router, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestStoreFailure(t *testing.T) {
	router := newTestRouter(&stubRepository{err: errors.New("disk on fire")})

	for _, target := range []string{"/posts/v1/", "/posts/v1/any", "/categories/v1/", "/sitemap.xml"} {
		t.Run(target, func(t *testing.T) {
			w := serve(t, router, target)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
			assert.NotContains(t, w.Body.String(), "disk on fire")
		})
	}
}
