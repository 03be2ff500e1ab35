package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/devchandra/devsite/blog/domain"
)

var _ domain.PostRepository = (*PostService)(nil)

// PostService serves posts straight from a DocumentSource. Every call re-reads
// the source, so there is no state to share or invalidate between calls.
type PostService struct {
	source domain.DocumentSource
}

func NewPostService(source domain.DocumentSource) *PostService {
	return &PostService{
		source: source,
	}
}

// ListPosts returns every non-draft post ordered by published date, newest
// first. Posts sharing a date keep the source's key order, and posts with a
// missing or unparseable date come last.
func (s *PostService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	docs, err := s.source.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	posts := make([]domain.Post, 0, len(docs))
	for _, doc := range docs {
		post := parseDocument(doc)
		if post.Draft {
			continue
		}
		posts = append(posts, post.Post)
	}

	sortByPublishedDate(posts)

	return posts, nil
}

// GetPost retrieves a single post with its body. Drafts are returned too.
func (s *PostService) GetPost(ctx context.Context, key string) (*domain.PostContent, error) {
	if key == "" {
		return nil, domain.ErrInvalidKey
	}

	doc, err := s.source.GetDocument(ctx, key)
	if errors.Is(err, domain.ErrDocumentNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrPostNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", key, err)
	}

	content := parseDocument(*doc)
	return &content, nil
}

// ListCategories returns each category used by a listed post exactly once, sorted.
func (s *PostService) ListCategories(ctx context.Context) ([]string, error) {
	posts, err := s.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(posts))
	categories := make([]string, 0)
	for _, p := range posts {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}

	sort.Strings(categories)
	return categories, nil
}

// ListPostsByCategory returns the listed posts whose category matches exactly.
func (s *PostService) ListPostsByCategory(ctx context.Context, category string) ([]domain.Post, error) {
	posts, err := s.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	return slices.DeleteFunc(posts, func(p domain.Post) bool {
		return p.Category != category
	}), nil
}

func parseDocument(doc domain.Document) domain.PostContent {
	meta, body := splitFrontMatter(doc.Key, doc.Content)
	return domain.PostContent{
		Post: postFromMetadata(doc.Key, meta, body),
		Body: body,
	}
}

func sortByPublishedDate(posts []domain.Post) {
	published := make(map[string]time.Time, len(posts))
	for _, p := range posts {
		// Unparseable dates stay at the zero time, older than any real date.
		t, _ := domain.ParseDate(p.PublishedDate)
		published[p.Key] = t
	}

	slices.SortStableFunc(posts, func(a, b domain.Post) int {
		return published[b.Key].Compare(published[a.Key])
	})
}
