package domain

import (
	"context"
	"errors"
)

// DefaultCategory is assigned to posts whose front matter names no category.
const DefaultCategory = "Uncategorized"

var (
	ErrPostNotFound = errors.New("post not found")
	ErrInvalidKey   = errors.New("post key cannot be empty")
)

// Post represents a blog post as derived from a single content document.
// Posts are rebuilt from the backing store on every query and are never cached.
type Post struct {
	// Key is the document filename without its extension. It is the only lookup token.
	Key         string
	Title       string
	Description string
	// PublishedDate is the raw `date` front-matter value, or empty.
	PublishedDate string
	// UpdatedDate is empty when the post was never updated.
	UpdatedDate string
	Category    string
	Tags        []string
	// Image is empty when the post declares no image.
	Image       string
	ReadingTime string
	Draft       bool
}

// IsUpdated reports whether the post carries an updated date.
func (p Post) IsUpdated() bool {
	return p.UpdatedDate != ""
}

// LastModified returns the updated date if present, otherwise the published date.
func (p Post) LastModified() string {
	if p.UpdatedDate != "" {
		return p.UpdatedDate
	}
	return p.PublishedDate
}

// PostContent is a post together with its raw body, ready for downstream rendering.
type PostContent struct {
	Post
	Body []byte
}

type PostRepository interface {
	// ListPosts returns every non-draft post, most recently published first.
	ListPosts(ctx context.Context) ([]Post, error)
	// GetPost returns a single post by key, drafts included.
	GetPost(ctx context.Context, key string) (*PostContent, error)
	// ListCategories returns the distinct categories of ListPosts, sorted.
	ListCategories(ctx context.Context) ([]string, error)
	ListPostsByCategory(ctx context.Context, category string) ([]Post, error)
}
