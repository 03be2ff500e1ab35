package domain

import (
	"context"
	"errors"
)

var ErrDocumentNotFound = errors.New("document not found")

// Document is one raw content file: front matter followed by a body.
type Document struct {
	Key     string
	Content []byte
}

// DocumentSource defines read access to the store holding the content documents.
// This allows the application to be decoupled from where the posts actually live
// (a local directory, a SQLite snapshot, a GitHub repository).
type DocumentSource interface {
	// ListDocuments returns every document ordered by key.
	// A store that does not exist yields no documents and no error.
	ListDocuments(ctx context.Context) ([]Document, error)
	// GetDocument returns ErrDocumentNotFound when no document has the given key.
	GetDocument(ctx context.Context, key string) (*Document, error)
}
