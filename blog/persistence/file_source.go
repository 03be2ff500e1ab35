package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/devchandra/devsite/blog/domain"
	"github.com/rs/zerolog/log"
)

var _ domain.DocumentSource = (*FileSource)(nil)

// FileSource implements domain.DocumentSource over a flat directory holding
// one file per post.
type FileSource struct {
	dir        string
	extensions []string
}

// NewFileSource creates a FileSource reading dir. Without explicit extensions
// it reads domain.DefaultExtensions.
func NewFileSource(dir string, extensions ...string) *FileSource {
	if len(extensions) == 0 {
		extensions = domain.DefaultExtensions
	}

	return &FileSource{
		dir:        dir,
		extensions: extensions,
	}
}

// Dir returns the directory the source reads from.
func (s *FileSource) Dir() string {
	return s.dir
}

// ListDocuments reads every document in the directory. A directory that does
// not exist holds no documents. Files that cannot be read are skipped.
func (s *FileSource) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("dir", s.dir).Msg("Content directory does not exist")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read content directory %s: %w", s.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}

	keys, files, shadowed := domain.DocumentFiles(names, s.extensions)
	for _, name := range shadowed {
		log.Warn().Str("dir", s.dir).Str("file", name).Msg("Ignoring document shadowed by a file with the same key")
	}

	docs := make([]domain.Document, 0, len(keys))
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(s.dir, files[key])
		content, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Skipping unreadable document")
			continue
		}

		docs = append(docs, domain.Document{Key: key, Content: content})
	}

	return docs, nil
}

// GetDocument reads the document for key, trying each extension in priority order.
func (s *FileSource) GetDocument(ctx context.Context, key string) (*domain.Document, error) {
	if !domain.ValidKey(key) {
		return nil, domain.ErrDocumentNotFound
	}

	for _, ext := range s.extensions {
		path := filepath.Join(s.dir, key+ext)

		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to stat document %s: %w", path, err)
		}
		if info.IsDir() {
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read document %s: %w", path, err)
		}

		return &domain.Document{Key: key, Content: content}, nil
	}

	return nil, domain.ErrDocumentNotFound
}
