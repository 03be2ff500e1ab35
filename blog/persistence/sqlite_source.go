package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/devchandra/devsite/blog/domain"
	"github.com/devchandra/devsite/shared/db"
)

var _ domain.DocumentSource = (*SQLiteSource)(nil)

// SQLiteSource implements domain.DocumentSource over the documents table of a
// SQLite snapshot. Snapshots are written by ReplaceDocuments.
type SQLiteSource struct {
	db *sql.DB
}

// NewSQLiteSource creates a new SQLiteSource from a standard sql.DB
func NewSQLiteSource(db *sql.DB) *SQLiteSource {
	return &SQLiteSource{
		db: db,
	}
}

const listDocumentsQuery = `
	SELECT slug, content
	FROM documents
	ORDER BY slug ASC
`

// ListDocuments returns every stored document ordered by key
func (s *SQLiteSource) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, listDocumentsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]domain.Document, 0)
	for rows.Next() {
		var row documentRow
		if err := rows.Scan(&row.Slug, &row.Content); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, row.toDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}

	return docs, nil
}

const getDocumentQuery = `
	SELECT slug, content
	FROM documents
	WHERE slug = ?
`

// GetDocument retrieves a single document by key
func (s *SQLiteSource) GetDocument(ctx context.Context, key string) (*domain.Document, error) {
	if key == "" {
		return nil, domain.ErrDocumentNotFound
	}

	var row documentRow
	err := s.db.QueryRowContext(ctx, getDocumentQuery, key).Scan(&row.Slug, &row.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	doc := row.toDomain()
	return &doc, nil
}

const deleteDocumentsQuery = `DELETE FROM documents`

const insertDocumentQuery = `
	INSERT INTO documents (slug, content, imported_at)
	VALUES (?, ?, ?)
`

// ReplaceDocuments swaps the stored snapshot for docs in a single transaction.
// Either every document is stored or the previous snapshot is kept.
func (s *SQLiteSource) ReplaceDocuments(ctx context.Context, docs []domain.Document) error {
	for _, d := range docs {
		if !domain.ValidKey(d.Key) {
			return fmt.Errorf("invalid document key %q", d.Key)
		}
	}

	importedAt := time.Now().UTC()

	return db.RunInTransaction(ctx, s.db, func(txCtx context.Context, tx db.Executor) error {
		if _, err := tx.ExecContext(txCtx, deleteDocumentsQuery); err != nil {
			return fmt.Errorf("failed to clear documents: %w", err)
		}

		for _, d := range docs {
			if _, err := tx.ExecContext(txCtx, insertDocumentQuery, d.Key, d.Content, importedAt); err != nil {
				return fmt.Errorf("failed to insert document %s: %w", d.Key, err)
			}
		}

		return nil
	})
}

// documentRow is a private struct used to scan database rows
type documentRow struct {
	Slug    string `db:"slug"`
	Content []byte `db:"content"`
}

func (r *documentRow) toDomain() domain.Document {
	return domain.Document{
		Key:     r.Slug,
		Content: r.Content,
	}
}
