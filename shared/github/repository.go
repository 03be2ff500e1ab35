package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/devchandra/devsite/blog/domain"
	"github.com/google/go-github/v75/github"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentFetches bounds the file requests issued by ListDocuments.
const maxConcurrentFetches = 4

var _ domain.DocumentSource = (*GithubSource)(nil)

// GithubSource is an implementation of domain.DocumentSource that reads a
// directory of a GitHub repository at a fixed ref through the contents API.
type GithubSource struct {
	client     *github.Client
	owner      string
	gitRepo    string
	dir        string
	ref        string
	extensions []string
}

// NewGithubSource creates a new GithubSource. An empty ref reads the
// repository's default branch.
func NewGithubSource(client *github.Client, owner string, gitRepo string, dir string, ref string) *GithubSource {
	return &GithubSource{
		client:     client,
		owner:      owner,
		gitRepo:    gitRepo,
		dir:        dir,
		ref:        ref,
		extensions: domain.DefaultExtensions,
	}
}

// GetRepoFullName returns the repository's full name (e.g., "owner/repo").
func (g *GithubSource) GetRepoFullName() string {
	return fmt.Sprintf("%s/%s", g.owner, g.gitRepo)
}

// ListDocuments lists the content directory and fetches every document in it.
// A directory that does not exist is an empty store.
func (g *GithubSource) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	op := fmt.Sprintf("listing %s in %s at ref %q", g.dir, g.GetRepoFullName(), g.ref)
	_, entries, _, err := g.client.Repositories.GetContents(ctx, g.owner, g.gitRepo, g.dir, g.contentOptions())
	if isNotFound(err) {
		log.Debug().Str("repo", g.GetRepoFullName()).Str("dir", g.dir).Msg("Content directory does not exist")
		return nil, nil
	}
	if err != nil {
		return nil, handleGithubError(op, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.GetType() != "file" {
			continue
		}
		names = append(names, entry.GetName())
	}

	keys, files, shadowed := domain.DocumentFiles(names, g.extensions)
	for _, name := range shadowed {
		log.Warn().Str("repo", g.GetRepoFullName()).Str("file", name).Msg("Ignoring document shadowed by a file with the same key")
	}

	fetched := make([]*domain.Document, len(keys))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentFetches)
	for i, key := range keys {
		filePath := path.Join(g.dir, files[key])
		eg.Go(func() error {
			content, err := g.GetFileContents(egCtx, filePath)
			if err != nil {
				if ctxErr := egCtx.Err(); ctxErr != nil {
					return ctxErr
				}
				log.Warn().Err(err).Str("path", filePath).Msg("Skipping unreadable document")
				return nil
			}
			fetched[i] = &domain.Document{Key: key, Content: content}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(fetched))
	for _, doc := range fetched {
		if doc != nil {
			docs = append(docs, *doc)
		}
	}
	return docs, nil
}

// GetDocument fetches the document for key, trying each extension in priority order.
func (g *GithubSource) GetDocument(ctx context.Context, key string) (*domain.Document, error) {
	if !domain.ValidKey(key) {
		return nil, domain.ErrDocumentNotFound
	}

	for _, ext := range g.extensions {
		content, err := g.GetFileContents(ctx, path.Join(g.dir, key+ext))
		if isNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &domain.Document{Key: key, Content: content}, nil
	}

	return nil, domain.ErrDocumentNotFound
}

// GetFileContents fetches the decoded contents of a file at the source's ref.
func (g *GithubSource) GetFileContents(ctx context.Context, filePath string) ([]byte, error) {
	op := fmt.Sprintf("getting file %s at ref %q", filePath, g.ref)
	fileContent, _, _, err := g.client.Repositories.GetContents(ctx, g.owner, g.gitRepo, filePath, g.contentOptions())
	if err != nil {
		return nil, handleGithubError(op, err)
	}

	if fileContent == nil {
		return nil, fmt.Errorf("github: %s returned a directory", op)
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return nil, fmt.Errorf("github: %s failed to decode content: %w", op, err)
	}

	return []byte(content), nil
}

func (g *GithubSource) contentOptions() *github.RepositoryContentGetOptions {
	if g.ref == "" {
		return nil
	}
	return &github.RepositoryContentGetOptions{Ref: g.ref}
}

// isNotFound reports whether err is a 404 from the GitHub API.
func isNotFound(err error) bool {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		return errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound
	}
	return false
}

// handleGithubError inspects an error from the go-github client and returns a more informative, structured error.
func handleGithubError(op string, err error) error {
	if err == nil {
		return nil
	}

	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return fmt.Errorf("github: %s failed with status %d: %w", op, errResp.Response.StatusCode, err)
	}

	return fmt.Errorf("github: %s failed: %w", op, err)
}
