package cli

import (
	"fmt"

	"github.com/devchandra/devsite/blog/domain"
	"github.com/devchandra/devsite/blog/persistence"
	"github.com/devchandra/devsite/internal/config"
	"github.com/devchandra/devsite/shared/db/sqlite"
	gh "github.com/devchandra/devsite/shared/github"
	"github.com/google/go-github/v75/github"
)

func noopClose() error { return nil }

// openSource builds the configured DocumentSource. The returned close
// function releases whatever the source holds open.
func openSource(cfg *config.Config) (domain.DocumentSource, func() error, error) {
	switch cfg.Source {
	case config.SourceFS:
		return persistence.NewFileSource(cfg.ContentDir), noopClose, nil

	case config.SourceSQLite:
		database, err := openSQLite(cfg)
		if err != nil {
			return nil, nil, err
		}
		return persistence.NewSQLiteSource(database.DB()), database.Close, nil

	case config.SourceGithub:
		client := github.NewClient(nil)
		if cfg.Github.Token != "" {
			client = client.WithAuthToken(cfg.Github.Token)
		}
		return gh.NewGithubSource(client, cfg.Github.Owner, cfg.Github.Repo, cfg.Github.Dir, cfg.Github.Ref), noopClose, nil

	default:
		return nil, nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}

func openSQLite(cfg *config.Config) (*sqlite.SQLiteDB, error) {
	database := sqlite.NewSQLiteDB(&sqlite.SQLiteConfig{Path: cfg.SQLitePath})
	if err := database.Connect(); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cfg.SQLitePath, err)
	}
	return database, nil
}
