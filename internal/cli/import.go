package cli

import (
	"context"
	"fmt"

	"github.com/devchandra/devsite/blog/persistence"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func (a *app) newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import [dir]",
		Short: "Snapshot a content directory into the SQLite store",
		Long: `import reads every post file of a directory (content_dir by default) and
replaces the documents stored at sqlite_path with them in a single transaction.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.ContentDir
			if len(args) == 1 {
				dir = args[0]
			}
			return a.importDir(cmd.Context(), dir)
		},
	}
}

func (a *app) importDir(ctx context.Context, dir string) error {
	docs, err := persistence.NewFileSource(dir).ListDocuments(ctx)
	if err != nil {
		return err
	}

	database, err := openSQLite(a.cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := persistence.NewSQLiteSource(database.DB()).ReplaceDocuments(ctx, docs); err != nil {
		return fmt.Errorf("failed to import %s: %w", dir, err)
	}

	log.Info().Str("dir", dir).Str("sqlite_path", a.cfg.SQLitePath).Int("documents", len(docs)).Msg("Import complete")
	return nil
}
