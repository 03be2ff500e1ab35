// Package cli wires configuration, storage and the content repository into
// the devsite commands.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/devchandra/devsite/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logOut  io.Writer
}

// NewRootCommand builds the devsite command tree with its own viper instance.
func NewRootCommand() *cobra.Command {
	a := &app{
		v:      viper.New(),
		logOut: os.Stderr,
	}

	root := &cobra.Command{
		Use:   "devsite",
		Short: "Content repository for devchandra.com",
		Long: `devsite reads Markdown/MDX posts with front matter from a directory, a SQLite
snapshot or a GitHub repository, and serves them as JSON or exports them as
static files.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./config.yaml)")
	flags.String("source", config.SourceFS, "document source: fs, sqlite or github")
	flags.String("content-dir", "content/posts", "directory holding post files")
	flags.String("sqlite-path", "./devsite.db", "path of the SQLite snapshot")
	flags.String("log-level", "info", "log level")
	flags.String("log-format", config.LogFormatJSON, "log format: json or console")

	a.bind(root, "source", "source")
	a.bind(root, "content_dir", "content-dir")
	a.bind(root, "sqlite_path", "sqlite-path")
	a.bind(root, "log_level", "log-level")
	a.bind(root, "log_format", "log-format")

	root.AddCommand(
		a.newServeCommand(),
		a.newBuildCommand(),
		a.newImportCommand(),
	)

	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// bind ties a viper key to a flag of cmd, persistent or local.
func (a *app) bind(cmd *cobra.Command, key, flag string) {
	f := cmd.PersistentFlags().Lookup(flag)
	if f == nil {
		f = cmd.Flags().Lookup(flag)
	}
	if err := a.v.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("failed to bind flag %s: %v", flag, err))
	}
}

func (a *app) initialize() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	setupLogging(a.logOut, cfg)
	if used := a.v.ConfigFileUsed(); used != "" {
		log.Debug().Str("file", used).Msg("Using config file")
	}
	return nil
}

func setupLogging(out io.Writer, cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFormat == config.LogFormatConsole {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}
