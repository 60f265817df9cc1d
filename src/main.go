package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"vidbox/src/config"
	"vidbox/src/jukebox"
	"vidbox/src/library"
	"vidbox/src/library/sqlitedb"
	"vidbox/src/library/textdb"
	"vidbox/src/library/yamldb"
	"vidbox/src/shell"
)

const confFile = "config.yaml"

var (
	build       = "%BUILD%"
	version     = "%VERSION%"
	versionDate = "%VERSION_DATE%"
)

type options struct {
	confFile string
	catalog  string
	format   string
	logLevel string
}

// sessionHook tags every log entry with the id of the current run.
type sessionHook struct {
	id string
}

func (hook sessionHook) Levels() []log.Level {
	return log.AllLevels
}

func (hook sessionHook) Fire(entry *log.Entry) error {
	entry.Data["session"] = hook.id
	return nil
}

func main() {
	if err := rootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

func rootCommand() *cobra.Command {
	var opts options
	var printVersion bool

	root := &cobra.Command{
		Use:           "vidbox",
		Short:         "Manage a library of videos and playlists from the command line",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(opts.logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if printVersion {
				fmt.Printf("Version: %v (%v)\n", version, versionDate)
				fmt.Printf("Build: %v\n", build)
				return nil
			}
			return runShell(cmd, &opts)
		},
	}
	addFlags(root.PersistentFlags(), &opts)
	root.Flags().BoolVar(&printVersion, "version", false, "Print version information and exit")
	root.AddCommand(importCommand(&opts))
	return root
}

func addFlags(fs *pflag.FlagSet, opts *options) {
	defaultLogLevel := "warn"
	if build == "debug" {
		defaultLogLevel = "debug"
	}
	fs.StringVar(&opts.confFile, "conf", confFile, "Path to the configuration file")
	fs.StringVar(&opts.catalog, "catalog", "", "Path to the video catalog, overrides the configuration")
	fs.StringVar(&opts.format, "format", "", "Format of the catalog. [text, yaml, sqlite]")
	fs.StringVar(&opts.logLevel, "log", defaultLogLevel, "Sets the log level. [debug, info, warn, error]")
}

func setupLogging(level string) error {
	ll, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("could not parse log level: %v", err)
	}
	log.SetLevel(ll)
	log.SetReportCaller(true)
	log.AddHook(sessionHook{id: uuid.New().String()})
	return nil
}

func importCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <database>",
		Short: "Copy the catalog into a SQLite database",
		Long: `Copy all videos of the configured catalog into a SQLite database. Videos
that were in the database before are replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if samePath(conf.Catalog.Path, args[0]) {
				return fmt.Errorf("cannot import %s into itself", args[0])
			}

			src, closeSrc, err := openLibrary(conf)
			if err != nil {
				return err
			}
			defer closeSrc()

			db, err := sqlitedb.Open(args[0])
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := db.Import(cmd.Context(), src)
			if err != nil {
				return fmt.Errorf("could not import %v: %w", src, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d videos into %s\n", n, args[0])
			return nil
		},
	}
}

func runShell(cmd *cobra.Command, opts *options) error {
	log.Infof("Version: %v (%v)", version, build)
	conf, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	lib, closeLib, err := openLibrary(conf)
	if err != nil {
		return err
	}
	defer closeLib()

	ctx := cmd.Context()
	catalog, err := library.Load(ctx, lib)
	if err != nil {
		return fmt.Errorf("could not load catalog: %w", err)
	}
	log.WithField("catalog", lib).Infof("Loaded %d videos", catalog.Len())

	var rnd *rand.Rand
	if conf.RandomSeed != nil {
		rnd = rand.New(rand.NewSource(*conf.RandomSeed))
	}
	jb := jukebox.NewJukebox(catalog, rnd)
	return shell.New(jb, os.Stdin, os.Stdout, conf.Prompt).Run(ctx)
}

// loadConfig reads the configuration file and applies the flags on top. The
// default file may be absent.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	conf, err := config.Load(opts.confFile, !cmd.Flags().Changed("conf"))
	if err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}
	if opts.catalog != "" {
		conf.Catalog.Path = opts.catalog
	}
	if opts.format != "" {
		conf.Catalog.Format = opts.format
	}
	if errs := conf.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("could not load config: %w", errors.Join(errs...))
	}
	return conf, nil
}

func openLibrary(conf *config.Config) (library.Library, func() error, error) {
	noop := func() error { return nil }
	switch format := conf.CatalogFormat(); format {
	case config.FormatText:
		return textdb.NewDB(conf.Catalog.Path), noop, nil
	case config.FormatYAML:
		return yamldb.NewDB(conf.Catalog.Path), noop, nil
	case config.FormatSQLite:
		db, err := sqlitedb.Open(conf.Catalog.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open catalog: %w", err)
		}
		return db, db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog format %q", format)
	}
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
