package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathblat/internal/config"
	"github.com/abhisek/mathblat/internal/logging"
	"github.com/abhisek/mathblat/internal/store"
)

// annotationTUI marks commands that take over the terminal. Their logs go
// to a file instead of stderr.
const annotationTUI = "mathblat/tui"

var (
	cfg       config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "mathblat",
	Short: "Two-player math quiz duel",
	Long: `MathBlat is a terminal math quiz. Practice alone, learn worked solutions
in teacher mode, or duel a friend over the network: both players get the same
problem and race the same countdown.`,
	Annotations:       map[string]string{annotationTUI: "true"},
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
}

// Execute runs the command line. Interrupts cancel the command context so
// a host stops listening and a client stops dialing.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (overrides MATHBLAT_CONFIG env var)")
	pf.String("db", "", "Path to SQLite database file (overrides MATHBLAT_DB env var)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("name", "", "Player name announced to opponents")
	pf.String("difficulty", "", "Default tier: EASY, MEDIUM or HARD")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(teacherCmd)
	rootCmd.AddCommand(hostCmd)
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration, applies flag overrides and configures logging.
func setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	loaded, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = loaded
	applyFlags(cmd, &cfg)

	logFile := ""
	if isTUI(cmd) {
		logFile = cfg.Log.File
		if logFile == "" {
			dir, err := store.DataDir()
			if err != nil {
				return err
			}
			logFile = filepath.Join(dir, "mathblat.log")
		}
	}
	closer, err := logging.Setup(cfg.Log.Level, logFile)
	if err != nil {
		return err
	}
	logCloser = closer
	log.Debug().Str("command", cmd.Name()).Str("config", path).Msg("configuration loaded")
	return nil
}

// applyFlags layers explicitly set persistent flags over the loaded config.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		c.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("name") {
		c.Game.PlayerName, _ = flags.GetString("name")
	}
	if flags.Changed("difficulty") {
		c.Game.Difficulty, _ = flags.GetString("difficulty")
	}
	if flags.Changed("db") {
		c.Storage.DBPath, _ = flags.GetString("db")
	}
}

func isTUI(cmd *cobra.Command) bool {
	return cmd.Annotations[annotationTUI] == "true"
}

// resolveDBPath returns the database path using --db flag or config
// (highest priority), then MATHBLAT_DB env var, then the default XDG path.
func resolveDBPath(c config.Config) (string, error) {
	if p := c.Storage.DBPath; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
