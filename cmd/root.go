package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/config"
	"github.com/abhisek/mathdrill/internal/logger"
	"github.com/abhisek/mathdrill/internal/practice"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathdrill",
	Short: "Adaptive arithmetic drills in the terminal",
	Long: `mathdrill generates arithmetic questions at a difficulty that follows
your recent answers, tracks each practice session, and awards experience,
levels and daily streaks across sessions.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHDRILL_DB env var)")
	rootCmd.PersistentFlags().String("user", "", "Learner id (overrides MATHDRILL_USER env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides MATHDRILL_LOG_LEVEL)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(questionCmd)
	rootCmd.AddCommand(versionCmd)
}

// env is what a command needs to talk to the practice service.
type env struct {
	cfg     config.Config
	log     *logger.Logger
	store   *store.Store
	service *practice.Service
	userID  string
}

// Close releases the store and flushes logs.
func (e *env) Close() {
	_ = e.store.Close()
	e.log.Sync()
}

// newEnv loads configuration, opens the store and builds the service.
func newEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		level = l
	}
	log, err := logger.New(cfg.LogMode, level)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", "path", dbPath)

	userID := cfg.UserID
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		userID = u
	}

	svc := practice.NewService(st, problemgen.NewRandom(problemgen.DefaultConfig()),
		practice.WithLogger(log.With("user_id", userID)))

	return &env{cfg: cfg, log: log, store: st, service: svc, userID: userID}, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MATHDRILL_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
