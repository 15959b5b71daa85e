// Package main implements the mindflow CLI and terminal UI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/mindflow/internal/bridge"
	"github.com/sandeepkv93/mindflow/internal/storage"
	"github.com/sandeepkv93/mindflow/internal/update"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var (
	configPath string
	dbPath     string
)

var rootCmd = &cobra.Command{
	Use:           "mindflow",
	Short:         "Sticky notes and todos in the terminal",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.toml (default ~/.config/mindflow/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the SQLite database")
}

// loadConfig layers defaults, the config file, MINDFLOW_* env vars and flags.
func loadConfig() (update.RuntimeConfig, error) {
	cfg, err := update.LoadRuntimeConfig(configPath)
	if err != nil {
		return update.RuntimeConfig{}, err
	}
	if strings.TrimSpace(dbPath) != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

// app is an open database behind the command bridge.
type app struct {
	cfg    update.RuntimeConfig
	repo   *storage.SQLiteRepository
	bridge *bridge.Bridge
}

func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}
	return &app{cfg: cfg, repo: repo, bridge: bridge.New(repo)}, nil
}

func (a *app) Close() error {
	return a.repo.Close()
}

func (a *app) context(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, a.cfg.BackendTimeout())
}

// withApp opens the database for the duration of fn.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	ctx, cancel := a.context(cmd.Context())
	defer cancel()
	return fn(ctx, a)
}
