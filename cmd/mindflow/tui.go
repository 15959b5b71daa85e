package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sandeepkv93/mindflow/internal/scheduler"
	"github.com/sandeepkv93/mindflow/internal/update"
	"github.com/sandeepkv93/mindflow/internal/views"
)

var errNoTerminal = errors.New("mindflow: the interactive UI needs a terminal; see mindflow --help for subcommands")

func runTUI(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.LogFile != "" {
		f, err := tea.LogToFile(a.cfg.LogFile, "mindflow")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	engine := scheduler.NewEngine(a.cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	poller := scheduler.NewPoller(engine, a.bridge, a.cfg.ReminderPollInterval(), log.Default())
	poller.Start(ctx)
	defer poller.Stop()

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if a.cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}
	views.ApplyColorProfile()
	m := update.NewModelWithConfig(a.bridge, engine, notifier, a.cfg)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
