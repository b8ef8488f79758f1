package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zapp"
	"github.com/zarlcorp/zcontact/internal/cli"
	"github.com/zarlcorp/zcontact/internal/gen"
	"github.com/zarlcorp/zcontact/internal/translate"
	"github.com/zarlcorp/zcontact/internal/tui"
	"golang.org/x/term"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := zapp.New(zapp.WithName("zcontact"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	if len(os.Args) > 1 {
		runCLI(ctx, os.Args[1])
		_ = app.Close()
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "zcontact: no terminal, use a subcommand (gen, list, email, delete)")
		_ = app.Close()
		os.Exit(1)
	}

	if err := runTUI(); err != nil {
		slog.Error("tui", "err", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}

func runCLI(_ context.Context, cmd string) {
	switch cmd {
	case "version":
		fmt.Printf("zcontact %s\n", version)
	case "email":
		cli.CmdEmail(os.Args[2:])
	case "gen":
		cli.CmdGen(os.Args[2:])
	case "list":
		cli.CmdList(os.Args[2:])
	case "delete":
		cli.CmdDelete(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "zcontact: unknown command %q\n", cmd)
		os.Exit(1)
	}
}

func runTUI() error {
	dataDir := cli.DataDir()

	cfg, err := cli.LoadConfig(dataDir)
	if err != nil {
		return err
	}

	contacts, fsys, err := cli.OpenBook(dataDir, cfg)
	if err != nil {
		return err
	}

	var translator translate.Translator
	if cfg.Translate.Configured() {
		translator = translate.NewClient(translate.Config{
			BaseURL: cfg.Translate.BaseURL,
			APIKey:  cfg.Translate.APIKey,
			Target:  cfg.Translate.Target,
		})
	}

	m := tui.New(version, cfg, gen.New(), fsys, contacts, translator)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}
