package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/quizedit/internal/auth"
	"github.com/xonecas/quizedit/internal/config"
	"github.com/xonecas/quizedit/internal/quiz"
	"github.com/xonecas/quizedit/internal/store"
	"github.com/xonecas/quizedit/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "config file (default ~/.config/quizedit/config.toml)")
	check := flag.Bool("check", false, "check the file as a quiz and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: quizedit [-config file] [-check] [quiz.json]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	path := flag.Arg(0)
	if *check {
		os.Exit(runCheck(path))
	}
	if err := run(path, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "quizedit: %v\n", err)
		os.Exit(1)
	}
}

// runCheck prints the quiz problems of path and returns the exit code.
func runCheck(path string) int {
	if path == "" {
		fmt.Fprintln(os.Stderr, "quizedit: -check needs a file")
		return 2
	}
	text, err := tui.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "quizedit: %v\n", err)
		return 1
	}
	q, problems := quiz.Check(text)
	for _, p := range problems {
		fmt.Printf("%s: %s\n", path, p)
	}
	if len(problems) > 0 {
		return 1
	}
	fmt.Printf("%s: ok (%d sections, %d questions)\n", path, len(q.Sections), q.QuestionCount())
	return 0
}

func run(path, configPath string) error {
	dataDir, err := config.EnsureDataDir()
	if err != nil {
		return fmt.Errorf("data dir: %w", err)
	}
	if configPath == "" {
		configPath = filepath.Join(dataDir, "config.toml")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(filepath.Join(dataDir, "quizedit.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	log.Logger = zerolog.New(logFile).Level(cfg.Level()).With().Timestamp().Logger()

	st, err := store.Open(cfg.Store.PathOrDefault(dataDir))
	if err != nil {
		// The editor still works without a store; import is disabled.
		log.Warn().Err(err).Msg("record store unavailable")
	}
	defer st.Close()

	text := ""
	if path != "" {
		if text, err = tui.LoadFile(path); err != nil {
			return err
		}
	}

	user := auth.Current(cfg.User.Name, cfg.User.Role)
	log.Info().Str("path", path).Str("user", user.Name).Str("role", string(user.Role)).Msg("starting")

	p := tea.NewProgram(
		tui.New(tui.Options{
			Path:        path,
			Text:        text,
			SyntaxTheme: cfg.UI.SyntaxThemeOrDefault(),
			WheelLines:  cfg.UI.WheelLinesOrDefault(),
			Store:       st,
			User:        user,
		}),
		tea.WithFilter(tui.MouseEventFilter),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
