package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jrow/pennybook/internal/config"
	"github.com/jrow/pennybook/internal/kvstore"
	"github.com/jrow/pennybook/internal/store"
	"github.com/jrow/pennybook/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := kvstore.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	kv, err := kvstore.OpenSQLite(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer kv.Close()

	st := store.Open(kv, cfg.UI.Dark)

	p := tea.NewProgram(tui.New(st, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
