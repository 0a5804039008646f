package app

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	config "github.com/DRSN-tech/go-storefront/internal/cfg"
	"github.com/DRSN-tech/go-storefront/internal/client/gateway"
	"github.com/DRSN-tech/go-storefront/internal/client/session"
	"github.com/DRSN-tech/go-storefront/internal/client/tui"
	"github.com/DRSN-tech/go-storefront/internal/client/usecase"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
)

// RunClient собирает и запускает терминальный клиент витрины.
// Логи пишутся в файл: stderr занят интерфейсом.
func RunClient() error {
	cfg, err := config.LoadClient()
	if err != nil {
		return e.Wrap("load client config", err)
	}

	log, logFile, err := clientLogger(cfg.LogPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	sessions, err := session.Open(cfg.SessionPath)
	if err != nil {
		return e.Wrap("open session store", err)
	}
	defer sessions.Close()

	startSession, err := sessions.Session()
	if err != nil {
		log.Warnf("session restore failed, starting anonymous: %v", err)
	}

	gw := gateway.NewGateway(cfg, log)
	catalog := usecase.NewCatalogStore(gw)
	search := usecase.NewSearchController(gw)
	cart := usecase.NewCartCoordinator(gw)

	model := tui.NewModel(cfg, catalog, search, cart, gw, sessions, startSession, log)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return e.Wrap("run tui", err)
	}

	return nil
}

func clientLogger(path string) (logger.Logger, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, e.Wrap("create log dir", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, e.Wrap("open log file", err)
	}

	return logger.NewSlogLoggerTo(f), f, nil
}
