package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/preview"
)

// PreviewCmd implements the 'preview' command.
type PreviewCmd struct {
	Addr string `short:"a" help:"Address to listen on" default:"127.0.0.1:8080"`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	server, err := preview.NewServer(cfg, p.Addr)
	if err != nil {
		return err
	}
	return server.Run(ctx)
}
