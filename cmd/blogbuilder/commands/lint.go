package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/linkverify"
)

// LintCmd implements the 'lint' command. It checks the links of an
// already generated site; run 'build' first.
type LintCmd struct {
	External bool          `help:"Also probe external links over HTTP"`
	Timeout  time.Duration `help:"Timeout per external link probe" default:"10s"`
}

func (l *LintCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	if st, err := os.Stat(cfg.Output.Directory); err != nil || !st.IsDir() {
		return fmt.Errorf("output directory %s not found; run 'blogbuilder build' first", cfg.Output.Directory)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	checker := linkverify.NewChecker(cfg.Output.Directory, cfg.Site.BaseURL, linkverify.Options{
		External: l.External,
		Timeout:  l.Timeout,
	})
	report, err := checker.Run(ctx)
	if err != nil {
		return err
	}
	report.Log()

	if len(report.Broken) > 0 {
		return fmt.Errorf("%d broken link(s) across %d page(s)", len(report.Broken), report.Pages)
	}
	fmt.Printf("Checked %d link(s) across %d page(s), all good\n", report.Links, report.Pages)
	return nil
}
