package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docrender/internal/config"
	"git.home.luguber.info/inful/docrender/internal/metrics"
	"git.home.luguber.info/inful/docrender/internal/site"
)

// Overrides are configuration settings that can be given as flags.
type Overrides struct {
	Output          string `short:"o" help:"Override output.directory"`
	Clean           bool   `help:"Remove the output directory before rendering"`
	ContinueOnError bool   `name:"continue-on-error" help:"Keep rendering after a page fails"`
	MetricsFile     string `name:"metrics-file" help:"Override metrics.textfile"`
}

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Overrides Overrides `embed:""`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	b.Overrides.apply(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prom.NewRegistry()
	builder := site.NewBuilder(cfg,
		site.WithLogger(g.Logger),
		site.WithMetrics(reg, metrics.NewPrometheusRecorder(reg)))

	res, err := builder.Build(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Rendered %d pages to %s\n", res.Pages, res.OutputDir)
	return nil
}

// apply copies flag overrides into cfg. Paths given on the command line are
// relative to the working directory, not the configuration directory.
func (o Overrides) apply(cfg *config.Config) {
	if o.Output != "" {
		cfg.Output.Directory = absOrSelf(o.Output)
	}
	if o.Clean {
		cfg.Output.Clean = true
	}
	if o.ContinueOnError {
		cfg.Output.ContinueOnError = true
	}
	if o.MetricsFile != "" {
		cfg.Metrics.Textfile = absOrSelf(o.MetricsFile)
	}
}
