package main

import (
	"context"
	"io"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/hamed0406/userprobe/internal/config"
	"github.com/hamed0406/userprobe/internal/domain"
	"github.com/hamed0406/userprobe/internal/logging"
	"github.com/hamed0406/userprobe/internal/probe"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New("probe", cfg.Log.Dir, cfg.Log.Level)
	if err != nil {
		log.Fatal(err)
	}

	if err := run(context.Background(), cfg.Probe, logger, os.Stdout); err != nil {
		logger.Error("probe_failed", zap.Error(err))
		_ = logger.Sync()
		log.Fatal(err)
	}
	_ = logger.Sync()
}

// run posts the default record and prints the decoded reply to stdout.
// Nothing is written to stdout when it returns an error.
func run(ctx context.Context, cfg config.Probe, logger *zap.Logger, stdout io.Writer) error {
	p := probe.New(logger, cfg.Timeout, cfg.DiagnoseDNS)
	out, err := p.Post(ctx, cfg.TargetURL(), domain.DefaultRecord())
	if err != nil {
		return err
	}
	return probe.Render(stdout, out.Value)
}
