package graceful

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

func MakeSigintChan() chan os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	return sigCh
}

// CancelOnSignal cancels the returned context on the first SIGINT/SIGTERM received on sigCh.
func CancelOnSignal(ctx context.Context, sigCh <-chan os.Signal, logger logrus.FieldLogger) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		defer cancel()
		select {
		case sig := <-sigCh:
			logger.Infof("received exit signal: %v", sig)
		case <-ctx.Done():
		}
	}()
	return ctx
}
