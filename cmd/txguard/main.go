package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/suryansh-23/txguard/internal/redact"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	state := &appState{}
	rootCmd := newRootCmd(state)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if state.logger != nil {
		_ = state.logger.Sync()
	}
	if err != nil {
		var exitErr *exitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, "txguard:", redact.Text(err.Error()))
		os.Exit(1)
	}
}
