// Package ptywrap runs a child command under a pseudo-terminal and passes
// everything it prints through the redactor.
package ptywrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/creack/pty"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/suryansh-23/txguard/internal/redact"
)

const (
	readBufferSize = 32 * 1024
	drainTimeout   = 2 * time.Second
)

// Options controls PTY execution behavior.
type Options struct {
	RawMode  bool
	Input    io.Reader
	Output   io.Writer
	Redactor *redact.Redactor
	Logger   *zap.Logger
}

// RunCommand starts cmd under a PTY, forwards input to it and writes its
// redacted output. The returned code mirrors the child's exit status.
func RunCommand(ctx context.Context, cmd *exec.Cmd, opts Options) (int, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return 1, fmt.Errorf("start pty: %w", err)
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	in := opts.Input
	if in == nil {
		in = os.Stdin
	}

	restore, err := maybeMakeRaw(opts.RawMode)
	if err != nil {
		_ = ptmx.Close()
		return 1, err
	}
	if restore != nil {
		defer restore()
	}

	_ = pty.InheritSize(os.Stdin, ptmx)
	stopSignals := forwardSignals(cmd.Process, ptmx)
	defer stopSignals()

	exited := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = cmd.Process.Signal(syscall.SIGTERM)
		case <-exited:
		}
	}()

	sink := redact.NewWriter(out, opts.Redactor)
	errCh := make(chan error, 1)
	go func() { _, _ = io.Copy(ptmx, in) }()
	go func() { errCh <- copyRedacted(sink, ptmx) }()

	waitErr := cmd.Wait()
	close(exited)
	var copyErr error
	select {
	case copyErr = <-errCh:
	case <-time.After(drainTimeout):
		// A background process may still hold the terminal open.
		_ = ptmx.Close()
		copyErr = <-errCh
	}
	_ = ptmx.Close()
	if err := sink.Close(); err != nil {
		logger.Warn("flush redacted output", zap.Error(err))
	}
	if copyErr != nil {
		logger.Debug("pty copy ended", zap.Error(copyErr))
	}

	if waitErr == nil {
		return 0, nil
	}
	code := exitCode(waitErr)
	logger.Debug("child exited", zap.String("cmd", cmd.Path), zap.Int("code", code))
	return code, nil
}

// copyRedacted drains src into w. After a short read, the PTY is idle, so
// the partial line is flushed up to its last blank.
func copyRedacted(w *redact.Writer, src io.Reader) error {
	buf := make([]byte, readBufferSize)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return werr
			}
			if n < len(buf) {
				if ferr := w.FlushWords(); ferr != nil {
					return ferr
				}
			}
		}
		if err != nil {
			// Linux reports EIO on the master once the child side closes.
			if errors.Is(err, io.EOF) || errors.Is(err, syscall.EIO) {
				return nil
			}
			return err
		}
	}
}

func maybeMakeRaw(enable bool) (func(), error) {
	if !enable {
		return nil, nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("set raw mode: %w", err)
	}
	return func() { _ = term.Restore(fd, state) }, nil
}

func forwardSignals(proc *os.Process, ptmx *os.File) func() {
	if proc == nil {
		return func() {}
	}
	ch := make(chan os.Signal, 8)
	signal.Notify(ch, syscall.SIGWINCH, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for sig := range ch {
			switch sig {
			case syscall.SIGWINCH:
				_ = pty.InheritSize(os.Stdin, ptmx)
			default:
				_ = proc.Signal(sig)
			}
		}
	}()

	return func() {
		signal.Stop(ch)
		close(ch)
		<-done
	}
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
			if status.Signaled() {
				return 128 + int(status.Signal())
			}
			return status.ExitStatus()
		}
	}
	return 1
}
