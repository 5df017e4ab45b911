// Package launch hands URLs the page cannot handle itself (phone links, map
// links) to the operating system.
package launch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"slices"

	"go.uber.org/zap"
)

// ErrUnsupportedScheme is returned for URLs other than tel:, http: and https:.
var ErrUnsupportedScheme = errors.New("unsupported URL scheme")

var allowedSchemes = []string{"tel", "http", "https"}

// Opener opens a URL outside the page.
type Opener interface {
	Open(ctx context.Context, rawURL string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, rawURL string) error

// Open calls f.
func (f OpenerFunc) Open(ctx context.Context, rawURL string) error {
	return f(ctx, rawURL)
}

// Check parses rawURL and reports ErrUnsupportedScheme for anything the
// system opener refuses.
func Check(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", rawURL, err)
	}
	if !slices.Contains(allowedSchemes, u.Scheme) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	return u, nil
}

// System opens URLs with the platform's default handler.
type System struct {
	logger *zap.Logger

	// command builds the process to run; replaced in tests.
	command func(ctx context.Context, rawURL string) *exec.Cmd
}

// NewSystem returns an Opener backed by xdg-open, open or rundll32.
func NewSystem(logger *zap.Logger) *System {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &System{logger: logger, command: platformCommand}
}

func platformCommand(ctx context.Context, rawURL string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.CommandContext(ctx, "open", rawURL)
	case "windows":
		return exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return exec.CommandContext(ctx, "xdg-open", rawURL)
	}
}

// Open validates rawURL and starts the platform handler without waiting for
// it to exit.
func (s *System) Open(ctx context.Context, rawURL string) error {
	if _, err := Check(rawURL); err != nil {
		s.logger.Warn("refusing to open url", zap.String("url", rawURL), zap.Error(err))
		return err
	}
	cmd := s.command(ctx, rawURL)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", rawURL, err)
	}
	s.logger.Info("opened url", zap.String("url", rawURL), zap.String("handler", cmd.Path))
	go func() {
		if err := cmd.Wait(); err != nil {
			s.logger.Warn("url handler exited", zap.String("url", rawURL), zap.Error(err))
		}
	}()
	return nil
}

// Recorder is an Opener that remembers every URL instead of opening it.
// Use it for dry runs and scripted checks.
type Recorder struct {
	Opened []string
}

// Open records rawURL after the same validation System applies.
func (r *Recorder) Open(_ context.Context, rawURL string) error {
	if _, err := Check(rawURL); err != nil {
		return err
	}
	r.Opened = append(r.Opened, rawURL)
	return nil
}
