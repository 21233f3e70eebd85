package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chromedp/chromedp"
)

var (
	// ErrNotFound is returned when no element matches a selector in time
	ErrNotFound = errors.New("element not found")
	// ErrExtraction is returned when a page-global value cannot be read
	ErrExtraction = errors.New("script value extraction failed")
)

// Page is the set of page operations the scraper needs
type Page interface {
	Navigate(ctx context.Context, url string) error
	Sleep(ctx context.Context, d time.Duration) error
	ScriptValue(ctx context.Context, name string, out any) error
	FirstText(ctx context.Context, selector string, timeout time.Duration) (string, error)
}

// SessionConfig holds the browser launch settings
type SessionConfig struct {
	Headless     bool
	WindowWidth  int
	WindowHeight int
}

// Session is a single headless Chrome tab shared by the whole run
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
}

// NewSession launches the browser and returns once it is running
func NewSession(cfg SessionConfig) (*Session, error) {
	// Setup browser options
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Flag("headless", cfg.Headless),
		chromedp.WindowSize(cfg.WindowWidth, cfg.WindowHeight),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// An empty Run starts the browser process
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	log.Debug("Browser started", "headless", cfg.Headless, "width", cfg.WindowWidth, "height", cfg.WindowHeight)

	return &Session{
		ctx:         browserCtx,
		cancel:      browserCancel,
		allocCancel: allocCancel,
	}, nil
}

// Close shuts the browser down
func (s *Session) Close() {
	s.cancel()
	s.allocCancel()
}

// run executes actions on the session tab, bounded by the caller's context
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if deadline, ok := ctx.Deadline(); ok {
		var timeoutCancel context.CancelFunc
		runCtx, timeoutCancel = context.WithDeadline(runCtx, deadline)
		defer timeoutCancel()
	}

	return chromedp.Run(runCtx, actions...)
}

// Navigate loads url in the session tab
func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

// Sleep waits for d without touching the page
func (s *Session) Sleep(ctx context.Context, d time.Duration) error {
	return s.run(ctx, chromedp.Sleep(d))
}

// ScriptValue evaluates a page-global expression and decodes it into out
func (s *Session) ScriptValue(ctx context.Context, name string, out any) error {
	if err := s.run(ctx, chromedp.Evaluate(name, out)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrExtraction, name, err)
	}
	return nil
}

// FirstText waits up to timeout for selector and returns the element's visible text
func (s *Session) FirstText(ctx context.Context, selector string, timeout time.Duration) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var text string
	if err := s.run(timeoutCtx, chromedp.Text(selector, &text, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNotFound, selector, err)
	}
	return strings.TrimSpace(text), nil
}
