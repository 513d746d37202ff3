// Package browser manages a shared headless Chrome process and prints
// HTML pages to PDF through it.
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/jonathan/resume-export/internal/logging"
)

// DefaultPoolSize is the number of concurrent tabs allowed when unset.
const DefaultPoolSize = 4

// A4 paper size in inches.
const (
	A4WidthIn  = 8.27
	A4HeightIn = 11.69
)

// ErrClosed is returned by Acquire after Close.
var ErrClosed = errors.New("browser pool is closed")

// Config configures a Pool.
type Config struct {
	// ExecPath overrides the Chrome binary. Empty uses the chromedp lookup.
	ExecPath string
	// Size bounds concurrent tabs.
	Size   int
	Logger *zerolog.Logger
}

// Pool shares one lazily launched browser process between requests and
// bounds concurrent tabs with a weighted semaphore.
type Pool struct {
	cfg    Config
	sem    *semaphore.Weighted
	logger zerolog.Logger

	mu            sync.Mutex
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	closed        bool
}

// NewPool creates a pool. The browser starts on first use.
func NewPool(cfg Config) *Pool {
	if cfg.Size <= 0 {
		cfg.Size = DefaultPoolSize
	}
	return &Pool{
		cfg:    cfg,
		sem:    semaphore.NewWeighted(int64(cfg.Size)),
		logger: logging.OrNop(cfg.Logger).With().Str("component", "browser").Logger(),
	}
}

// Tab is one browser tab held by a caller. Release must be called on every path.
type Tab struct {
	ctx     context.Context
	release func()
	once    sync.Once
}

// Context returns the chromedp context of the tab.
func (t *Tab) Context() context.Context {
	return t.ctx
}

// Release closes the tab and returns its slot to the pool. It is idempotent.
func (t *Tab) Release() {
	t.once.Do(t.release)
}

// Acquire waits for a free slot and opens a new tab. The tab is closed when
// ctx is done, so a request deadline also bounds browser work.
func (p *Pool) Acquire(ctx context.Context) (*Tab, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("waiting for browser slot: %w", err)
	}

	browserCtx, err := p.browser()
	if err != nil {
		p.sem.Release(1)
		return nil, err
	}

	tabCtx, cancel := chromedp.NewContext(browserCtx)
	stop := context.AfterFunc(ctx, cancel)

	return &Tab{
		ctx: tabCtx,
		release: func() {
			stop()
			cancel()
			p.sem.Release(1)
		},
	}, nil
}

// browser returns the shared browser context, launching or relaunching
// the process when needed.
func (p *Pool) browser() (context.Context, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}
	if p.browserCtx != nil && p.browserCtx.Err() == nil {
		return p.browserCtx, nil
	}
	p.shutdownLocked()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p.cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(p.cfg.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Run with no actions starts the process.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		p.logger.Error().Err(err).Msg("failed to launch browser")
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	p.allocCancel = allocCancel
	p.browserCtx = browserCtx
	p.browserCancel = browserCancel
	p.logger.Info().Int("pool_size", p.cfg.Size).Msg("browser launched")
	return browserCtx, nil
}

// Close stops the browser process. Tabs still held fail on their next action.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.shutdownLocked()
}

func (p *Pool) shutdownLocked() {
	if p.browserCancel != nil {
		p.browserCancel()
		p.browserCancel = nil
	}
	if p.allocCancel != nil {
		p.allocCancel()
		p.allocCancel = nil
	}
	p.browserCtx = nil
}

// PrintOptions sets paper geometry for PrintPDF. Sizes are in inches.
type PrintOptions struct {
	PaperWidth   float64
	PaperHeight  float64
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64
	// PreferCSSPageSize lets @page rules of the document win.
	PreferCSSPageSize bool
}

// A4 returns A4 options with uniform margins.
func A4(marginIn float64) PrintOptions {
	return PrintOptions{
		PaperWidth:   A4WidthIn,
		PaperHeight:  A4HeightIn,
		MarginTop:    marginIn,
		MarginRight:  marginIn,
		MarginBottom: marginIn,
		MarginLeft:   marginIn,
	}
}

// PrintPDF loads html into a fresh tab, waits for the body and web fonts,
// and prints it.
func (p *Pool) PrintPDF(ctx context.Context, html []byte, opts PrintOptions) ([]byte, error) {
	tab, err := p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer tab.Release()

	var (
		pdf        []byte
		fontsReady bool
	)
	err = chromedp.Run(tab.Context(),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(`document.fonts.ready.then(() => true)`, &fontsReady,
			func(params *runtime.EvaluateParams) *runtime.EvaluateParams {
				return params.WithAwaitPromise(true)
			}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(opts.PaperWidth).
				WithPaperHeight(opts.PaperHeight).
				WithMarginTop(opts.MarginTop).
				WithMarginRight(opts.MarginRight).
				WithMarginBottom(opts.MarginBottom).
				WithMarginLeft(opts.MarginLeft).
				WithPreferCSSPageSize(opts.PreferCSSPageSize).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("printing page: %w", err)
	}

	p.logger.Debug().Int("bytes", len(pdf)).Msg("page printed")
	return pdf, nil
}
