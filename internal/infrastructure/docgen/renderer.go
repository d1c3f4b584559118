package docgen

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	appinvoicing "github.com/invoicemonk/backend/internal/application/invoicing"
	"github.com/invoicemonk/backend/internal/infrastructure/config"
)

const defaultRenderTimeout = 30 * time.Second

// A4 dimensions in inches
const (
	paperWidthA4  = 8.27
	paperHeightA4 = 11.69
)

// ChromedpRenderer renders invoice documents to PDF through the Chrome
// DevTools Protocol. One allocator is shared; each render gets its own
// browser context.
type ChromedpRenderer struct {
	timeout     time.Duration
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpRenderer creates a renderer with a headless Chrome allocator
func NewChromedpRenderer(cfg config.PDFConfig, logger *zap.Logger) *ChromedpRenderer {
	timeout := cfg.RenderTimeout
	if timeout == 0 {
		timeout = defaultRenderTimeout
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("font-render-hinting", "none"),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &ChromedpRenderer{
		timeout:     timeout,
		logger:      logger,
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
	}
}

// RenderInvoice produces the invoice PDF
func (r *ChromedpRenderer) RenderInvoice(ctx context.Context, req appinvoicing.RenderRequest) ([]byte, error) {
	html, err := invoiceHTML(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx)
	defer browserCancel()

	start := time.Now()
	var pdfData []byte

	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthA4).
				WithPaperHeight(paperHeightA4).
				WithMarginTop(0.6).
				WithMarginRight(0.6).
				WithMarginBottom(0.6).
				WithMarginLeft(0.6).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("invoice rendering timed out after %v", r.timeout)
		}
		r.logger.Error("invoice rendering failed",
			zap.String("invoice_number", req.InvoiceNumber),
			zap.Error(err),
		)
		return nil, fmt.Errorf("invoice rendering failed: %w", err)
	}
	if len(pdfData) == 0 {
		return nil, fmt.Errorf("rendered invoice PDF is empty")
	}

	r.logger.Debug("invoice rendered",
		zap.String("invoice_number", req.InvoiceNumber),
		zap.Int("bytes", len(pdfData)),
		zap.Duration("duration", time.Since(start)),
	)
	return pdfData, nil
}

// Close releases the Chrome allocator
func (r *ChromedpRenderer) Close() {
	r.allocCancel()
}

var _ appinvoicing.DocumentRenderer = (*ChromedpRenderer)(nil)

// DisabledRenderer is used when PDF rendering is turned off
type DisabledRenderer struct{}

// RenderInvoice always fails
func (DisabledRenderer) RenderInvoice(ctx context.Context, req appinvoicing.RenderRequest) ([]byte, error) {
	return nil, fmt.Errorf("document rendering is disabled")
}

var _ appinvoicing.DocumentRenderer = (*DisabledRenderer)(nil)

// NewRenderer returns the chromedp renderer when rendering is enabled,
// otherwise the disabled renderer
func NewRenderer(cfg config.PDFConfig, logger *zap.Logger) appinvoicing.DocumentRenderer {
	if !cfg.Enabled {
		return DisabledRenderer{}
	}
	return NewChromedpRenderer(cfg, logger)
}
