package service

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/canken881226/amazon-Listing-Tool/models"
)

//go:embed templates/preview.html
var previewTemplateHTML string

var previewTemplate = template.Must(template.New("preview").Parse(previewTemplateHTML))

// PreviewService renders filled rows as an HTML table and prints it to PDF
type PreviewService struct {
	chromePath string
	timeout    time.Duration
	now        func() time.Time
}

// Ensure PreviewService implements PreviewServiceInterface
var _ PreviewServiceInterface = (*PreviewService)(nil)

// NewPreviewService creates a PreviewService. An empty chromePath probes the usual locations.
func NewPreviewService(chromePath string) *PreviewService {
	if chromePath == "" {
		chromePath = detectChromePath()
	}
	return &PreviewService{chromePath: chromePath, timeout: 30 * time.Second, now: time.Now}
}

// detectChromePath returns the first Chrome/Chromium executable found, or "".
func detectChromePath() string {
	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// RenderHTML renders the rows of result as a standalone HTML page
func (s *PreviewService) RenderHTML(result *models.FillResult) (string, error) {
	if result == nil {
		return "", fmt.Errorf("nothing to preview")
	}
	data := struct {
		*models.FillResult
		GeneratedAt string
	}{
		FillResult:  result,
		GeneratedAt: s.now().Format("2006-01-02 15:04"),
	}
	var buf bytes.Buffer
	if err := previewTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF prints the HTML preview to an A4 landscape PDF using headless Chrome
func (s *PreviewService) GeneratePDF(ctx context.Context, result *models.FillResult) ([]byte, error) {
	html, err := s.RenderHTML(result)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // required in containers
	)
	if s.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(s.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()
	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 landscape in inches
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	zap.S().Infof("✅ Preview PDF generated: %d bytes", len(pdfBuf))
	return pdfBuf, nil
}
