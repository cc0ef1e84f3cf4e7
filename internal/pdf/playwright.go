package pdf

import (
	"context"

	"github.com/playwright-community/playwright-go"

	"github.com/eurouni/eurostudy/internal/utils"
)

// ChromiumRenderer rasterizes HTML through a headless Chromium page.
// Browser startup dominates the cost, so one browser is shared and a fresh
// page is opened per export.
type ChromiumRenderer struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

func NewChromiumRenderer() (*ChromiumRenderer, error) {
	const op = "pdf.NewChromiumRenderer"

	pw, err := playwright.Run()
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "could not start playwright", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, utils.E(utils.CodeUnavailable, op, "could not launch chromium", err)
	}
	return &ChromiumRenderer{pw: pw, browser: browser}, nil
}

func (r *ChromiumRenderer) Close() error {
	if r.browser != nil {
		_ = r.browser.Close()
	}
	if r.pw != nil {
		return r.pw.Stop()
	}
	return nil
}

func (r *ChromiumRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	const op = "pdf.ChromiumRenderer.RenderPDF"

	if err := ctx.Err(); err != nil {
		return nil, utils.E(utils.CodeTimeout, op, "export cancelled", err)
	}

	page, err := r.browser.NewPage()
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "could not open page", err)
	}
	defer page.Close()

	if err := page.SetContent(html, playwright.PageSetContentOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "could not set page content", err)
	}

	b, err := page.PDF(playwright.PagePdfOptions{
		Format:          playwright.String("A4"),
		PrintBackground: playwright.Bool(true),
	})
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "could not generate pdf", err)
	}
	return b, nil
}
