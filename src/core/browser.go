package core

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/cockroachdb/errors"
)

var ErrNoDocument = errors.New("renderer returned an empty document")

type BrowserOptions struct {
	Headless  bool
	UserAgent string
}

// ChromeBrowser renders pages in tabs of one headless Chrome instance.
type ChromeBrowser struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// LaunchBrowser starts Chrome. The browser lives as long as ctx; Close
// must be called once the scrape job is over.
func LaunchBrowser(ctx context.Context, opts BrowserOptions) (*ChromeBrowser, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("no-sandbox", true),
	)
	if ua := strings.TrimSpace(opts.UserAgent); ua != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(ua))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	cancel := func() {
		cancelBrowser()
		cancelAlloc()
	}

	// an empty Run starts the browser process
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		return nil, errors.Wrap(err, "start chrome")
	}

	return &ChromeBrowser{ctx: browserCtx, cancel: cancel}, nil
}

// Render opens url in a new tab, waits for the body, sleeps settle for
// client-side rendering and returns the page markup. Deadline and
// cancellation of ctx apply to the tab.
func (b *ChromeBrowser) Render(ctx context.Context, url string, settle time.Duration) (string, error) {
	tabCtx, cancelTab := chromedp.NewContext(b.ctx)
	defer cancelTab()

	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		tabCtx, cancel = context.WithDeadline(tabCtx, deadline)
		defer cancel()
	}
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var domNode string

	err := chromedp.Run(
		tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady(`body`, chromedp.ByQuery),
		chromedp.Sleep(settle),
		chromedp.OuterHTML(`html`, &domNode, chromedp.ByQuery),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", errors.Wrapf(ctxErr, "render %s", url)
		}
		return "", errors.Wrapf(err, "render %s", url)
	}

	if strings.TrimSpace(domNode) == "" {
		return "", errors.Wrapf(ErrNoDocument, "render %s", url)
	}

	return domNode, nil
}

func (b *ChromeBrowser) Close() error {
	err := chromedp.Cancel(b.ctx)
	b.cancel()
	if err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "close chrome")
	}
	return nil
}
