package airbnb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	cardSelector = `div[itemprop='itemListElement']`
	nextSelector = `a[aria-label='Next']:not([aria-disabled='true'])`

	// pageSettle gives the results grid time to swap after "Next" is activated
	pageSettle = 1500 * time.Millisecond
)

// cardsScript flattens every visible result card into a rawCard. Each card is
// read inside its own try block so one broken card cannot spoil the page.
const cardsScript = `
(function() {
	var out = [];
	document.querySelectorAll("div[itemprop='itemListElement']").forEach(function(card) {
		try {
			var titleEl = card.querySelector("div[data-testid='listing-card-title']");
			var prices = [];
			card.querySelectorAll('span').forEach(function(s) {
				var t = s.innerText || '';
				if (t.indexOf('$') !== -1) prices.push(t);
			});
			var link = card.querySelector('a');
			var rating = '';
			var spans = card.querySelectorAll('span');
			for (var i = 0; i < spans.length; i++) {
				var rt = spans[i].innerText || '';
				if (rt.indexOf('(') !== -1 && rt.indexOf(')') !== -1) {
					rating = rt;
					break;
				}
			}
			out.push({
				title: titleEl ? titleEl.innerText : '',
				text: card.innerText || '',
				prices: prices,
				href: link ? (link.getAttribute('href') || '') : '',
				rating: rating,
				error: ''
			});
		} catch (e) {
			out.push({error: String(e)});
		}
	});
	return out;
})()
`

// resultsPage is one browser tab showing search results
type resultsPage interface {
	Navigate(url string, timeout time.Duration) error
	WaitForResults(timeout time.Duration) error
	Cards() ([]rawCard, error)
	// NextPage activates the "next page" control. It reports false when
	// there is no such control.
	NextPage(timeout time.Duration) (bool, error)
	Close()
}

type pageOpener func(ctx context.Context) (resultsPage, error)

// chromePage drives a dedicated headless Chrome for one extraction run
type chromePage struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// openChromePage starts a fresh browser (one browser, one tab)
func openChromePage(headless bool) pageOpener {
	return func(parent context.Context) (resultsPage, error) {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", headless),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("disable-blink-features", "AutomationControlled"),
			chromedp.Flag("log-level", "3"),
			chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
			chromedp.WindowSize(1280, 900),
		)

		allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
		ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
		p := &chromePage{
			ctx: ctx,
			cancel: func() {
				cancelCtx()
				cancelAlloc()
			},
		}

		// Start the browser on the long-lived context so later per-step
		// timeouts do not tear it down.
		if err := chromedp.Run(ctx); err != nil {
			p.Close()
			return nil, fmt.Errorf("browser start failed: %w", err)
		}
		return p, nil
	}
}

func (p *chromePage) Navigate(url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()
	if err := chromedp.Run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate failed: %w", err)
	}
	return nil
}

func (p *chromePage) WaitForResults(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()
	err := chromedp.Run(ctx, chromedp.WaitReady(cardSelector, chromedp.ByQuery))
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w (waited %s)", ErrPageLoadTimeout, timeout)
	}
	return err
}

func (p *chromePage) Cards() ([]rawCard, error) {
	var cards []rawCard
	if err := chromedp.Run(p.ctx, chromedp.Evaluate(cardsScript, &cards)); err != nil {
		return nil, fmt.Errorf("card extraction script failed: %w", err)
	}
	return cards, nil
}

func (p *chromePage) NextPage(timeout time.Duration) (bool, error) {
	ctx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()

	var present bool
	script := fmt.Sprintf(`document.querySelector(%q) !== null`, nextSelector)
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, &present)); err != nil {
		return false, fmt.Errorf("next page check failed: %w", err)
	}
	if !present {
		return false, nil
	}

	err := chromedp.Run(ctx,
		chromedp.ScrollIntoView(nextSelector, chromedp.ByQuery),
		chromedp.Click(nextSelector, chromedp.ByQuery),
		chromedp.Sleep(pageSettle),
	)
	if errors.Is(err, context.DeadlineExceeded) {
		return true, fmt.Errorf("%w (activating next page)", ErrPageLoadTimeout)
	}
	if err != nil {
		return true, fmt.Errorf("next page click failed: %w", err)
	}
	return true, nil
}

func (p *chromePage) Close() {
	p.cancel()
}
