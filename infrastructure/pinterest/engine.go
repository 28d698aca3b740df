package pinterest

import (
	"fmt"
	"strings"
	"time"

	"pinpilot/domain/entities"
	"pinpilot/domain/interfaces"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL = "https://www.pinterest.com"

	navigationTimeout = 60000.0
	fieldTimeout      = 30000.0
	shortTimeout      = 2000.0
	fallbackTimeout   = 20000.0

	settleDelay  = 3 * time.Second
	filterDelay  = 1500 * time.Millisecond
	boardsDelay  = 1 * time.Second
	redirectPoll = 1 * time.Second
)

// Engine drives login and pin-creation flows against the Pinterest UI. Each
// invocation owns one exclusive browser for its whole duration and is fully
// sequential inside; concurrent calls for different users each get their own
// browser. Concurrent calls for the same user race on the session artifact —
// last writer wins.
type Engine struct {
	store    interfaces.SessionStore
	stager   interfaces.MediaStager
	resolver interfaces.BoardResolver
	logger   *logrus.Logger

	baseURL  string
	headless bool
	slowMo   float64
}

// Option configures additional Engine behavior.
type Option func(*Engine)

// WithHeadless toggles headless browser launch. Headed is the default so an
// operator can complete 2FA challenges during login.
func WithHeadless(headless bool) Option {
	return func(e *Engine) {
		e.headless = headless
	}
}

// WithSlowMo slows every browser operation by the given delay, for debugging.
func WithSlowMo(ms float64) Option {
	return func(e *Engine) {
		e.slowMo = ms
	}
}

// WithBaseURL retargets the engine, e.g. at a local fixture site in tests.
func WithBaseURL(url string) Option {
	return func(e *Engine) {
		e.baseURL = strings.TrimSuffix(url, "/")
	}
}

// NewEngine - creates a publishing engine over the given collaborators
func NewEngine(store interfaces.SessionStore, stager interfaces.MediaStager, resolver interfaces.BoardResolver, logger *logrus.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		stager:   stager,
		resolver: resolver,
		logger:   logger,
		baseURL:  defaultBaseURL,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HasActiveSession - reports whether a session artifact exists and its
// last-modified time. Liveness against the site is only verified by Publish.
func (e *Engine) HasActiveSession(userID string) (bool, time.Time) {
	info, ok := e.store.Info(userID)
	if !ok {
		return false, time.Time{}
	}
	return true, info.ModifiedAt
}

// browserSession bundles the playwright resources one flow owns.
type browserSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
}

// openSession launches a browser and creates a single page, optionally
// restoring a persisted storage state into the context.
func (e *Engine) openSession(state *playwright.StorageState) (*browserSession, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(e.headless),
		SlowMo:   playwright.Float(e.slowMo),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--disable-notifications",
			"--disable-infobars",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	contextOptions := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
		UserAgent: playwright.String("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	}
	if state != nil {
		contextOptions.StorageState = state.ToOptionalStorageState()
	}

	context, err := browser.NewContext(contextOptions)
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return &browserSession{pw: pw, browser: browser, context: context, page: page}, nil
}

// close releases the browser resources in all cases, tolerating the
// "target closed" errors playwright reports when the browser already died.
func (s *browserSession) close(logger *logrus.Logger) {
	if s.context != nil {
		if err := s.context.Close(); err != nil && !isClosedError(err) {
			logger.WithError(err).Warn("Failed to close browser context")
		}
		s.context = nil
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil && !isClosedError(err) {
			logger.WithError(err).Warn("Failed to close browser")
		}
		s.browser = nil
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			logger.WithError(err).Warn("Failed to stop playwright")
		}
		s.pw = nil
	}
}

func isClosedError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "closed") || strings.Contains(msg, "target closed")
}

// goTo navigates the page and maps playwright timeouts onto the network
// timeout sentinel.
func (s *browserSession) goTo(url string, waitUntil *playwright.WaitUntilState) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: waitUntil,
		Timeout:   playwright.Float(navigationTimeout),
	})
	if err != nil {
		if isTimeoutError(err) {
			return fmt.Errorf("%w: %v", entities.ErrNetworkTimeout, err)
		}
		return err
	}
	return nil
}

func isTimeoutError(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}

// waitVisible waits for a selector with a bounded timeout, mapping the
// failure onto the element taxonomy.
func (s *browserSession) waitVisible(selector string, timeout float64) error {
	err := s.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(timeout),
	})
	if err != nil {
		if isTimeoutError(err) {
			return fmt.Errorf("%w: %s", entities.ErrSelectorTimeout, selector)
		}
		return fmt.Errorf("%w: %s: %v", entities.ErrElementNotFound, selector, err)
	}
	return nil
}

// fill waits for an input to become visible, clears it, and types the value.
func (s *browserSession) fill(selector, value string, timeout float64) error {
	if err := s.waitVisible(selector, timeout); err != nil {
		return err
	}
	locator := s.page.Locator(selector).First()
	locator.Clear()
	if err := locator.Fill(value); err != nil {
		return fmt.Errorf("failed to fill %s: %w", selector, err)
	}
	return nil
}

// click waits for an element and clicks it.
func (s *browserSession) click(selector string, timeout float64) error {
	if err := s.waitVisible(selector, timeout); err != nil {
		return err
	}
	if err := s.page.Locator(selector).First().Click(); err != nil {
		return fmt.Errorf("failed to click %s: %w", selector, err)
	}
	return nil
}
