package pinterest

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"pinpilot/domain/entities"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

// Login walks the credential form and persists the authenticated browser
// state: Idle -> OpeningBrowser -> AwaitingCredentialsForm -> Submitting ->
// AwaitingRedirectHome -> PersistingSession -> Done. Every wait is bounded
// except the post-submit redirect, which stays open so a manual 2FA or
// challenge screen can be completed; callers needing a hard bound wrap the
// call in their own timeout.
func (e *Engine) Login(ctx context.Context, userID string, creds entities.Credentials) error {
	log := e.logger.WithFields(logrus.Fields{"user": userID, "flow": "login"})

	if creds.Email == "" || creds.Password == "" {
		return entities.NewStageError(stageCredentialsForm,
			fmt.Errorf("%w: missing email or password", entities.ErrLoginFailed))
	}
	if _, err := e.store.Path(userID); err != nil {
		return entities.NewStageError(stageOpeningBrowser, err)
	}

	sess, err := e.openSession(nil)
	if err != nil {
		return entities.NewStageError(stageOpeningBrowser, err)
	}
	defer sess.close(e.logger)

	log.Info("Opening Pinterest login page")
	if err := sess.goTo(e.baseURL+loginPath, playwright.WaitUntilStateNetworkidle); err != nil {
		return entities.NewStageError(stageOpeningBrowser, err)
	}

	if err := sess.fill(emailSelector, creds.Email, fieldTimeout); err != nil {
		return entities.NewStageError(stageCredentialsForm, err)
	}
	if err := sess.fill(passwordSelector, creds.Password, fieldTimeout); err != nil {
		return entities.NewStageError(stageCredentialsForm, err)
	}

	if err := sess.click(loginSubmitSelector, fieldTimeout); err != nil {
		return entities.NewStageError(stageSubmitting, err)
	}

	// No upper bound on this wait: a manual 2FA or challenge screen may sit
	// between submit and the home redirect. Rejection banners and context
	// cancellation are the only exits besides success.
	log.Info("Waiting for post-login redirect (unbounded, 2FA may be in progress)")
	homePattern := regexp.MustCompile("^" + regexp.QuoteMeta(e.baseURL) + "/?")
	for {
		if err := ctx.Err(); err != nil {
			return entities.NewStageError(stageAwaitingHome, err)
		}
		if e.credentialsRejected(sess) {
			return entities.NewStageError(stageSubmitting, entities.ErrCredentialsRejected)
		}
		url := sess.page.URL()
		if homePattern.MatchString(url) && !isAuthRedirect(url) {
			break
		}
		time.Sleep(redirectPoll)
	}

	// Let post-login requests land before capturing cookies.
	time.Sleep(settleDelay)

	state, err := sess.context.StorageState()
	if err != nil {
		return entities.NewStageError(stagePersisting,
			fmt.Errorf("failed to capture browser state: %w", err))
	}
	blob, err := json.Marshal(state)
	if err != nil {
		return entities.NewStageError(stagePersisting, err)
	}
	if err := e.store.Save(userID, blob); err != nil {
		return entities.NewStageError(stagePersisting, err)
	}

	log.Info("Login successful, session saved")
	return nil
}

// credentialsRejected checks whether the login page surfaced an error banner
// instead of redirecting. Best-effort: an unrecognized banner just leaves
// the flow waiting on the redirect.
func (e *Engine) credentialsRejected(sess *browserSession) bool {
	for _, selector := range loginErrorSelectors {
		visible, err := sess.page.Locator(selector).First().IsVisible()
		if err == nil && visible {
			e.logger.WithField("selector", selector).Warn("Login error banner visible")
			return true
		}
	}
	return false
}
