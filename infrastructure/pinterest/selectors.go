package pinterest

import "strings"

// Pinterest gives no write API for pins, so the engine drives the pin
// builder UI directly. Selectors are best-effort and versioned: where the
// markup is known to drift, an ordered fallback list is tried before the
// default locator.
const (
	loginPath      = "/login/"
	pinBuilderPath = "/pin-builder/"

	emailSelector       = `input[id="email"]`
	passwordSelector    = `input[id="password"]`
	loginSubmitSelector = `button[type="submit"]`

	titleSelector       = `textarea[placeholder="Add your title"]`
	descriptionSelector = `div[data-block="true"]`
	uploadInputSelector = `input[aria-label="File upload"]`

	boardTitleSelector = `div[title]`
	createBoardTitle   = "Create board"

	boardNameInputSelector    = `input[aria-invalid="false"]`
	boardNameInputAltSelector = `input[id="boardName"]`
	boardFormSubmitSelector   = `button[data-test-id="board-form-submit-button"]`
)

// boardDropdownSelectors are tried in order with a short timeout each; the
// first one falls back to a final bounded wait if none match.
var boardDropdownSelectors = []string{
	`div[data-test-id="board-dropdown-placeholder"]`,
	`div[data-test-id="board-dropdown-select-button"]`,
	`[aria-label="Select a board"]`,
	`[data-test-id="board-selection-button"]`,
	`div[role="button"]:has-text("Choose a board")`,
}

// loginErrorSelectors mark the credential-rejection banners the login page
// renders instead of redirecting.
var loginErrorSelectors = []string{
	`div[data-test-id="emailPasswordLoginError"]`,
	`span[id="email-error"]`,
	`span[id="password-error"]`,
}

// Stage names carried by entities.StageError so callers can attribute
// failures without parsing messages.
const (
	stageOpeningBrowser  = "opening_browser"
	stageCredentialsForm = "awaiting_credentials_form"
	stageSubmitting      = "submitting_credentials"
	stageAwaitingHome    = "awaiting_redirect_home"
	stagePersisting      = "persisting_session"

	stageRestoringSession = "restoring_session"
	stageVerifyingSession = "verifying_session_live"
	stageOpeningComposer  = "opening_composer"
	stageStagingMedia     = "staging_media"
	stageFillingFields    = "filling_fields"
	stageResolvingBoard   = "resolving_board"
	stageCreatingBoard    = "creating_board"
	stageSelectingBoard   = "selecting_board"
)

// isAuthRedirect reports whether a URL indicates the site bounced us to its
// login or signup page, i.e. the restored session is no longer live.
func isAuthRedirect(url string) bool {
	return strings.Contains(url, "/login") || strings.Contains(url, "/signup")
}

// titleLocator builds an attribute selector for a board's title, escaping
// embedded quotes so user-chosen names cannot break the selector.
func titleLocator(title string) string {
	return `div[title="` + strings.ReplaceAll(title, `"`, `\"`) + `"]`
}
