package pinterest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pinpilot/domain/entities"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

// Publish creates one pin: Idle -> RestoringSession -> VerifyingSessionLive
// -> OpeningComposer -> StagingMedia -> FillingFields -> ResolvingBoard ->
// (CreatingBoard | SelectingBoard) -> Done. Media staging and individual
// selector variants recover locally; every other failure propagates with
// its stage attached. Nothing navigates before the session artifact loads,
// and no form field is touched before the session is verified live.
func (e *Engine) Publish(ctx context.Context, userID string, pin entities.PinRequest) error {
	log := e.logger.WithFields(logrus.Fields{"user": userID, "flow": "publish", "title": pin.Title})

	if err := pin.Validate(); err != nil {
		return err
	}

	blob, err := e.store.Load(userID)
	if err != nil {
		return entities.NewStageError(stageRestoringSession, err)
	}
	var state playwright.StorageState
	if err := json.Unmarshal(blob, &state); err != nil {
		return entities.NewStageError(stageRestoringSession,
			fmt.Errorf("corrupt session artifact: %w", err))
	}

	sess, err := e.openSession(&state)
	if err != nil {
		return entities.NewStageError(stageRestoringSession, err)
	}
	defer sess.close(e.logger)

	if err := e.verifySessionLive(sess, log); err != nil {
		return err
	}
	if err := e.openComposer(sess, log); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return entities.NewStageError(stageStagingMedia, err)
	}

	e.uploadImage(ctx, sess, pin.ImageRef, log)

	if err := e.fillFields(sess, pin); err != nil {
		return err
	}

	if pin.Board == "" {
		log.Warn("No board requested, leaving the composer's default board")
		return nil
	}
	return e.chooseBoard(ctx, sess, pin.Board, log)
}

// verifySessionLive navigates home and checks the landing URL. The restored
// cookies are the only proof of identity; a bounce to login or signup means
// they are stale and the form-fill steps must never run.
func (e *Engine) verifySessionLive(sess *browserSession, log *logrus.Entry) error {
	log.Info("Verifying Pinterest session")
	if err := sess.goTo(e.baseURL+"/", playwright.WaitUntilStateLoad); err != nil {
		return entities.NewStageError(stageVerifyingSession, err)
	}

	// Give the site a moment to run its auth check and redirect.
	time.Sleep(settleDelay)

	if isAuthRedirect(sess.page.URL()) {
		return entities.NewStageError(stageVerifyingSession, entities.ErrSessionExpired)
	}
	return nil
}

// openComposer opens the pin builder and waits for its three essential
// fields before anything is typed.
func (e *Engine) openComposer(sess *browserSession, log *logrus.Entry) error {
	log.Info("Opening Pin Builder")
	if err := sess.goTo(e.baseURL+pinBuilderPath, playwright.WaitUntilStateLoad); err != nil {
		return entities.NewStageError(stageOpeningComposer, err)
	}

	if err := sess.waitVisible(titleSelector, fieldTimeout); err != nil {
		return entities.NewStageError(stageOpeningComposer, err)
	}
	if err := sess.waitVisible(descriptionSelector, fieldTimeout); err != nil {
		return entities.NewStageError(stageOpeningComposer, err)
	}

	// The file input stays hidden behind the drop zone; attached is enough.
	err := sess.page.Locator(uploadInputSelector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(fieldTimeout),
	})
	if err != nil {
		return entities.NewStageError(stageOpeningComposer,
			fmt.Errorf("%w: %s", entities.ErrElementNotFound, uploadInputSelector))
	}
	return nil
}

// uploadImage stages the pin's image and feeds it to the hidden file input.
// The image is a best-effort enhancement: every failure here is logged and
// the publish continues without it. Temp files are released before return.
func (e *Engine) uploadImage(ctx context.Context, sess *browserSession, imageRef string, log *logrus.Entry) {
	if imageRef == "" {
		log.Info("No image provided, skipping upload")
		return
	}

	staged, err := e.stager.Stage(ctx, imageRef)
	if err != nil {
		log.WithError(err).Warn("Media staging failed, continuing without image")
		return
	}
	if staged == nil {
		return
	}
	defer func() {
		if err := e.stager.Release(staged); err != nil {
			log.WithError(err).Warn("Failed to release staged media")
		}
	}()

	if err := sess.page.Locator(uploadInputSelector).First().SetInputFiles(staged.Path); err != nil {
		log.WithError(err).Warn("Image upload failed, continuing without image")
		return
	}

	log.WithField("path", staged.Path).Info("Image uploaded")
	time.Sleep(settleDelay)
}

func (e *Engine) fillFields(sess *browserSession, pin entities.PinRequest) error {
	if err := sess.fill(titleSelector, pin.Title, fieldTimeout); err != nil {
		return entities.NewStageError(stageFillingFields, err)
	}
	if pin.Description != "" {
		if err := sess.fill(descriptionSelector, pin.Description, fieldTimeout); err != nil {
			return entities.NewStageError(stageFillingFields, err)
		}
	}
	return nil
}

// chooseBoard opens the dropdown, scrapes the live board list, resolves the
// target against it, and branches into create or select.
func (e *Engine) chooseBoard(ctx context.Context, sess *browserSession, target string, log *logrus.Entry) error {
	if err := e.openBoardDropdown(sess); err != nil {
		return entities.NewStageError(stageResolvingBoard, err)
	}
	time.Sleep(boardsDelay)

	candidates, err := e.scrapeBoards(sess)
	if err != nil {
		return entities.NewStageError(stageResolvingBoard, err)
	}
	log.WithField("count", len(candidates)).Info("Scraped existing boards")

	decision := e.resolver.Resolve(ctx, target, candidates)
	switch decision.Kind {
	case entities.MatchCreate:
		log.WithField("board", decision.Board).Info("Creating new board")
		if err := e.createBoard(sess, decision.Board); err != nil {
			return entities.NewStageError(stageCreatingBoard, err)
		}
	default:
		log.WithField("board", decision.Board).Info("Selecting existing board")
		if err := e.selectBoard(sess, decision.Board); err != nil {
			return entities.NewStageError(stageSelectingBoard, err)
		}
	}
	return nil
}

// openBoardDropdown tries each known dropdown locator with a short timeout,
// then gives the default one final bounded wait. A completely absent
// dropdown is fatal: waiting forever on a broken composer helps nobody.
func (e *Engine) openBoardDropdown(sess *browserSession) error {
	for _, selector := range boardDropdownSelectors {
		if err := sess.click(selector, shortTimeout); err == nil {
			e.logger.WithField("selector", selector).Info("Board dropdown opened")
			return nil
		}
	}

	e.logger.Warn("No board dropdown variant matched, waiting on the default selector")
	if err := sess.click(boardDropdownSelectors[0], fallbackTimeout); err != nil {
		return fmt.Errorf("%w: board dropdown", entities.ErrElementNotFound)
	}
	return nil
}

// scrapeBoards reads the board names visible in the open dropdown. The list
// is re-scraped on every publish; caching across calls risks a duplicate
// create when boards changed between calls.
func (e *Engine) scrapeBoards(sess *browserSession) ([]string, error) {
	items, err := sess.page.Locator(boardTitleSelector).All()
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}

	seen := make(map[string]struct{}, len(items))
	boards := make([]string, 0, len(items))
	for _, item := range items {
		title, err := item.GetAttribute("title")
		if err != nil || title == "" || title == createBoardTitle {
			continue
		}
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}
		boards = append(boards, title)
	}
	return boards, nil
}

// createBoard drives the create-board dialog. The name input markup varies,
// so two input locators are tried before typing blind into whatever holds
// focus.
func (e *Engine) createBoard(sess *browserSession, name string) error {
	if err := sess.click(titleLocator(createBoardTitle), fieldTimeout); err != nil {
		return err
	}

	filled := false
	if err := sess.fill(boardNameInputSelector, name, shortTimeout); err == nil {
		filled = true
	} else if err := sess.fill(boardNameInputAltSelector, name, shortTimeout); err == nil {
		filled = true
	}
	if !filled {
		e.logger.Warn("Board name input not found, typing into focused element")
		if err := sess.page.Keyboard().Type(name); err != nil {
			return fmt.Errorf("failed to type board name: %w", err)
		}
	}

	if err := sess.click(boardFormSubmitSelector, shortTimeout); err != nil {
		// Older dialog variant submits through a generic submit button.
		if err := sess.click(loginSubmitSelector, shortTimeout); err != nil {
			return fmt.Errorf("%w: board form submit", entities.ErrElementNotFound)
		}
	}

	time.Sleep(settleDelay)
	return nil
}

// selectBoard filters the dropdown by typing the name and clicks the
// matching item, falling back to the first filtered result.
func (e *Engine) selectBoard(sess *browserSession, name string) error {
	if err := sess.page.Keyboard().Type(name); err != nil {
		return fmt.Errorf("failed to filter boards: %w", err)
	}
	time.Sleep(filterDelay)

	if err := sess.click(titleLocator(name), shortTimeout); err != nil {
		e.logger.WithField("board", name).Warn("Could not click board by title, taking first filtered result")
		if err := sess.page.Keyboard().Press("Enter"); err != nil {
			return fmt.Errorf("failed to select board: %w", err)
		}
	}
	return nil
}
