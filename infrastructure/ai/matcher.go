package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const matcherSystemPrompt = "You are a smart organizational assistant."

// Match asks the model which candidate board the target name semantically
// belongs to. Returns "" when the model answers the "null" sentinel. The
// answer is not validated here: the board resolver enforces list membership
// and treats anything else as no match.
func (c *Client) Match(ctx context.Context, target string, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", nil
	}

	list, err := json.Marshal(candidates)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Target Board Name: %q
Available Boards: %s

Task: Find the best matching board from the strict "Available Boards" list that is semantically compatible with the "Target Board Name".
- If the target is very similar or conceptually fits perfectly into one of the available boards (e.g. "Cat Pics" fits "Pets", "Living Room" fits "Home Decor"), return that EXACT board name from the list.
- If there is a direct fuzzy match (e.g. "Recipes" vs "My Recipes"), return the available board name.
- If no board is a good match, return "null".

Result must be ONLY the exact board name string or "null". No other text.
Do not create a new board name. Must pick from the list.`, target, list)

	answer, err := c.complete(ctx, matcherSystemPrompt, prompt, 0)
	if err != nil {
		return "", fmt.Errorf("board match request failed: %w", err)
	}

	answer = strings.Trim(answer, `"`)
	if strings.EqualFold(answer, "null") {
		return "", nil
	}
	return answer, nil
}
