package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"pinpilot/domain/entities"
)

const copywriterSystemPrompt = "You are a Pinterest SEO expert."

// GeneratePinContent produces optimized pin copy for a product. On any model
// or parsing failure it degrades to copy assembled from the product fields
// so pin publishing never blocks on the AI.
func (c *Client) GeneratePinContent(ctx context.Context, product entities.Product) (entities.PinContent, error) {
	prompt := fmt.Sprintf(`Create optimized content for a pin based on this product.

Product Title: %s
Product Description: %s
Category: %s
Target Audience: %s
Pain Points: %s

Strict Board Management Rules:
1. Board names must be niche-specific, not product-specific (e.g. "Home Decor Ideas" NOT "Blue Velvet Sofa").
2. Use SEO-friendly titles (2-5 words).
3. Avoid emojis, numbers, or promotional language.
4. Suggest a board name that is broad enough to contain this pin but specific enough to target the audience.

Provide the response in valid JSON format with the fields:
- title: SEO-friendly title (max 100 chars)
- description: engaging description with keywords (max 500 chars)
- hashtags: 5-10 relevant hashtags as a string
- board: suggested board name observing the rules above

Do not include markdown, just raw JSON.`,
		product.Title, product.Description, product.Category, product.TargetBuyers, product.PainPoints)

	answer, err := c.complete(ctx, copywriterSystemPrompt, prompt, 0.7)
	if err != nil {
		c.logger.WithError(err).Warn("Pin copy generation failed, using product fields")
		return fallbackContent(product), nil
	}

	var content entities.PinContent
	if err := json.Unmarshal([]byte(stripFences(answer)), &content); err != nil {
		c.logger.WithError(err).Warn("Pin copy response was not valid JSON, using product fields")
		return fallbackContent(product), nil
	}
	return content, nil
}

func fallbackContent(product entities.Product) entities.PinContent {
	board := product.Category
	if board == "" {
		board = "Products"
	}
	return entities.PinContent{
		Title:       product.Title,
		Description: product.Description,
		Hashtags:    "#pinterest",
		Board:       board,
	}
}
