package entities

// Product is the seller-side record pin copy is generated from.
type Product struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	TargetBuyers string `json:"targetBuyers"`
	PainPoints   string `json:"painPoints"`
}

// PinContent is generated pin copy for a product.
type PinContent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Hashtags    string `json:"hashtags"`
	Board       string `json:"board"`
}
