package product

// Product represents a catalog entry and maps to the `products` table.
// Price is stored and served in paise to avoid floating-point currency
// errors; the first entry of Images doubles as ImageURL when one is not
// set explicitly.
type Product struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Description         *string  `json:"description,omitempty"`
	DetailedDescription *string  `json:"detailed_description,omitempty"`
	Price               int64    `json:"price"`
	ImageURL            *string  `json:"image_url,omitempty"`
	Images              []string `json:"images"`
	InStock             bool     `json:"in_stock"`
	StockQuantity       int      `json:"stock_quantity"`
	Category            *string  `json:"category,omitempty"`
	Dosage              *string  `json:"dosage,omitempty"`
	Ingredients         *string  `json:"ingredients,omitempty"`
	Benefits            *string  `json:"benefits,omitempty"`
	UsageInstructions   *string  `json:"usage_instructions,omitempty"`
	Weight              *string  `json:"weight,omitempty"`
	SKU                 *string  `json:"sku,omitempty"`
	CreatedAt           string   `json:"created_at,omitempty"`
	UpdatedAt           string   `json:"updated_at,omitempty"`
}

// Filter narrows the public product listing.
type Filter struct {
	Category string
	// InStock filters to in-stock products when set.
	InStock *bool
}

// PrimaryImage returns the explicit image URL or the first gallery image.
func (p Product) PrimaryImage() *string {
	if p.ImageURL != nil && *p.ImageURL != "" {
		return p.ImageURL
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}
