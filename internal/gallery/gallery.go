package gallery

// Image is a gallery entry, maps to `gallery_images`. Listing orders by
// DisplayOrder ascending, then newest first.
type Image struct {
	ID           string  `json:"id"`
	ImageURL     string  `json:"image_url"`
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	Category     *string `json:"category,omitempty"`
	DisplayOrder int     `json:"display_order"`
	CreatedAt    string  `json:"created_at,omitempty"`
	UpdatedAt    string  `json:"updated_at,omitempty"`
}

// Patch carries optional fields for an admin update.
type Patch struct {
	ImageURL     *string `json:"image_url"`
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	DisplayOrder *int    `json:"display_order"`
}
