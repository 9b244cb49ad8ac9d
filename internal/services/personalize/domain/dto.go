package domain

// PreviewInput asks for a dry run of personalisation over arbitrary text
type PreviewInput struct {
	Text     string `json:"text" validate:"required,max=200000"`
	MinCount int    `json:"min_count,omitempty" validate:"omitempty,min=1,max=1000000"`
}
