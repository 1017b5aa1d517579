package domain

import "time"

// Blog is an article from the content system.
type Blog struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Cover     *Image    `json:"cover,omitempty"`
	Content   RichText  `json:"content,omitempty"`
	Active    bool      `json:"active"`
	Author    *Agent    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
