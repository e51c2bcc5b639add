package entities

import "time"

// Article is a news post on the public site.
type Article struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Date       string    `json:"date"`
	Author     string    `json:"author,omitempty"`
	Snippet    string    `json:"snippet"`
	Content    string    `json:"content"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	DataAIHint string    `json:"dataAiHint,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
