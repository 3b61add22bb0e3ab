package domain

import "time"

// ContentFormat distinguishes books from podcast-style audio content.
type ContentFormat string

const (
	FormatEbook     ContentFormat = "ebook"
	FormatAudiobook ContentFormat = "audiobook"
	FormatPodcast   ContentFormat = "podcast"
)

// Book is a catalog item. Title and description are stored per
// language; Somali fields sit alongside English ones rather than in a
// translations table.
type Book struct {
	ID            string
	Title         string
	TitleSomali   string
	Description   string
	DescriptionSo string
	Authors       string
	Language      string
	Format        ContentFormat
	CategoryID    *string
	IsPremium     bool
	IsFeatured    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Category groups catalog items.
type Category struct {
	ID         string
	Name       string
	NameSomali string
	CreatedAt  time.Time
}
