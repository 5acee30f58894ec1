package database

import (
	"time"
)

type Article struct {
	ID             string
	Title          string
	Description    string
	URL            string
	URLToImage     string
	PublishedAt    time.Time
	Content        string
	FullContent    string
	PreviewContent string
	CategoryID     string
	Source         string
	Author         string
	Language       string
	IsApproved     bool
	CreatedAt      time.Time
}

type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
