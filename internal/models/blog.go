package models

import "time"

type BlogStatus string

const (
	StatusIdea      BlogStatus = "Idea"
	StatusDrafted   BlogStatus = "Drafted"
	StatusScheduled BlogStatus = "Scheduled"
	StatusPublished BlogStatus = "Published"
)

// Statuses lists all blog statuses in pipeline order.
var Statuses = []BlogStatus{StatusIdea, StatusDrafted, StatusScheduled, StatusPublished}

func (s BlogStatus) Valid() bool {
	switch s {
	case StatusIdea, StatusDrafted, StatusScheduled, StatusPublished:
		return true
	}
	return false
}

// PublishDateLayout is the wire format for BlogPost.PublishDate.
const PublishDateLayout = "2006-01-02"

// BlogPost is a planned or published content item. PersonaID is a weak
// reference: it may point at a deleted persona, and consumers treat a
// dangling value as "no persona" rather than an error.
type BlogPost struct {
	ID            string     `json:"id"`
	Title         string     `json:"title" validate:"required"`
	PersonaID     string     `json:"personaId"`
	TargetKeyword string     `json:"targetKeyword"`
	Status        BlogStatus `json:"status"`
	PublishDate   string     `json:"publishDate"`
	Notes         string     `json:"notes"`
}

// ParsedPublishDate returns the publish date as a time value. An empty or
// unparseable date yields the zero time, which sorts before any real date.
func (b *BlogPost) ParsedPublishDate() time.Time {
	if b.PublishDate == "" {
		return time.Time{}
	}
	t, err := time.Parse(PublishDateLayout, b.PublishDate)
	if err != nil {
		return time.Time{}
	}
	return t
}
