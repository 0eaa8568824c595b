package services

import (
	"math"
	"sort"
	"strings"
	"time"

	"cpd/internal/models"
)

const noPersonaName = "No Client Type"

// BlogQuery selects and orders blog posts for list views. Empty filter
// fields match everything.
type BlogQuery struct {
	Search    string
	Status    models.BlogStatus
	PersonaID string
	SortBy    string // title, status or publishDate
	Order     string // asc or desc
}

type CalendarEntry struct {
	models.BlogPost
	PersonaName string `json:"personaName"`
}

type CalendarView struct {
	Month string                  `json:"month"`
	Days  map[int][]CalendarEntry `json:"days"`
}

type StatusBucket struct {
	Status  models.BlogStatus `json:"status"`
	Count   int               `json:"count"`
	Percent int               `json:"percent"`
}

type PersonaCoverage struct {
	PersonaID string `json:"personaId"`
	Name      string `json:"name"`
	AgeRange  string `json:"ageRange"`
	BlogCount int    `json:"blogCount"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type ConcernCount struct {
	Concern string `json:"concern"`
	Count   int    `json:"count"`
}

type AnalyticsView struct {
	TotalPersonas       int               `json:"totalPersonas"`
	TotalBlogs          int               `json:"totalBlogs"`
	PersonasWithContent int               `json:"personasWithContent"`
	PublishedBlogs      int               `json:"publishedBlogs"`
	UpcomingWeek        int               `json:"upcomingWeek"`
	UpcomingMonth       int               `json:"upcomingMonth"`
	LinkedBlogs         int               `json:"linkedBlogs"`
	LinkedPersonas      int               `json:"linkedPersonas"`
	StatusBreakdown     []StatusBucket    `json:"statusBreakdown"`
	Coverage            []PersonaCoverage `json:"coverage"`
	Monthly             []MonthCount      `json:"monthly"`
	TopConcerns         []ConcernCount    `json:"topConcerns"`
}

type ViewServiceInterface interface {
	FilterBlogs(s models.Snapshot, q BlogQuery) []models.BlogPost
	FilterPersonas(s models.Snapshot, search string) []models.Persona
	CalendarMonth(s models.Snapshot, year int, month time.Month) CalendarView
	Analytics(s models.Snapshot, now time.Time) AnalyticsView
	PersonaName(s models.Snapshot, personaID string) string
}

// ViewService computes derived projections over a snapshot. Every method is
// pure: no caching across snapshots, no mutation of inputs.
type ViewService struct{}

func NewViewService() ViewServiceInterface {
	return &ViewService{}
}

func (vs *ViewService) FilterBlogs(s models.Snapshot, q BlogQuery) []models.BlogPost {
	search := strings.ToLower(q.Search)

	out := make([]models.BlogPost, 0, len(s.Blogs))
	for _, b := range s.Blogs {
		if search != "" &&
			!strings.Contains(strings.ToLower(b.Title), search) &&
			!strings.Contains(strings.ToLower(b.TargetKeyword), search) {
			continue
		}
		if q.Status != "" && b.Status != q.Status {
			continue
		}
		if q.PersonaID != "" && b.PersonaID != q.PersonaID {
			continue
		}
		out = append(out, b)
	}

	desc := q.Order == "desc"
	sort.SliceStable(out, func(i, j int) bool {
		less := blogLess(&out[i], &out[j], q.SortBy)
		if less == 0 {
			return false
		}
		if desc {
			return less > 0
		}
		return less < 0
	})

	return out
}

// blogLess compares two posts on the sort field: -1, 0 or 1. Posts without
// a publish date compare as the earliest possible instant.
func blogLess(a, b *models.BlogPost, field string) int {
	switch field {
	case "title":
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case "status":
		return strings.Compare(string(a.Status), string(b.Status))
	case "publishDate":
		return a.ParsedPublishDate().Compare(b.ParsedPublishDate())
	default:
		return 0
	}
}

func (vs *ViewService) FilterPersonas(s models.Snapshot, search string) []models.Persona {
	if search == "" {
		return s.Personas
	}
	needle := strings.ToLower(search)
	out := make([]models.Persona, 0, len(s.Personas))
	for _, p := range s.Personas {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Keywords), needle) {
			out = append(out, p)
		}
	}
	return out
}

// CalendarMonth buckets the month's blogs by day, comparing publish dates
// date-only. Posts without a publish date are excluded.
func (vs *ViewService) CalendarMonth(s models.Snapshot, year int, month time.Month) CalendarView {
	days := make(map[int][]CalendarEntry)
	for _, b := range s.Blogs {
		d := b.ParsedPublishDate()
		if d.IsZero() || d.Year() != year || d.Month() != month {
			continue
		}
		days[d.Day()] = append(days[d.Day()], CalendarEntry{
			BlogPost:    b,
			PersonaName: vs.PersonaName(s, b.PersonaID),
		})
	}
	return CalendarView{
		Month: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
		Days:  days,
	}
}

// PersonaName resolves a persona reference for display. Dangling and empty
// references degrade to "No Client Type".
func (vs *ViewService) PersonaName(s models.Snapshot, personaID string) string {
	if p := s.FindPersona(personaID); p != nil {
		return p.Name
	}
	return noPersonaName
}

func (vs *ViewService) Analytics(s models.Snapshot, now time.Time) AnalyticsView {
	view := AnalyticsView{
		TotalPersonas:   len(s.Personas),
		TotalBlogs:      len(s.Blogs),
		StatusBreakdown: make([]StatusBucket, 0, len(models.Statuses)),
		Coverage:        make([]PersonaCoverage, 0, len(s.Personas)),
		Monthly:         make([]MonthCount, 0, 6),
		TopConcerns:     []ConcernCount{},
	}

	// Status distribution. Percentages are 0 across the board when there
	// are no blogs, never a division by zero.
	counts := make(map[models.BlogStatus]int, len(models.Statuses))
	for _, b := range s.Blogs {
		counts[b.Status]++
	}
	for _, st := range models.Statuses {
		percent := 0
		if len(s.Blogs) > 0 {
			percent = int(math.Round(float64(counts[st]) / float64(len(s.Blogs)) * 100))
		}
		view.StatusBreakdown = append(view.StatusBreakdown, StatusBucket{
			Status:  st,
			Count:   counts[st],
			Percent: percent,
		})
	}
	view.PublishedBlogs = counts[models.StatusPublished]

	// Persona coverage.
	blogsPerPersona := make(map[string]int)
	linkedPersonas := make(map[string]struct{})
	for _, b := range s.Blogs {
		if b.PersonaID == "" {
			continue
		}
		blogsPerPersona[b.PersonaID]++
		linkedPersonas[b.PersonaID] = struct{}{}
		view.LinkedBlogs++
	}
	view.LinkedPersonas = len(linkedPersonas)
	for _, p := range s.Personas {
		n := blogsPerPersona[p.ID]
		if n > 0 {
			view.PersonasWithContent++
		}
		view.Coverage = append(view.Coverage, PersonaCoverage{
			PersonaID: p.ID,
			Name:      p.Name,
			AgeRange:  p.AgeRange,
			BlogCount: n,
		})
	}

	// Monthly counts over a trailing six month window anchored at now.
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 5; i >= 0; i-- {
		m := anchor.AddDate(0, -i, 0)
		count := 0
		for _, b := range s.Blogs {
			d := b.ParsedPublishDate()
			if !d.IsZero() && d.Year() == m.Year() && d.Month() == m.Month() {
				count++
			}
		}
		view.Monthly = append(view.Monthly, MonthCount{
			Month: m.Format("Jan 2006"),
			Count: count,
		})
	}

	// Concern totals: each concern accumulates the linked-blog count of
	// every persona declaring it. Top five, descending, first-declared
	// order on ties.
	concernTotals := make(map[string]int)
	var concernOrder []string
	for _, p := range s.Personas {
		for _, concern := range p.PrimaryConcerns {
			if _, seen := concernTotals[concern]; !seen {
				concernOrder = append(concernOrder, concern)
			}
			concernTotals[concern] += blogsPerPersona[p.ID]
		}
	}
	concerns := make([]ConcernCount, 0, len(concernOrder))
	for _, c := range concernOrder {
		concerns = append(concerns, ConcernCount{Concern: c, Count: concernTotals[c]})
	}
	sort.SliceStable(concerns, func(i, j int) bool {
		return concerns[i].Count > concerns[j].Count
	})
	if len(concerns) > 5 {
		concerns = concerns[:5]
	}
	view.TopConcerns = concerns

	// Publishing outlook for the dashboard surface, date-only comparison.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for _, b := range s.Blogs {
		d := b.ParsedPublishDate()
		if d.IsZero() || d.Before(today) {
			continue
		}
		if !d.After(today.AddDate(0, 0, 7)) {
			view.UpcomingWeek++
		}
		if !d.After(today.AddDate(0, 0, 30)) {
			view.UpcomingMonth++
		}
	}

	return view
}
