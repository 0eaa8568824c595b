package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpd/internal/models"
)

func viewFixture() models.Snapshot {
	return models.Snapshot{
		Personas: []models.Persona{
			{ID: "p1", Name: "Anxious Professional", PrimaryConcerns: []string{"anxiety", "burnout"}},
			{ID: "p2", Name: "New Parent", PrimaryConcerns: []string{"anxiety", "sleep"}},
			{ID: "p3", Name: "Teen", PrimaryConcerns: []string{"school stress"}},
		},
		Blogs: []models.BlogPost{
			{ID: "b1", Title: "Zebra Habits", PersonaID: "p1", TargetKeyword: "habits", Status: models.StatusPublished, PublishDate: "2026-08-10"},
			{ID: "b2", Title: "apple a day", PersonaID: "p1", TargetKeyword: "nutrition", Status: models.StatusIdea},
			{ID: "b3", Title: "Mango Mindfulness", PersonaID: "p2", TargetKeyword: "mindfulness", Status: models.StatusScheduled, PublishDate: "2026-09-01"},
			{ID: "b4", Title: "Dangling", PersonaID: "deleted", Status: models.StatusDrafted, PublishDate: "2026-07-20"},
		},
		GptExports: []models.GptExportRecord{},
	}
}

func TestFilterBlogs_SearchMatchesTitleAndKeyword(t *testing.T) {
	vs := NewViewService()
	s := viewFixture()

	byTitle := vs.FilterBlogs(s, BlogQuery{Search: "MANGO"})
	require.Len(t, byTitle, 1)
	assert.Equal(t, "b3", byTitle[0].ID)

	byKeyword := vs.FilterBlogs(s, BlogQuery{Search: "nutri"})
	require.Len(t, byKeyword, 1)
	assert.Equal(t, "b2", byKeyword[0].ID)
}

func TestFilterBlogs_StatusAndPersonaFilters(t *testing.T) {
	vs := NewViewService()
	s := viewFixture()

	published := vs.FilterBlogs(s, BlogQuery{Status: models.StatusPublished})
	require.Len(t, published, 1)
	assert.Equal(t, "b1", published[0].ID)

	forP1 := vs.FilterBlogs(s, BlogQuery{PersonaID: "p1"})
	assert.Len(t, forP1, 2)

	// empty filters match everything
	all := vs.FilterBlogs(s, BlogQuery{})
	assert.Len(t, all, 4)
}

func TestFilterBlogs_SortByTitleCaseInsensitive(t *testing.T) {
	vs := NewViewService()
	s := viewFixture()

	out := vs.FilterBlogs(s, BlogQuery{SortBy: "title", Order: "asc"})
	titles := make([]string, len(out))
	for i, b := range out {
		titles[i] = b.Title
	}
	assert.Equal(t, []string{"apple a day", "Dangling", "Mango Mindfulness", "Zebra Habits"}, titles)
}

func TestFilterBlogs_SortByPublishDateMissingSortsEarliest(t *testing.T) {
	vs := NewViewService()
	s := viewFixture()

	asc := vs.FilterBlogs(s, BlogQuery{SortBy: "publishDate", Order: "asc"})
	assert.Equal(t, "b2", asc[0].ID) // no date sorts first
	assert.Equal(t, "b3", asc[len(asc)-1].ID)

	desc := vs.FilterBlogs(s, BlogQuery{SortBy: "publishDate", Order: "desc"})
	assert.Equal(t, "b3", desc[0].ID)
	assert.Equal(t, "b2", desc[len(desc)-1].ID)
}

func TestFilterBlogs_Idempotent(t *testing.T) {
	vs := NewViewService()
	s := viewFixture()
	q := BlogQuery{SortBy: "status", Order: "asc"}

	first := vs.FilterBlogs(s, q)
	second := vs.FilterBlogs(s, q)
	assert.Equal(t, first, second)
}

func TestFilterBlogs_TiesKeepInputOrder(t *testing.T) {
	vs := NewViewService()
	s := models.Snapshot{Blogs: []models.BlogPost{
		{ID: "b1", Title: "one", Status: models.StatusIdea},
		{ID: "b2", Title: "two", Status: models.StatusIdea},
		{ID: "b3", Title: "three", Status: models.StatusIdea},
	}}

	out := vs.FilterBlogs(s, BlogQuery{SortBy: "status", Order: "asc"})
	assert.Equal(t, "b1", out[0].ID)
	assert.Equal(t, "b2", out[1].ID)
	assert.Equal(t, "b3", out[2].ID)
}

func TestFilterPersonas(t *testing.T) {
	vs := NewViewService()
	s := viewFixture()

	assert.Len(t, vs.FilterPersonas(s, ""), 3)

	out := vs.FilterPersonas(s, "parent")
	require.Len(t, out, 1)
	assert.Equal(t, "p2", out[0].ID)
}

func TestCalendarMonth_BucketsByDay(t *testing.T) {
	vs := NewViewService()
	s := viewFixture()

	view := vs.CalendarMonth(s, 2026, time.August)

	assert.Equal(t, "2026-08", view.Month)
	require.Len(t, view.Days, 1)
	require.Len(t, view.Days[10], 1)
	assert.Equal(t, "b1", view.Days[10][0].ID)
	assert.Equal(t, "Anxious Professional", view.Days[10][0].PersonaName)
}

func TestCalendarMonth_ExcludesUndatedAndResolvesDangling(t *testing.T) {
	vs := NewViewService()
	s := viewFixture()

	july := vs.CalendarMonth(s, 2026, time.July)
	require.Len(t, july.Days[20], 1)
	assert.Equal(t, "No Client Type", july.Days[20][0].PersonaName)

	// b2 has no publish date and must not appear in any month
	for _, view := range []CalendarView{july, vs.CalendarMonth(s, 2026, time.August), vs.CalendarMonth(s, 2026, time.September)} {
		for _, entries := range view.Days {
			for _, e := range entries {
				assert.NotEqual(t, "b2", e.ID)
			}
		}
	}
}

func TestPersonaName_DanglingReference(t *testing.T) {
	vs := NewViewService()
	s := viewFixture()

	assert.Equal(t, "New Parent", vs.PersonaName(s, "p2"))
	assert.Equal(t, "No Client Type", vs.PersonaName(s, "deleted"))
	assert.Equal(t, "No Client Type", vs.PersonaName(s, ""))
}

func TestAnalytics_StatusBreakdown(t *testing.T) {
	vs := NewViewService()
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)

	view := vs.Analytics(viewFixture(), now)

	require.Len(t, view.StatusBreakdown, 4)
	byStatus := make(map[models.BlogStatus]StatusBucket)
	total := 0
	for _, b := range view.StatusBreakdown {
		byStatus[b.Status] = b
		total += b.Percent
	}
	assert.Equal(t, 1, byStatus[models.StatusIdea].Count)
	assert.Equal(t, 1, byStatus[models.StatusPublished].Count)
	// rounding keeps the sum near 100
	assert.InDelta(t, 100, total, 2)
}

func TestAnalytics_EmptyStoreYieldsZeroPercentages(t *testing.T) {
	vs := NewViewService()

	view := vs.Analytics(models.NewSnapshot(), time.Now())

	assert.Equal(t, 0, view.TotalBlogs)
	require.Len(t, view.StatusBreakdown, 4)
	for _, b := range view.StatusBreakdown {
		assert.Equal(t, 0, b.Count)
		assert.Equal(t, 0, b.Percent)
	}
	assert.Empty(t, view.TopConcerns)
	assert.Len(t, view.Monthly, 6)
}

func TestAnalytics_CoverageCountsLinkedBlogs(t *testing.T) {
	vs := NewViewService()
	view := vs.Analytics(viewFixture(), time.Now())

	assert.Equal(t, 3, view.TotalPersonas)
	assert.Equal(t, 2, view.PersonasWithContent)
	require.Len(t, view.Coverage, 3)
	assert.Equal(t, 2, view.Coverage[0].BlogCount) // p1
	assert.Equal(t, 1, view.Coverage[1].BlogCount) // p2
	assert.Equal(t, 0, view.Coverage[2].BlogCount) // p3

	// the blog with a dangling reference still counts as linked
	assert.Equal(t, 4, view.LinkedBlogs)
	assert.Equal(t, 3, view.LinkedPersonas)
}

func TestAnalytics_MonthlyTrailingWindow(t *testing.T) {
	vs := NewViewService()
	now := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)

	view := vs.Analytics(viewFixture(), now)

	require.Len(t, view.Monthly, 6)
	assert.Equal(t, "Apr 2026", view.Monthly[0].Month)
	assert.Equal(t, "Sep 2026", view.Monthly[5].Month)

	counts := make(map[string]int)
	for _, m := range view.Monthly {
		counts[m.Month] = m.Count
	}
	assert.Equal(t, 1, counts["Jul 2026"])
	assert.Equal(t, 1, counts["Aug 2026"])
	assert.Equal(t, 1, counts["Sep 2026"])
	assert.Equal(t, 0, counts["Apr 2026"])
}

func TestAnalytics_ConcernTotalsAccumulateAcrossPersonas(t *testing.T) {
	vs := NewViewService()
	view := vs.Analytics(viewFixture(), time.Now())

	require.NotEmpty(t, view.TopConcerns)
	// anxiety is declared by p1 (2 blogs) and p2 (1 blog)
	assert.Equal(t, "anxiety", view.TopConcerns[0].Concern)
	assert.Equal(t, 3, view.TopConcerns[0].Count)
}

func TestAnalytics_TopConcernsCapped(t *testing.T) {
	vs := NewViewService()
	s := models.Snapshot{
		Personas: []models.Persona{{
			ID:              "p1",
			Name:            "p",
			PrimaryConcerns: []string{"a", "b", "c", "d", "e", "f", "g"},
		}},
		Blogs: []models.BlogPost{{ID: "b1", Title: "t", PersonaID: "p1", Status: models.StatusIdea}},
	}

	view := vs.Analytics(s, time.Now())
	assert.Len(t, view.TopConcerns, 5)
}

func TestAnalytics_UpcomingWindows(t *testing.T) {
	vs := NewViewService()
	now := time.Date(2026, time.August, 1, 9, 0, 0, 0, time.UTC)
	s := models.Snapshot{Blogs: []models.BlogPost{
		{ID: "b1", Title: "today", Status: models.StatusScheduled, PublishDate: "2026-08-01"},
		{ID: "b2", Title: "in five days", Status: models.StatusScheduled, PublishDate: "2026-08-06"},
		{ID: "b3", Title: "in three weeks", Status: models.StatusScheduled, PublishDate: "2026-08-22"},
		{ID: "b4", Title: "past", Status: models.StatusPublished, PublishDate: "2026-07-01"},
		{ID: "b5", Title: "undated", Status: models.StatusIdea},
	}}

	view := vs.Analytics(s, now)
	assert.Equal(t, 2, view.UpcomingWeek)
	assert.Equal(t, 3, view.UpcomingMonth)
}
