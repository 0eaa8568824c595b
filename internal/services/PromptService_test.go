package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpd/internal/models"
	"cpd/internal/structures"
)

func promptFixture(t *testing.T) (PromptServiceInterface, PlannerServiceInterface, models.Snapshot) {
	t.Helper()
	svc := NewPlannerService()
	snap := svc.Dispatch(models.AddPersona{Persona: models.Persona{
		Name:            "Anxious Professional",
		AgeRange:        "30-45",
		PrimaryConcerns: []string{"anxiety", "burnout"},
		Keywords:        "therapist near me",
		TherapyGoals:    "stress management",
		Location:        "Berlin",
	}})
	pid := snap.Personas[0].ID
	svc.Dispatch(models.AddBlog{Blog: models.BlogPost{
		Title:         "5 Tips",
		PersonaID:     pid,
		TargetKeyword: "anxiety tips",
		Status:        models.StatusDrafted,
		PublishDate:   "2026-09-01",
		Notes:         "mention breathing exercises",
	}})

	conf := &structures.Config{Planner: structures.PlannerConfig{
		GptURL:      "https://example.com/writer",
		GptPassword: "s3cret",
	}}
	return NewPromptService(conf, svc), svc, svc.GetSnapshot()
}

func TestPromptService_ForPersona(t *testing.T) {
	ps, _, snap := promptFixture(t)

	prompt, export, err := ps.ForPersona(snap.Personas[0].ID)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Password: s3cret")
	assert.Contains(t, prompt, "**Client Type:** Anxious Professional")
	assert.Contains(t, prompt, "• anxiety")
	assert.Contains(t, prompt, "• burnout")
	assert.Contains(t, prompt, "**Location:** Berlin")

	// the export audit entry is handed back for the caller to dispatch
	assert.Equal(t, models.ExportPersona, export.Type)
	assert.Equal(t, snap.Personas[0].ID, export.DataID)
	assert.Equal(t, "Anxious Professional", export.DataTitle)
	assert.False(t, export.Timestamp.IsZero())
}

func TestPromptService_ForPersona_EmptyFieldsFallBack(t *testing.T) {
	svc := NewPlannerService()
	snap := svc.Dispatch(models.AddPersona{Persona: models.Persona{Name: "Minimal"}})
	ps := NewPromptService(&structures.Config{}, svc)

	prompt, _, err := ps.ForPersona(snap.Personas[0].ID)
	require.NoError(t, err)

	assert.NotContains(t, prompt, "Password:")
	assert.Contains(t, prompt, "**Age Range:** Not specified")
	assert.Contains(t, prompt, "**Location:** Not specified")
}

func TestPromptService_ForBlog_IncludesLinkedPersona(t *testing.T) {
	ps, _, snap := promptFixture(t)

	prompt, export, err := ps.ForBlog(snap.Blogs[0].ID)
	require.NoError(t, err)

	assert.Contains(t, prompt, "**Blog Title:** 5 Tips")
	assert.Contains(t, prompt, "**Target SEO Keyword:** anxiety tips")
	assert.Contains(t, prompt, "**Intended Publish Date:** 2026-09-01")
	assert.Contains(t, prompt, "**Target Client Type:** Anxious Professional")
	assert.Contains(t, prompt, "**Primary Concerns:** anxiety, burnout")
	assert.Contains(t, prompt, "**Additional Notes:** mention breathing exercises")

	assert.Equal(t, models.ExportBlog, export.Type)
	assert.Equal(t, snap.Blogs[0].ID, export.DataID)
	assert.Equal(t, "5 Tips", export.DataTitle)
}

func TestPromptService_ForBlog_DanglingPersonaOmitsSection(t *testing.T) {
	svc := NewPlannerService()
	snap := svc.Dispatch(models.AddBlog{Blog: models.BlogPost{
		Title:     "Orphan",
		PersonaID: "deleted",
	}})
	ps := NewPromptService(&structures.Config{}, svc)

	prompt, _, err := ps.ForBlog(snap.Blogs[0].ID)
	require.NoError(t, err)

	assert.NotContains(t, prompt, "**Target Client Type:**")
	assert.NotContains(t, prompt, "**Intended Publish Date:**")
	assert.NotContains(t, prompt, "**Additional Notes:**")
}

func TestPromptService_UnknownID(t *testing.T) {
	ps, _, _ := promptFixture(t)

	_, _, err := ps.ForPersona("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = ps.ForBlog("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPromptService_ExternalURL(t *testing.T) {
	ps, _, _ := promptFixture(t)
	assert.Equal(t, "https://example.com/writer", ps.ExternalURL())
}
