package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cpd/internal/models"
	"cpd/internal/structures"
)

// ErrNotFound reports a prompt request for an id absent from the store.
var ErrNotFound = errors.New("record not found")

const notSpecified = "Not specified"

type PromptServiceInterface interface {
	// ForPersona renders the persona prompt plus the export audit entry the
	// caller is expected to dispatch.
	ForPersona(id string) (string, models.GptExportRecord, error)
	// ForBlog renders the blog prompt, including the linked persona section
	// when the reference resolves, plus the export audit entry.
	ForBlog(id string) (string, models.GptExportRecord, error)
	ExternalURL() string
}

// PromptService produces the plain-text prompts handed to the external AI
// writing tool. Rendering is read-only; the returned export record carries
// the mutation so the HTTP layer keeps dispatch, metrics and cache purge on
// its single mutation path.
type PromptService struct {
	config  *structures.Config
	service PlannerServiceInterface
	now     func() time.Time
}

func NewPromptService(config *structures.Config, service PlannerServiceInterface) PromptServiceInterface {
	return &PromptService{
		config:  config,
		service: service,
		now:     time.Now,
	}
}

func (ps *PromptService) ExternalURL() string {
	return ps.config.Planner.GptURL
}

func (ps *PromptService) ForPersona(id string) (string, models.GptExportRecord, error) {
	snap := ps.service.GetSnapshot()
	p := snap.FindPersona(id)
	if p == nil {
		return "", models.GptExportRecord{}, ErrNotFound
	}

	return ps.renderPersonaPrompt(p), ps.exportRecord(models.ExportPersona, p.ID, p.Name), nil
}

func (ps *PromptService) ForBlog(id string) (string, models.GptExportRecord, error) {
	snap := ps.service.GetSnapshot()
	b := snap.FindBlog(id)
	if b == nil {
		return "", models.GptExportRecord{}, ErrNotFound
	}

	prompt := ps.renderBlogPrompt(b, snap.FindPersona(b.PersonaID))
	return prompt, ps.exportRecord(models.ExportBlog, b.ID, b.Title), nil
}

func (ps *PromptService) exportRecord(t models.ExportType, dataID, dataTitle string) models.GptExportRecord {
	return models.GptExportRecord{
		Type:      t,
		DataID:    dataID,
		DataTitle: dataTitle,
		Timestamp: ps.now(),
	}
}

func (ps *PromptService) renderPersonaPrompt(p *models.Persona) string {
	var sb strings.Builder
	ps.writeHeader(&sb)

	sb.WriteString("I need help creating SEO-optimized blog content for my therapy practice. Here's my target client persona:\n\n")
	fmt.Fprintf(&sb, "**Client Type:** %s\n", p.Name)
	fmt.Fprintf(&sb, "**Age Range:** %s\n", orNotSpecified(p.AgeRange))
	fmt.Fprintf(&sb, "**Location:** %s\n\n", orNotSpecified(p.Location))

	sb.WriteString("**Primary Concerns:**\n")
	if len(p.PrimaryConcerns) > 0 {
		for _, concern := range p.PrimaryConcerns {
			fmt.Fprintf(&sb, "• %s\n", concern)
		}
	} else {
		sb.WriteString(notSpecified + "\n")
	}

	sb.WriteString("\n**Search Keywords/Phrases:**\n")
	sb.WriteString(orNotSpecified(p.Keywords) + "\n\n")
	sb.WriteString("**Therapy Goals:**\n")
	sb.WriteString(orNotSpecified(p.TherapyGoals) + "\n\n")

	sb.WriteString("Please help me create blog post ideas that would resonate with this client type and rank well for their search terms. Focus on topics that address their concerns and align with their therapy goals.")
	return sb.String()
}

func (ps *PromptService) renderBlogPrompt(b *models.BlogPost, persona *models.Persona) string {
	var sb strings.Builder
	ps.writeHeader(&sb)

	sb.WriteString("I need help writing an SEO-optimized blog post for my therapy practice. Here are the details:\n\n")
	fmt.Fprintf(&sb, "**Blog Title:** %s\n", b.Title)
	fmt.Fprintf(&sb, "**Target SEO Keyword:** %s\n", orNotSpecified(b.TargetKeyword))
	fmt.Fprintf(&sb, "**Current Status:** %s\n", b.Status)
	if b.PublishDate != "" {
		fmt.Fprintf(&sb, "**Intended Publish Date:** %s\n", b.PublishDate)
	}

	if persona != nil {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "**Target Client Type:** %s\n", persona.Name)
		fmt.Fprintf(&sb, "**Age Range:** %s\n", orNotSpecified(persona.AgeRange))
		fmt.Fprintf(&sb, "**Primary Concerns:** %s\n", orNotSpecified(strings.Join(persona.PrimaryConcerns, ", ")))
		fmt.Fprintf(&sb, "**Client Keywords:** %s\n", orNotSpecified(persona.Keywords))
		fmt.Fprintf(&sb, "**Therapy Goals:** %s\n", orNotSpecified(persona.TherapyGoals))
	}

	if b.Notes != "" {
		fmt.Fprintf(&sb, "\n**Additional Notes:** %s\n", b.Notes)
	}

	sb.WriteString(`
Please help me write a complete, SEO-optimized blog post that:
1. Addresses the target client type's concerns
2. Incorporates the target keyword naturally
3. Provides valuable, actionable advice
4. Maintains a professional yet approachable tone suitable for therapy clients
5. Includes a compelling introduction and call-to-action`)
	return sb.String()
}

func (ps *PromptService) writeHeader(sb *strings.Builder) {
	if ps.config.Planner.GptPassword != "" {
		fmt.Fprintf(sb, "Password: %s\n\n", ps.config.Planner.GptPassword)
	}
}

func orNotSpecified(s string) string {
	if s == "" {
		return notSpecified
	}
	return s
}
