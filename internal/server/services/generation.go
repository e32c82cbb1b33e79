package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/postplanner/internal/logging"
	"github.com/dmitrijs2005/postplanner/internal/server/models"
)

const (
	MaxPostsPerDay  = 10
	MaxDurationDays = 90

	TemplatePreferenceMixed = "mixed"

	tokensPerPost  = 250
	maxTotalTokens = 16000
)

// ProviderError wraps a failure of the language model call.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string { return "AI provider failed: " + e.Err.Error() }
func (e *ProviderError) Unwrap() error { return e.Err }

// PhaseRequest describes a campaign phase to fill with drafts.
type PhaseRequest struct {
	Title              string
	Description        string
	PostsPerDay        int
	DurationDays       int
	TemplatePreference string
}

func (r PhaseRequest) Expected() int {
	return r.PostsPerDay * r.DurationDays
}

func (r PhaseRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.Title) == "":
		return invalid("title is required")
	case r.PostsPerDay < 1 || r.PostsPerDay > MaxPostsPerDay:
		return invalid("postsPerDay must be between 1 and %d", MaxPostsPerDay)
	case r.DurationDays < 1 || r.DurationDays > MaxDurationDays:
		return invalid("durationDays must be between 1 and %d", MaxDurationDays)
	}
	switch r.TemplatePreference {
	case "", TemplatePreferenceMixed, models.TemplateStory, models.TemplateTool:
		return nil
	}
	return invalid("templatePreference must be story, tool or mixed")
}

// PhaseResult lists the stored drafts. Failed counts requested posts that
// were not stored for any reason.
type PhaseResult struct {
	Items     []models.Postcard
	Requested int
	Failed    int
	Note      string
}

type generatedPost struct {
	PrimaryContent   string `json:"primaryContent"`
	SecondaryContent string `json:"secondaryContent"`
	Template         string `json:"template"`
}

// GenerationService turns a phase description into stored drafts.
type GenerationService struct {
	postcards *PostcardService
	llm       TextGenerator
	log       logging.Logger
}

// NewGenerationService accepts a nil llm; GeneratePhase then fails with
// ErrProviderNotConfigured.
func NewGenerationService(p *PostcardService, llm TextGenerator, log logging.Logger) *GenerationService {
	return &GenerationService{postcards: p, llm: llm, log: log.With("module", "generation")}
}

func (s *GenerationService) Available() bool {
	return s.llm != nil
}

func (s *GenerationService) GeneratePhase(ctx context.Context, req PhaseRequest) (*PhaseResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.llm == nil {
		return nil, ErrProviderNotConfigured
	}

	expected := req.Expected()
	maxTokens := min(expected*tokensPerPost+200, maxTotalTokens)

	raw, err := s.llm.GenerateText(ctx, phaseSystemPrompt, buildPhasePrompt(req), maxTokens)
	if err != nil {
		return nil, &ProviderError{Err: err}
	}
	posts, err := parsePosts(raw)
	if err != nil {
		return nil, &ProviderError{Err: err}
	}

	res := &PhaseResult{Requested: expected, Items: make([]models.Postcard, 0, expected)}
	var rejected int
	if len(posts) > expected {
		posts = posts[:expected]
	}
	for _, gp := range posts {
		p, ok := s.toPostcard(gp, req.TemplatePreference)
		if !ok {
			rejected++
			continue
		}
		stored, err := s.postcards.Insert(ctx, p)
		if err != nil {
			s.log.Warn(ctx, "generated post not stored", "error", err)
			rejected++
			continue
		}
		res.Items = append(res.Items, *stored)
	}

	res.Failed = expected - len(res.Items)
	res.Note = phaseNote(expected, len(posts), rejected)
	s.log.Info(ctx, "phase generated", "title", req.Title, "requested", expected,
		"returned", len(posts), "stored", len(res.Items))
	return res, nil
}

func (s *GenerationService) toPostcard(gp generatedPost, preference string) (models.Postcard, bool) {
	p := models.Postcard{
		PrimaryContent:   strings.TrimSpace(gp.PrimaryContent),
		SecondaryContent: strings.TrimSpace(gp.SecondaryContent),
		Template:         strings.ToLower(strings.TrimSpace(gp.Template)),
		State:            models.StateDraft,
	}
	if p.PrimaryContent == "" ||
		utf8.RuneCountInString(p.PrimaryContent) > models.MaxPrimaryLength ||
		utf8.RuneCountInString(p.SecondaryContent) > models.MaxSecondaryLength {
		return p, false
	}
	switch preference {
	case models.TemplateStory, models.TemplateTool:
		p.Template = preference
	default:
		if !models.ValidTemplate(p.Template) {
			p.Template = models.TemplateNone
		}
	}
	return p, true
}

func phaseNote(expected, returned, rejected int) string {
	var parts []string
	if returned < expected {
		parts = append(parts, fmt.Sprintf("the model returned %d of %d posts", returned, expected))
	}
	if rejected > 0 {
		parts = append(parts, fmt.Sprintf("%d posts were rejected", rejected))
	}
	return strings.Join(parts, "; ")
}

// parsePosts reads a JSON array of posts from a model answer. Code fences,
// surrounding prose and a {"posts": [...]} wrapper are tolerated.
func parsePosts(raw string) ([]generatedPost, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var posts []generatedPost
	if err := json.Unmarshal([]byte(cleaned), &posts); err == nil {
		return posts, nil
	}

	var wrapped struct {
		Posts []generatedPost `json:"posts"`
	}
	if err := json.Unmarshal([]byte(cleaned), &wrapped); err == nil && wrapped.Posts != nil {
		return wrapped.Posts, nil
	}

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), &posts); err == nil {
			return posts, nil
		}
	}
	return nil, errors.New("invalid JSON response from AI")
}
