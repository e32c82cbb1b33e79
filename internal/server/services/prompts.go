package services

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/postplanner/internal/server/models"
)

const phaseSystemPrompt = `You write short social media postcards for a content calendar.
Answer with a JSON array only, no prose and no code fences.
Each element is an object with the keys:
  "primaryContent"   the post itself, at most 280 characters
  "secondaryContent" optional longer follow-up, at most 3000 characters
  "template"         "story" for a narrative post, "tool" for a practical tip`

func buildPhasePrompt(req PhaseRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Campaign phase: %s\n", strings.TrimSpace(req.Title))
	if d := strings.TrimSpace(req.Description); d != "" {
		fmt.Fprintf(&b, "About this phase:\n%s\n", d)
	}
	fmt.Fprintf(&b, "\nWrite exactly %d posts (%d per day for %d days), in publishing order.\n",
		req.Expected(), req.PostsPerDay, req.DurationDays)

	switch req.TemplatePreference {
	case models.TemplateStory:
		b.WriteString("Every post uses the \"story\" template.\n")
	case models.TemplateTool:
		b.WriteString("Every post uses the \"tool\" template.\n")
	default:
		b.WriteString("Mix \"story\" and \"tool\" posts.\n")
	}
	return b.String()
}
