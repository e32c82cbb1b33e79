package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/postplanner/internal/client/models"
)

func (a *App) readPhase() (models.PhaseSpec, error) {
	var (
		phase models.PhaseSpec
		err   error
	)
	if phase.Title, err = GetSimpleText(a.reader, "Phase title", a.out); err != nil {
		return phase, err
	}
	if phase.Description, err = GetMultiline(a.reader, "Describe the phase", a.out); err != nil {
		return phase, err
	}
	if phase.PostsPerDay, err = GetInt(a.reader, "Posts per day", 1, a.out); err != nil {
		return phase, err
	}
	if phase.DurationDays, err = GetInt(a.reader, "Duration in days", 7, a.out); err != nil {
		return phase, err
	}
	pref, err := GetSimpleText(a.reader, "Templates: mixed, story or tool [mixed]", a.out)
	if err != nil {
		return phase, err
	}
	if pref == "" {
		pref = models.TemplatePreferenceMixed
	}
	phase.TemplatePreference = pref
	return phase, nil
}

// Generate asks for a phase description and adds the generated drafts to
// the collection.
func (a *App) Generate(ctx context.Context, args []string) error {
	phase, err := a.readPhase()
	if err != nil {
		a.printErr(err)
		return err
	}
	if err := phase.Validate(); err != nil {
		a.printErr(err)
		return err
	}

	printlnFn(dimStyle.Render(fmt.Sprintf("Generating %d postcards…", phase.Expected())))
	res, err := a.store.BulkGenerate(ctx, phase)
	if err != nil {
		a.printErr(err)
		return err
	}

	summary := fmt.Sprintf("Generated %d of %d postcards", res.Generated, res.Requested)
	if res.Failed > 0 {
		summary += fmt.Sprintf(" (%d failed)", res.Failed)
	}
	if res.Partial() {
		printlnFn(warnStyle.Render(summary))
	} else {
		printlnFn(okStyle.Render(summary))
	}
	if res.Note != "" {
		printlnFn(dimStyle.Render(res.Note))
	}
	for _, p := range res.Items {
		printlnFn(postcardLine(p))
	}
	return nil
}
