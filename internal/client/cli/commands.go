package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/postplanner/internal/client/client"
	"github.com/dmitrijs2005/postplanner/internal/client/models"
	"github.com/dmitrijs2005/postplanner/internal/client/schedule"
	"github.com/dmitrijs2005/postplanner/internal/client/store"
)

const defaultCalendarDays = 14

var errUsage = errors.New("usage")

// describeErr turns domain errors into something a user can act on.
func describeErr(err error) string {
	var genErr *client.GenerationError
	switch {
	case errors.Is(err, schedule.ErrPastDate):
		return "That date is in the past. Pick today or a later day."
	case errors.Is(err, schedule.ErrDayFull):
		return fmt.Sprintf("That day already has %d scheduled postcards. Pick another day.", schedule.MaxPerDay)
	case errors.Is(err, client.ErrUnavailable):
		return "The server is unavailable. Your change was not saved; try again later."
	case errors.Is(err, client.ErrNotFound), errors.Is(err, store.ErrNotFound):
		return "No such postcard."
	case errors.Is(err, models.ErrContentTooLong):
		return fmt.Sprintf("Text too long: primary is limited to %d characters, secondary to %d.",
			models.MaxPrimaryLength, models.MaxSecondaryLength)
	case errors.As(err, &genErr):
		return "Generation failed: " + genErr.Message
	}
	return err.Error()
}

func (a *App) printErr(err error) {
	printlnFn(errStyle.Render("Error:"), describeErr(err))
}

// lookup resolves args[0] to a postcard in the collection. A unique id
// prefix is accepted.
func (a *App) lookup(args []string, usage string) (models.Postcard, error) {
	if len(args) == 0 {
		printlnFn("Usage:", usage)
		return models.Postcard{}, errUsage
	}
	if p, ok := a.store.Find(args[0]); ok {
		return p, nil
	}

	var match []models.Postcard
	for _, p := range a.store.Items() {
		if strings.HasPrefix(p.ID, args[0]) {
			match = append(match, p)
		}
	}
	switch len(match) {
	case 1:
		return match[0], nil
	case 0:
		err := fmt.Errorf("%s: %w", args[0], store.ErrNotFound)
		a.printErr(err)
		return models.Postcard{}, err
	default:
		printlnFn("Ambiguous id, matches", len(match), "postcards")
		return models.Postcard{}, errUsage
	}
}

func (a *App) List(ctx context.Context, args []string) error {
	items := a.store.Items()
	if len(items) == 0 {
		printlnFn("No postcards yet. Use 'new' or 'generate'.")
		return nil
	}
	for _, p := range items {
		printlnFn(postcardLine(p))
	}
	return nil
}

func (a *App) Calendar(ctx context.Context, args []string) error {
	days := defaultCalendarDays
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			printlnFn("Usage: calendar [days]")
			return errUsage
		}
		days = n
	}

	for _, d := range store.Calendar(a.store.Items(), a.clock.Now().UTC(), days) {
		header := fmt.Sprintf("%s %s  (%d/%d)", d.Date.Format(models.DateLayout), d.Date.Format("Mon"),
			len(d.Items), schedule.MaxPerDay)
		if len(d.Items) == 0 {
			printlnFn(dimStyle.Render(header))
			continue
		}
		printlnFn(headingStyle.Render(header))
		for _, p := range d.Items {
			printlnFn("   ", postcardLine(p))
		}
	}
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	p, err := a.lookup(args, "show <id>")
	if err != nil {
		return err
	}
	printlnFn(postcardDetail(p))
	return nil
}

// Backups lists unsaved edits kept in the local database and the command
// that picks each one up again.
func (a *App) Backups(ctx context.Context, _ []string) error {
	keys := a.backups.Keys(ctx)
	if len(keys) == 0 {
		printlnFn("No unsaved edits")
		return nil
	}
	for _, k := range keys {
		d, ok := a.backups.Read(ctx, k)
		if !ok {
			continue
		}
		title := models.Postcard{PrimaryContent: d.PrimaryContent}.Title()
		printlnFn(fmt.Sprintf("%-16s  %s", resumeCommand(k), title))
	}
	return nil
}

func resumeCommand(key string) string {
	if key == newPostcardKey {
		return "new"
	}
	if id, ok := strings.CutPrefix(key, "postcard:"); ok {
		return "edit " + id
	}
	return key
}

func (a *App) Delete(ctx context.Context, args []string) error {
	p, err := a.lookup(args, "delete <id>")
	if err != nil {
		return err
	}
	if !Confirm(a.reader, fmt.Sprintf("Delete %q?", p.Title()), a.out) {
		printlnFn("Cancelled")
		return nil
	}
	if err := a.store.Delete(ctx, p.ID); err != nil {
		a.printErr(err)
		return err
	}
	a.backups.Clear(ctx, backupKey(p.ID))
	printlnFn(okStyle.Render("Deleted"))
	return nil
}

func (a *App) transition(ctx context.Context, args []string, state models.State, usage string) error {
	p, err := a.lookup(args, usage)
	if err != nil {
		return err
	}
	if state.RequiresDate() && p.ScheduledDate == nil {
		printlnFn("Schedule the postcard first: schedule <id> <YYYY-MM-DD>")
		return errUsage
	}
	updated, err := a.store.TransitionState(ctx, p.ID, state)
	if err != nil {
		a.printErr(err)
		return err
	}
	printlnFn(postcardLine(*updated))
	return nil
}

func (a *App) Approve(ctx context.Context, args []string) error {
	return a.transition(ctx, args, models.StateApproved, "approve <id>")
}

func (a *App) Publish(ctx context.Context, args []string) error {
	return a.transition(ctx, args, models.StatePublished, "publish <id>")
}

func (a *App) Schedule(ctx context.Context, args []string) error {
	if len(args) != 2 {
		printlnFn("Usage: schedule <id> <YYYY-MM-DD>")
		return errUsage
	}
	p, err := a.lookup(args, "schedule <id> <YYYY-MM-DD>")
	if err != nil {
		return err
	}
	date, err := models.ParseDate(args[1])
	if err != nil {
		printlnFn("Dates look like 2025-03-14")
		return err
	}
	updated, err := a.store.Reschedule(ctx, p.ID, date)
	if err != nil {
		a.printErr(err)
		return err
	}
	printlnFn(postcardLine(*updated))
	return nil
}

func (a *App) Reload(ctx context.Context, args []string) error {
	if err := a.store.Load(ctx); err != nil {
		a.printErr(err)
		return err
	}
	printlnFn(fmt.Sprintf("Loaded %d postcards", len(a.store.Items())))
	return nil
}

// Retry re-sends the payload of the last failed autosave.
func (a *App) Retry(ctx context.Context, args []string) error {
	a.mu.Lock()
	n := a.lastFailure
	a.lastFailure = nil
	a.mu.Unlock()

	if n == nil || n.Retry == nil {
		printlnFn("Nothing to retry")
		return nil
	}
	if err := n.Retry(ctx); err != nil {
		a.mu.Lock()
		if a.lastFailure == nil {
			a.lastFailure = n
		}
		a.mu.Unlock()
		return err
	}
	return nil
}
