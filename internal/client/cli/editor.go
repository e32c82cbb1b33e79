package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/postplanner/internal/client/autosave"
	"github.com/dmitrijs2005/postplanner/internal/client/models"
)

const newPostcardKey = "postcard:new"

const editorHelp = `Editor commands:
  <text>          replace the primary text
  :2 <text>       replace the secondary text
  :t <template>   story, tool or none
  :p              print the buffer
  :s              show save status
  :w              save now
  :q              leave (asks when there are unsaved changes)
  :q!             leave without asking; unsaved work stays in the local backup
  :h              this help`

func backupKey(id string) string {
	if id == "" {
		return newPostcardKey
	}
	return "postcard:" + id
}

func (a *App) New(ctx context.Context, args []string) error {
	return a.edit(ctx, "", models.Draft{})
}

func (a *App) Edit(ctx context.Context, args []string) error {
	p, err := a.lookup(args, "edit <id>")
	if err != nil {
		return err
	}
	return a.edit(ctx, p.ID, models.DraftOf(p))
}

func (a *App) notify(n autosave.Notification) {
	switch n.Kind {
	case autosave.Saved:
		a.mu.Lock()
		a.lastFailure = nil
		a.mu.Unlock()
		printlnFn(okStyle.Render(n.Message))
	case autosave.SaveFailed:
		a.mu.Lock()
		a.lastFailure = &n
		a.mu.Unlock()
		printlnFn(errStyle.Render("Could not save:"), describeErr(n.Err), dimStyle.Render("(type :w or 'retry' to try again)"))
	}
}

// edit runs an autosaving editor session over one postcard buffer. Every
// change is backed up locally at once and saved after a quiet period.
func (a *App) edit(ctx context.Context, id string, initial models.Draft) error {
	ctl := autosave.New(ctx, autosave.Options{
		Key:     backupKey(id),
		KeyFor:  backupKey,
		ItemID:  id,
		Initial: initial,
		Delay:   a.config.AutosaveDelay,
		Commit:  a.store.CommitFunc(),
		Backup:  a.backups,
		OnSaved: a.store.Upsert,
		Notify:  a.notify,
		Clock:   a.clock,
		Logger:  a.log,
	})
	defer ctl.Close(ctx)

	if d, ok := ctl.Restorable(); ok {
		printlnFn(warnStyle.Render("Found unsaved work from an earlier session:"))
		printlnFn(draftText(d))
		if Confirm(a.reader, "Restore it?", a.out) {
			ctl.Restore(ctx)
		} else {
			ctl.Discard(ctx)
		}
	}

	if isTerminal() {
		printlnFn(editorHelp)
	}
	printlnFn(draftText(ctl.Buffer()))

	for {
		printlnFn(fmt.Sprintf("edit (%s)> ", ctl.StatusText()))
		line, err := readLine(a.reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, ":") {
			a.change(ctx, ctl, func(d *models.Draft) { d.PrimaryContent = line })
			continue
		}

		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)
		switch cmd {
		case ":2":
			a.change(ctx, ctl, func(d *models.Draft) { d.SecondaryContent = rest })
		case ":t":
			t, err := models.ParseTemplate(rest)
			if err != nil {
				printlnFn("Templates are story, tool or none")
				continue
			}
			a.change(ctx, ctl, func(d *models.Draft) { d.Template = t })
		case ":p":
			printlnFn(draftText(ctl.Buffer()))
		case ":s":
			printlnFn(ctl.StatusText())
		case ":w":
			_ = ctl.SaveNow(ctx)
		case ":q":
			leave := ctl.ConfirmLeave(func() bool {
				return Confirm(a.reader, "There are unsaved changes. Leave anyway?", a.out)
			})
			if leave {
				return nil
			}
		case ":q!":
			return nil
		case ":h":
			printlnFn(editorHelp)
		default:
			printlnFn("Unknown editor command:", cmd)
		}
	}
}

// change applies fn to a copy of the buffer and hands it to the controller
// unless it breaks a length limit.
func (a *App) change(ctx context.Context, ctl *autosave.Controller, fn func(*models.Draft)) {
	d := ctl.Buffer()
	fn(&d)
	if utf8.RuneCountInString(d.PrimaryContent) > models.MaxPrimaryLength ||
		utf8.RuneCountInString(d.SecondaryContent) > models.MaxSecondaryLength {
		printlnFn(describeErr(models.ErrContentTooLong))
		return
	}
	ctl.Change(ctx, d)
}

func draftText(d models.Draft) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", d.Template, d.PrimaryContent)
	if d.SecondaryContent != "" {
		fmt.Fprintf(&b, "\n  %s", d.SecondaryContent)
	}
	return b.String()
}
