package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	List(ctx context.Context, args []string) error
	Calendar(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	New(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Approve(ctx context.Context, args []string) error
	Publish(ctx context.Context, args []string) error
	Schedule(ctx context.Context, args []string) error
	Generate(ctx context.Context, args []string) error
	Reload(ctx context.Context, args []string) error
	Retry(ctx context.Context, args []string) error
	Backups(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  list                         list postcards, newest first
  calendar [days]              scheduled postcards per day (default 14 days)
  show <id>                    show one postcard
  new                          write a new postcard
  edit <id>                    edit a postcard
  delete <id>                  delete a postcard
  approve <id>                 mark a draft approved
  publish <id>                 mark a postcard published
  schedule <id> <YYYY-MM-DD>   put a postcard on a day
  generate                     generate a phase of postcards
  reload                       refetch everything from the server
  retry                        retry the last failed save
  backups                      list unsaved edits kept locally
  exit | quit                  leave`

// runREPL reads commands line by line from in and dispatches them to a.
// Command errors are reported by the handlers themselves. The loop ends on
// EOF or "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("pp %s> ", statusFn()))
		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help", "h", "?":
			printlnFn(helpText)
		case "l", "list":
			_ = a.List(ctx, args)
		case "cal", "calendar":
			_ = a.Calendar(ctx, args)
		case "show":
			_ = a.Show(ctx, args)
		case "new":
			_ = a.New(ctx, args)
		case "edit":
			_ = a.Edit(ctx, args)
		case "delete", "rm":
			_ = a.Delete(ctx, args)
		case "approve":
			_ = a.Approve(ctx, args)
		case "publish":
			_ = a.Publish(ctx, args)
		case "schedule":
			_ = a.Schedule(ctx, args)
		case "generate", "gen":
			_ = a.Generate(ctx, args)
		case "reload":
			_ = a.Reload(ctx, args)
		case "retry":
			_ = a.Retry(ctx, args)
		case "backups":
			_ = a.Backups(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
