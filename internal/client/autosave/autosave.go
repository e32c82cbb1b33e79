// Package autosave turns a rapidly changing editor buffer into infrequent
// remote saves while keeping a crash-safe local copy.
//
// A Controller owns one buffer. Every change is written to the local backup
// at once and schedules a debounced commit. A confirmed commit clears the
// backup; a failed one keeps the buffer dirty and offers a retry bound to
// the payload that failed. At most one commit per controller is in flight.
package autosave

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/postplanner/internal/client/backup"
	"github.com/dmitrijs2005/postplanner/internal/client/debounce"
	"github.com/dmitrijs2005/postplanner/internal/client/models"
	"github.com/dmitrijs2005/postplanner/internal/clock"
	"github.com/dmitrijs2005/postplanner/internal/logging"
)

const (
	DefaultDelay         = 2000 * time.Millisecond
	DefaultWatchInterval = 10 * time.Second
)

// CommitFunc persists buf remotely. id is empty until the first successful
// commit assigns one.
type CommitFunc func(ctx context.Context, id string, buf models.Draft) (*models.Postcard, error)

type NotificationKind int

const (
	Saved NotificationKind = iota
	SaveFailed
)

// Notification reports the outcome of a commit. Retry is set on failures
// and re-commits exactly the payload that failed.
type Notification struct {
	Kind     NotificationKind
	Message  string
	Postcard *models.Postcard
	Err      error
	Retry    func(ctx context.Context) error
}

type Options struct {
	// Key names the backup record of this editor.
	Key string
	// KeyFor, when set, names the backup record once a commit assigns or
	// changes the item id. The record moves to the new key.
	KeyFor func(id string) string
	ItemID string
	// Initial is the buffer as loaded, considered saved.
	Initial models.Draft
	Delay   time.Duration

	Commit CommitFunc
	Backup *backup.Store[models.Draft]

	// OnSaved receives every confirmed postcard, typically store.Upsert.
	OnSaved func(models.Postcard)
	Notify  func(Notification)

	Clock  clock.Clock
	Logger logging.Logger
}

type snapshot struct {
	draft models.Draft
	rev   uint64
}

type Controller struct {
	keyFor  func(id string) string
	delay   time.Duration
	commit  CommitFunc
	backup  *backup.Store[models.Draft]
	onSaved func(models.Postcard)
	notify  func(Notification)
	clock   clock.Clock
	log     logging.Logger
	sched   *debounce.Scheduler[snapshot]

	saveMu sync.Mutex
	// backupMu orders backup I/O with the revision check that decides
	// between writing and clearing. Taken before mu, never inside it.
	backupMu sync.Mutex

	mu         sync.Mutex
	key        string
	buffer     models.Draft
	rev        uint64
	savedRev   uint64
	saving     bool
	itemID     string
	lastSaved  time.Time
	lastErr    error
	restorable *models.Draft
}

// New creates a controller and reads any backup left under opts.Key; see
// Restorable.
func New(ctx context.Context, opts Options) *Controller {
	c := &Controller{
		key:     opts.Key,
		keyFor:  opts.KeyFor,
		delay:   opts.Delay,
		commit:  opts.Commit,
		backup:  opts.Backup,
		onSaved: opts.OnSaved,
		notify:  opts.Notify,
		clock:   opts.Clock,
		log:     opts.Logger,
		buffer:  opts.Initial,
		itemID:  opts.ItemID,
	}
	if c.delay <= 0 {
		c.delay = DefaultDelay
	}
	if c.clock == nil {
		c.clock = clock.Real()
	}
	if c.log == nil {
		c.log = logging.Nop()
	}
	c.log = c.log.With("component", "autosave", "item", opts.ItemID)
	c.sched = debounce.New[snapshot](c.clock, c.save, func(err error) {
		c.log.Debug(context.Background(), "scheduled save failed", "error", err)
	})

	if c.backup != nil {
		if d, ok := c.backup.Read(ctx, c.key); ok && d != opts.Initial {
			c.restorable = &d
		}
	}
	return c
}

// Change replaces the buffer, backs it up and schedules a commit.
func (c *Controller) Change(ctx context.Context, d models.Draft) {
	c.mu.Lock()
	c.buffer = d
	c.rev++
	snap := snapshot{draft: d, rev: c.rev}
	c.mu.Unlock()

	c.writeBackup(ctx)
	c.sched.Schedule(snap, c.delay)
}

// SaveNow cancels the pending timer and commits the buffer, returning once
// the outcome is known. A clean buffer is not committed.
func (c *Controller) SaveNow(ctx context.Context) error {
	c.sched.Cancel()

	c.mu.Lock()
	if c.rev == c.savedRev {
		c.mu.Unlock()
		return nil
	}
	snap := snapshot{draft: c.buffer, rev: c.rev}
	c.mu.Unlock()

	return c.save(ctx, snap)
}

func (c *Controller) save(ctx context.Context, snap snapshot) error {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	c.mu.Lock()
	if snap.rev <= c.savedRev {
		c.mu.Unlock()
		return nil
	}
	c.saving = true
	c.lastErr = nil
	id := c.itemID
	c.mu.Unlock()

	p, err := c.commit(ctx, id, snap.draft)
	if err == nil && p == nil {
		err = errors.New("commit returned no postcard")
	}

	c.mu.Lock()
	c.saving = false
	if err != nil {
		c.lastErr = err
		c.mu.Unlock()

		c.log.Warn(ctx, "save failed", "error", err)
		c.writeBackup(ctx)
		c.emit(Notification{
			Kind:    SaveFailed,
			Message: "Could not save: " + err.Error(),
			Err:     err,
			Retry:   func(ctx context.Context) error { return c.save(ctx, snap) },
		})
		return err
	}

	c.lastSaved = c.clock.Now()
	if snap.rev > c.savedRev {
		c.savedRev = snap.rev
	}
	c.mu.Unlock()

	c.settleBackup(ctx, p.ID)

	if c.onSaved != nil {
		c.onSaved(p.Clone())
	}
	saved := p.Clone()
	c.emit(Notification{Kind: Saved, Message: "Saved", Postcard: &saved})
	c.log.Debug(ctx, "saved", "id", p.ID)
	return nil
}

// Restorable returns the backup found when the controller was created, if
// it differs from the initial buffer.
func (c *Controller) Restorable() (models.Draft, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.restorable == nil {
		return models.Draft{}, false
	}
	return *c.restorable, true
}

// Restore loads the backup into the buffer as a fresh change.
func (c *Controller) Restore(ctx context.Context) bool {
	c.mu.Lock()
	r := c.restorable
	c.restorable = nil
	c.mu.Unlock()

	if r == nil {
		return false
	}
	c.Change(ctx, *r)
	return true
}

// Discard drops the backup without touching the buffer.
func (c *Controller) Discard(ctx context.Context) {
	c.mu.Lock()
	c.restorable = nil
	c.mu.Unlock()
	if c.backup == nil {
		return
	}
	c.backupMu.Lock()
	defer c.backupMu.Unlock()
	c.backup.Clear(ctx, c.Key())
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

func (c *Controller) statusLocked() Status {
	switch {
	case c.saving:
		return Saving
	case c.rev != c.savedRev:
		return Dirty
	}
	return Clean
}

func (c *Controller) StatusText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return statusText(c.statusLocked(), c.lastSaved, c.clock.Now())
}

// WatchStatus calls fn with the status text now and then every interval
// until ctx is done.
func (c *Controller) WatchStatus(ctx context.Context, interval time.Duration, fn func(string)) {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	t := c.clock.NewTicker(interval)
	defer t.Stop()

	fn(c.StatusText())
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			fn(c.StatusText())
		}
	}
}

func (c *Controller) HasUnsavedWork() bool {
	return c.Status() != Clean
}

// ConfirmLeave reports whether the editor may be left. confirm is asked
// only when there is unsaved work.
func (c *Controller) ConfirmLeave(confirm func() bool) bool {
	if !c.HasUnsavedWork() {
		return true
	}
	return confirm()
}

func (c *Controller) Buffer() models.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffer
}

func (c *Controller) ItemID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.itemID
}

// Key is the name the backup record is currently kept under.
func (c *Controller) Key() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.key
}

func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Controller) LastSaved() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSaved
}

// Close cancels any pending commit. Unsaved work goes to the backup only.
func (c *Controller) Close(ctx context.Context) {
	c.sched.Cancel()

	if c.HasUnsavedWork() {
		c.writeBackup(ctx)
	}
}

// writeBackup stores the current buffer under the current key.
func (c *Controller) writeBackup(ctx context.Context) {
	if c.backup == nil {
		return
	}
	c.backupMu.Lock()
	defer c.backupMu.Unlock()

	c.mu.Lock()
	key, buf := c.key, c.buffer
	c.mu.Unlock()

	c.backup.Write(ctx, key, buf)
}

// settleBackup records the id of a confirmed commit, moves the backup to
// the key for that id and then clears it, unless a change made during the
// commit left the buffer dirty. The dirty check and the backup I/O happen
// under backupMu, so a concurrent Change writes after the clear.
func (c *Controller) settleBackup(ctx context.Context, id string) {
	c.backupMu.Lock()
	defer c.backupMu.Unlock()

	c.mu.Lock()
	oldKey := c.key
	if id != "" && id != c.itemID {
		c.itemID = id
		if c.keyFor != nil {
			c.key = c.keyFor(id)
		}
	}
	key := c.key
	clean := c.rev == c.savedRev
	buf := c.buffer
	c.mu.Unlock()

	if c.backup == nil {
		return
	}
	if oldKey != key {
		c.backup.Clear(ctx, oldKey)
		c.log.Debug(ctx, "backup moved", "from", oldKey, "to", key)
	}
	if clean {
		c.backup.Clear(ctx, key)
		return
	}
	c.backup.Write(ctx, key, buf)
}

func (c *Controller) emit(n Notification) {
	if c.notify != nil {
		c.notify(n)
	}
}
