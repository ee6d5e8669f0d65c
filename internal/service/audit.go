package service

import (
	"context"
	"sort"
	"time"

	"github.com/tacslabs/tacs-console/internal/logger"
	"github.com/tacslabs/tacs-console/internal/model"
	"github.com/tacslabs/tacs-console/internal/store"
)

// AuditRecorder appends entries to the security trail. Entries are strictly
// additive; nothing in the module updates or deletes them.
type AuditRecorder struct {
	store *store.Store
	log   *logger.Logger
	now   func() time.Time
}

// NewAuditRecorder creates an AuditRecorder.
func NewAuditRecorder(st *store.Store, log *logger.Logger) *AuditRecorder {
	return &AuditRecorder{
		store: st,
		log:   log.WithComponent("audit"),
		now:   time.Now,
	}
}

// WithClock overrides the clock, for tests.
func (a *AuditRecorder) WithClock(now func() time.Time) *AuditRecorder {
	a.now = now
	return a
}

// Record appends an audit entry. Failures are logged, never propagated: an
// audit write must not fail the operation it describes.
func (a *AuditRecorder) Record(ctx context.Context, action, user, target, details string) {
	entry := model.AuditLog{
		ID:        generateID("aud"),
		Action:    action,
		User:      user,
		Target:    target,
		Timestamp: a.now(),
		Details:   details,
		Severity:  model.SeverityForAction(action),
	}

	if _, err := a.store.Insert(ctx, store.TableAuditLogs, entry); err != nil {
		a.log.Error().Err(err).Str("action", action).Msg("failed to append audit entry")
	}
}

// List returns up to limit entries, newest first.
func (a *AuditRecorder) List(ctx context.Context, limit int) ([]model.AuditLog, error) {
	logs, err := store.GetAll[model.AuditLog](ctx, a.store, store.TableAuditLogs)
	if err != nil {
		return nil, err
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Timestamp.After(logs[j].Timestamp)
	})
	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

// ListByUser returns every entry attributed to a username, newest first.
func (a *AuditRecorder) ListByUser(ctx context.Context, username string) ([]model.AuditLog, error) {
	logs, err := store.FindAllByIndex[model.AuditLog](ctx, a.store, store.TableAuditLogs, "user", username)
	if err != nil {
		return nil, err
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Timestamp.After(logs[j].Timestamp)
	})
	return logs, nil
}
