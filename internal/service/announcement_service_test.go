package service

import (
	"context"
	"testing"
	"time"

	"github.com/tacslabs/tacs-console/internal/logger"
	"github.com/tacslabs/tacs-console/internal/model"
	"github.com/tacslabs/tacs-console/internal/store"
)

// newTestAnnouncements builds an AnnouncementService on an in-memory store
// with a controllable clock and the seeded demo content removed.
func newTestAnnouncements(t *testing.T) (*AnnouncementService, *store.Store, *time.Time) {
	t.Helper()
	log := logger.Nop()
	st, err := store.Open("", log)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	clock := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc := NewAnnouncementService(st, NewAuditRecorder(st, log), log).
		WithClock(func() time.Time { return clock })

	ctx := context.Background()
	for _, id := range []string{"ann_001", "ann_002", "ann_003"} {
		if _, err := svc.Delete(ctx, id, "test"); err != nil {
			t.Fatalf("clearing seed %s: %v", id, err)
		}
	}
	return svc, st, &clock
}

func TestCreateAnnouncement(t *testing.T) {
	svc, _, clock := newTestAnnouncements(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateRequest{
		Title:     "Maintenance window",
		Content:   "Database upgrade on Saturday",
		Type:      model.AnnouncementTypeMaintenance,
		Priority:  model.PriorityHigh,
		CreatedBy: "alice",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ann, err := svc.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if ann == nil {
		t.Fatal("created announcement not found")
	}
	if !ann.IsActive {
		t.Error("new announcement should be active")
	}
	if ann.ViewCount != 0 {
		t.Errorf("ViewCount = %d, want 0", ann.ViewCount)
	}
	if !ann.PublishedAt.Equal(*clock) {
		t.Errorf("PublishedAt = %v, want %v", ann.PublishedAt, *clock)
	}
	if ann.Tags == nil {
		t.Error("Tags should default to an empty slice, not nil")
	}
	if ann.ExpiresAt != nil {
		t.Errorf("ExpiresAt = %v, want nil", ann.ExpiresAt)
	}
}

func TestGetActiveWindow(t *testing.T) {
	svc, _, clock := newTestAnnouncements(t)
	ctx := context.Background()

	evergreen, err := svc.Create(ctx, CreateRequest{Title: "Evergreen", Content: "c", Type: model.AnnouncementTypeNews, Priority: model.PriorityLow, CreatedBy: "alice"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	expiry := clock.Add(time.Hour)
	expiring, err := svc.Create(ctx, CreateRequest{Title: "Expiring", Content: "c", Type: model.AnnouncementTypeAlert, Priority: model.PriorityHigh, CreatedBy: "alice", ExpiresAt: &expiry})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	disabled, err := svc.Create(ctx, CreateRequest{Title: "Disabled", Content: "c", Type: model.AnnouncementTypeNews, Priority: model.PriorityLow, CreatedBy: "alice"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.ToggleStatus(ctx, disabled, false, "alice"); err != nil {
		t.Fatalf("ToggleStatus: %v", err)
	}

	ids := func(anns []model.Announcement) map[string]bool {
		set := map[string]bool{}
		for _, a := range anns {
			set[a.ID] = true
		}
		return set
	}

	active := ids(svc.GetActive(ctx))
	if !active[evergreen] || !active[expiring] || active[disabled] {
		t.Errorf("at publish time: got %v", active)
	}

	// At the expiry instant the announcement is already out of window.
	*clock = expiry
	active = ids(svc.GetActive(ctx))
	if active[expiring] {
		t.Error("announcement still active at its expiry instant")
	}
	if !active[evergreen] {
		t.Error("announcement without expiry should stay active")
	}

	*clock = expiry.Add(time.Hour)
	active = ids(svc.GetActive(ctx))
	if len(active) != 1 || !active[evergreen] {
		t.Errorf("after expiry: got %v, want only the evergreen entry", active)
	}
}

func TestGetAllOrdering(t *testing.T) {
	svc, _, clock := newTestAnnouncements(t)
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"first", "second", "third"} {
		id, err := svc.Create(ctx, CreateRequest{Title: title, Content: "c", Type: model.AnnouncementTypeNews, Priority: model.PriorityLow, CreatedBy: "alice"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ids = append(ids, id)
		*clock = clock.Add(time.Minute)
	}

	all, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d announcements, want 3", len(all))
	}
	// Newest first
	if all[0].ID != ids[2] || all[2].ID != ids[0] {
		t.Errorf("order = [%s %s %s], want newest first", all[0].ID, all[1].ID, all[2].ID)
	}
}

func TestUpdateAnnouncement(t *testing.T) {
	svc, _, clock := newTestAnnouncements(t)
	ctx := context.Background()

	expiry := clock.Add(24 * time.Hour)
	id, err := svc.Create(ctx, CreateRequest{Title: "Old title", Content: "c", Type: model.AnnouncementTypeNews, Priority: model.PriorityLow, CreatedBy: "alice", ExpiresAt: &expiry})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	newTitle := "New title"
	newPriority := model.PriorityCritical
	ok, err := svc.Update(ctx, id, UpdateFields{Title: &newTitle, Priority: &newPriority, UpdatedBy: "alice"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !ok {
		t.Fatal("Update returned false for existing id")
	}

	ann, err := svc.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if ann.Title != newTitle || ann.Priority != newPriority {
		t.Errorf("got title %q priority %q", ann.Title, ann.Priority)
	}
	if ann.Content != "c" {
		t.Errorf("untouched field changed: content %q", ann.Content)
	}
	if ann.ExpiresAt == nil {
		t.Fatal("expiry dropped by unrelated update")
	}

	ok, err = svc.Update(ctx, id, UpdateFields{ClearExpiresAt: true, UpdatedBy: "alice"})
	if err != nil || !ok {
		t.Fatalf("Update clear expiry: ok=%v err=%v", ok, err)
	}
	ann, _ = svc.GetByID(ctx, id)
	if ann.ExpiresAt != nil {
		t.Errorf("ExpiresAt = %v after clear, want nil", ann.ExpiresAt)
	}

	ok, err = svc.Update(ctx, "ann_ghost", UpdateFields{Title: &newTitle})
	if err != nil {
		t.Fatalf("Update missing: %v", err)
	}
	if ok {
		t.Error("Update of missing id should return false")
	}
}

func TestDeleteAnnouncementTwice(t *testing.T) {
	svc, _, _ := newTestAnnouncements(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateRequest{Title: "t", Content: "c", Type: model.AnnouncementTypeNews, Priority: model.PriorityLow, CreatedBy: "alice"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok, err := svc.Delete(ctx, id, "alice")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !ok {
		t.Fatal("Delete returned false for existing id")
	}

	ok, err = svc.Delete(ctx, id, "alice")
	if err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if ok {
		t.Error("second Delete should return false, not error")
	}
}

func TestIncrementViewCount(t *testing.T) {
	svc, _, _ := newTestAnnouncements(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateRequest{Title: "t", Content: "c", Type: model.AnnouncementTypeNews, Priority: model.PriorityLow, CreatedBy: "alice"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	svc.IncrementViewCount(ctx, id)
	svc.IncrementViewCount(ctx, id)
	svc.IncrementViewCount(ctx, id)

	ann, err := svc.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if ann.ViewCount != 3 {
		t.Errorf("ViewCount = %d, want 3", ann.ViewCount)
	}

	// Counting a view on an unknown id is a no-op, not a panic.
	svc.IncrementViewCount(ctx, "ann_ghost")
}

func TestSearchAnnouncements(t *testing.T) {
	svc, _, _ := newTestAnnouncements(t)
	ctx := context.Background()

	mk := func(title, content string, tags ...string) {
		t.Helper()
		_, err := svc.Create(ctx, CreateRequest{Title: title, Content: content, Type: model.AnnouncementTypeNews, Priority: model.PriorityLow, CreatedBy: "alice", Tags: tags})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	mk("Database upgrade", "Planned downtime", "maintenance")
	mk("New dashboard", "Shiny charts for everyone", "feature")
	mk("Holiday notice", "Office closed", "misc")

	// Matches come from the title, the content and the tags, case-insensitively.
	cases := []struct {
		query string
		want  int
	}{
		{"DATABASE", 1},
		{"downtime", 1},
		{"feature", 1},
		{"o", 3},
		{"blizzard", 0},
	}
	for _, tc := range cases {
		got, err := svc.Search(ctx, tc.query)
		if err != nil {
			t.Fatalf("Search(%q): %v", tc.query, err)
		}
		if len(got) != tc.want {
			t.Errorf("Search(%q) = %d results, want %d", tc.query, len(got), tc.want)
		}
	}
}

func TestAnnouncementQueriesAndStats(t *testing.T) {
	svc, _, _ := newTestAnnouncements(t)
	ctx := context.Background()

	a1, _ := svc.Create(ctx, CreateRequest{Title: "a", Content: "c", Type: model.AnnouncementTypeNews, Priority: model.PriorityLow, CreatedBy: "alice"})
	svc.Create(ctx, CreateRequest{Title: "b", Content: "c", Type: model.AnnouncementTypeNews, Priority: model.PriorityHigh, CreatedBy: "alice"})
	off, _ := svc.Create(ctx, CreateRequest{Title: "d", Content: "c", Type: model.AnnouncementTypeAlert, Priority: model.PriorityHigh, CreatedBy: "alice"})
	svc.ToggleStatus(ctx, off, false, "alice")
	svc.IncrementViewCount(ctx, a1)
	svc.IncrementViewCount(ctx, a1)

	news, err := svc.GetByType(ctx, model.AnnouncementTypeNews)
	if err != nil {
		t.Fatalf("GetByType: %v", err)
	}
	if len(news) != 2 {
		t.Errorf("got %d news announcements, want 2", len(news))
	}

	high, err := svc.GetByPriority(ctx, model.PriorityHigh)
	if err != nil {
		t.Fatalf("GetByPriority: %v", err)
	}
	if len(high) != 2 {
		t.Errorf("got %d high-priority announcements, want 2", len(high))
	}

	stats, err := svc.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Total != 3 || stats.Active != 2 || stats.Inactive != 1 {
		t.Errorf("got total=%d active=%d inactive=%d", stats.Total, stats.Active, stats.Inactive)
	}
	if stats.TotalViews != 2 {
		t.Errorf("TotalViews = %d, want 2", stats.TotalViews)
	}
	if stats.ByType["news"] != 2 || stats.ByType["alert"] != 1 {
		t.Errorf("ByType = %v", stats.ByType)
	}
	if stats.ByPriority["high"] != 2 || stats.ByPriority["low"] != 1 {
		t.Errorf("ByPriority = %v", stats.ByPriority)
	}
}
