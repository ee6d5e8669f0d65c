package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tacslabs/tacs-console/internal/logger"
	"github.com/tacslabs/tacs-console/internal/model"
	"github.com/tacslabs/tacs-console/internal/store"
)

// AnnouncementService manages publishable announcements: CRUD, active-window
// filtering, queries and view counting.
type AnnouncementService struct {
	store *store.Store
	audit *AuditRecorder
	log   *logger.Logger
	now   func() time.Time
}

// NewAnnouncementService creates an AnnouncementService.
func NewAnnouncementService(st *store.Store, audit *AuditRecorder, log *logger.Logger) *AnnouncementService {
	return &AnnouncementService{
		store: st,
		audit: audit,
		log:   log.WithComponent("announcements"),
		now:   time.Now,
	}
}

// WithClock overrides the clock, for tests.
func (s *AnnouncementService) WithClock(now func() time.Time) *AnnouncementService {
	s.now = now
	return s
}

// GetActive returns announcements inside their active window, most recent
// first. The read path fails soft: on a storage error it logs and returns an
// empty list so the public page still renders.
func (s *AnnouncementService) GetActive(ctx context.Context) []model.Announcement {
	all, err := store.GetAll[model.Announcement](ctx, s.store, store.TableAnnouncements)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load announcements")
		return []model.Announcement{}
	}

	now := s.now()
	active := make([]model.Announcement, 0, len(all))
	for _, ann := range all {
		if ann.IsCurrentlyActive(now) {
			active = append(active, ann)
		}
	}
	sortByPublishedDesc(active)
	return active
}

// GetAll returns every announcement, most recent first.
func (s *AnnouncementService) GetAll(ctx context.Context) ([]model.Announcement, error) {
	all, err := store.GetAll[model.Announcement](ctx, s.store, store.TableAnnouncements)
	if err != nil {
		return nil, err
	}
	sortByPublishedDesc(all)
	return all, nil
}

// GetByID returns one announcement, or nil when absent.
func (s *AnnouncementService) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	return store.GetByID[model.Announcement](ctx, s.store, store.TableAnnouncements, id)
}

// CreateRequest contains the data for publishing a new announcement.
type CreateRequest struct {
	Title     string
	Content   string
	Type      model.AnnouncementType
	Priority  model.Priority
	CreatedBy string
	Tags      []string
	ExpiresAt *time.Time
}

// Create publishes a new announcement: fresh id, zero views, active, stamped
// with the current time.
func (s *AnnouncementService) Create(ctx context.Context, req CreateRequest) (string, error) {
	ann := model.Announcement{
		ID:          generateID("ann"),
		Title:       req.Title,
		Content:     req.Content,
		Type:        req.Type,
		Priority:    req.Priority,
		IsActive:    true,
		PublishedAt: s.now(),
		ExpiresAt:   req.ExpiresAt,
		CreatedBy:   req.CreatedBy,
		Tags:        req.Tags,
		ViewCount:   0,
	}
	if ann.Tags == nil {
		ann.Tags = []string{}
	}

	if _, err := s.store.Insert(ctx, store.TableAnnouncements, ann); err != nil {
		return "", fmt.Errorf("failed to create announcement: %w", err)
	}

	s.audit.Record(ctx, model.AuditActionAnnouncementCreated, req.CreatedBy, ann.ID, req.Title)
	s.log.Info().Str("id", ann.ID).Str("title", req.Title).Msg("announcement created")
	return ann.ID, nil
}

// UpdateFields holds a partial update; nil fields are left unchanged. The id
// is immutable.
type UpdateFields struct {
	Title          *string
	Content        *string
	Type           *model.AnnouncementType
	Priority       *model.Priority
	IsActive       *bool
	ExpiresAt      *time.Time
	ClearExpiresAt bool
	Tags           *[]string
	UpdatedBy      string
}

// Update merges the given fields into an existing announcement. Returns
// false without side effects when the id does not exist.
func (s *AnnouncementService) Update(ctx context.Context, id string, fields UpdateFields) (bool, error) {
	ann, err := store.GetByID[model.Announcement](ctx, s.store, store.TableAnnouncements, id)
	if err != nil {
		return false, err
	}
	if ann == nil {
		return false, nil
	}

	var changed []string
	if fields.Title != nil {
		ann.Title = *fields.Title
		changed = append(changed, "title")
	}
	if fields.Content != nil {
		ann.Content = *fields.Content
		changed = append(changed, "content")
	}
	if fields.Type != nil {
		ann.Type = *fields.Type
		changed = append(changed, "type")
	}
	if fields.Priority != nil {
		ann.Priority = *fields.Priority
		changed = append(changed, "priority")
	}
	if fields.IsActive != nil {
		ann.IsActive = *fields.IsActive
		changed = append(changed, "isActive")
	}
	if fields.ClearExpiresAt {
		ann.ExpiresAt = nil
		changed = append(changed, "expiresAt")
	} else if fields.ExpiresAt != nil {
		ann.ExpiresAt = fields.ExpiresAt
		changed = append(changed, "expiresAt")
	}
	if fields.Tags != nil {
		ann.Tags = *fields.Tags
		changed = append(changed, "tags")
	}

	if err := s.store.Update(ctx, store.TableAnnouncements, ann); err != nil {
		return false, fmt.Errorf("failed to update announcement: %w", err)
	}

	actor := fields.UpdatedBy
	if actor == "" {
		actor = "system"
	}
	s.audit.Record(ctx, model.AuditActionAnnouncementUpdated, actor, id,
		"Updated: "+strings.Join(changed, ", "))
	return true, nil
}

// ToggleStatus flips an announcement's active flag.
func (s *AnnouncementService) ToggleStatus(ctx context.Context, id string, isActive bool, updatedBy string) (bool, error) {
	return s.Update(ctx, id, UpdateFields{IsActive: &isActive, UpdatedBy: updatedBy})
}

// Delete removes an announcement. Returns false when the id does not exist;
// deleting the same id twice is not an error.
func (s *AnnouncementService) Delete(ctx context.Context, id, deletedBy string) (bool, error) {
	ann, err := store.GetByID[model.Announcement](ctx, s.store, store.TableAnnouncements, id)
	if err != nil {
		return false, err
	}
	if ann == nil {
		return false, nil
	}

	if err := s.store.Delete(ctx, store.TableAnnouncements, id); err != nil {
		return false, fmt.Errorf("failed to delete announcement: %w", err)
	}

	s.audit.Record(ctx, model.AuditActionAnnouncementDeleted, deletedBy, id, ann.Title)
	s.log.Info().Str("id", id).Msg("announcement deleted")
	return true, nil
}

// IncrementViewCount counts a view. Best-effort: failures are logged, not
// propagated. The increment is a single atomic store operation, so views
// from concurrent processes are never lost.
func (s *AnnouncementService) IncrementViewCount(ctx context.Context, id string) {
	if _, err := s.store.IncrementField(ctx, store.TableAnnouncements, id, "viewCount"); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("failed to increment view count")
	}
}

// GetByType returns announcements of one type.
func (s *AnnouncementService) GetByType(ctx context.Context, t model.AnnouncementType) ([]model.Announcement, error) {
	return store.FindAllByIndex[model.Announcement](ctx, s.store, store.TableAnnouncements, "type", string(t))
}

// GetByPriority returns announcements of one priority.
func (s *AnnouncementService) GetByPriority(ctx context.Context, p model.Priority) ([]model.Announcement, error) {
	return store.FindAllByIndex[model.Announcement](ctx, s.store, store.TableAnnouncements, "priority", string(p))
}

// Search returns announcements whose title, content or tags contain the
// query, case-insensitively, most recent first.
func (s *AnnouncementService) Search(ctx context.Context, query string) ([]model.Announcement, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(query)
	matches := make([]model.Announcement, 0)
	for _, ann := range all {
		if strings.Contains(strings.ToLower(ann.Title), term) ||
			strings.Contains(strings.ToLower(ann.Content), term) ||
			tagsContain(ann.Tags, term) {
			matches = append(matches, ann)
		}
	}
	return matches, nil
}

// GetStats aggregates announcement counts by scanning the table; nothing is
// cached.
func (s *AnnouncementService) GetStats(ctx context.Context) (*model.AnnouncementStats, error) {
	all, err := store.GetAll[model.Announcement](ctx, s.store, store.TableAnnouncements)
	if err != nil {
		return nil, err
	}

	stats := &model.AnnouncementStats{
		Total:      len(all),
		ByType:     make(map[string]int),
		ByPriority: make(map[string]int),
	}
	for _, ann := range all {
		if ann.IsActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
		stats.ByType[string(ann.Type)]++
		stats.ByPriority[string(ann.Priority)]++
		stats.TotalViews += ann.ViewCount
	}
	return stats, nil
}

func sortByPublishedDesc(anns []model.Announcement) {
	sort.Slice(anns, func(i, j int) bool {
		return anns[i].PublishedAt.After(anns[j].PublishedAt)
	})
}

func tagsContain(tags []string, term string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
