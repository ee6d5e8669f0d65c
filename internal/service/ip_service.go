package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tacslabs/tacs-console/internal/logger"
	"github.com/tacslabs/tacs-console/internal/model"
	"github.com/tacslabs/tacs-console/internal/store"
)

// IPService manages the reputation records shown in the admin console.
type IPService struct {
	store *store.Store
	audit *AuditRecorder
	log   *logger.Logger
	now   func() time.Time
}

// NewIPService creates an IPService.
func NewIPService(st *store.Store, audit *AuditRecorder, log *logger.Logger) *IPService {
	return &IPService{
		store: st,
		audit: audit,
		log:   log.WithComponent("ip_service"),
		now:   time.Now,
	}
}

// List returns every IP record.
func (s *IPService) List(ctx context.Context) ([]model.IPRecord, error) {
	return store.GetAll[model.IPRecord](ctx, s.store, store.TableIPRecords)
}

// UpdateStatus sets the reputation status for an address with upsert-by-IP
// semantics: an existing record is updated in place, otherwise a fresh one
// is inserted with zeroed counters.
func (s *IPService) UpdateStatus(ctx context.Context, ip string, status model.IPStatus, reason string) error {
	existing, err := store.FindByIndex[model.IPRecord](ctx, s.store, store.TableIPRecords, "ip", ip)
	if err != nil {
		return fmt.Errorf("failed to look up IP record: %w", err)
	}

	now := s.now()
	if existing != nil {
		existing.Status = status
		existing.Reason = reason
		existing.Timestamp = now
		if err := s.store.Update(ctx, store.TableIPRecords, existing); err != nil {
			return fmt.Errorf("failed to update IP record: %w", err)
		}
	} else {
		record := model.IPRecord{
			ID:           generateID("ip"),
			IP:           ip,
			Status:       status,
			Reason:       reason,
			Timestamp:    now,
			Requests:     0,
			LastActivity: now,
			RiskScore:    0,
		}
		if _, err := s.store.Insert(ctx, store.TableIPRecords, record); err != nil {
			return fmt.Errorf("failed to insert IP record: %w", err)
		}
	}

	s.audit.Record(ctx, model.AuditActionIPStatusUpdated, "system", ip,
		fmt.Sprintf("Status changed to %s", status))
	s.log.Info().Str("ip", ip).Str("status", string(status)).Msg("IP status updated")
	return nil
}

// Delete removes the record for an address. Returns false when no record
// exists for that IP.
func (s *IPService) Delete(ctx context.Context, ip string) (bool, error) {
	record, err := store.FindByIndex[model.IPRecord](ctx, s.store, store.TableIPRecords, "ip", ip)
	if err != nil {
		return false, fmt.Errorf("failed to look up IP record: %w", err)
	}
	if record == nil {
		return false, nil
	}

	if err := s.store.Delete(ctx, store.TableIPRecords, record.ID); err != nil {
		return false, fmt.Errorf("failed to delete IP record: %w", err)
	}

	s.audit.Record(ctx, model.AuditActionIPRecordDeleted, "system", ip, "IP record deleted")
	s.log.Info().Str("ip", ip).Msg("IP record deleted")
	return true, nil
}
