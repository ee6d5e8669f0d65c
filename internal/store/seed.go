package store

import (
	"context"
	"time"

	"github.com/tacslabs/tacs-console/internal/model"
)

// seed inserts the canonical launch announcements when the table is empty.
// Admin users are deliberately not seeded here; the first account is only
// created through the setup flow so no default credential ships.
func (s *Store) seed(ctx context.Context) error {
	n, err := s.Count(ctx, TableAnnouncements)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	announcements := []model.Announcement{
		{
			ID:          "ann_001",
			Title:       "TACS System Launch",
			Content:     "Welcome to the Traffic AI Control System (TACS). Our revolutionary AI-powered traffic management system is now live and optimizing traffic flow in real-time.",
			Type:        model.AnnouncementTypeNews,
			Priority:    model.PriorityHigh,
			IsActive:    true,
			PublishedAt: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			CreatedBy:   "admin",
			Tags:        []string{"launch", "ai", "traffic"},
		},
		{
			ID:          "ann_002",
			Title:       "Advanced AI Features Update",
			Content:     "New neural network capabilities have been deployed including advanced pattern recognition, predictive analytics, and real-time optimization algorithms.",
			Type:        model.AnnouncementTypeFeature,
			Priority:    model.PriorityMedium,
			IsActive:    true,
			PublishedAt: time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC),
			CreatedBy:   "admin",
			Tags:        []string{"update", "neural-network", "optimization"},
		},
		{
			ID:          "ann_003",
			Title:       "Performance Optimization Complete",
			Content:     "System performance has been enhanced with 99.9% uptime, sub-millisecond response times, and improved scalability for handling millions of traffic data points.",
			Type:        model.AnnouncementTypeNews,
			Priority:    model.PriorityMedium,
			IsActive:    true,
			PublishedAt: time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC),
			CreatedBy:   "moderator",
			Tags:        []string{"performance", "optimization", "scalability"},
		},
	}

	for _, ann := range announcements {
		if _, err := s.Insert(ctx, TableAnnouncements, ann); err != nil {
			return err
		}
	}
	s.log.Info().Int("count", len(announcements)).Msg("seeded initial announcements")
	return nil
}
