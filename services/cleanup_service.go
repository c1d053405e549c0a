package services

import (
	"context"
	"log/slog"
	"time"

	"tableserve/repository"
)

// CleanupService sweeps away owner accounts that never verified their
// email. Runs hourly, fire-and-forget; failures are logged, never fatal.
type CleanupService struct {
	UserRepo *repository.UserRepository
	Log      *slog.Logger

	Interval time.Duration
	MaxAge   time.Duration
}

func NewCleanupService(userRepo *repository.UserRepository, log *slog.Logger) *CleanupService {
	return &CleanupService{
		UserRepo: userRepo,
		Log:      log,
		Interval: time.Hour,
		MaxAge:   24 * time.Hour,
	}
}

func (s *CleanupService) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.SweepOnce()
			}
		}
	}()
}

func (s *CleanupService) SweepOnce() {
	cutoff := time.Now().Add(-s.MaxAge)
	deleted, err := s.UserRepo.DeleteUnverifiedBefore(cutoff)
	if err != nil {
		s.Log.Error("unverified account sweep failed", "error", err)
		return
	}
	if deleted > 0 {
		s.Log.Info("swept unverified accounts", "deleted", deleted, "cutoff", cutoff)
	}
}
