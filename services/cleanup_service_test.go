package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tableserve/entity"
	"tableserve/repository"
)

func TestSweepDeletesOnlyStaleUnverifiedAccounts(t *testing.T) {
	db := setupTestDB(t)

	stale := &entity.User{Email: "stale@example.com", Password: "x", Role: "owner"}
	fresh := &entity.User{Email: "fresh@example.com", Password: "x", Role: "owner"}
	verified := &entity.User{Email: "verified@example.com", Password: "x", Role: "owner", IsVerified: true}
	require.NoError(t, db.Create(stale).Error)
	require.NoError(t, db.Create(fresh).Error)
	require.NoError(t, db.Create(verified).Error)

	// age the stale and verified accounts past the cutoff
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, db.Model(&entity.User{}).Where("id IN ?", []uint{stale.ID, verified.ID}).
		Update("created_at", old).Error)

	svc := NewCleanupService(repository.NewUserRepository(db), slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.SweepOnce()

	var emails []string
	require.NoError(t, db.Model(&entity.User{}).Order("email").Pluck("email", &emails).Error)
	require.Equal(t, []string{"fresh@example.com", "verified@example.com"}, emails)
}
