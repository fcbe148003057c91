package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgtours/VGT-BookingService/internal/domain"
)

type fakeAuditRepo struct {
	entries []*domain.AuditLog
	err     error
}

func (f *fakeAuditRepo) Insert(_ context.Context, entry *domain.AuditLog) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestShouldAudit(t *testing.T) {
	assert.True(t, ShouldAudit(domain.RoleUser))
	assert.True(t, ShouldAudit(domain.RoleStaff))
	assert.True(t, ShouldAudit(domain.RoleAdmin))
	assert.False(t, ShouldAudit(domain.RoleGuest))
	assert.False(t, ShouldAudit(domain.Role("")))
}

func TestRecord_WritesSnapshots(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewService(repo, nopLogger{})

	actor := domain.Actor{ID: 7, Email: "staff@venue.example", Role: domain.RoleStaff}
	before := domain.Booking{ID: 1, Status: domain.StatusPending}
	after := domain.Booking{ID: 1, Status: domain.StatusAccepted}

	svc.Record(context.Background(), "booking", 1, domain.AuditActionUpdate, actor, before, after)

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, "booking", entry.EntityName)
	assert.Equal(t, int64(1), entry.EntityID)
	assert.Equal(t, domain.AuditActionUpdate, entry.Action)
	assert.Equal(t, "staff@venue.example", entry.ActorEmail)
	assert.Equal(t, domain.RoleStaff, entry.ActorRole)
	require.NotNil(t, entry.Before)
	require.NotNil(t, entry.After)
	assert.Contains(t, *entry.Before, `"pending"`)
	assert.Contains(t, *entry.After, `"accepted"`)
}

func TestRecord_NilBeforeOnCreate(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewService(repo, nopLogger{})

	actor := domain.Actor{Email: "user@example.com", Role: domain.RoleUser}
	svc.Record(context.Background(), "booking", 2, domain.AuditActionCreate, actor, nil, domain.Booking{ID: 2})

	require.Len(t, repo.entries, 1)
	assert.Nil(t, repo.entries[0].Before)
	assert.NotNil(t, repo.entries[0].After)
}

func TestRecord_SkipsGuests(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewService(repo, nopLogger{})

	svc.Record(context.Background(), "booking", 3, domain.AuditActionCreate,
		domain.Actor{Role: domain.RoleGuest}, nil, domain.Booking{ID: 3})

	assert.Empty(t, repo.entries)
}

func TestRecord_RepositoryFailureIsSwallowed(t *testing.T) {
	repo := &fakeAuditRepo{err: errors.New("connection refused")}
	svc := NewService(repo, nopLogger{})

	// Не должно паниковать и не должно возвращать ошибку вызывающему
	svc.Record(context.Background(), "booking", 4, domain.AuditActionDisable,
		domain.Actor{Email: "admin@venue.example", Role: domain.RoleAdmin},
		domain.Booking{ID: 4, Active: true}, domain.Booking{ID: 4, Active: false})

	assert.Empty(t, repo.entries)
}
