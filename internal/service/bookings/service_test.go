package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgtours/VGT-BookingService/internal/domain"
	bookingRepoPkg "github.com/vgtours/VGT-BookingService/internal/infra/storage/booking"
	"github.com/vgtours/VGT-BookingService/internal/service/bookings/models"
	"github.com/vgtours/VGT-BookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	byID       map[int64]*domain.Booking
	listed     []*domain.Booking
	listFilter *domain.BookingFilter
	updated    *domain.Booking
	setActive  map[int64]bool
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepoPkg.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, b *domain.Booking) error {
	f.updated = b
	return nil
}

func (f *fakeBookingRepo) SetActive(_ context.Context, id int64, active bool) error {
	if f.setActive == nil {
		f.setActive = map[int64]bool{}
	}
	f.setActive[id] = active
	return nil
}

func (f *fakeBookingRepo) List(_ context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	f.listFilter = &filter
	return f.listed, nil
}

type auditCall struct {
	action domain.AuditAction
	before interface{}
	after  interface{}
}

type fakeAuditRecorder struct {
	calls []auditCall
}

func (f *fakeAuditRecorder) Record(_ context.Context, _ string, _ int64, action domain.AuditAction,
	_ domain.Actor, before interface{}, after interface{},
) {
	f.calls = append(f.calls, auditCall{action: action, before: before, after: after})
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func staff() domain.Actor {
	return domain.Actor{ID: 100, Email: "staff@example.com", Role: domain.RoleStaff}
}

func regularUser() domain.Actor {
	return domain.Actor{ID: 42, Email: "user@example.com", Role: domain.RoleUser}
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:            1,
		AccountID:     42,
		PackageID:     10,
		VisitDate:     time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		VisitTime:     "10:00",
		GroupSize:     4,
		TotalPrice:    2300,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentUnpaid,
		Active:        true,
	}
}

func newTestService() (*fakeBookingRepo, *fakeAuditRecorder, *Service) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{1: pendingBooking()}}
	audit := &fakeAuditRecorder{}
	return repo, audit, NewService(repo, audit, fakeTxManager{}, nopLogger{})
}

func TestDecide_AcceptWithReply(t *testing.T) {
	repo, audit, svc := newTestService()

	resp, err := svc.Decide(context.Background(), &models.DecideBookingRequest{
		Actor:      staff(),
		BookingID:  1,
		Status:     ptr.Ptr("accepted"),
		StaffReply: ptr.Ptr("See you at the gate."),
	})
	require.NoError(t, err)

	assert.Equal(t, "accepted", resp.Status)
	require.NotNil(t, resp.StaffReply)
	assert.Equal(t, "See you at the gate.", *resp.StaffReply)

	require.NotNil(t, repo.updated)
	assert.Equal(t, domain.StatusAccepted, repo.updated.Status)

	require.Len(t, audit.calls, 1)
	assert.Equal(t, domain.AuditActionUpdate, audit.calls[0].action)
	assert.NotNil(t, audit.calls[0].before)
	assert.NotNil(t, audit.calls[0].after)
}

func TestDecide_PaymentOnly(t *testing.T) {
	repo, _, svc := newTestService()

	resp, err := svc.Decide(context.Background(), &models.DecideBookingRequest{
		Actor:         staff(),
		BookingID:     1,
		PaymentStatus: ptr.Ptr("paid"),
	})
	require.NoError(t, err)

	assert.Equal(t, "paid", resp.PaymentStatus)
	assert.Equal(t, "pending", resp.Status) // статус не тронут
	assert.Equal(t, domain.PaymentPaid, repo.updated.PaymentStatus)
}

func TestDecide_NonStaffRejected(t *testing.T) {
	_, audit, svc := newTestService()

	_, err := svc.Decide(context.Background(), &models.DecideBookingRequest{
		Actor:     regularUser(),
		BookingID: 1,
		Status:    ptr.Ptr("accepted"),
	})
	assert.ErrorIs(t, err, domain.ErrStaffOnly)
	assert.Empty(t, audit.calls)
}

func TestDecide_IllegalTransition(t *testing.T) {
	repo, audit, svc := newTestService()
	repo.byID[1].Status = domain.StatusCompleted

	_, err := svc.Decide(context.Background(), &models.DecideBookingRequest{
		Actor:     staff(),
		BookingID: 1,
		Status:    ptr.Ptr("pending"),
	})
	assert.ErrorIs(t, err, domain.ErrIllegalStatusTransition)
	assert.Nil(t, repo.updated)
	assert.Empty(t, audit.calls)
}

func TestDecide_UnknownStatus(t *testing.T) {
	_, _, svc := newTestService()

	_, err := svc.Decide(context.Background(), &models.DecideBookingRequest{
		Actor:     staff(),
		BookingID: 1,
		Status:    ptr.Ptr("approved"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestDecide_EmptyDecision(t *testing.T) {
	_, _, svc := newTestService()

	_, err := svc.Decide(context.Background(), &models.DecideBookingRequest{
		Actor:     staff(),
		BookingID: 1,
	})
	assert.ErrorIs(t, err, ErrEmptyDecision)
}

func TestDecide_ReplyTooLong(t *testing.T) {
	_, _, svc := newTestService()

	long := make([]byte, domain.MaxStaffReplyLength+1)
	for i := range long {
		long[i] = 'a'
	}

	_, err := svc.Decide(context.Background(), &models.DecideBookingRequest{
		Actor:      staff(),
		BookingID:  1,
		StaffReply: ptr.Ptr(string(long)),
	})
	assert.ErrorIs(t, err, ErrStaffReplyTooLong)
}

func TestDecide_NotFound(t *testing.T) {
	_, _, svc := newTestService()

	_, err := svc.Decide(context.Background(), &models.DecideBookingRequest{
		Actor:     staff(),
		BookingID: 99,
		Status:    ptr.Ptr("rejected"),
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestSoftDelete_ThenRestore(t *testing.T) {
	repo, audit, svc := newTestService()

	require.NoError(t, svc.SoftDelete(context.Background(), 1, staff()))
	assert.False(t, repo.setActive[1])
	repo.byID[1].Active = false

	require.NoError(t, svc.Restore(context.Background(), 1, staff()))
	assert.True(t, repo.setActive[1])

	require.Len(t, audit.calls, 2)
	assert.Equal(t, domain.AuditActionDisable, audit.calls[0].action)
	assert.Equal(t, domain.AuditActionRestore, audit.calls[1].action)
}

func TestSoftDelete_AlreadyInactive(t *testing.T) {
	repo, audit, svc := newTestService()
	repo.byID[1].Active = false

	err := svc.SoftDelete(context.Background(), 1, staff())
	assert.ErrorIs(t, err, domain.ErrAlreadyInactive)
	assert.Empty(t, audit.calls)
}

func TestRestore_AlreadyActive(t *testing.T) {
	_, _, svc := newTestService()

	err := svc.Restore(context.Background(), 1, staff())
	assert.ErrorIs(t, err, domain.ErrAlreadyActive)
}

func TestSoftDelete_NonStaffRejected(t *testing.T) {
	_, _, svc := newTestService()

	err := svc.SoftDelete(context.Background(), 1, regularUser())
	assert.ErrorIs(t, err, domain.ErrStaffOnly)
}

func TestGetByID_OwnerAllowed(t *testing.T) {
	_, _, svc := newTestService()

	resp, err := svc.GetByID(context.Background(), 1, regularUser())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	_, _, svc := newTestService()

	_, err := svc.GetByID(context.Background(), 1,
		domain.Actor{ID: 7, Email: "other@example.com", Role: domain.RoleUser})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_StaffSeesAny(t *testing.T) {
	_, _, svc := newTestService()

	resp, err := svc.GetByID(context.Background(), 1, staff())
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.AccountID)
}

func TestList_NonStaffScopedToOwnAccount(t *testing.T) {
	repo, _, svc := newTestService()
	repo.listed = []*domain.Booking{pendingBooking()}

	other := int64(7)
	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{
		Actor:     regularUser(),
		AccountID: &other, // игнорируется для не-персонала
	})
	require.NoError(t, err)

	require.NotNil(t, repo.listFilter)
	require.NotNil(t, repo.listFilter.AccountID)
	assert.Equal(t, int64(42), *repo.listFilter.AccountID)
	assert.True(t, repo.listFilter.ActiveOnly)
	assert.Len(t, resp.Bookings, 1)
}

func TestList_InvalidRange(t *testing.T) {
	_, _, svc := newTestService()

	start := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{
		Actor:     staff(),
		StartDate: &start,
		EndDate:   &end,
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestList_StaffIncludesInactive(t *testing.T) {
	repo, _, svc := newTestService()

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{
		Actor:           staff(),
		IncludeInactive: true,
	})
	require.NoError(t, err)

	require.NotNil(t, repo.listFilter)
	assert.Nil(t, repo.listFilter.AccountID)
	assert.False(t, repo.listFilter.ActiveOnly)
}
