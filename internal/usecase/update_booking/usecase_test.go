package update_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgtours/VGT-BookingService/internal/domain"
	bookingRepoPkg "github.com/vgtours/VGT-BookingService/internal/infra/storage/booking"
	catalogRepoPkg "github.com/vgtours/VGT-BookingService/internal/infra/storage/catalog"
	"github.com/vgtours/VGT-BookingService/pkg/ptr"
	"github.com/vgtours/VGT-BookingService/pkg/types"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	byID     map[int64]*domain.Booking
	byDate   []domain.Booking
	updated  *domain.Booking
	updateErr error
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepoPkg.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetActiveByDate(_ context.Context, _ time.Time) ([]domain.Booking, error) {
	return f.byDate, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, b *domain.Booking) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = b
	return nil
}

type fakeCatalogRepo struct {
	pkg        *domain.TourPackage
	inclusions map[int64]*domain.PackageInclusion
}

func (f *fakeCatalogRepo) GetPackage(_ context.Context, id int64) (*domain.TourPackage, error) {
	if f.pkg == nil || f.pkg.ID != id {
		return nil, catalogRepoPkg.ErrPackageNotFound
	}
	return f.pkg, nil
}

func (f *fakeCatalogRepo) GetInclusionsByIDs(_ context.Context, ids []int64) ([]*domain.PackageInclusion, error) {
	result := make([]*domain.PackageInclusion, 0, len(ids))
	for _, id := range ids {
		inc, ok := f.inclusions[id]
		if !ok {
			return nil, catalogRepoPkg.ErrInclusionNotFound
		}
		result = append(result, inc)
	}
	return result, nil
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

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func existingBooking() *domain.Booking {
	return &domain.Booking{
		ID:              1,
		AccountID:       42,
		PackageID:       10,
		VisitDate:       testNow.AddDate(0, 0, 5),
		VisitTime:       "10:00",
		DurationMinutes: 60,
		GroupSize:       4,
		Inclusions: []domain.BookingInclusion{
			{InclusionID: 1, Name: "Lunch Box", Quantity: 2, PriceAtBooking: 150},
		},
		TotalPrice:    2300, // 500*4 + 150*2
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentUnpaid,
		Active:        true,
	}
}

func newTestUseCase(bookingRepo *fakeBookingRepo, catalog *fakeCatalogRepo, audit *fakeAuditRecorder) *UseCase {
	uc := NewUseCase(bookingRepo, catalog, audit, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: testNow}
	return uc
}

func defaultSetup() (*fakeBookingRepo, *fakeCatalogRepo, *fakeAuditRecorder, *UseCase) {
	bookingRepo := &fakeBookingRepo{byID: map[int64]*domain.Booking{1: existingBooking()}}
	catalog := &fakeCatalogRepo{
		pkg: &domain.TourPackage{ID: 10, Name: "Garden Walk", BasePrice: 500, DurationMinutes: 60, Active: true},
		inclusions: map[int64]*domain.PackageInclusion{
			1: {ID: 1, Name: "Lunch Box", Price: 175, Active: true}, // цена каталога уже выросла
			2: {ID: 2, Name: "Audio Guide", Price: 50, Active: true},
		},
	}
	audit := &fakeAuditRecorder{}
	return bookingRepo, catalog, audit, newTestUseCase(bookingRepo, catalog, audit)
}

func owner() domain.Actor {
	return domain.Actor{ID: 42, Email: "user@example.com", Role: domain.RoleUser}
}

func TestExecute_GroupSizeChangeRecomputesPrice(t *testing.T) {
	bookingRepo, _, audit, uc := defaultSetup()

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:     owner(),
		BookingID: 1,
		GroupSize: ptr.Ptr(6),
	})
	require.NoError(t, err)

	// 500*6 + 150*2 (старая замороженная цена inclusion-а, не 175)
	assert.Equal(t, int64(3300), resp.TotalPrice)
	assert.Equal(t, 6, resp.GroupSize)
	require.NotNil(t, bookingRepo.updated)
	assert.Equal(t, int64(3300), bookingRepo.updated.TotalPrice)

	require.Len(t, audit.calls, 1)
	assert.Equal(t, domain.AuditActionUpdate, audit.calls[0].action)
	assert.NotNil(t, audit.calls[0].before)
	assert.NotNil(t, audit.calls[0].after)
}

func TestExecute_NewInclusionsGetCurrentCatalogPrice(t *testing.T) {
	_, _, _, uc := defaultSetup()

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:      owner(),
		BookingID:  1,
		Inclusions: ptr.Ptr([]InclusionSelection{{InclusionID: 2, Quantity: 1}}),
	})
	require.NoError(t, err)

	// 500*4 + 50*1 - новый выбор фиксирует текущую цену каталога
	assert.Equal(t, int64(2050), resp.TotalPrice)
	require.Len(t, resp.Inclusions, 1)
	assert.Equal(t, int64(50), resp.Inclusions[0].PriceAtBooking)
}

func TestExecute_ClearInclusions(t *testing.T) {
	_, _, _, uc := defaultSetup()

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:      owner(),
		BookingID:  1,
		Inclusions: ptr.Ptr([]InclusionSelection{}),
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Inclusions)
	assert.Equal(t, int64(2000), resp.TotalPrice)
}

func TestExecute_DisabledInclusionTreatedAsNotFound(t *testing.T) {
	bookingRepo, catalog, _, uc := defaultSetup()
	catalog.inclusions[2].Active = false

	_, err := uc.Execute(context.Background(), &Request{
		Actor:      owner(),
		BookingID:  1,
		Inclusions: ptr.Ptr([]InclusionSelection{{InclusionID: 2, Quantity: 1}}),
	})
	assert.ErrorIs(t, err, ErrInclusionNotFound)
	assert.Nil(t, bookingRepo.updated)
}

func TestExecute_NoFieldsProvided(t *testing.T) {
	_, _, _, uc := defaultSetup()

	_, err := uc.Execute(context.Background(), &Request{Actor: owner(), BookingID: 1})
	assert.ErrorIs(t, err, ErrNoFieldsProvided)
}

func TestExecute_NotFound(t *testing.T) {
	_, _, _, uc := defaultSetup()

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     owner(),
		BookingID: 999,
		GroupSize: ptr.Ptr(2),
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_NonOwnerDenied(t *testing.T) {
	_, _, _, uc := defaultSetup()

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     domain.Actor{ID: 7, Email: "other@example.com", Role: domain.RoleUser},
		BookingID: 1,
		GroupSize: ptr.Ptr(2),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_DecidedBookingCannotBeEdited(t *testing.T) {
	bookingRepo, _, _, uc := defaultSetup()
	bookingRepo.byID[1].Status = domain.StatusAccepted

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     owner(),
		BookingID: 1,
		GroupSize: ptr.Ptr(2),
	})
	assert.ErrorIs(t, err, domain.ErrIllegalStatusTransition)
}

func TestExecute_DateShiftTooCloseFails(t *testing.T) {
	_, _, _, uc := defaultSetup()

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     owner(),
		BookingID: 1,
		VisitDate: ptr.Ptr(testNow.AddDate(0, 0, 1)),
	})
	assert.ErrorIs(t, err, domain.ErrLeadTimeViolation)
}

func TestExecute_TimeOnlyChangeSkipsLeadTime(t *testing.T) {
	// Дата не меняется, поэтому lead time не проверяется,
	// даже если визит уже завтра
	bookingRepo, _, _, uc := defaultSetup()
	bookingRepo.byID[1].VisitDate = testNow.AddDate(0, 0, 1)

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:     owner(),
		BookingID: 1,
		VisitTime: ptr.Ptr(types.TimeString("11:30")),
	})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:30"), resp.VisitTime)
}

func TestExecute_RescheduleOntoBusySlot(t *testing.T) {
	bookingRepo, _, _, uc := defaultSetup()
	bookingRepo.byDate = []domain.Booking{
		{ID: 2, VisitTime: "13:00", DurationMinutes: 60, Active: true},
	}

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     owner(),
		BookingID: 1,
		VisitTime: ptr.Ptr(types.TimeString("13:30")),
	})
	assert.ErrorIs(t, err, domain.ErrScheduleConflict)
	assert.Nil(t, bookingRepo.updated)
}

func TestExecute_OwnSlotDoesNotConflictWithItself(t *testing.T) {
	// Бронирование само присутствует в списке на дату и должно игнорироваться
	bookingRepo, _, _, uc := defaultSetup()
	bookingRepo.byDate = []domain.Booking{
		{ID: 1, VisitTime: "10:00", DurationMinutes: 60, Active: true},
	}

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:     owner(),
		BookingID: 1,
		VisitTime: ptr.Ptr(types.TimeString("10:30")),
	})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:30"), resp.VisitTime)
}

func TestExecute_ShrinkingGroupBelowInclusionQuantityFails(t *testing.T) {
	bookingRepo, _, _, uc := defaultSetup()

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     owner(),
		BookingID: 1,
		GroupSize: ptr.Ptr(1), // inclusion quantity=2 больше новой группы
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInclusionQuantity)
	assert.Nil(t, bookingRepo.updated)
}
