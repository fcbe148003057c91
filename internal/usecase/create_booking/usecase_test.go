package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgtours/VGT-BookingService/internal/domain"
	catalogRepo "github.com/vgtours/VGT-BookingService/internal/infra/storage/catalog"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	existing  []domain.Booking
	created   *domain.Booking
	createErr error
	nextID    int64
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = testNow
	b.UpdatedAt = testNow
	f.created = b
	return b, nil
}

func (f *fakeBookingRepo) GetActiveByDate(_ context.Context, _ time.Time) ([]domain.Booking, error) {
	return f.existing, nil
}

type fakeCatalogRepo struct {
	pkg        *domain.TourPackage
	inclusions map[int64]*domain.PackageInclusion
}

func (f *fakeCatalogRepo) GetPackage(_ context.Context, id int64) (*domain.TourPackage, error) {
	if f.pkg == nil || f.pkg.ID != id {
		return nil, catalogRepo.ErrPackageNotFound
	}
	return f.pkg, nil
}

func (f *fakeCatalogRepo) GetInclusionsByIDs(_ context.Context, ids []int64) ([]*domain.PackageInclusion, error) {
	result := make([]*domain.PackageInclusion, 0, len(ids))
	for _, id := range ids {
		inc, ok := f.inclusions[id]
		if !ok {
			return nil, catalogRepo.ErrInclusionNotFound
		}
		result = append(result, inc)
	}
	return result, nil
}

type auditCall struct {
	entityID int64
	action   domain.AuditAction
	actor    domain.Actor
	before   interface{}
	after    interface{}
}

type fakeAuditRecorder struct {
	calls []auditCall
}

func (f *fakeAuditRecorder) Record(_ context.Context, _ string, entityID int64, action domain.AuditAction,
	actor domain.Actor, before interface{}, after interface{},
) {
	f.calls = append(f.calls, auditCall{entityID: entityID, action: action, actor: actor, before: before, after: after})
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestUseCase(bookingRepo *fakeBookingRepo, catalog *fakeCatalogRepo, audit *fakeAuditRecorder) *UseCase {
	uc := NewUseCase(bookingRepo, catalog, audit, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: testNow}
	return uc
}

func defaultCatalog() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		pkg: &domain.TourPackage{ID: 10, Name: "Garden Walk", BasePrice: 500, DurationMinutes: 60, Active: true},
		inclusions: map[int64]*domain.PackageInclusion{
			1: {ID: 1, Name: "Lunch Box", Price: 150, Active: true},
		},
	}
}

func validRequest() *Request {
	return &Request{
		Actor:     domain.Actor{ID: 42, Email: "user@example.com", Role: domain.RoleUser},
		AccountID: 42,
		PackageID: 10,
		VisitDate: testNow.AddDate(0, 0, 5),
		VisitTime: "10:00",
		GroupSize: 4,
		Inclusions: []InclusionSelection{
			{InclusionID: 1, Quantity: 2},
		},
	}
}

func TestExecute_Success(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	audit := &fakeAuditRecorder{}
	uc := newTestUseCase(bookingRepo, defaultCatalog(), audit)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// 500*4 + 150*2 = 2300
	assert.Equal(t, int64(2300), resp.TotalPrice)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "unpaid", resp.PaymentStatus)
	assert.True(t, resp.Active)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Garden Walk", resp.PackageName)

	// Цена inclusion-а зафиксирована из каталога
	require.Len(t, bookingRepo.created.Inclusions, 1)
	assert.Equal(t, int64(150), bookingRepo.created.Inclusions[0].PriceAtBooking)
	assert.Equal(t, "Lunch Box", bookingRepo.created.Inclusions[0].Name)

	// Аудит CREATE без before снимка
	require.Len(t, audit.calls, 1)
	assert.Equal(t, domain.AuditActionCreate, audit.calls[0].action)
	assert.Nil(t, audit.calls[0].before)
	assert.NotNil(t, audit.calls[0].after)
}

func TestExecute_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "accountId", mutate: func(r *Request) { r.AccountID = 0 }},
		{name: "packageId", mutate: func(r *Request) { r.PackageID = 0 }},
		{name: "visitDate", mutate: func(r *Request) { r.VisitDate = time.Time{} }},
		{name: "visitTime", mutate: func(r *Request) { r.VisitTime = "" }},
		{name: "groupSize", mutate: func(r *Request) { r.GroupSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeBookingRepo{}, defaultCatalog(), &fakeAuditRecorder{})
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrMissingField)
			// Ошибка называет отсутствующее поле
			assert.Contains(t, err.Error(), tt.name)
		})
	}
}

func TestExecute_NegativeGroupSize(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, defaultCatalog(), &fakeAuditRecorder{})
	req := validRequest()
	req.GroupSize = -2

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_PackageNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCatalogRepo{}, &fakeAuditRecorder{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestExecute_DisabledPackageTreatedAsNotFound(t *testing.T) {
	catalog := defaultCatalog()
	catalog.pkg.Active = false
	uc := newTestUseCase(&fakeBookingRepo{}, catalog, &fakeAuditRecorder{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestExecute_DanglingInclusion(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, defaultCatalog(), &fakeAuditRecorder{})
	req := validRequest()
	req.Inclusions = []InclusionSelection{{InclusionID: 99, Quantity: 1}}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInclusionNotFound)
}

func TestExecute_DisabledInclusionTreatedAsNotFound(t *testing.T) {
	catalog := defaultCatalog()
	catalog.inclusions[1].Active = false
	uc := newTestUseCase(&fakeBookingRepo{}, catalog, &fakeAuditRecorder{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInclusionNotFound)
}

func TestExecute_LeadTimeViolation(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, defaultCatalog(), &fakeAuditRecorder{})

	for _, daysAhead := range []int{0, 1} {
		req := validRequest()
		req.VisitDate = testNow.AddDate(0, 0, daysAhead)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrLeadTimeViolation, "days ahead: %d", daysAhead)
	}
}

func TestExecute_ScheduleConflict(t *testing.T) {
	// Существующий тур 10:00-11:00, запрос на 10:30 с 30-минутным пакетом
	bookingRepo := &fakeBookingRepo{
		existing: []domain.Booking{
			{VisitTime: "10:00", DurationMinutes: 60, Active: true},
		},
	}
	catalog := defaultCatalog()
	catalog.pkg.DurationMinutes = 30
	audit := &fakeAuditRecorder{}
	uc := newTestUseCase(bookingRepo, catalog, audit)

	req := validRequest()
	req.VisitTime = "10:30"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrScheduleConflict)

	// Ничего не записано и не зааудировано
	assert.Nil(t, bookingRepo.created)
	assert.Empty(t, audit.calls)
}

func TestExecute_OutsideOperatingHours(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, defaultCatalog(), &fakeAuditRecorder{})
	req := validRequest()
	req.VisitTime = "15:30" // 60-минутный тур закончился бы в 16:30

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrOutsideOperatingHours)
}

func TestExecute_InvalidInclusionQuantityAbortsBeforeWrite(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	uc := newTestUseCase(bookingRepo, defaultCatalog(), &fakeAuditRecorder{})

	req := validRequest()
	req.Inclusions = []InclusionSelection{{InclusionID: 1, Quantity: 10}} // больше groupSize

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInclusionQuantity)
	assert.Nil(t, bookingRepo.created)
}
