package invoice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "invoice-service/internal/domain/invoice"
	"invoice-service/pkg/apperrors"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, inv *domain.Invoice) (int64, error) {
	args := m.Called(ctx, inv)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ListByCustomerEmail(ctx context.Context, email string) ([]domain.Invoice, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

// MockRenderer is a mock implementation of the Renderer interface
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	args := m.Called(ctx, html)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func setupTestService(t *testing.T) (*Service, *MockRepository, *MockRenderer) {
	mockRepo := new(MockRepository)
	mockRenderer := new(MockRenderer)
	svc := New(mockRepo, mockRenderer, zaptest.NewLogger(t))
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }
	return svc, mockRepo, mockRenderer
}

func sampleRequest() GenerateRequest {
	return GenerateRequest{
		Customer:   Customer{Name: "John Doe", Email: "john@example.com"},
		Items:      []LineItemInput{{Name: "A", Quantity: 2, Price: 3.00}},
		TotalPrice: 6.00,
	}
}

func TestGenerate_Success(t *testing.T) {
	svc, mockRepo, mockRenderer := setupTestService(t)
	ctx := context.Background()

	pdf := []byte("%PDF-1.4 fake")
	mockRepo.On("Create", ctx, mock.MatchedBy(func(inv *domain.Invoice) bool {
		return inv.CustomerEmail == "john@example.com" &&
			inv.TotalPrice == 6.00 &&
			len(inv.Items) == 1 &&
			inv.Items[0].Quantity == 2
	})).Return(int64(1), nil)
	mockRenderer.On("RenderHTML", ctx, mock.Anything).Return(pdf, nil)

	got, err := svc.Generate(ctx, sampleRequest())

	require.NoError(t, err)
	assert.Equal(t, pdf, got)

	mockRepo.AssertNumberOfCalls(t, "Create", 1)
	mockRenderer.AssertExpectations(t)
}

func TestGenerate_DocumentAmounts(t *testing.T) {
	svc, mockRepo, mockRenderer := setupTestService(t)
	ctx := context.Background()

	var html string
	mockRepo.On("Create", ctx, mock.Anything).Return(int64(1), nil)
	mockRenderer.On("RenderHTML", ctx, mock.MatchedBy(func(doc string) bool {
		html = doc
		return true
	})).Return([]byte("pdf"), nil)

	_, err := svc.Generate(ctx, sampleRequest())
	require.NoError(t, err)

	// Line total is quantity x unit price; the summary uses the
	// caller-supplied total with the fixed 5% surcharge.
	assert.Contains(t, html, "$6.00")
	assert.Contains(t, html, "$0.30")
	assert.Contains(t, html, "$6.30")
	assert.Contains(t, html, "John Doe")
	assert.Contains(t, html, "john@example.com")
	assert.Contains(t, html, "3/15/2024")
}

func TestGenerate_TotalPriceNotRecomputed(t *testing.T) {
	svc, mockRepo, mockRenderer := setupTestService(t)
	ctx := context.Background()

	// Caller-supplied total disagrees with the line items on purpose.
	req := sampleRequest()
	req.TotalPrice = 100.00

	var persisted *domain.Invoice
	var html string
	mockRepo.On("Create", ctx, mock.MatchedBy(func(inv *domain.Invoice) bool {
		persisted = inv
		return true
	})).Return(int64(1), nil)
	mockRenderer.On("RenderHTML", ctx, mock.MatchedBy(func(doc string) bool {
		html = doc
		return true
	})).Return([]byte("pdf"), nil)

	_, err := svc.Generate(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, 100.00, persisted.TotalPrice)
	assert.Contains(t, html, "$100.00") // summary total as given
	assert.Contains(t, html, "$6.00")   // row total still from the items
	assert.Contains(t, html, "$105.00") // grand total from the given total
}

func TestGenerate_RenderFailure_InvoiceStillPersisted(t *testing.T) {
	svc, mockRepo, mockRenderer := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything).Return(int64(1), nil)
	mockRenderer.On("RenderHTML", ctx, mock.Anything).Return(nil, errors.New("chrome exited"))

	got, err := svc.Generate(ctx, sampleRequest())

	assert.Nil(t, got)
	require.Error(t, err)

	var renderErr *apperrors.RenderError
	assert.ErrorAs(t, err, &renderErr)

	// The record written before the render step stays written.
	mockRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestGenerate_PersistFailure_RendererNeverRuns(t *testing.T) {
	svc, mockRepo, mockRenderer := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything).Return(int64(0), errors.New("connection refused"))

	got, err := svc.Generate(ctx, sampleRequest())

	assert.Nil(t, got)
	require.Error(t, err)

	var renderErr *apperrors.RenderError
	assert.ErrorAs(t, err, &renderErr)

	mockRenderer.AssertNotCalled(t, "RenderHTML", mock.Anything, mock.Anything)
}

func TestGenerate_ValidationError_NoItems(t *testing.T) {
	svc, mockRepo, _ := setupTestService(t)
	ctx := context.Background()

	req := sampleRequest()
	req.Items = nil

	got, err := svc.Generate(ctx, req)

	assert.Nil(t, got)
	require.Error(t, err)

	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerate_ValidationError_NegativeQuantity(t *testing.T) {
	svc, mockRepo, _ := setupTestService(t)
	ctx := context.Background()

	req := sampleRequest()
	req.Items[0].Quantity = -1

	got, err := svc.Generate(ctx, req)

	assert.Nil(t, got)
	require.Error(t, err)

	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerate_ValidationError_BadCustomerEmail(t *testing.T) {
	svc, _, _ := setupTestService(t)
	ctx := context.Background()

	req := sampleRequest()
	req.Customer.Email = "not-an-email"

	got, err := svc.Generate(ctx, req)

	assert.Nil(t, got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email must be a valid email")
}

func TestListByCustomer_Success(t *testing.T) {
	svc, mockRepo, _ := setupTestService(t)
	ctx := context.Background()

	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mockRepo.On("ListByCustomerEmail", ctx, "john@example.com").Return([]domain.Invoice{
		{
			ID:            4,
			CustomerEmail: "john@example.com",
			TotalPrice:    6.00,
			CreatedAt:     created,
			Items:         []domain.LineItem{{Name: "A", Quantity: 2, UnitPrice: 3.00}},
		},
	}, nil)

	resp, err := svc.ListByCustomer(ctx, "john@example.com")

	require.NoError(t, err)
	require.Len(t, resp.Invoices, 1)
	assert.Equal(t, int64(4), resp.Invoices[0].ID)
	assert.Equal(t, 6.00, resp.Invoices[0].TotalPrice)
	assert.Equal(t, 1, resp.Invoices[0].ItemCount)
	assert.Equal(t, created, resp.Invoices[0].CreatedAt)
}

func TestListByCustomer_RepositoryError(t *testing.T) {
	svc, mockRepo, _ := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("ListByCustomerEmail", ctx, "john@example.com").Return(nil, errors.New("connection refused"))

	resp, err := svc.ListByCustomer(ctx, "john@example.com")

	assert.Nil(t, resp)
	require.Error(t, err)

	var internal *apperrors.InternalError
	assert.ErrorAs(t, err, &internal)
}
