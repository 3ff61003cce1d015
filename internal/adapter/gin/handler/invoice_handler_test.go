package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"invoice-service/internal/adapter/gin/middleware"
	"invoice-service/internal/usecase/invoice"
	"invoice-service/pkg/apperrors"
	"invoice-service/pkg/token"
)

// MockInvoiceUsecase is a mock implementation of invoice.Usecase
type MockInvoiceUsecase struct {
	mock.Mock
}

func (m *MockInvoiceUsecase) Generate(ctx context.Context, in invoice.GenerateRequest) ([]byte, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockInvoiceUsecase) ListByCustomer(ctx context.Context, email string) (*invoice.ListResponse, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.ListResponse), args.Error(1)
}

func setupInvoiceRouter(t *testing.T) (*gin.Engine, *MockInvoiceUsecase, *token.Maker) {
	gin.SetMode(gin.TestMode)
	mockUC := new(MockInvoiceUsecase)
	log := zaptest.NewLogger(t)
	h := NewInvoiceHandler(mockUC, log)

	maker, err := token.NewMaker("test-secret-key", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/auth/generate-pdf", h.GeneratePDF)
	r.GET("/api/invoices", middleware.RequireAuth(maker, log), h.ListInvoices)
	return r, mockUC, maker
}

func validGenerateBody() gin.H {
	return gin.H{
		"user": gin.H{
			"name":  "John Doe",
			"email": "john@example.com",
		},
		"products": []gin.H{
			{"name": "Widget", "quantity": 2, "price": 3.0},
		},
		"totalPrice": 6.0,
	}
}

func TestInvoiceHandler_GeneratePDF_Success(t *testing.T) {
	r, mockUC, _ := setupInvoiceRouter(t)

	pdf := []byte("%PDF-1.4 fake")
	mockUC.On("Generate", mock.Anything, invoice.GenerateRequest{
		Customer: invoice.Customer{Name: "John Doe", Email: "john@example.com"},
		Items: []invoice.LineItemInput{
			{Name: "Widget", Quantity: 2, Price: 3.0},
		},
		TotalPrice: 6.0,
	}).Return(pdf, nil)

	w := postJSON(t, r, "/api/auth/generate-pdf", validGenerateBody())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=invoice.pdf", w.Header().Get("Content-Disposition"))
	assert.Equal(t, pdf, w.Body.Bytes())
	mockUC.AssertExpectations(t)
}

func TestInvoiceHandler_GeneratePDF_MissingTotalPrice(t *testing.T) {
	r, mockUC, _ := setupInvoiceRouter(t)

	body := validGenerateBody()
	delete(body, "totalPrice")
	w := postJSON(t, r, "/api/auth/generate-pdf", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
	mockUC.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestInvoiceHandler_GeneratePDF_ZeroTotalAccepted(t *testing.T) {
	r, mockUC, _ := setupInvoiceRouter(t)

	mockUC.On("Generate", mock.Anything, mock.MatchedBy(func(in invoice.GenerateRequest) bool {
		return in.TotalPrice == 0
	})).Return([]byte("pdf"), nil)

	body := validGenerateBody()
	body["totalPrice"] = 0.0
	w := postJSON(t, r, "/api/auth/generate-pdf", body)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUC.AssertExpectations(t)
}

func TestInvoiceHandler_GeneratePDF_EmptyProducts(t *testing.T) {
	r, mockUC, _ := setupInvoiceRouter(t)

	body := validGenerateBody()
	body["products"] = []gin.H{}
	w := postJSON(t, r, "/api/auth/generate-pdf", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUC.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestInvoiceHandler_GeneratePDF_ValidationErrorFromUsecase(t *testing.T) {
	r, mockUC, _ := setupInvoiceRouter(t)

	mockUC.On("Generate", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewValidationError("email", "invalid email format"))

	w := postJSON(t, r, "/api/auth/generate-pdf", validGenerateBody())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email format")
}

func TestInvoiceHandler_GeneratePDF_RenderFailure(t *testing.T) {
	r, mockUC, _ := setupInvoiceRouter(t)

	mockUC.On("Generate", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewRenderError("chrome crashed", assert.AnError))

	w := postJSON(t, r, "/api/auth/generate-pdf", validGenerateBody())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Error generating invoice")
	// Renderer internals stay out of the response.
	assert.NotContains(t, w.Body.String(), "chrome crashed")
}

func TestInvoiceHandler_ListInvoices_Success(t *testing.T) {
	r, mockUC, maker := setupInvoiceRouter(t)

	created := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	mockUC.On("ListByCustomer", mock.Anything, "john@example.com").Return(&invoice.ListResponse{
		Invoices: []invoice.InvoiceSummary{
			{ID: 1, TotalPrice: 6.30, ItemCount: 2, CreatedAt: created},
		},
	}, nil)

	tok, err := maker.Generate(7, "john@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp ListInvoicesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Invoices, 1)
	assert.Equal(t, int64(1), resp.Invoices[0].ID)
	assert.Equal(t, 6.30, resp.Invoices[0].TotalPrice)
	assert.Equal(t, 2, resp.Invoices[0].ItemCount)
	mockUC.AssertExpectations(t)
}

func TestInvoiceHandler_ListInvoices_NoToken(t *testing.T) {
	r, mockUC, _ := setupInvoiceRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockUC.AssertNotCalled(t, "ListByCustomer", mock.Anything, mock.Anything)
}

func TestInvoiceHandler_ListInvoices_BadToken(t *testing.T) {
	r, mockUC, _ := setupInvoiceRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockUC.AssertNotCalled(t, "ListByCustomer", mock.Anything, mock.Anything)
}

func TestInvoiceHandler_ListInvoices_RepoError(t *testing.T) {
	r, mockUC, maker := setupInvoiceRouter(t)

	mockUC.On("ListByCustomer", mock.Anything, "john@example.com").Return(nil, assert.AnError)

	tok, err := maker.Generate(7, "john@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to list invoices")
}
