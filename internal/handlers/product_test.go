package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/omiete01/eCommerce-microservice/internal/service"
)

// =============================================================================
// Mock ProductService
// =============================================================================

type mockProductService struct {
	getByIDFunc     func(ctx context.Context, id int64) (*service.ProductView, bool, error)
	listFunc        func(ctx context.Context) ([]service.ProductView, bool, error)
	countByUserFunc func(ctx context.Context, userID int64) (int64, bool, error)
	createFunc      func(ctx context.Context, input service.ProductInput) (*service.ProductView, error)
	updateFunc      func(ctx context.Context, id int64, update service.ProductUpdate) (*service.ProductView, error)
	deleteFunc      func(ctx context.Context, id int64) error
}

func (m *mockProductService) GetByID(ctx context.Context, id int64) (*service.ProductView, bool, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, false, errors.New("not implemented")
}

func (m *mockProductService) List(ctx context.Context) ([]service.ProductView, bool, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, false, errors.New("not implemented")
}

func (m *mockProductService) CountByUser(ctx context.Context, userID int64) (int64, bool, error) {
	if m.countByUserFunc != nil {
		return m.countByUserFunc(ctx, userID)
	}
	return 0, false, errors.New("not implemented")
}

func (m *mockProductService) Create(ctx context.Context, input service.ProductInput) (*service.ProductView, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, input)
	}
	return nil, errors.New("not implemented")
}

func (m *mockProductService) Update(ctx context.Context, id int64, update service.ProductUpdate) (*service.ProductView, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, update)
	}
	return nil, errors.New("not implemented")
}

func (m *mockProductService) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

// =============================================================================
// Test Helpers
// =============================================================================

func setupProductRouter(mock *mockProductService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewProductHandler(mock)
	router.GET("/product/:id", handler.GetByID)
	router.GET("/products", handler.List)
	router.GET("/products/count", handler.Count)
	router.POST("/products", handler.Create)
	router.PUT("/products/:id", handler.Update)
	router.DELETE("/products/:id", handler.Delete)

	return router
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	return body
}

// =============================================================================
// GetByID Tests
// =============================================================================

func TestProductGetByID_OK(t *testing.T) {
	mock := &mockProductService{
		getByIDFunc: func(ctx context.Context, id int64) (*service.ProductView, bool, error) {
			return &service.ProductView{ID: id, Name: "Widget", Price: 9.99}, true, nil
		},
	}
	router := setupProductRouter(mock)

	w := performRequest(router, http.MethodGet, "/product/1", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body := decodeBody(t, w)
	if body["cached"] != true {
		t.Errorf("cached = %v, want true", body["cached"])
	}
	product, ok := body["product"].(map[string]interface{})
	if !ok || product["name"] != "Widget" {
		t.Errorf("product = %v, want Widget", body["product"])
	}
}

func TestProductGetByID_NotFound(t *testing.T) {
	mock := &mockProductService{
		getByIDFunc: func(ctx context.Context, id int64) (*service.ProductView, bool, error) {
			return nil, false, service.ErrNotFound
		},
	}
	router := setupProductRouter(mock)

	w := performRequest(router, http.MethodGet, "/product/404", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestProductGetByID_NonNumericID(t *testing.T) {
	mock := &mockProductService{
		getByIDFunc: func(ctx context.Context, id int64) (*service.ProductView, bool, error) {
			t.Fatal("GetByID() should not be called for a non-numeric id")
			return nil, false, nil
		},
	}
	router := setupProductRouter(mock)

	w := performRequest(router, http.MethodGet, "/product/abc", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestProductGetByID_InternalError(t *testing.T) {
	mock := &mockProductService{
		getByIDFunc: func(ctx context.Context, id int64) (*service.ProductView, bool, error) {
			return nil, false, errors.New("connection reset")
		},
	}
	router := setupProductRouter(mock)

	w := performRequest(router, http.MethodGet, "/product/1", nil)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}

	// The raw error must not leak to the client
	body := decodeBody(t, w)
	if body["error"] != "internal error" {
		t.Errorf("error = %v, want generic message", body["error"])
	}
}

// =============================================================================
// List Tests
// =============================================================================

func TestProductList_OK(t *testing.T) {
	mock := &mockProductService{
		listFunc: func(ctx context.Context) ([]service.ProductView, bool, error) {
			return []service.ProductView{{ID: 1, Name: "Widget"}}, false, nil
		},
	}
	router := setupProductRouter(mock)

	w := performRequest(router, http.MethodGet, "/products", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body := decodeBody(t, w)
	if body["cached"] != false {
		t.Errorf("cached = %v, want false", body["cached"])
	}
	products, ok := body["products"].([]interface{})
	if !ok || len(products) != 1 {
		t.Errorf("products = %v, want 1 entry", body["products"])
	}
}

// =============================================================================
// Count Tests
// =============================================================================

func TestProductCount_OK(t *testing.T) {
	mock := &mockProductService{
		countByUserFunc: func(ctx context.Context, userID int64) (int64, bool, error) {
			if userID != 5 {
				t.Errorf("CountByUser() userID = %d, want 5", userID)
			}
			return 3, true, nil
		},
	}
	router := setupProductRouter(mock)

	w := performRequest(router, http.MethodGet, "/products/count?user_id=5", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body := decodeBody(t, w)
	if body["count"] != float64(3) {
		t.Errorf("count = %v, want 3", body["count"])
	}
}

func TestProductCount_MissingUserID(t *testing.T) {
	router := setupProductRouter(&mockProductService{})

	w := performRequest(router, http.MethodGet, "/products/count", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestProductCount_NonNumericUserID(t *testing.T) {
	router := setupProductRouter(&mockProductService{})

	w := performRequest(router, http.MethodGet, "/products/count?user_id=abc", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

// =============================================================================
// Create Tests
// =============================================================================

func TestProductCreate_Created(t *testing.T) {
	mock := &mockProductService{
		createFunc: func(ctx context.Context, input service.ProductInput) (*service.ProductView, error) {
			return &service.ProductView{ID: 42, Name: input.Name, Price: *input.Price}, nil
		},
	}
	router := setupProductRouter(mock)

	w := performRequest(router, http.MethodPost, "/products", map[string]interface{}{
		"name":  "Widget",
		"price": 9.99,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}

	body := decodeBody(t, w)
	product, ok := body["product"].(map[string]interface{})
	if !ok || product["id"] != float64(42) {
		t.Errorf("product = %v, want id 42", body["product"])
	}
}

func TestProductCreate_ValidationError(t *testing.T) {
	mock := &mockProductService{
		createFunc: func(ctx context.Context, input service.ProductInput) (*service.ProductView, error) {
			return nil, &service.ValidationError{Reason: "price is required"}
		},
	}
	router := setupProductRouter(mock)

	w := performRequest(router, http.MethodPost, "/products", map[string]interface{}{
		"name": "Widget",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	body := decodeBody(t, w)
	if body["error"] != "price is required" {
		t.Errorf("error = %v, want validation reason", body["error"])
	}
}

func TestProductCreate_MalformedJSON(t *testing.T) {
	router := setupProductRouter(&mockProductService{})

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

// =============================================================================
// Update Tests
// =============================================================================

func TestProductUpdate_OK(t *testing.T) {
	mock := &mockProductService{
		updateFunc: func(ctx context.Context, id int64, update service.ProductUpdate) (*service.ProductView, error) {
			return &service.ProductView{ID: id, Name: "Widget", Price: *update.Price}, nil
		},
	}
	router := setupProductRouter(mock)

	w := performRequest(router, http.MethodPut, "/products/1", map[string]interface{}{
		"price": 19.99,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body := decodeBody(t, w)
	product, ok := body["product"].(map[string]interface{})
	if !ok || product["price"] != 19.99 {
		t.Errorf("product = %v, want price 19.99", body["product"])
	}
}

func TestProductUpdate_NotFound(t *testing.T) {
	mock := &mockProductService{
		updateFunc: func(ctx context.Context, id int64, update service.ProductUpdate) (*service.ProductView, error) {
			return nil, service.ErrNotFound
		},
	}
	router := setupProductRouter(mock)

	w := performRequest(router, http.MethodPut, "/products/404", map[string]interface{}{
		"price": 19.99,
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

// =============================================================================
// Delete Tests
// =============================================================================

func TestProductDelete_OK(t *testing.T) {
	mock := &mockProductService{
		deleteFunc: func(ctx context.Context, id int64) error {
			return nil
		},
	}
	router := setupProductRouter(mock)

	w := performRequest(router, http.MethodDelete, "/products/1", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body := decodeBody(t, w)
	if body["message"] != "Product deleted" {
		t.Errorf("message = %v, want confirmation", body["message"])
	}
}

func TestProductDelete_NotFound(t *testing.T) {
	mock := &mockProductService{
		deleteFunc: func(ctx context.Context, id int64) error {
			return service.ErrNotFound
		},
	}
	router := setupProductRouter(mock)

	w := performRequest(router, http.MethodDelete, "/products/404", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
