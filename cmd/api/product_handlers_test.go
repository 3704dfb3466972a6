package main

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	prod "github.com/zero3nine/AgriLinkWeb/internal/product"
)

//
// ---------- STUB REPO ----------
//

type stubProductRepo struct {
	items map[string]*prod.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{items: make(map[string]*prod.Product)}
}

func (s *stubProductRepo) add(p prod.Product) {
	cp := p
	s.items[p.ID] = &cp
}

func (s *stubProductRepo) Create(ctx context.Context, p *prod.Product) error {
	p.StockStatus = prod.StatusFor(p.Stock)
	cp := *p
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	s.items[p.ID] = &cp
	return nil
}

func (s *stubProductRepo) GetByID(ctx context.Context, id string) (*prod.Product, error) {
	p, ok := s.items[id]
	if !ok {
		return nil, prod.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubProductRepo) List(ctx context.Context) ([]prod.Product, error) {
	out := make([]prod.Product, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubProductRepo) ListBySeller(ctx context.Context, sellerID string) ([]prod.Product, error) {
	var out []prod.Product
	for _, p := range s.items {
		if p.SellerID == sellerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubProductRepo) Update(ctx context.Context, p *prod.Product) error {
	if _, ok := s.items[p.ID]; !ok {
		return prod.ErrNotFound
	}
	cp := *p
	cp.UpdatedAt = time.Now().UTC()
	s.items[p.ID] = &cp
	return nil
}

func (s *stubProductRepo) SetStockStatus(ctx context.Context, id, status string) error {
	p, ok := s.items[id]
	if !ok {
		return prod.ErrNotFound
	}
	p.StockStatus = status
	return nil
}

func (s *stubProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

func newProductRouter(repo prod.Repository, uploadsDir string) *gin.Engine {
	r := gin.New()
	r.POST("/products", createProductHandler(repo, nil, uploadsDir))
	r.GET("/products", listProductsHandler(repo, nil))
	r.GET("/products/:id", getProductHandler(repo))
	r.GET("/products/seller/:sellerId", listProductsBySellerHandler(repo, nil))
	r.PUT("/products/:id", updateProductHandler(repo, nil))
	r.PATCH("/products/:id/in-stock", setStockStatusHandler(repo, nil, prod.InStock))
	r.PATCH("/products/:id/out-of-stock", setStockStatusHandler(repo, nil, prod.OutOfStock))
	r.DELETE("/products/:id", deleteProductHandler(repo, nil))
	return r
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

//
// ---------- TESTS ----------
//

func TestCreateProduct_OK(t *testing.T) {
	t.Parallel()

	repo := newStubProductRepo()
	r := newProductRouter(repo, t.TempDir())

	body, ctype := multipartBody(t, map[string]string{
		"name": "Carrots", "price": "3.50", "stock": "12.5", "sellerId": "S1",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products", body)
	req.Header.Set("Content-Type", ctype)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got prod.Product
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Name != "Carrots" || got.SellerID != "S1" {
		t.Errorf("unexpected product: %+v", got)
	}
	if got.StockStatus != prod.InStock {
		t.Errorf("stockStatus = %q, want In Stock", got.StockStatus)
	}
}

func TestCreateProduct_Validation(t *testing.T) {
	t.Parallel()

	r := newProductRouter(newStubProductRepo(), t.TempDir())

	cases := []map[string]string{
		{"price": "3.50"},                  // no name
		{"name": "Carrots"},                // no price
		{"name": "X", "price": "cheap"},    // bad price
		{"name": "X", "price": "1", "stock": "-2"}, // negative stock
	}
	for _, fields := range cases {
		body, ctype := multipartBody(t, fields)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/products", body)
		req.Header.Set("Content-Type", ctype)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("fields %v: status=%d, want 400", fields, w.Code)
		}
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	t.Parallel()

	r := newProductRouter(newStubProductRepo(), t.TempDir())
	w := doJSON(t, r, http.MethodGet, "/products/"+uuid.NewString(), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d (want 404)", w.Code)
	}
}

func TestUpdateProduct_StockRecomputesStatus(t *testing.T) {
	t.Parallel()

	repo := newStubProductRepo()
	id := uuid.NewString()
	repo.add(prod.Product{ID: id, Name: "Milk", Price: mustDecimal("2.00"),
		Stock: mustDecimal("5"), StockStatus: prod.InStock})
	r := newProductRouter(repo, t.TempDir())

	w := doJSON(t, r, http.MethodPut, "/products/"+id, `{"stock":0,"stockStatus":"In Stock"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	// the label always follows the quantity, whatever the client claims
	if got := repo.items[id]; got.StockStatus != prod.OutOfStock || !got.Stock.IsZero() {
		t.Fatalf("after update: stock=%s status=%q", got.Stock, got.StockStatus)
	}
}

func TestUpdateProduct_StatusOnlyAppliedVerbatim(t *testing.T) {
	t.Parallel()

	repo := newStubProductRepo()
	id := uuid.NewString()
	repo.add(prod.Product{ID: id, Name: "Milk", Price: mustDecimal("2.00"),
		Stock: mustDecimal("5"), StockStatus: prod.InStock})
	r := newProductRouter(repo, t.TempDir())

	w := doJSON(t, r, http.MethodPut, "/products/"+id, `{"stockStatus":"Out of Stock"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if got := repo.items[id]; got.StockStatus != prod.OutOfStock {
		t.Fatalf("stockStatus = %q, want Out of Stock", got.StockStatus)
	}
}

func TestStockStatusPatches(t *testing.T) {
	t.Parallel()

	repo := newStubProductRepo()
	id := uuid.NewString()
	repo.add(prod.Product{ID: id, Name: "Milk", Price: mustDecimal("2.00"),
		Stock: mustDecimal("5"), StockStatus: prod.InStock})
	r := newProductRouter(repo, t.TempDir())

	w := doJSON(t, r, http.MethodPatch, "/products/"+id+"/out-of-stock", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if got := repo.items[id].StockStatus; got != prod.OutOfStock {
		t.Fatalf("stockStatus = %q", got)
	}

	w = doJSON(t, r, http.MethodPatch, "/products/"+id+"/in-stock", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if got := repo.items[id].StockStatus; got != prod.InStock {
		t.Fatalf("stockStatus = %q", got)
	}

	w = doJSON(t, r, http.MethodPatch, "/products/"+uuid.NewString()+"/in-stock", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d (want 404)", w.Code)
	}
}

func TestDeleteProduct(t *testing.T) {
	t.Parallel()

	repo := newStubProductRepo()
	id := uuid.NewString()
	repo.add(prod.Product{ID: id, Name: "Milk", Price: mustDecimal("2.00")})
	r := newProductRouter(repo, t.TempDir())

	w := doJSON(t, r, http.MethodDelete, "/products/"+id, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if _, ok := repo.items[id]; ok {
		t.Fatal("product still present after delete")
	}

	w = doJSON(t, r, http.MethodDelete, "/products/"+id, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete status=%d (want 404)", w.Code)
	}
}

func TestListProductsBySeller(t *testing.T) {
	t.Parallel()

	repo := newStubProductRepo()
	repo.add(prod.Product{ID: uuid.NewString(), SellerID: "S1", Name: "A", Price: mustDecimal("1")})
	repo.add(prod.Product{ID: uuid.NewString(), SellerID: "S2", Name: "B", Price: mustDecimal("2")})
	r := newProductRouter(repo, t.TempDir())

	w := doJSON(t, r, http.MethodGet, "/products/seller/S1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got []prod.Product
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 1 || got[0].SellerID != "S1" {
		t.Fatalf("unexpected listing: %s", w.Body.String())
	}
}
