package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/lunarcart/storefront-backend/internal/sales"
	"github.com/lunarcart/storefront-backend/pkg/db/models"
	pkgerrors "github.com/lunarcart/storefront-backend/pkg/errors"
	"github.com/lunarcart/storefront-backend/pkg/pagination"
)

type stubSalesService struct {
	applyResult *sales.ApplySaleResult
	resetResult *sales.ResetSaleResult
	listResult  *sales.PriceListPage
	err         error

	applyInput  *sales.ApplySaleInput
	resetListID uuid.UUID
}

func (s *stubSalesService) ApplySale(_ context.Context, input sales.ApplySaleInput) (*sales.ApplySaleResult, error) {
	s.applyInput = &input
	if s.err != nil {
		return nil, s.err
	}
	return s.applyResult, nil
}

func (s *stubSalesService) ResetSale(_ context.Context, priceListID uuid.UUID) (*sales.ResetSaleResult, error) {
	s.resetListID = priceListID
	if s.err != nil {
		return nil, s.err
	}
	return s.resetResult, nil
}

func (s *stubSalesService) ListPriceLists(_ context.Context, _ pagination.Params) (*sales.PriceListPage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.listResult, nil
}

func TestSalesApplySuccess(t *testing.T) {
	listID := uuid.New()
	stub := &stubSalesService{applyResult: &sales.ApplySaleResult{
		PriceList:       &models.PriceList{ID: listID},
		VariantsUpdated: 2,
		PricesUpdated:   4,
	}}
	handler := SalesApply(stub, nil)

	payload := []byte(`{"product_ids":["` + uuid.NewString() + `"],"discount_percentage":25}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales/apply", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data sales.ApplySaleResult `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.PricesUpdated != 4 {
		t.Fatalf("expected 4 prices updated got %d", envelope.Data.PricesUpdated)
	}
	if stub.applyInput == nil || !stub.applyInput.InflateBasePrices {
		t.Fatalf("expected inflate_base_prices to default to true")
	}
}

func TestSalesApplyInflateOverride(t *testing.T) {
	stub := &stubSalesService{applyResult: &sales.ApplySaleResult{PriceList: &models.PriceList{}}}
	handler := SalesApply(stub, nil)

	payload := []byte(`{"product_ids":["` + uuid.NewString() + `"],"discount_percentage":25,"inflate_base_prices":false}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales/apply", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if stub.applyInput.InflateBasePrices {
		t.Fatalf("expected inflate_base_prices false")
	}
}

func TestSalesApplyValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty products", `{"product_ids":[],"discount_percentage":25}`},
		{"zero percent", `{"product_ids":["` + uuid.NewString() + `"],"discount_percentage":0}`},
		{"hundred percent", `{"product_ids":["` + uuid.NewString() + `"],"discount_percentage":100}`},
		{"unknown field", `{"product_ids":["` + uuid.NewString() + `"],"discount_percentage":25,"extra":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := SalesApply(&stubSalesService{}, nil)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/sales/apply", bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 got %d", rec.Code)
			}
		})
	}
}

func TestSalesApplyNotFound(t *testing.T) {
	stub := &stubSalesService{err: pkgerrors.New(pkgerrors.CodeNotFound, "no base prices found")}
	handler := SalesApply(stub, nil)

	payload := []byte(`{"product_ids":["` + uuid.NewString() + `"],"discount_percentage":25}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales/apply", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestSalesResetSuccess(t *testing.T) {
	listID := uuid.New()
	stub := &stubSalesService{resetResult: &sales.ResetSaleResult{
		WasInflated:        true,
		PricesReset:        3,
		DeletedPriceListID: listID,
	}}
	handler := SalesReset(stub, nil)

	payload := []byte(`{"price_list_id":"` + listID.String() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales/reset", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.resetListID != listID {
		t.Fatalf("expected reset called with %s got %s", listID, stub.resetListID)
	}

	var envelope struct {
		Data sales.ResetSaleResult `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.PricesReset != 3 {
		t.Fatalf("expected 3 prices reset got %d", envelope.Data.PricesReset)
	}
}

func TestSalesResetMissingID(t *testing.T) {
	handler := SalesReset(&stubSalesService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales/reset", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestSalesResetNotFound(t *testing.T) {
	stub := &stubSalesService{err: pkgerrors.New(pkgerrors.CodeNotFound, "price list not found")}
	handler := SalesReset(stub, nil)

	payload := []byte(`{"price_list_id":"` + uuid.NewString() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales/reset", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}
