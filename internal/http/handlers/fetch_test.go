package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/dmelchor/symreg-backend/internal/data/repos/registry"
	"github.com/dmelchor/symreg-backend/internal/platform/logger"
)

type fakeFetchService struct {
	rows       []*registry.ProjectionRow
	err        error
	lastFilter registry.ProjectionFilter
}

func (f *fakeFetchService) Stream(ctx context.Context, filter registry.ProjectionFilter, emit func(row *registry.ProjectionRow) error) error {
	f.lastFilter = filter
	if f.err != nil {
		return f.err
	}
	for _, row := range f.rows {
		if err := emit(row); err != nil {
			return err
		}
	}
	return nil
}

func newFetchRouter(t *testing.T, svc *fakeFetchService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	r := gin.New()
	r.GET("/fetch", NewFetchHandler(log, svc).Fetch)
	return r
}

func TestFetchStreamsJSONArray(t *testing.T) {
	svc := &fakeFetchService{rows: []*registry.ProjectionRow{
		{BusinessID: 12, BusinessName: "Acme Co", SymptomCode: "S1", SymptomName: "Cough", Diagnostic: true},
		{BusinessID: 12, BusinessName: "Acme Co", SymptomCode: "S2", SymptomName: "Fever", Diagnostic: false},
	}}
	r := newFetchRouter(t, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fetch", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	want := `[{"Business ID":12,"Business Name":"Acme Co","Symptom Code":"S1","Symptom Name":"Cough","Symptom Diagnostic":"true"},` +
		`{"Business ID":12,"Business Name":"Acme Co","Symptom Code":"S2","Symptom Name":"Fever","Symptom Diagnostic":"false"}]`
	if w.Body.String() != want {
		t.Fatalf("body = %s", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
}

func TestFetchEmptyResult(t *testing.T) {
	r := newFetchRouter(t, &fakeFetchService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fetch", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Body.String() != "[]" {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestFetchForwardsFilters(t *testing.T) {
	svc := &fakeFetchService{}
	r := newFetchRouter(t, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fetch?bid=12&diag=true", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if svc.lastFilter.BusinessID == nil || *svc.lastFilter.BusinessID != 12 {
		t.Fatalf("bid filter not forwarded: %+v", svc.lastFilter)
	}
	if svc.lastFilter.Diagnostic == nil || !*svc.lastFilter.Diagnostic {
		t.Fatalf("diag filter not forwarded: %+v", svc.lastFilter)
	}
}

func TestFetchRejectsBadFilters(t *testing.T) {
	r := newFetchRouter(t, &fakeFetchService{})

	for _, target := range []string{"/fetch?bid=abc", "/fetch?diag=maybe"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", target, w.Code)
		}
	}
}
