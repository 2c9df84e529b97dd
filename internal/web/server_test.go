package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatusWriterCapturesCode(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rec, status: http.StatusOK}

	sw.WriteHeader(http.StatusNotFound)
	sw.Write([]byte("missing"))

	if sw.status != http.StatusNotFound {
		t.Errorf("expected captured status 404, got %d", sw.status)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected recorded status 404, got %d", rec.Code)
	}
}

func TestStatusWriterDefaultsToOK(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rec, status: http.StatusOK}

	sw.Write([]byte("ok"))

	if sw.status != http.StatusOK {
		t.Errorf("expected status 200 when WriteHeader is never called, got %d", sw.status)
	}
}

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, Place{ID: 1, City: "RABAT", Region: "Rabat-Salé-Kénitra"})

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json content type, got %q", ct)
	}

	var p Place
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if p.City != "RABAT" || p.Region != "Rabat-Salé-Kénitra" {
		t.Errorf("unexpected decoded place: %+v", p)
	}
}
