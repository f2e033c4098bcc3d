package settings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clinicware/clinic-platform/pkg/logging"
)

func TestGetStripsAdminHash(t *testing.T) {
	store := newTestStore(t)
	seeded := Default()
	seeded.AdminPasswordHash = "scrypt:aa:bb"
	if err := store.Set(context.Background(), seeded); err != nil {
		t.Fatalf("Set: %v", err)
	}

	handler := NewHandler(store, logging.Default())
	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	w := httptest.NewRecorder()

	handler.Get(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "adminPasswordHash") {
		t.Error("response leaked the admin password hash")
	}

	var got ClinicSettings
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "MediCare Clinic" {
		t.Errorf("unexpected name %q", got.Name)
	}
}

func TestUpdateMergesPartialBody(t *testing.T) {
	store := newTestStore(t)
	seeded := Default()
	seeded.AdminPasswordHash = "keep-me"
	if err := store.Set(context.Background(), seeded); err != nil {
		t.Fatalf("Set: %v", err)
	}

	handler := NewHandler(store, logging.Default())
	body := `{"breakStart":"13:00","breakEnd":"14:00","slotDurationMinutes":15}`
	req := httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Update(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	stored, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Name != "MediCare Clinic" {
		t.Errorf("untouched field changed: %q", stored.Name)
	}
	if stored.BreakStart != "13:00" || stored.BreakEnd != "14:00" {
		t.Errorf("break window not applied: %s-%s", stored.BreakStart, stored.BreakEnd)
	}
	if stored.SlotMinutes != 15 {
		t.Errorf("slot minutes not applied: %d", stored.SlotMinutes)
	}
	if stored.AdminPasswordHash != "keep-me" {
		t.Error("partial update clobbered the admin hash")
	}
}

func TestUpdateCanClearBreakWindow(t *testing.T) {
	store := newTestStore(t)
	seeded := Default()
	seeded.BreakStart = "13:00"
	seeded.BreakEnd = "14:00"
	if err := store.Set(context.Background(), seeded); err != nil {
		t.Fatalf("Set: %v", err)
	}

	handler := NewHandler(store, logging.Default())
	req := httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader(`{"breakStart":"","breakEnd":""}`))
	w := httptest.NewRecorder()

	handler.Update(w, req)

	stored, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.HasBreak() {
		t.Error("break window should have been cleared")
	}
}

func TestUpdateRejectsBadJSON(t *testing.T) {
	handler := NewHandler(newTestStore(t), logging.Default())
	req := httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler.Update(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
