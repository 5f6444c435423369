package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pantrywatch/pantrywatch/internal/alerts"
	"github.com/pantrywatch/pantrywatch/internal/analytics"
	"github.com/pantrywatch/pantrywatch/internal/inventory"
)

func newTestApp(t *testing.T) *app {
	t.Helper()

	store, err := inventory.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return &app{
		store:     store,
		alerts:    alerts.NewSystem(store, nil),
		analytics: analytics.NewEngine(store),
	}
}

func TestRunAddStoresItem(t *testing.T) {
	a := newTestApp(t)
	expiry := time.Now().UTC().AddDate(0, 0, 30).Format("2006-01-02")

	if err := runAdd(a, "Banana", "fruits", expiry, 1, "units", "Counter"); err != nil {
		t.Fatalf("runAdd failed: %v", err)
	}

	items, err := a.store.ListByStatus(inventory.StatusActive)
	if err != nil {
		t.Fatalf("ListByStatus failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Banana" {
		t.Errorf("items = %v, want one Banana", items)
	}
	if items[0].Notes != "Manually entered" {
		t.Errorf("Notes = %q", items[0].Notes)
	}
}

func TestRunAddRecordsAlertForSoonExpiry(t *testing.T) {
	a := newTestApp(t)
	expiry := time.Now().UTC().AddDate(0, 0, 2).Format("2006-01-02")

	if err := runAdd(a, "Milk", "dairy", expiry, 1, "units", "Refrigerator"); err != nil {
		t.Fatalf("runAdd failed: %v", err)
	}

	items, err := a.store.ListByStatus(inventory.StatusActive)
	if err != nil {
		t.Fatalf("ListByStatus failed: %v", err)
	}
	records, err := a.store.ListAlerts(items[0].ID)
	if err != nil {
		t.Fatalf("ListAlerts failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("alerts = %d, want 1", len(records))
	}
}

func TestRunAddRejectsBadDate(t *testing.T) {
	a := newTestApp(t)

	if err := runAdd(a, "Milk", "dairy", "05/11/2026", 1, "units", "Refrigerator"); err == nil {
		t.Error("expected error for non-ISO expiry date")
	}
}

func TestRunMark(t *testing.T) {
	a := newTestApp(t)
	expiry := time.Now().UTC().AddDate(0, 0, 30).Format("2006-01-02")

	if err := runAdd(a, "Banana", "fruits", expiry, 1, "units", "Counter"); err != nil {
		t.Fatalf("runAdd failed: %v", err)
	}
	items, _ := a.store.ListByStatus(inventory.StatusActive)

	if err := runMark(a, items[0].ID, "consumed"); err != nil {
		t.Fatalf("runMark failed: %v", err)
	}
	got, err := a.store.GetItem(items[0].ID)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got.Status != inventory.StatusConsumed {
		t.Errorf("status = %s, want consumed", got.Status)
	}

	if err := runMark(a, items[0].ID, "devoured"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Milk", 10, "Milk"},
		{"A very long food name", 6, "A very"},
		{"", 4, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
