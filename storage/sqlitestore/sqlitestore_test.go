package sqlitestore

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestNewRequiresNamespace(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "prefs.db"), ""); err == nil {
		t.Fatalf("expected empty namespace to be rejected")
	}
}

func TestScalarRoundTripDecodesJSON(t *testing.T) {
	adapter := openTestAdapter(t, "app")

	if err := adapter.SaveValue("General..Welcome Text", "Howdy"); err != nil {
		t.Fatalf("unexpected error from SaveValue: %v", err)
	}
	if err := adapter.SaveValue("General..Brightness", 80); err != nil {
		t.Fatalf("unexpected error from SaveValue: %v", err)
	}
	if err := adapter.SaveValue("General..Night Mode", true); err != nil {
		t.Fatalf("unexpected error from SaveValue: %v", err)
	}

	if got, _ := adapter.LoadValue("General..Welcome Text", ""); got != "Howdy" {
		t.Fatalf("expected stored text, got %v", got)
	}
	// JSON carries one number type; integers come back as float64.
	if got, _ := adapter.LoadValue("General..Brightness", nil); got != float64(80) {
		t.Fatalf("expected 80 as float64, got %v (%T)", got, got)
	}
	if got, _ := adapter.LoadValue("General..Night Mode", nil); got != true {
		t.Fatalf("expected stored bool, got %v", got)
	}

	if got, _ := adapter.LoadValue("General..Contrast", 50); got != 50 {
		t.Fatalf("expected default for missing key, got %v", got)
	}
}

func TestListRoundTrip(t *testing.T) {
	adapter := openTestAdapter(t, "app")

	if err := adapter.SaveList("Screen.Scaling.Favorites", []any{"home", "work"}); err != nil {
		t.Fatalf("unexpected error from SaveList: %v", err)
	}
	got, err := adapter.LoadList("Screen.Scaling.Favorites", nil)
	if err != nil {
		t.Fatalf("unexpected error from LoadList: %v", err)
	}
	if !reflect.DeepEqual(got, []any{"home", "work"}) {
		t.Fatalf("expected stored list, got %v", got)
	}

	def := []any{"fallback"}
	missing, err := adapter.LoadList("Screen.Scaling.Recent", def)
	if err != nil {
		t.Fatalf("unexpected error from LoadList: %v", err)
	}
	if !reflect.DeepEqual(missing, def) {
		t.Fatalf("expected default for missing key, got %v", missing)
	}
}

func TestKindMismatchSurfaces(t *testing.T) {
	adapter := openTestAdapter(t, "app")

	if err := adapter.SaveValue("solo", "value"); err != nil {
		t.Fatalf("unexpected error from SaveValue: %v", err)
	}
	_, err := adapter.LoadList("solo", nil)
	if err == nil {
		t.Fatalf("expected a scalar entry to fail list loads")
	}
	if !strings.Contains(err.Error(), "holds a scalar, not a list") {
		t.Fatalf("unexpected error detail: %v", err)
	}

	if err := adapter.SaveList("bunch", []any{"a"}); err != nil {
		t.Fatalf("unexpected error from SaveList: %v", err)
	}
	if _, err := adapter.LoadValue("bunch", nil); err == nil {
		t.Fatalf("expected a list entry to fail scalar loads")
	}
}

func TestNamespacesShareOneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	first, err := New(path, "app-one")
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}
	defer first.Close()
	second, err := New(path, "app-two")
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}
	defer second.Close()

	if err := first.SaveValue("theme", "dark"); err != nil {
		t.Fatalf("unexpected error from SaveValue: %v", err)
	}
	if got, _ := second.LoadValue("theme", "unset"); got != "unset" {
		t.Fatalf("expected namespaces to be isolated, got %v", got)
	}

	if err := second.SaveValue("theme", "light"); err != nil {
		t.Fatalf("unexpected error from SaveValue: %v", err)
	}
	if err := first.Clear(); err != nil {
		t.Fatalf("unexpected error from Clear: %v", err)
	}
	if got, _ := first.LoadValue("theme", "unset"); got != "unset" {
		t.Fatalf("expected Clear to drop the namespace, got %v", got)
	}
	if got, _ := second.LoadValue("theme", "unset"); got != "light" {
		t.Fatalf("expected Clear to leave other namespaces alone, got %v", got)
	}
}

func TestValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	adapter, err := New(path, "app")
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}
	if err := adapter.SaveValue("General..Brightness", 80); err != nil {
		t.Fatalf("unexpected error from SaveValue: %v", err)
	}
	if err := adapter.Close(); err != nil {
		t.Fatalf("unexpected error from Close: %v", err)
	}

	reopened, err := New(path, "app")
	if err != nil {
		t.Fatalf("expected the migration to be idempotent, got %v", err)
	}
	defer reopened.Close()
	if got, _ := reopened.LoadValue("General..Brightness", nil); got != float64(80) {
		t.Fatalf("expected stored value after reopen, got %v", got)
	}
}

func openTestAdapter(t *testing.T, namespace string) *Adapter {
	t.Helper()
	adapter, err := New(filepath.Join(t.TempDir(), "prefs.db"), namespace)
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}
	t.Cleanup(func() { _ = adapter.Close() })
	return adapter
}
