package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/sadopc/daybattery/internal/progress"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != currentVersion {
		t.Fatalf("expected user_version %d, got %d", currentVersion, version)
	}
}

func TestNewWithPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "daybattery.db")
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetMode(progress.Year); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen: migration must not reseed over stored values.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	st, err := s2.LoadSettings()
	if err != nil {
		t.Fatal(err)
	}
	if st.Mode != progress.Year {
		t.Fatalf("expected Year to survive reopen, got %s", st.Mode)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "daybattery.db" {
		t.Fatalf("unexpected path %s", path)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

func TestMigrationSeedsDefaults(t *testing.T) {
	s := newTestStore(t)
	settings, err := s.GetAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(settings) != 3 {
		t.Fatalf("expected 3 seeded settings, got %d", len(settings))
	}
	want := map[string]int{KeyMode: 0, KeyFormat: 2, KeyDayStart: 0}
	for _, st := range settings {
		if st.Value != want[st.Key] {
			t.Fatalf("%s: expected %d, got %d", st.Key, want[st.Key], st.Value)
		}
		if st.UpdatedAt.IsZero() {
			t.Fatalf("%s: UpdatedAt should be set", st.Key)
		}
	}
}

// ============================================================
// Raw settings
// ============================================================

func TestGetSetInt(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetInt("custom", 7); err != nil {
		t.Fatal(err)
	}
	v, err := s.GetInt("custom")
	if err != nil {
		t.Fatal(err)
	}
	if v != 7 {
		t.Fatalf("expected 7, got %d", v)
	}

	if err := s.SetInt("custom", 8); err != nil {
		t.Fatal(err)
	}
	v, _ = s.GetInt("custom")
	if v != 8 {
		t.Fatalf("expected upsert to 8, got %d", v)
	}
}

func TestGetIntNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetInt("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetAllSorted(t *testing.T) {
	s := newTestStore(t)
	settings, err := s.GetAll()
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(settings); i++ {
		if settings[i-1].Key > settings[i].Key {
			t.Fatalf("settings not sorted: %s before %s", settings[i-1].Key, settings[i].Key)
		}
	}
}

// ============================================================
// Typed settings
// ============================================================

func TestLoadSettingsDefaults(t *testing.T) {
	s := newTestStore(t)
	st, err := s.LoadSettings()
	if err != nil {
		t.Fatal(err)
	}
	if st != progress.DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", st)
	}
}

func TestLoadSettingsMissingKeys(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.db.Exec(`DELETE FROM settings`); err != nil {
		t.Fatal(err)
	}
	st, err := s.LoadSettings()
	if err != nil {
		t.Fatal(err)
	}
	if st != progress.DefaultSettings() {
		t.Fatalf("expected defaults for missing keys, got %+v", st)
	}
}

func TestLoadSettingsInvalidStoredValues(t *testing.T) {
	s := newTestStore(t)
	s.SetInt(KeyMode, 5)
	s.SetInt(KeyFormat, -3)
	s.SetInt(KeyDayStart, 30)

	st, err := s.LoadSettings()
	if err != nil {
		t.Fatal(err)
	}
	if st != progress.DefaultSettings() {
		t.Fatalf("expected fallback to defaults, got %+v", st)
	}
}

func TestSaveAndLoadSettings(t *testing.T) {
	s := newTestStore(t)
	want := progress.Settings{Mode: progress.Month, Format: progress.Short, DayStart: 6}
	if err := s.SaveSettings(want); err != nil {
		t.Fatal(err)
	}
	got, err := s.LoadSettings()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	// Stored ordinals are the persisted contract.
	v, _ := s.GetInt(KeyMode)
	if v != 1 {
		t.Fatalf("expected Month stored as 1, got %d", v)
	}
	v, _ = s.GetInt(KeyFormat)
	if v != 1 {
		t.Fatalf("expected Short stored as 1, got %d", v)
	}
}

func TestSettersRejectInvalid(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetMode(progress.Mode(3)); !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("expected ErrInvalidSetting for mode, got %v", err)
	}
	if err := s.SetFormat(progress.Format(9)); !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("expected ErrInvalidSetting for format, got %v", err)
	}
	if err := s.SetDayStart(24); !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("expected ErrInvalidSetting for day start, got %v", err)
	}
	if err := s.SetDayStart(-1); !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("expected ErrInvalidSetting for day start, got %v", err)
	}

	st, _ := s.LoadSettings()
	if st != progress.DefaultSettings() {
		t.Fatalf("rejected values must not be stored, got %+v", st)
	}
}

func TestClosedStoreErrors(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	s.Close()
	if _, err := s.LoadSettings(); err == nil {
		t.Fatal("expected error from closed store")
	}
}
