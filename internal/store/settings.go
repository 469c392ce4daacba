package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sadopc/daybattery/internal/progress"
)

// ErrInvalidSetting is returned when a value is outside its setting's range.
var ErrInvalidSetting = errors.New("invalid setting value")

// ErrNotFound is returned by GetInt for keys that were never stored.
var ErrNotFound = errors.New("setting not found")

func (s *Store) GetInt(key string) (int, error) {
	var value int
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("get setting %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetInt(key string, value int) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

func (s *Store) GetAll() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var st Setting
		var updatedAt string
		if err := rows.Scan(&st.Key, &st.Value, &updatedAt); err != nil {
			return nil, err
		}
		st.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		settings = append(settings, st)
	}
	return settings, rows.Err()
}

// LoadSettings reads the selection, replacing missing or out-of-range
// values with the defaults. Only storage failures are returned as errors.
func (s *Store) LoadSettings() (progress.Settings, error) {
	d := progress.DefaultSettings()

	mode, err := s.intOr(KeyMode, int(d.Mode))
	if err != nil {
		return d, err
	}
	format, err := s.intOr(KeyFormat, int(d.Format))
	if err != nil {
		return d, err
	}
	dayStart, err := s.intOr(KeyDayStart, d.DayStart)
	if err != nil {
		return d, err
	}

	return progress.Settings{
		Mode:     progress.Mode(mode),
		Format:   progress.Format(format),
		DayStart: dayStart,
	}.Resolve(), nil
}

// SaveSettings persists all three values after validating them.
func (s *Store) SaveSettings(st progress.Settings) error {
	if err := s.SetMode(st.Mode); err != nil {
		return err
	}
	if err := s.SetFormat(st.Format); err != nil {
		return err
	}
	return s.SetDayStart(st.DayStart)
}

func (s *Store) SetMode(m progress.Mode) error {
	if !m.Valid() {
		return fmt.Errorf("mode %d: %w", int(m), ErrInvalidSetting)
	}
	return s.SetInt(KeyMode, int(m))
}

func (s *Store) SetFormat(f progress.Format) error {
	if !f.Valid() {
		return fmt.Errorf("format %d: %w", int(f), ErrInvalidSetting)
	}
	return s.SetInt(KeyFormat, int(f))
}

func (s *Store) SetDayStart(hour int) error {
	if !progress.ValidDayStart(hour) {
		return fmt.Errorf("day start %d: %w", hour, ErrInvalidSetting)
	}
	return s.SetInt(KeyDayStart, hour)
}

func (s *Store) intOr(key string, fallback int) (int, error) {
	v, err := s.GetInt(key)
	if errors.Is(err, ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return fallback, err
	}
	return v, nil
}
