// Package export writes progress snapshots to CSV or JSON files.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sadopc/daybattery/internal/progress"
)

type Kind string

const (
	CSV  Kind = "csv"
	JSON Kind = "json"
)

// Kinds lists the supported export formats in picker order.
var Kinds = []Kind{CSV, JSON}

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case CSV, JSON:
		return k, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// DefaultPath names an export file in dir after the snapshot date.
func DefaultPath(dir string, kind Kind, at time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("daybattery-export-%s.%s", at.Format("2006-01-02"), kind))
}

// Write dispatches to ToCSV or ToJSON.
func Write(kind Kind, snap progress.Snapshot, path string) error {
	switch kind {
	case CSV:
		return ToCSV(snap, path)
	case JSON:
		return ToJSON(snap, path)
	}
	return fmt.Errorf("unknown export format %q", kind)
}
