package repository

import (
	"testing"

	"github.com/google/uuid"

	"example.com/subtracker/backend/internal/models"
)

// TestBuildScanRunWhereEmpty проверяет пустой фильтр.
func TestBuildScanRunWhereEmpty(t *testing.T) {
	where, args := buildScanRunWhere(ScanRunFilter{})
	if where != "" {
		t.Fatalf("expected empty where, got %q", where)
	}

	if len(args) != 0 {
		t.Fatalf("expected no args, got %d", len(args))
	}
}

// TestBuildScanRunWhereFilters проверяет сборку условий фильтра.
func TestBuildScanRunWhereFilters(t *testing.T) {
	userID := uuid.New()
	status := models.ScanStatusFailed

	where, args := buildScanRunWhere(ScanRunFilter{UserID: &userID, Status: &status})
	if where != " WHERE user_id = $1 AND status = $2" {
		t.Fatalf("unexpected where clause: %q", where)
	}

	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(args))
	}

	where, args = buildScanRunWhere(ScanRunFilter{Status: &status})
	if where != " WHERE status = $1" {
		t.Fatalf("unexpected where clause: %q", where)
	}

	if len(args) != 1 {
		t.Fatalf("expected 1 arg, got %d", len(args))
	}
}
