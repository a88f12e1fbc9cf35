package utils_test

import (
	"testing"
	"time"

	"github.com/meenmo/yieldcurve/utils"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	got, err := utils.ParseDate("2025-08-29")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	want := time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ParseDate = %v, want %v", got, want)
	}

	if _, err := utils.ParseDate("29/08/2025"); err == nil {
		t.Fatal("ParseDate: want error for bad layout, got nil")
	}
}

func TestRoundTo(t *testing.T) {
	t.Parallel()

	if got := utils.RoundTo(3.14159, 2); got != 3.14 {
		t.Fatalf("RoundTo(3.14159, 2) = %v, want 3.14", got)
	}
	if got := utils.RoundTo(-0.285, 2); got != -0.28 && got != -0.29 {
		t.Fatalf("RoundTo(-0.285, 2) = %v", got)
	}
	if got := utils.RoundTo(2.5, 0); got != 3 {
		t.Fatalf("RoundTo(2.5, 0) = %v, want 3", got)
	}
}
