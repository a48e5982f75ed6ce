package repository

import (
	"errors"
	"testing"
	"time"
)

func TestCursor_RoundTrip(t *testing.T) {
	t.Parallel()

	in := &PaginationCursor{
		ID:        "01HQ0000000000000000000001",
		CreatedAt: time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
	}

	out, err := decodeCursor(encodeCursor(in))
	if err != nil {
		t.Fatalf("decodeCursor failed: %v", err)
	}
	if out.ID != in.ID || !out.CreatedAt.Equal(in.CreatedAt) {
		t.Errorf("cursor = %+v, want %+v", out, in)
	}
}

func TestDecodeCursor_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cursor string
	}{
		{"not base64", "%%%"},
		{"not json", "bm90IGpzb24="},
		{"empty object", "e30="},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := decodeCursor(tt.cursor); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := decodeCursor("e30="); !errors.Is(err, ErrInvalidCursor) {
		t.Errorf("expected ErrInvalidCursor for empty cursor, got %v", err)
	}
}
