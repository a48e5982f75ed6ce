package report

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateRange_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		start     string
		end       string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "plain days are UTC midnight",
			start:     "2024-01-01",
			end:       "2024-01-31",
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "rfc3339 with zone",
			start:     "2024-01-01T08:00:00+02:00",
			end:       "2024-01-01T20:00:00Z",
			wantStart: time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC),
		},
		{
			name:      "same instant",
			start:     "2024-03-05",
			end:       "2024-03-05",
			wantStart: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := ParseDateRange(tt.start, tt.end)
			if err != nil {
				t.Fatalf("ParseDateRange failed: %v", err)
			}
			if !r.Start.Equal(tt.wantStart) {
				t.Errorf("Start = %v, want %v", r.Start, tt.wantStart)
			}
			if !r.End.Equal(tt.wantEnd) {
				t.Errorf("End = %v, want %v", r.End, tt.wantEnd)
			}
		})
	}
}

func TestParseDateRange_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"missing start", "", "2024-01-31"},
		{"missing end", "2024-01-01", ""},
		{"garbage", "soon", "later"},
		{"end before start", "2024-02-01", "2024-01-01"},
		{"path characters", "../../x", "2024-01-31"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseDateRange(tt.start, tt.end)
			if !errors.Is(err, ErrInvalidDateRange) {
				t.Errorf("err = %v, want ErrInvalidDateRange", err)
			}
		})
	}
}

func TestNewRequest_TrimsAndKeepsRawDates(t *testing.T) {
	t.Parallel()

	req, err := NewRequest(" 2024-01-01 ", "2024-01-31", "req-1")
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	if req.StartDate != "2024-01-01" || req.EndDate != "2024-01-31" {
		t.Errorf("dates = %q/%q", req.StartDate, req.EndDate)
	}
	if req.RequestID != "req-1" {
		t.Errorf("RequestID = %q, want req-1", req.RequestID)
	}
}
