package utils

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "date only",
			input: "2020-10-25",
			want:  time.Date(2020, 10, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "utc with millis",
			input: "2020-10-25T23:59:59.999Z",
			want:  time.Date(2020, 10, 25, 23, 59, 59, 999_000_000, time.UTC),
		},
		{
			name:  "with offset",
			input: "2020-10-25T01:30:00+02:00",
			want:  time.Date(2020, 10, 24, 23, 30, 0, 0, time.UTC),
		},
		{
			name:  "no zone is utc",
			input: "2020-10-25T08:15:00",
			want:  time.Date(2020, 10, 25, 8, 15, 0, 0, time.UTC),
		},
		{name: "empty", input: "  ", wantErr: true},
		{name: "garbage", input: "yesterday", wantErr: true},
		{name: "impossible day", input: "2021-02-30", wantErr: true},
		{name: "slashes", input: "2020/10/25", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestValidDate(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{name: "past string", value: "2024-03-09", want: true},
		{name: "exactly now", value: now, want: true},
		{name: "now as string", value: "2024-03-10T12:00:00.000Z", want: true},
		{name: "future string", value: "2024-03-10T12:00:00.001Z", want: false},
		{name: "future time", value: now.Add(time.Hour), want: false},
		{name: "zero time", value: time.Time{}, want: false},
		{name: "nil time pointer", value: (*time.Time)(nil), want: false},
		{name: "time pointer", value: &now, want: true},
		{name: "invalid string", value: "not a date", want: false},
		{name: "unsupported type", value: 1700000000, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidDate(tt.value, now); got != tt.want {
				t.Errorf("ValidDate(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestDayWindow(t *testing.T) {
	wantStart := time.Date(2020, 10, 25, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2020, 10, 25, 23, 59, 59, 999_000_000, time.UTC)

	inputs := []time.Time{
		time.Date(2020, 10, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 10, 25, 13, 45, 12, 0, time.UTC),
		time.Date(2020, 10, 25, 23, 59, 59, 999_000_000, time.UTC),
		// 2020-10-25T22:00:00Z expressed in a +05:00 zone is already the 26th locally.
		time.Date(2020, 10, 26, 3, 0, 0, 0, time.FixedZone("plus5", 5*60*60)),
	}

	for _, in := range inputs {
		start, end := DayWindow(in)
		if !start.Equal(wantStart) {
			t.Errorf("DayWindow(%v) start = %v, want %v", in, start, wantStart)
		}
		if !end.Equal(wantEnd) {
			t.Errorf("DayWindow(%v) end = %v, want %v", in, end, wantEnd)
		}
		if start.Location() != time.UTC || end.Location() != time.UTC {
			t.Errorf("DayWindow(%v) must return UTC bounds", in)
		}
	}
}

func TestNormalizeTime(t *testing.T) {
	in := time.Date(2020, 10, 25, 10, 0, 0, 123_456_789, time.FixedZone("minus3", -3*60*60))
	got := NormalizeTime(in)

	want := time.Date(2020, 10, 25, 13, 0, 0, 123_000_000, time.UTC)
	if !got.Equal(want) || got.Location() != time.UTC {
		t.Errorf("expected %v, got %v", want, got)
	}
}
