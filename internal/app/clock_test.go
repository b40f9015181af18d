package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("TST", 3*3600)
	in := time.Date(2025, time.March, 14, 23, 59, 59, 123, loc)

	got := startOfDay(in)

	assert.Equal(t, time.Date(2025, time.March, 14, 0, 0, 0, 0, loc), got)
}

func TestStartOfWeek(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "monday maps to itself",
			in:   time.Date(2025, time.March, 10, 15, 30, 0, 0, loc), // Monday
			want: time.Date(2025, time.March, 10, 0, 0, 0, 0, loc),
		},
		{
			name: "wednesday maps back to monday",
			in:   time.Date(2025, time.March, 12, 8, 0, 0, 0, loc),
			want: time.Date(2025, time.March, 10, 0, 0, 0, 0, loc),
		},
		{
			name: "sunday maps back six days",
			in:   time.Date(2025, time.March, 16, 1, 0, 0, 0, loc),
			want: time.Date(2025, time.March, 10, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, startOfWeek(tt.in))
		})
	}
}

func TestStartOfMonth(t *testing.T) {
	in := time.Date(2025, time.February, 28, 12, 0, 0, 0, time.UTC)

	got := startOfMonth(in)

	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), got)
}
