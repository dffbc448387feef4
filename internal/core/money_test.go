package core

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int64
		wantErr bool
	}{
		{name: "plain decimal", in: "12.34", want: 1234},
		{name: "integer", in: "200", want: 20000},
		{name: "single decimal place", in: "0.5", want: 50},
		{name: "three places rounds", in: "12.345", want: 1235},
		{name: "zero rejected", in: "0", wantErr: true},
		{name: "negative rejected", in: "-5.00", wantErr: true},
		{name: "empty rejected", in: "", wantErr: true},
		{name: "garbage rejected", in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) expected error, got %d", tt.in, got.Cents)
				}
				if !errors.Is(err, ErrValidation) {
					t.Errorf("ParseAmount(%q) error = %v, want ErrValidation", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error: %v", tt.in, err)
			}
			if got.Cents != tt.want {
				t.Errorf("ParseAmount(%q) = %d, want %d", tt.in, got.Cents, tt.want)
			}
		})
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{cents: 1234, want: "12.34"},
		{cents: -5, want: "-0.05"},
		{cents: 0, want: "0.00"},
		{cents: 100000, want: "1000.00"},
	}
	for _, tt := range tests {
		if got := (Money{Cents: tt.cents}).String(); got != tt.want {
			t.Errorf("Money{%d}.String() = %q, want %q", tt.cents, got, tt.want)
		}
	}
}
