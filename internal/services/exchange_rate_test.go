package services

import (
	"testing"
)

func TestCurrencyCode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "rupee symbol",
			input:    "₹",
			expected: "INR",
		},
		{
			name:     "dollar symbol",
			input:    "$",
			expected: "USD",
		},
		{
			name:     "euro symbol",
			input:    "€",
			expected: "EUR",
		},
		{
			name:     "iso code passes through",
			input:    "USD",
			expected: "USD",
		},
		{
			name:     "unknown value passes through",
			input:    "XYZ",
			expected: "XYZ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CurrencyCode(tt.input)
			if result != tt.expected {
				t.Errorf("CurrencyCode(%q) = %q; want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseRateResponse(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		toCode   string
		expected string
		wantErr  bool
	}{
		{
			name:     "single rate",
			body:     `{"amount":1.0,"base":"USD","date":"2025-01-02","rates":{"INR":83.12}}`,
			toCode:   "INR",
			expected: "83.12",
		},
		{
			// A rate like 0.1 has no exact float64 representation; decoding
			// through json.Number must keep it exact.
			name:     "rate without exact float representation",
			body:     `{"rates":{"EUR":0.1}}`,
			toCode:   "EUR",
			expected: "0.1",
		},
		{
			name:     "high precision rate",
			body:     `{"rates":{"JPY":157.123456789}}`,
			toCode:   "JPY",
			expected: "157.123456789",
		},
		{
			name:    "missing target currency",
			body:    `{"rates":{"EUR":0.92}}`,
			toCode:  "GBP",
			wantErr: true,
		},
		{
			name:    "malformed body",
			body:    `not json`,
			toCode:  "EUR",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := parseRateResponse([]byte(tt.body), tt.toCode)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseRateResponse(%q) expected error, got %s", tt.body, rate.String())
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRateResponse(%q) unexpected error: %v", tt.body, err)
			}
			if rate.String() != tt.expected {
				t.Errorf("parseRateResponse(%q) = %s; want %s", tt.body, rate.String(), tt.expected)
			}
		})
	}
}
