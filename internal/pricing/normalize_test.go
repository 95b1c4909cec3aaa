package pricing

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{
			name:     "decimal com vírgula europeu",
			input:    "€5.399,99",
			expected: 5399.99,
		},
		{
			name:     "decimal com ponto",
			input:    "R5,399.99",
			expected: 5399.99,
		},
		{
			name:     "grupo de três dígitos é milhar",
			input:    "49.000",
			expected: 49000,
		},
		{
			name:     "dois dígitos após vírgula é decimal",
			input:    "539,99",
			expected: 539.99,
		},
		{
			name:     "sufixo ribu",
			input:    "Rp 75ribu",
			expected: 75000,
		},
		{
			name:     "sufixo juta com decimal",
			input:    "Rp 2,5juta",
			expected: 2500000,
		},
		{
			name:     "separador repetido é milhar",
			input:    "1.234.567",
			expected: 1234567,
		},
		{
			name:     "milhar e decimal misturados",
			input:    "$1,234,567.89",
			expected: 1234567.89,
		},
		{
			name:     "preço simples com símbolo",
			input:    "$4.99",
			expected: 4.99,
		},
		{
			name:     "zero antes da vírgula é decimal",
			input:    "0,001",
			expected: 0.001,
		},
		{
			name:     "sem separadores",
			input:    "R$ 941",
			expected: 941,
		},
		{
			name:     "espaços extras",
			input:    "  £ 599.99  ",
			expected: 599.99,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %f, want %f", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "vazio", input: ""},
		{name: "sem dígitos", input: "free"},
		{name: "só símbolo", input: "€"},
		{name: "sufixo sem número", input: "ribu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if !math.IsNaN(got) {
				t.Errorf("Normalize(%q) = %f, want NaN", tt.input, got)
			}
		})
	}
}
