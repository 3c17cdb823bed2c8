package errors

import (
	"strings"
	"testing"
)

func TestValidateIdentifierText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"galaxy", "~zod", false},
		{"galaxy without sig", "zod", false},
		{"star", "~marzod", false},
		{"planet", "~ridlur-figbud", false},
		{"moon", "~doznec-dozzod-ridlur-figbud", false},

		{"empty", "", true},
		{"too long", "~" + strings.Repeat("a", 200), true},
		{"uppercase", "~Zod", true},
		{"trailing dash", "~ridlur-", true},
		{"double dash", "~ridlur--figbud", true},
		{"digits", "~zod1", true},
		{"control char", "~zod\x01", true},
		{"space", "~rid lur", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifierText(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentifierText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateIdentifierText(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"#fff", false},
		{"#4330FC", false},
		{"#4330fc80", false},
		{"white", false},
		{"Black", false},

		{"", true},
		{"fff", true},
		{"#ggg", true},
		{"#12345", true},
		{"url(#x)", true},
	}

	for _, tt := range tests {
		err := ValidateColor(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateColorway(t *testing.T) {
	if err := ValidateColorway([]string{"#fff", "#000000"}); err != nil {
		t.Errorf("valid colorway should pass: %v", err)
	}
	if err := ValidateColorway([]string{"white", "black", "#FC5000"}); err != nil {
		t.Errorf("three-color colorway should pass: %v", err)
	}

	err := ValidateColorway([]string{"#fff"})
	if !Is(err, ErrCodeInvalidColorway) {
		t.Errorf("single color should fail with %v, got %v", ErrCodeInvalidColorway, err)
	}
	if err := ValidateColorway([]string{"#fff", "nope"}); err == nil {
		t.Error("invalid entry should fail")
	}
}
