package errors

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "triangle", false},
		{"with dash", "right-triangle", false},
		{"with underscore and dot", "scene_1.v2", false},
		{"digits first", "3-4-5", false},
		{"space", "second shape", false},
		{"punctuation", "Reflection (y-axis)", false},
		{"leading dot", ".hidden", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"path separator", "a/b", true},
		{"traversal", "a..b", true},
		{"backslash", "a\\b", true},
		{"control character", "tri\tangle", true},
		{"newline", "tri\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("ValidateName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative file", "out/triangle.svg", false},
		{"absolute file", "/tmp/triangle.svg", false},
		{"dotted name", "out/a..b.svg", false},

		{"empty", "", true},
		{"traversal", "../secret.svg", true},
		{"nested traversal", "out/../../x.svg", true},
		{"null byte", "a\x00b", true},
		{"newline", "a\nb", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateDimension(t *testing.T) {
	tests := []struct {
		v       float64
		wantErr bool
	}{
		{400, false},
		{1, false},
		{0, true},
		{-5, true},
		{20000, true},
	}
	for _, tt := range tests {
		if err := ValidateDimension("width", tt.v); (err != nil) != tt.wantErr {
			t.Errorf("ValidateDimension(%v) error = %v, wantErr %v", tt.v, err, tt.wantErr)
		}
	}
}
