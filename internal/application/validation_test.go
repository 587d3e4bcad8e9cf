package application

import (
	"errors"
	"testing"
)

func TestValidateRequired_NamesTheField(t *testing.T) {
	tests := []struct {
		field   string
		value   string
		wantMsg string
	}{
		{field: "baseName", value: "", wantMsg: "baseName: base directory name is required"},
		{field: "quarantine", value: "  ", wantMsg: "quarantine: quarantine path is required"},
		{field: "label", value: "\t", wantMsg: "label: label is required"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			err := ValidateRequired(tt.field, tt.value)

			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
			}
			if valErr.Field != tt.field {
				t.Errorf("field = %s, want %s", valErr.Field, tt.field)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}

	if err := ValidateRequired("baseName", "Game"); err != nil {
		t.Errorf("unexpected error for a set value: %v", err)
	}
}

func TestValidateBaseName(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		wantErr bool
	}{
		{name: "plain name", base: "Game", wantErr: false},
		{name: "name with spaces inside", base: "My Game", wantErr: false},
		{name: "empty", base: "", wantErr: true},
		{name: "blank", base: "  ", wantErr: true},
		{name: "forward slash", base: "Game/Sub", wantErr: true},
		{name: "backslash", base: `Game\Sub`, wantErr: true},
		{name: "dot", base: ".", wantErr: true},
		{name: "dot dot", base: "..", wantErr: true},
		{name: "leading whitespace", base: " Game", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBaseName(tt.base)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateBaseName(%q) error = %v, wantErr %v", tt.base, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
