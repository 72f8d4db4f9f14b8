package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFullName(t *testing.T) {
	tests := []struct {
		name     string
		fullname string
		wantErr  bool
	}{
		{"valid", "Thandi Mokoena", false},
		{"minimum length", "Tha", false},
		{"too short", "Th", true},
		{"too long", strings.Repeat("a", 101), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFullName(tt.fullname)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "thandi@example.com", false},
		{"valid with plus", "thandi+blog@example.co.za", false},
		{"missing at", "thandi.example.com", true},
		{"missing domain", "thandi@", true},
		{"missing tld", "thandi@example", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Sterk1234", false},
		{"minimum length", "Abc123", false},
		{"too short", "Ab123", true},
		{"too long", "Abc123" + strings.Repeat("x", 15), true},
		{"no uppercase", "sterk1234", true},
		{"no lowercase", "STERK1234", true},
		{"no digit", "SterkPass", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
