package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateGroupSlug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{"valid", "cat-lovers", false},
		{"valid with digits", "go-1", false},
		{"too short", "ab", true},
		{"uppercase", "Cats", true},
		{"leading hyphen", "-cats", true},
		{"trailing hyphen", "cats-", true},
		{"reserved", "admin", true},
		{"reserved api", "api", true},
		{"spaces", "cat lovers", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGroupSlug(tt.slug)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("lena_92"))
	assert.NoError(t, ValidateUsername("a.b-c"))
	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("has space"))
	assert.Error(t, ValidateUsername(""))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("lena@example.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("@example.com"))
	assert.Error(t, ValidateEmail("lena@"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("sturdy1password"))
	assert.Error(t, ValidatePassword("short1"))
	assert.Error(t, ValidatePassword("allletters"))
	assert.Error(t, ValidatePassword("12345678"))
	assert.Error(t, ValidatePassword(" padded1pw "))
}
