package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/shop-backend/internal/models"
)

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		wantErr bool
		wantMsg []string
	}{
		{
			name:  "valid signup",
			input: models.SignupInput{Email: "a@b.io", Password: "secret1"},
		},
		{
			name:    "bad email and short password",
			input:   models.SignupInput{Email: "nope", Password: "123"},
			wantErr: true,
			wantMsg: []string{"field email must be a valid email", "field password must be at least 6 characters"},
		},
		{
			name:    "missing product name",
			input:   models.ProductInput{Price: 1, Stock: 1},
			wantErr: true,
			wantMsg: []string{"field name is a required field"},
		},
		{
			name:    "negative price and stock",
			input:   models.ProductInput{Name: "Atlas", Price: -1, Stock: -2},
			wantErr: true,
			wantMsg: []string{"field price must not be less than 0", "field stock must not be less than 0"},
		},
		{
			name:    "stock beyond integer column",
			input:   models.ProductInput{Name: "Atlas", Price: 1, Stock: 3000000000},
			wantErr: true,
			wantMsg: []string{"field stock must not be greater than 2147483647"},
		},
		{
			name:    "quantity beyond integer column",
			input:   models.PlaceOrderInput{ProductName: "Atlas", Quantity: 3000000000},
			wantErr: true,
			wantMsg: []string{"field quantity must not be greater than 2147483647"},
		},
		{
			name:    "zero quantity",
			input:   models.PlaceOrderInput{ProductName: "Atlas", Quantity: 0},
			wantErr: true,
			wantMsg: []string{"field quantity must be greater than 0"},
		},
		{
			name:    "category name too long",
			input:   models.CategoryInput{Name: strings.Repeat("x", 256)},
			wantErr: true,
			wantMsg: []string{"field name must be at most 255 characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, models.ErrInvalidInput)
			for _, msg := range tt.wantMsg {
				assert.Contains(t, err.Error(), msg)
			}
		})
	}
}

func TestStruct_NotAStruct(t *testing.T) {
	err := Struct(42)
	require.ErrorIs(t, err, models.ErrInvalidInput)
}
