package update

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/shop-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) UpdateProduct(ctx context.Context, token string, in models.ProductInput) (*models.ProductView, error) {
	args := m.Called(ctx, token, in)
	if p := args.Get(0); p != nil {
		return p.(*models.ProductView), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestUpdateHandler_ServeHTTP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("keeps category when empty", func(t *testing.T) {
		service := new(MockService)
		service.On("UpdateProduct", mock.Anything, "hdr", models.ProductInput{Name: "Atlas", Price: 12.5, Stock: 10}).
			Return(&models.ProductView{ID: 1, Name: "Atlas", Category: "Books", Price: 12.5, Stock: 10}, nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/product/update",
			bytes.NewBufferString(`{"name":"Atlas","price":12.5,"stock":10}`))
		req.Header.Set("Authorization", "Bearer hdr")
		rec := httptest.NewRecorder()
		middlewarectx.BearerToken(New(logger, service)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var got map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		data := got["data"].(map[string]any)
		assert.Equal(t, "Product updated successfully", data["message"])
		assert.Equal(t, "Atlas", data["product_name"])
		assert.Equal(t, "Books", data["category"])
		service.AssertExpectations(t)
	})

	t.Run("unknown product", func(t *testing.T) {
		service := new(MockService)
		service.On("UpdateProduct", mock.Anything, "t", mock.Anything).Return(nil, models.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/product/update",
			bytes.NewBufferString(`{"name":"Ghost","price":1,"stock":1,"token":"t"}`))
		rec := httptest.NewRecorder()
		New(logger, service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"status":"Error","error":"not found"}`, rec.Body.String())
	})
}
