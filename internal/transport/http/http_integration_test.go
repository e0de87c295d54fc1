//go:build integration

package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	cachemem "github.com/Gunvolt24/shop/internal/cache/memory"
	"github.com/Gunvolt24/shop/internal/domain"
	"github.com/Gunvolt24/shop/internal/repo/mongodb"
	"github.com/Gunvolt24/shop/internal/testutil"
	rest "github.com/Gunvolt24/shop/internal/transport/http"
	"github.com/Gunvolt24/shop/internal/usecase"
	"github.com/Gunvolt24/shop/pkg/logger"
	"github.com/Gunvolt24/shop/pkg/validate"
)

type stack struct {
	env *testutil.MongoEnv
	srv *httptest.Server
}

// newStack — Mongo в контейнере + полный HTTP-пайплайн поверх реальных сервисов.
func newStack(t *testing.T) *stack {
	t.Helper()

	env := testutil.StartMongo(t)

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	catalog := usecase.NewCatalogService(
		mongodb.NewProductRepository(env.Client),
		cachemem.NewProductCache(100, time.Minute),
		logg,
		validate.NewProductValidator(),
	)
	orders := usecase.NewOrderService(
		catalog,
		mongodb.NewOrderRepository(env.Client, logg),
		logg,
		validate.NewOrderRequestValidator(),
	)

	h := rest.NewHandler(catalog, orders, logg, 5*time.Second)
	srv := httptest.NewServer(rest.NewRouter(h, ""))
	t.Cleanup(srv.Close)

	return &stack{env: env, srv: srv}
}

func (s *stack) call(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.srv.URL+path, rdr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

type listEnvelope struct {
	Data []map[string]any `json:"data"`
	Page domain.PageInfo  `json:"page"`
}

func createProduct(t *testing.T, s *stack, name string, price float64, sizes ...string) string {
	t.Helper()
	sz := make([]map[string]any, 0, len(sizes))
	for _, v := range sizes {
		sz = append(sz, map[string]any{"size": v, "quantity": 5})
	}
	code, body := s.call(t, http.MethodPost, "/products", map[string]any{"name": name, "price": price, "sizes": sz})
	require.Equal(t, http.StatusCreated, code, string(body))

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	id, _ := got["id"].(string)
	require.NotEmpty(t, id)
	return id
}

// 1) Каталог: создание, фильтры по имени/размеру, чтение по ID
func TestHTTP_Products_TC(t *testing.T) {
	s := newStack(t)

	redID := createProduct(t, s, "Red T-Shirt", 19.99, "S", "M")
	createProduct(t, s, "Blue Jeans", 49.5, "L")
	createProduct(t, s, "red hoodie", 39, "M")

	code, body := s.call(t, http.MethodGet, "/products?name=RED", nil)
	require.Equal(t, http.StatusOK, code)
	var byName listEnvelope
	require.NoError(t, json.Unmarshal(body, &byName))
	require.Len(t, byName.Data, 2)
	require.EqualValues(t, 2, byName.Page.Total)

	code, body = s.call(t, http.MethodGet, "/products?name=red&size=S", nil)
	require.Equal(t, http.StatusOK, code)
	var both listEnvelope
	require.NoError(t, json.Unmarshal(body, &both))
	require.Len(t, both.Data, 1)
	require.Equal(t, redID, both.Data[0]["id"])

	code, body = s.call(t, http.MethodGet, "/products?limit=1&offset=1", nil)
	require.Equal(t, http.StatusOK, code)
	var paged listEnvelope
	require.NoError(t, json.Unmarshal(body, &paged))
	require.Len(t, paged.Data, 1)
	require.NotNil(t, paged.Page.Next)
	require.Equal(t, 3, *paged.Page.Next)
	require.NotNil(t, paged.Page.Previous)
	require.Equal(t, 1, *paged.Page.Previous)

	code, _ = s.call(t, http.MethodGet, "/products/"+redID, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.call(t, http.MethodGet, "/products/not-an-id", nil)
	require.Equal(t, http.StatusNotFound, code)

	code, _ = s.call(t, http.MethodGet, "/products/"+primitive.NewObjectID().Hex(), nil)
	require.Equal(t, http.StatusNotFound, code)

	code, _ = s.call(t, http.MethodPost, "/products", map[string]any{"name": "Free", "price": 0, "sizes": []any{map[string]any{"size": "M", "quantity": 1}}})
	require.Equal(t, http.StatusBadRequest, code)
}

// 2) Заказы: снапшот цены, сумма, отсутствующий товар, пагинация истории
func TestHTTP_Orders_TC(t *testing.T) {
	s := newStack(t)

	shirt := createProduct(t, s, "Shirt", 29.99, "M")
	jeans := createProduct(t, s, "Jeans", 79.99, "L")

	code, body := s.call(t, http.MethodPost, "/orders", map[string]any{
		"userId": "user-1",
		"items": []any{
			map[string]any{"productId": shirt, "qty": 2},
			map[string]any{"productId": jeans, "qty": 1},
		},
	})
	require.Equal(t, http.StatusCreated, code, string(body))

	var created struct {
		ID    string  `json:"id"`
		Total float64 `json:"total"`
		Items []struct {
			ProductDetails struct {
				Name string `json:"name"`
				ID   string `json:"id"`
			} `json:"productDetails"`
			Qty int `json:"qty"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	require.Equal(t, 139.97, created.Total)
	require.Len(t, created.Items, 2)
	require.Equal(t, "Shirt", created.Items[0].ProductDetails.Name)

	// отсутствующий товар — 404 и ни одной записи
	code, _ = s.call(t, http.MethodPost, "/orders", map[string]any{
		"userId": "user-2",
		"items": []any{
			map[string]any{"productId": shirt, "qty": 1},
			map[string]any{"productId": primitive.NewObjectID().Hex(), "qty": 1},
		},
	})
	require.Equal(t, http.StatusNotFound, code)

	code, body = s.call(t, http.MethodGet, "/orders/user-2", nil)
	require.Equal(t, http.StatusOK, code)
	require.JSONEq(t, `{"data":[],"page":{"next":null,"previous":null,"limit":10,"offset":0,"total":0}}`, string(body))

	// ещё два заказа → три всего, новые первыми
	for i := 0; i < 2; i++ {
		code, _ = s.call(t, http.MethodPost, "/orders", map[string]any{
			"userId": "user-1",
			"items":  []any{map[string]any{"productId": jeans, "qty": 1}},
		})
		require.Equal(t, http.StatusCreated, code)
	}

	code, body = s.call(t, http.MethodGet, "/orders/user-1?limit=1&offset=0", nil)
	require.Equal(t, http.StatusOK, code)
	var page listEnvelope
	require.NoError(t, json.Unmarshal(body, &page))
	require.Len(t, page.Data, 1)
	require.EqualValues(t, 3, page.Page.Total)
	require.NotNil(t, page.Page.Next)
	require.Equal(t, 2, *page.Page.Next)
	require.Nil(t, page.Page.Previous)
	require.NotEqual(t, created.ID, page.Data[0]["id"])
}

// 3) Старые записи заказов читаются, нечитаемая пропускается
func TestHTTP_Orders_LegacyRecords_TC(t *testing.T) {
	s := newStack(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	coll, err := s.env.Client.Collection(ctx, "orders")
	require.NoError(t, err)

	_, err = coll.InsertMany(ctx, []any{
		bson.M{
			"user_id": "legacy-user",
			"total":   12.5,
			"items": bson.A{
				bson.M{"product_id": "abc", "quantity": int32(2), "unitPrice": "6.25"},
			},
		},
		bson.M{"user_id": "legacy-user", "total": "not-a-number"},
	})
	require.NoError(t, err)

	code, body := s.call(t, http.MethodGet, "/orders/legacy-user", nil)
	require.Equal(t, http.StatusOK, code)

	var got struct {
		Data []struct {
			UserID string  `json:"userId"`
			Total  float64 `json:"total"`
			Status string  `json:"status"`
			Items  []struct {
				ProductDetails struct {
					Name string `json:"name"`
					ID   string `json:"id"`
				} `json:"productDetails"`
				Qty int `json:"qty"`
			} `json:"items"`
		} `json:"data"`
		Page domain.PageInfo `json:"page"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got.Data, 1)
	require.Equal(t, "legacy-user", got.Data[0].UserID)
	require.Equal(t, 12.5, got.Data[0].Total)
	require.Equal(t, domain.OrderStatusCreated, got.Data[0].Status)
	require.Equal(t, domain.UnknownProductName, got.Data[0].Items[0].ProductDetails.Name)
	require.Equal(t, "abc", got.Data[0].Items[0].ProductDetails.ID)
	require.Equal(t, 2, got.Data[0].Items[0].Qty)
	require.EqualValues(t, 2, got.Page.Total)
}

// 4) Служебные эндпоинты и 405/404
func TestHTTP_ServiceEndpoints_TC(t *testing.T) {
	s := newStack(t)

	for _, path := range []string{"/", "/health", "/ping", "/metrics"} {
		code, _ := s.call(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, code, path)
	}

	code, _ := s.call(t, http.MethodGet, "/nope", nil)
	require.Equal(t, http.StatusNotFound, code)

	code, _ = s.call(t, http.MethodPut, "/orders/u1", nil)
	require.Equal(t, http.StatusMethodNotAllowed, code)
}
