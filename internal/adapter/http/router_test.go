package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/CSCE331-Fall2024/project-3-team-xp/configs"
	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/adapter/http/middleware"
	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/adapter/repo"
	domain "github.com/CSCE331-Fall2024/project-3-team-xp/internal/entity"
	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalogRepo struct {
	entries []domain.CatalogEntry
}

func (s *stubCatalogRepo) ListActive(ctx context.Context) ([]domain.CatalogEntry, error) {
	return s.entries, nil
}
func (s *stubCatalogRepo) Upsert(ctx context.Context, entry domain.CatalogEntry) error {
	for i, e := range s.entries {
		if e.Name == entry.Name {
			s.entries[i] = entry
			return nil
		}
	}
	s.entries = append(s.entries, entry)
	return nil
}
func (s *stubCatalogRepo) Deactivate(ctx context.Context, name string) error {
	for i, e := range s.entries {
		if e.Name == name {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

type stubCatalogCache struct{}

func (stubCatalogCache) Get(ctx context.Context) ([]domain.CatalogEntry, bool, error) {
	return nil, false, nil
}
func (stubCatalogCache) Set(ctx context.Context, entries []domain.CatalogEntry) error { return nil }
func (stubCatalogCache) Invalidate(ctx context.Context) error                         { return nil }

type stubTxnRepo struct {
	recs map[string]*usecase.TransactionRecord
}

func (s *stubTxnRepo) Create(ctx context.Context, rec *usecase.TransactionRecord) error {
	s.recs[rec.ID] = rec
	return nil
}
func (s *stubTxnRepo) GetByID(ctx context.Context, id string) (*usecase.TransactionRecord, error) {
	rec, ok := s.recs[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return rec, nil
}

type stubIdemStore struct {
	locks map[string]bool
	vals  map[string]string
}

func (s *stubIdemStore) TryLock(ctx context.Context, scope, key string) (bool, error) {
	k := scope + ":" + key
	if s.locks[k] {
		return false, nil
	}
	s.locks[k] = true
	return true, nil
}
func (s *stubIdemStore) Remember(ctx context.Context, scope, key, value string) error {
	s.vals[scope+":"+key] = value
	return nil
}
func (s *stubIdemStore) Recall(ctx context.Context, scope, key string) (string, bool, error) {
	v, ok := s.vals[scope+":"+key]
	return v, ok, nil
}

type stubOutbox struct{}

func (stubOutbox) InsertTransactionCompleted(ctx context.Context, payload []byte) error { return nil }

type stubQueue struct{}

func (stubQueue) PublishCompleted(ctx context.Context, msg usecase.TransactionCompletedMsg) error {
	return nil
}

func testConfig() configs.Config {
	var cfg configs.Config
	cfg.Security.JWTSecret = "test-secret"
	cfg.Security.Issuer = "pos-api"
	cfg.Security.Audience = "pos-storefront"
	cfg.Security.TTL = 30 * time.Minute
	return cfg
}

func newTestServer(t *testing.T) (*httptest.Server, *stubTxnRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalogRepo := &stubCatalogRepo{entries: []domain.CatalogEntry{
		{Name: "Orange Chicken", Price: 1.60, Category: domain.CategoryEntree, Calories: 490},
		{Name: "Beijing Beef", Price: 1.60, Category: domain.CategoryEntree, Calories: 470},
		{Name: "Rangoons", Price: 2.00, Category: domain.CategoryAppetizer, Calories: 190},
		{Name: "Fountain Drink", Price: 2.45, Category: domain.CategoryDrink, Calories: 0},
	}}
	txnRepo := &stubTxnRepo{recs: map[string]*usecase.TransactionRecord{}}
	idem := &stubIdemStore{locks: map[string]bool{}, vals: map[string]string{}}

	catalog := usecase.NewCatalogProvider(catalogRepo, stubCatalogCache{})
	checkoutUC := usecase.NewCheckout(catalog, txnRepo, idem, stubOutbox{}, stubQueue{})
	quoteUC := usecase.NewQuote(catalog)

	cfg := testConfig()
	r := NewRouter(
		NewCheckoutHandler(checkoutUC, txnRepo),
		NewQuoteHandler(quoteUC),
		NewMenuHandler(catalog, catalogRepo),
		NewTokenHandler(cfg),
		middleware.NewAuthz(cfg),
		middleware.NewSealedVerify(nil),
	)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, txnRepo
}

func fetchToken(t *testing.T, srv *httptest.Server, clientID, secret string) string {
	t.Helper()
	form := url.Values{"client_id": {clientID}, "client_secret": {secret}}
	resp, err := http.PostForm(srv.URL+"/v1/token", form)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Bearer", body.TokenType)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, payload any, headers map[string]string) *http.Response {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(b)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, srv.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestTokenEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("valid credentials issue a token", func(t *testing.T) {
		tok := fetchToken(t, srv, "kiosk", "kiosk-secret")
		assert.True(t, strings.Count(tok, ".") == 2)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		form := url.Values{"client_id": {"kiosk"}, "client_secret": {"nope"}}
		resp, err := http.PostForm(srv.URL+"/v1/token", form)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestAuthz(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("missing token rejected", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodGet, "/v1/menuitems", "", nil, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("kiosk cannot write menu", func(t *testing.T) {
		tok := fetchToken(t, srv, "kiosk", "kiosk-secret")
		resp := doJSON(t, srv, http.MethodPost, "/v1/menuitems", tok, map[string]any{
			"menu_item_name": "Teriyaki Chicken", "price": 1.60, "category": "Entree",
		}, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("menu-board can read menu", func(t *testing.T) {
		tok := fetchToken(t, srv, "menu-board", "menu-board-secret")
		resp := doJSON(t, srv, http.MethodGet, "/v1/menuitems", tok, nil, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestQuoteEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	tok := fetchToken(t, srv, "kiosk", "kiosk-secret")

	t.Run("running total without reward", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/v1/quote", tok, map[string]any{
			"items": map[string]int{"Orange Chicken": 2},
		}, nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out quoteResp
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, 3.20, out.Subtotal)
		assert.Equal(t, 3.20, out.FinalPrice)
		assert.Zero(t, out.PointsEarned)
		assert.False(t, out.RewardApplied)
	})

	t.Run("ten percent discount applies", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/v1/quote", tok, map[string]any{
			"items":  map[string]int{"Orange Chicken": 2},
			"reward": "10% Discount on Purchase",
		}, nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out quoteResp
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, 3.20, out.Subtotal)
		assert.Equal(t, 2.88, out.FinalPrice)
		assert.Equal(t, 100, out.PointsEarned)
		assert.True(t, out.RewardApplied)
	})

	t.Run("empty order rejected", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/v1/quote", tok, map[string]any{
			"items": map[string]int{},
		}, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCheckoutEndpoint(t *testing.T) {
	srv, txns := newTestServer(t)
	tok := fetchToken(t, srv, "cashier", "cashier-secret")

	t.Run("checkout persists and is retrievable", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/v1/transactions", tok, map[string]any{
			"items":    map[string]int{"Orange Chicken": 1, "Beijing Beef": 1, "Rangoons": 2},
			"customer": "sam",
			"employee": "alex",
			"reward":   "BOGO Entree!",
		}, nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var out checkoutResp
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		require.NotEmpty(t, out.TransactionID)
		assert.Equal(t, 7.20, out.Subtotal)
		// 7.20 - 12.99 clamps at zero
		assert.Equal(t, 0.00, out.TotalPrice)
		assert.Equal(t, 1500, out.PointsEarned)
		assert.True(t, out.RewardApplied)

		get := doJSON(t, srv, http.MethodGet, "/v1/transactions/"+out.TransactionID, tok, nil, nil)
		defer get.Body.Close()
		require.Equal(t, http.StatusOK, get.StatusCode)

		var rec map[string]any
		require.NoError(t, json.NewDecoder(get.Body).Decode(&rec))
		assert.Equal(t, "sam", rec["customer"])
		assert.Equal(t, out.TransactionID, rec["transaction_id"])
	})

	t.Run("idempotency key replays the original response", func(t *testing.T) {
		hdr := map[string]string{"X-Idempotency-Key": "txn-abc-1"}
		body := map[string]any{
			"items":    map[string]int{"Rangoons": 1},
			"customer": "jo",
		}
		first := doJSON(t, srv, http.MethodPost, "/v1/transactions", tok, body, hdr)
		defer first.Body.Close()
		require.Equal(t, http.StatusCreated, first.StatusCode)
		var a checkoutResp
		require.NoError(t, json.NewDecoder(first.Body).Decode(&a))

		before := len(txns.recs)
		second := doJSON(t, srv, http.MethodPost, "/v1/transactions", tok, body, hdr)
		defer second.Body.Close()
		require.Equal(t, http.StatusCreated, second.StatusCode)
		var b checkoutResp
		require.NoError(t, json.NewDecoder(second.Body).Decode(&b))

		assert.Equal(t, a.TransactionID, b.TransactionID)
		assert.Equal(t, before, len(txns.recs))
	})

	t.Run("empty order rejected", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/v1/transactions", tok, map[string]any{
			"items":    map[string]int{},
			"customer": "jo",
		}, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown transaction id", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodGet, "/v1/transactions/nope", tok, nil, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestMenuEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	tok := fetchToken(t, srv, "manager", "manager-secret")

	t.Run("list filters by category", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodGet, "/v1/menuitems?category=Entree", tok, nil, nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out []struct {
			Name     string `json:"menu_item_name"`
			Category string `json:"category"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		require.Len(t, out, 2)
		for _, it := range out {
			assert.Equal(t, "Entree", it.Category)
		}
	})

	t.Run("upsert then delete", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/v1/menuitems", tok, map[string]any{
			"menu_item_name": "Honey Walnut Shrimp", "price": 2.10, "category": "Entree", "calories": 360,
		}, nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		del := doJSON(t, srv, http.MethodDelete, "/v1/menuitems/Honey%20Walnut%20Shrimp", tok, nil, nil)
		defer del.Body.Close()
		assert.Equal(t, http.StatusOK, del.StatusCode)
	})

	t.Run("bad category rejected", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/v1/menuitems", tok, map[string]any{
			"menu_item_name": "Mystery", "price": 1.00, "category": "Dessert",
		}, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
