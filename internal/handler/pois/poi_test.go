package pois

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"safe-radius/internal/cache"
	"safe-radius/internal/database"
	"safe-radius/internal/geocode"
	"safe-radius/internal/middleware"
	"safe-radius/internal/model"
	"safe-radius/internal/service"
	"safe-radius/internal/store"
	"safe-radius/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

type stubGeocoder struct {
	result *geocode.Result
	err    error
}

func (s *stubGeocoder) Geocode(context.Context, string, string, string) (*geocode.Result, error) {
	return s.result, s.err
}

func newTestCipher(t *testing.T) *service.Cipher {
	t.Helper()
	c, err := service.NewCipher("test-secret")
	require.NoError(t, err)
	return c
}

func newJSONCtx(e *echo.Echo, method, body string, claims *service.CustomClaims) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	if claims != nil {
		ctx.Set(middleware.ContextUserKey, claims)
	}
	return ctx, rec
}

func restore() {
	createPOI = store.CreatePOI
	listPOIsByOwner = store.ListPOIsByOwner
	listEncryptedPOIs = store.ListEncryptedPOIs
	searchPOIs = service.SearchPOIs
}

func TestCreatePOIHandler(t *testing.T) {
	e := echo.New()
	ownerClaims := &service.CustomClaims{UserID: 7, Role: model.RoleOwner}
	validBody := `{"name":"Central Cafe","address":"12 MG Road","area":"Connaught Place","city":"New Delhi","postal_code":"110001","category":"cafe"}`

	t.Run("invalid category", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		body := `{"name":"x","address":"a","area":"b","city":"c","postal_code":"1","category":"spaceport"}`
		ctx, rec := newJSONCtx(e, http.MethodPost, body, ownerClaims)
		require.NoError(t, CreatePOIHandler(nil, nil, nil, nil, worker.SyncPool{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid category")
	})

	t.Run("address not found", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		geo := &stubGeocoder{err: geocode.ErrNoResult}
		ctx, rec := newJSONCtx(e, http.MethodPost, validBody, ownerClaims)
		require.NoError(t, CreatePOIHandler(nil, nil, geo, nil, worker.SyncPool{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "unable to geocode")
	})

	t.Run("geocoder unavailable", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		geo := &stubGeocoder{err: errors.New("connection refused")}
		ctx, rec := newJSONCtx(e, http.MethodPost, validBody, ownerClaims)
		require.NoError(t, CreatePOIHandler(nil, nil, geo, nil, worker.SyncPool{})(ctx))
		require.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("success encrypts and invalidates stats", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		cipher := newTestCipher(t)
		geo := &stubGeocoder{result: &geocode.Result{Lat: 28.6139, Lon: 77.209}}

		var stored *model.POI
		createPOI = func(_ context.Context, _ database.DB, p *model.POI) (*model.POI, error) {
			p.ID = "poi-1"
			p.CreatedAt = time.Now().UTC()
			stored = p
			return p, nil
		}

		var deleted []string
		rdb := &cache.FakeCache{DelFn: func(_ context.Context, keys ...string) *redis.IntCmd {
			deleted = append(deleted, keys...)
			return redis.NewIntResult(1, nil)
		}}

		ctx, rec := newJSONCtx(e, http.MethodPost, validBody, ownerClaims)
		require.NoError(t, CreatePOIHandler(nil, cipher, geo, rdb, worker.SyncPool{})(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)

		require.NotNil(t, stored)
		require.Equal(t, 7, stored.OwnerID)
		require.Equal(t, model.CategoryCafe, stored.Category)

		name, err := cipher.Decrypt(stored.EncryptedName)
		require.NoError(t, err)
		require.Equal(t, "Central Cafe", name)
		lat, err := cipher.Decrypt(stored.EncryptedLat)
		require.NoError(t, err)
		require.Equal(t, "28.6139", lat)
		lon, err := cipher.Decrypt(stored.EncryptedLon)
		require.NoError(t, err)
		require.Equal(t, "77.209", lon)

		require.Equal(t, []string{cache.AdminStatsKey}, deleted)
		require.NotContains(t, rec.Body.String(), "encrypted_name")
	})

	t.Run("store failure", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		cipher := newTestCipher(t)
		geo := &stubGeocoder{result: &geocode.Result{Lat: 1, Lon: 2}}
		createPOI = func(context.Context, database.DB, *model.POI) (*model.POI, error) {
			return nil, errors.New("db down")
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, validBody, ownerClaims)
		require.NoError(t, CreatePOIHandler(nil, cipher, geo, nil, worker.SyncPool{})(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestMyPOIsHandler(t *testing.T) {
	e := echo.New()
	claims := &service.CustomClaims{UserID: 7, Role: model.RoleOwner}

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		listPOIsByOwner = func(_ context.Context, _ database.DB, ownerID int) ([]model.POI, error) {
			require.Equal(t, 7, ownerID)
			return []model.POI{{ID: "a", Name: "Cafe", Category: model.CategoryCafe, OwnerID: 7}}, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodGet, "", claims)
		require.NoError(t, MyPOIsHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"name":"Cafe"`)
	})

	t.Run("empty list returns empty array", func(t *testing.T) {
		t.Cleanup(restore)
		listPOIsByOwner = func(context.Context, database.DB, int) ([]model.POI, error) {
			return nil, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodGet, "", claims)
		require.NoError(t, MyPOIsHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "[]\n", rec.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		t.Cleanup(restore)
		listPOIsByOwner = func(context.Context, database.DB, int) ([]model.POI, error) {
			return nil, errors.New("db down")
		}
		ctx, rec := newJSONCtx(e, http.MethodGet, "", claims)
		require.NoError(t, MyPOIsHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestSearchPOIsHandler(t *testing.T) {
	e := echo.New()
	claims := &service.CustomClaims{UserID: 2, Role: model.RoleUser}

	encryptedPOI := func(t *testing.T, c *service.Cipher, id, name string, lat, lon float64, cat model.Category) model.POI {
		t.Helper()
		encName, err := c.Encrypt(name)
		require.NoError(t, err)
		encLat, err := c.Encrypt(jsonFloat(lat))
		require.NoError(t, err)
		encLon, err := c.Encrypt(jsonFloat(lon))
		require.NoError(t, err)
		return model.POI{ID: id, EncryptedName: encName, EncryptedLat: encLat, EncryptedLon: encLon, Category: cat}
	}

	t.Run("zero coordinates pass validation", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		listEncryptedPOIs = func(context.Context, database.DB, model.Category) ([]model.POI, error) {
			return nil, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"lat":0,"lon":0,"radius_km":5}`, claims)
		require.NoError(t, SearchPOIsHandler(nil, newTestCipher(t))(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid radius", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		listEncryptedPOIs = func(context.Context, database.DB, model.Category) ([]model.POI, error) {
			return nil, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"lat":1,"lon":1,"radius_km":-3}`, claims)
		require.NoError(t, SearchPOIsHandler(nil, newTestCipher(t))(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "radius")
	})

	t.Run("invalid category", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"lat":1,"lon":1,"radius_km":5,"category":"spaceport"}`, claims)
		require.NoError(t, SearchPOIsHandler(nil, newTestCipher(t))(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("results ordered by distance", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		cipher := newTestCipher(t)
		far := encryptedPOI(t, cipher, "far", "Far Cafe", 0.02, 0, model.CategoryCafe)
		near := encryptedPOI(t, cipher, "near", "Near Cafe", 0.005, 0, model.CategoryCafe)
		listEncryptedPOIs = func(_ context.Context, _ database.DB, cat model.Category) ([]model.POI, error) {
			require.Equal(t, model.CategoryCafe, cat)
			return []model.POI{far, near}, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"lat":0,"lon":0,"radius_km":10,"category":"cafe"}`, claims)
		require.NoError(t, SearchPOIsHandler(nil, cipher)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)

		var results []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
		require.Len(t, results, 2)
		require.Equal(t, "near", results[0]["id"])
		require.Equal(t, "far", results[1]["id"])
	})

	t.Run("store failure", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		listEncryptedPOIs = func(context.Context, database.DB, model.Category) ([]model.POI, error) {
			return nil, errors.New("db down")
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"lat":1,"lon":1,"radius_km":5}`, claims)
		require.NoError(t, SearchPOIsHandler(nil, newTestCipher(t))(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func jsonFloat(v float64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
