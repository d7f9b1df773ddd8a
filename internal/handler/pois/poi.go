// File: internal/handler/pois/poi.go
package pois

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"safe-radius/internal/api"
	"safe-radius/internal/cache"
	"safe-radius/internal/database"
	"safe-radius/internal/geocode"
	"safe-radius/internal/middleware"
	"safe-radius/internal/model"
	"safe-radius/internal/service"
	"safe-radius/internal/store"
	"safe-radius/internal/worker"

	"github.com/labstack/echo/v4"
)

// Geocoder resolves a postal address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, area, city, postalCode string) (*geocode.Result, error)
}

var (
	createPOI         = store.CreatePOI
	listPOIsByOwner   = store.ListPOIsByOwner
	listEncryptedPOIs = store.ListEncryptedPOIs
	searchPOIs        = service.SearchPOIs
)

func poiResponse(p model.POI) api.POIResponse {
	return api.POIResponse{
		ID:         p.ID,
		Name:       p.Name,
		Address:    p.Address,
		Area:       p.Area,
		City:       p.City,
		PostalCode: p.PostalCode,
		Category:   string(p.Category),
		OwnerID:    p.OwnerID,
		CreatedAt:  p.CreatedAt,
	}
}

// CreatePOIHandler registers a new place for the calling owner. The address
// is geocoded server side and the name and coordinates are stored encrypted.
// @Summary     Create POI
// @Description Geocodes the address and stores the place with encrypted name and coordinates
// @Tags        pois
// @Accept      json
// @Produce     json
// @Param       poi body api.CreatePOIRequest true "POI data"
// @Success     201 {object} api.POIResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     502 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /pois [post]
func CreatePOIHandler(db database.DB, cipher *service.Cipher, geo Geocoder, rdb cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreatePOIRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		category, err := model.ParseCategory(req.Category)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		claims := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
		ctx := c.Request().Context()

		loc, err := geo.Geocode(ctx, req.Area, req.City, req.PostalCode)
		if err != nil {
			if errors.Is(err, geocode.ErrNoResult) {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "unable to geocode the provided address"})
			}
			return c.JSON(http.StatusBadGateway, api.ErrorResponse{Message: "geocoding service unavailable"})
		}

		encName, err := cipher.Encrypt(req.Name)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "encryption failed"})
		}
		encLat, err := cipher.Encrypt(strconv.FormatFloat(loc.Lat, 'f', -1, 64))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "encryption failed"})
		}
		encLon, err := cipher.Encrypt(strconv.FormatFloat(loc.Lon, 'f', -1, 64))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "encryption failed"})
		}

		poi := &model.POI{
			EncryptedName: encName,
			EncryptedLat:  encLat,
			EncryptedLon:  encLon,
			Name:          req.Name,
			Address:       req.Address,
			Area:          req.Area,
			City:          req.City,
			PostalCode:    req.PostalCode,
			Category:      category,
			OwnerID:       claims.UserID,
		}
		created, err := createPOI(ctx, db, poi)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to create poi"})
		}

		// The stats snapshot is stale now; refresh lazily.
		wp.Submit(func() {
			rdb.Del(context.Background(), cache.AdminStatsKey)
		})

		return c.JSON(http.StatusCreated, poiResponse(*created))
	}
}

// MyPOIsHandler lists the calling owner's places.
// @Summary     List own POIs
// @Tags        pois
// @Produce     json
// @Success     200 {array}  api.POIResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /pois/mine [get]
func MyPOIsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := c.Get(middleware.ContextUserKey).(*service.CustomClaims)

		pois, err := listPOIsByOwner(c.Request().Context(), db, claims.UserID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to list pois"})
		}

		resp := make([]api.POIResponse, 0, len(pois))
		for _, p := range pois {
			resp = append(resp, poiResponse(p))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// SearchPOIsHandler finds places within a radius of the requester, nearest
// first. Decryption happens here; coordinates never leave the server except
// for matching results.
// @Summary     Search nearby POIs
// @Tags        pois
// @Accept      json
// @Produce     json
// @Param       search body api.SearchRequest true "Search parameters"
// @Success     200 {array}  api.SearchResultResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /pois/search [post]
func SearchPOIsHandler(db database.DB, cipher *service.Cipher) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.SearchRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		var category model.Category
		if req.Category != "" {
			parsed, err := model.ParseCategory(req.Category)
			if err != nil {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
			}
			category = parsed
		}

		candidates, err := listEncryptedPOIs(c.Request().Context(), db, category)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to load pois"})
		}

		loc := service.Location{Lat: *req.Lat, Lon: *req.Lon}
		results, err := searchPOIs(cipher, loc, *req.RadiusKm, category, candidates)
		if err != nil {
			if errors.Is(err, service.ErrInvalidRadius) {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "search failed"})
		}

		resp := make([]api.SearchResultResponse, 0, len(results))
		for _, r := range results {
			resp = append(resp, api.SearchResultResponse{
				ID:         r.ID,
				Name:       r.Name,
				Lat:        r.Lat,
				Lon:        r.Lon,
				Category:   string(r.Category),
				DistanceKm: r.DistanceKm,
				CreatedAt:  r.CreatedAt,
			})
		}
		return c.JSON(http.StatusOK, resp)
	}
}
