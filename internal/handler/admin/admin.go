// File: internal/handler/admin/admin.go
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"safe-radius/internal/api"
	"safe-radius/internal/cache"
	"safe-radius/internal/database"
	"safe-radius/internal/middleware"
	"safe-radius/internal/model"
	"safe-radius/internal/service"
	"safe-radius/internal/store"
	"safe-radius/internal/worker"

	"github.com/labstack/echo/v4"
)

// statsTTL keeps the dashboard cheap without going noticeably stale.
const statsTTL = time.Minute

var (
	listPOIsWithOwners = store.ListPOIsWithOwners
	deletePOI          = store.DeletePOI
	listUsers          = store.ListUsers
	updateUserRole     = store.UpdateUserRole
	countUsersByRole   = store.CountUsersByRole
	countPOIs          = store.CountPOIs
	countPOIsSince     = store.CountPOIsSince
)

// ListAllPOIsHandler lists every place with its owning user.
// @Summary     List all POIs
// @Tags        admin
// @Produce     json
// @Success     200 {array}  api.POIResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /admin/pois [get]
func ListAllPOIsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		pois, err := listPOIsWithOwners(c.Request().Context(), db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to list pois"})
		}

		resp := make([]api.POIResponse, 0, len(pois))
		for _, p := range pois {
			resp = append(resp, api.POIResponse{
				ID:         p.ID,
				Name:       p.Name,
				Address:    p.Address,
				Area:       p.Area,
				City:       p.City,
				PostalCode: p.PostalCode,
				Category:   string(p.Category),
				OwnerID:    p.OwnerID,
				OwnerName:  p.OwnerName,
				OwnerEmail: p.OwnerEmail,
				CreatedAt:  p.CreatedAt,
			})
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// DeletePOIHandler removes a place by id.
// @Summary     Delete POI
// @Tags        admin
// @Produce     json
// @Param       id path string true "POI ID"
// @Success     204 "No Content"
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /admin/pois/{id} [delete]
func DeletePOIHandler(db database.DB, rdb cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		poiID := c.Param("id")

		if err := deletePOI(c.Request().Context(), db, poiID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "poi not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to delete poi"})
		}

		wp.Submit(func() {
			rdb.Del(context.Background(), cache.AdminStatsKey)
		})

		return c.NoContent(http.StatusNoContent)
	}
}

// ListUsersHandler lists every registered account.
// @Summary     List users
// @Tags        admin
// @Produce     json
// @Success     200 {array}  api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /admin/users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to list users"})
		}

		resp := make([]api.UserResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, api.UserResponse{
				ID:        u.ID,
				Name:      u.Name,
				Email:     u.Email,
				Role:      string(u.Role),
				CreatedAt: u.CreatedAt,
			})
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// UpdateUserRoleHandler changes a user's role. An admin may not lower their
// own role; losing the last admin this way would lock everyone out.
// @Summary     Update user role
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       id   path string                 true "User ID"
// @Param       role body api.UpdateRoleRequest  true "New role"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /admin/users/{id}/role [put]
func UpdateUserRoleHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		targetID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user id"})
		}

		var req api.UpdateRoleRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		role, err := model.ParseRole(req.Role)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		claims := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
		if err := service.ValidateRoleChange(claims.UserID, targetID, role); err != nil {
			return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: err.Error()})
		}

		if err := updateUserRole(c.Request().Context(), db, targetID, role); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to update role"})
		}

		return c.NoContent(http.StatusNoContent)
	}
}

// StatsHandler reports platform totals. The snapshot is cached in Redis and
// invalidated when POIs change.
// @Summary     Platform statistics
// @Tags        admin
// @Produce     json
// @Success     200 {object} api.StatsResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /admin/stats [get]
func StatsHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		if raw, err := rdb.Get(ctx, cache.AdminStatsKey).Result(); err == nil {
			var cached api.StatsResponse
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return c.JSON(http.StatusOK, cached)
			}
		}

		totalUsers, err := countUsersByRole(ctx, db, model.RoleUser)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to load stats"})
		}
		totalOwners, err := countUsersByRole(ctx, db, model.RoleOwner)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to load stats"})
		}
		totalPOIs, err := countPOIs(ctx, db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to load stats"})
		}
		recent, err := countPOIsSince(ctx, db, time.Now().AddDate(0, 0, -7))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to load stats"})
		}

		stats := api.StatsResponse{
			TotalUsers:     totalUsers,
			TotalOwners:    totalOwners,
			TotalPOIs:      totalPOIs,
			RecentActivity: recent,
		}

		if raw, err := json.Marshal(stats); err == nil {
			// Best effort; a cache miss next time just recounts.
			rdb.Set(ctx, cache.AdminStatsKey, raw, statsTTL)
		}

		return c.JSON(http.StatusOK, stats)
	}
}
