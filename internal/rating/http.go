// Copyright (c) 2026 StoreRatings. All rights reserved.
// Author: tri.nguyenminh.dev@gmail.com

package rating

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nmtri/storeratings/internal/platform/middleware"
	requestutil "github.com/nmtri/storeratings/internal/platform/request"
	"github.com/nmtri/storeratings/internal/platform/respond"
	"github.com/nmtri/storeratings/internal/platform/sec"
	"github.com/nmtri/storeratings/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the rating router. Submission and browsing belong to
// normal users; the per-store report belongs to store owners. Roles are
// peers here, so an admin hitting these routes gets a 403.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleNormal))
		r.Post("/submit", handler.submit)
		r.Get("/stores", handler.browseStores)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleStoreOwner))
		r.Get("/store/{storeId}", handler.storeRatings)
	})

	return router
}

type submitRequest struct {
	StoreID string `json:"store_id"`
	Rating  int    `json:"rating"`
}

func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input submitRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldStoreID, input.StoreID).
		UUID(FieldStoreID, input.StoreID).
		Range(FieldRating, input.Rating, MinRating, MaxRating)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	persisted, err := handler.service.Submit(request.Context(), userID, input.StoreID, input.Rating)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, persisted)
}

func (handler *Handler) browseStores(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := StoreFilter{
		Name:    request.URL.Query().Get("name"),
		Address: request.URL.Query().Get("address"),
	}

	stores, err := handler.service.BrowseStores(request.Context(), userID, filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stores)
}

func (handler *Handler) storeRatings(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	storeID := requestutil.Param(request, "storeId")

	report, err := handler.service.StoreRatings(request.Context(), userID, storeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}
