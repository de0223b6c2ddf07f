package store

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nmtri/storeratings/internal/platform/middleware"
	requestutil "github.com/nmtri/storeratings/internal/platform/request"
	"github.com/nmtri/storeratings/internal/platform/respond"
	"github.com/nmtri/storeratings/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)
	router.Use(middleware.RequireRole(sec.RoleStoreOwner))

	router.Get("/my", handler.myStores)

	return router
}

func (handler *Handler) myStores(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stores, err := handler.service.MyStores(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stores)
}
