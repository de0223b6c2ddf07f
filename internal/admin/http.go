// Copyright (c) 2026 StoreRatings. All rights reserved.
// Author: tri.nguyenminh.dev@gmail.com

package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nmtri/storeratings/internal/platform/middleware"
	requestutil "github.com/nmtri/storeratings/internal/platform/request"
	"github.com/nmtri/storeratings/internal/platform/respond"
	"github.com/nmtri/storeratings/internal/platform/sec"
	"github.com/nmtri/storeratings/internal/platform/validate"
	"github.com/nmtri/storeratings/internal/users/auth"
)

// Handler implements the administration HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the admin router. The whole subtree requires the admin
// role exactly; store owners and normal users get a 403.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/dashboard", handler.dashboard)

	router.Route("/users", func(r chi.Router) {
		r.Get("/", handler.listUsers)
		r.Post("/", handler.createUser)
		r.Get("/{userId}", handler.getUser)
	})

	router.Route("/stores", func(r chi.Router) {
		r.Get("/", handler.listStores)
		r.Post("/", handler.createStore)
		r.Get("/{storeId}", handler.getStore)
	})

	return router
}

// # Request Payloads

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

type createStoreRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	OwnerID string `json:"owner_id"`
}

/*
Dashboard returns platform totals.

GET /api/admin/dashboard

Response:
  - 200: DashboardCounts: Users, stores, ratings totals
*/
func (handler *Handler) dashboard(writer http.ResponseWriter, request *http.Request) {
	counts, err := handler.service.Dashboard(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, counts)
}

/*
CreateUser enrolls an account with an explicit role.

POST /api/admin/users

Request:
  - Body: createUserRequest (Name, Email, Password, Address, Role)

Response:
  - 201: User: Created account
  - 400: ErrInvalidJSON: Validation failure or unknown role
  - 409: ErrConflict: Email already exists
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MinLen(FieldName, input.Name, auth.NameMinLen).
		MaxLen(FieldName, input.Name, auth.NameMaxLen).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		Password(FieldPassword, input.Password).
		MaxLen(FieldAddress, input.Address, auth.AddressMaxLen).
		Required(FieldRole, input.Role).
		OneOf(FieldRole, input.Role, string(sec.RoleAdmin), string(sec.RoleNormal), string(sec.RoleStoreOwner))

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.CreateUser(request.Context(), CreateUserInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Address:  input.Address,
		Role:     input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
ListUsers returns directory users matching the query filters.

GET /api/admin/users?name=&email=&address=&role=

Response:
  - 200: []User: Matching accounts
  - 400: ErrInvalidJSON: Unknown role filter
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	filter := UserFilter{
		Name:    query.Get(FieldName),
		Email:   query.Get(FieldEmail),
		Address: query.Get(FieldAddress),
		Role:    query.Get(FieldRole),
	}

	users, err := handler.service.ListUsers(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, users)
}

/*
GetUser returns one account with owner aggregates.

GET /api/admin/users/{userId}

Response:
  - 200: UserDetail: Account, plus average rating for store owners
  - 404: ErrNotFound: Unknown user
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userId")

	detail, err := handler.service.GetUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

/*
CreateStore registers a new store in the directory.

POST /api/admin/stores

Request:
  - Body: createStoreRequest (Name, Email, Address, OwnerID)

Response:
  - 201: Store: Created store
  - 400: ErrInvalidJSON: Validation failure or bad owner
*/
func (handler *Handler) createStore(writer http.ResponseWriter, request *http.Request) {
	var input createStoreRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, auth.NameMaxLen).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldAddress, input.Address).
		MaxLen(FieldAddress, input.Address, auth.AddressMaxLen)

	if input.OwnerID != "" {
		validator.UUID(FieldOwnerID, input.OwnerID)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateStore(request.Context(), CreateStoreInput{
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
		OwnerID: input.OwnerID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
ListStores returns directory stores matching the query filters.

GET /api/admin/stores?name=&email=&address=

Response:
  - 200: []StoreRow: Matching stores with live averages
*/
func (handler *Handler) listStores(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	filter := StoreFilter{
		Name:    query.Get(FieldName),
		Email:   query.Get(FieldEmail),
		Address: query.Get(FieldAddress),
	}

	stores, err := handler.service.ListStores(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stores)
}

/*
GetStore returns one store with its live average and its ratings.

GET /api/admin/stores/{storeId}

Response:
  - 200: StoreDetail: Store with live average and individual ratings
  - 404: ErrNotFound: Unknown store
*/
func (handler *Handler) getStore(writer http.ResponseWriter, request *http.Request) {
	storeID := requestutil.Param(request, "storeId")

	row, err := handler.service.GetStore(request.Context(), storeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, row)
}
