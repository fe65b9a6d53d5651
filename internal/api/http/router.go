package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter registers every API route under /api/v1. Route names key the security levels
// in config.EndpointSecurityConfig.
func NewRouter(h *Handler, auth *AuthMiddleware) *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(RequestIDMiddleware, LoggingMiddleware, auth.Middleware)

	api.HandleFunc("/health", h.Health).Methods(http.MethodGet).Name("Health")

	api.HandleFunc("/clubs", h.ListClubs).Methods(http.MethodGet).Name("ListClubs")
	api.HandleFunc("/clubs/{clubID:[0-9]+}", h.GetClub).Methods(http.MethodGet).Name("GetClub")
	api.HandleFunc("/clubs/{clubID:[0-9]+}", h.UpdateClub).Methods(http.MethodPut).Name("UpdateClub")
	api.HandleFunc("/clubs/{clubID:[0-9]+}/join", h.JoinClub).Methods(http.MethodPost).Name("JoinClub")
	api.HandleFunc("/clubs/{clubID:[0-9]+}/members", h.ListMembers).Methods(http.MethodGet).Name("ListMembers")
	api.HandleFunc("/clubs/{clubID:[0-9]+}/requests", h.ListJoinRequests).Methods(http.MethodGet).Name("ListJoinRequests")
	api.HandleFunc("/clubs/{clubID:[0-9]+}/members/{userID:[0-9]+}/activate", h.ActivateMembership).Methods(http.MethodPost).Name("ActivateMembership")
	api.HandleFunc("/clubs/{clubID:[0-9]+}/members/{userID:[0-9]+}/deactivate", h.DeactivateMembership).Methods(http.MethodPost).Name("DeactivateMembership")

	api.HandleFunc("/requests/{requestID:[0-9]+}/approve", h.ApproveRequest).Methods(http.MethodPost).Name("ApproveRequest")
	api.HandleFunc("/requests/{requestID:[0-9]+}/deny", h.DenyRequest).Methods(http.MethodPost).Name("DenyRequest")

	api.HandleFunc("/invitations/accept", h.AcceptInvitation).Methods(http.MethodPost).Name("AcceptInvitation")
	api.HandleFunc("/invitations/decline", h.DeclineInvitation).Methods(http.MethodPost).Name("DeclineInvitation")

	return router
}
