package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"clublink/internal/domain"
	"clublink/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	membership  service.MembershipService
	clubs       service.ClubService
	invitations service.InvitationService
	db          Pinger
}

func NewHandler(membership service.MembershipService, clubs service.ClubService, invitations service.InvitationService, db Pinger) *Handler {
	return &Handler{
		membership:  membership,
		clubs:       clubs,
		invitations: invitations,
		db:          db,
	}
}

type updateClubRequest struct {
	Name             string   `json:"name"`
	ShortDescription string   `json:"short_description"`
	LongDescription  string   `json:"long_description"`
	University       string   `json:"university"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
}

type invitationRequest struct {
	Token string `json:"token"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	clubs, err := h.clubs.ListClubs(r.Context(), r.URL.Query().Get("university"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if clubs == nil {
		clubs = []domain.Club{}
	}
	writeJSON(w, http.StatusOK, clubs)
}

func (h *Handler) GetClub(w http.ResponseWriter, r *http.Request) {
	clubID, err := pathID(r, "clubID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	club, err := h.clubs.GetClub(r.Context(), clubID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, club)
}

func (h *Handler) UpdateClub(w http.ResponseWriter, r *http.Request) {
	clubID, err := pathID(r, "clubID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req updateClubRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	userID, _ := GetUserIDFromContext(r.Context())

	club, err := h.clubs.UpdateClub(r.Context(), userID, &domain.Club{
		ID:               clubID,
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		University:       req.University,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, club)
}

func (h *Handler) JoinClub(w http.ResponseWriter, r *http.Request) {
	clubID, err := pathID(r, "clubID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	userID, _ := GetUserIDFromContext(r.Context())

	result, err := h.membership.AttemptJoin(r.Context(), clubID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if result.Outcome == service.JoinOutcomeQueued {
		status = http.StatusAccepted
	}
	writeJSON(w, status, result)
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	clubID, err := pathID(r, "clubID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	members, err := h.clubs.ListMembers(r.Context(), clubID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if members == nil {
		members = []domain.MemberProfile{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *Handler) ListJoinRequests(w http.ResponseWriter, r *http.Request) {
	clubID, err := pathID(r, "clubID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	status := domain.JoinRequestStatus(r.URL.Query().Get("status"))
	requests, err := h.clubs.ListJoinRequests(r.Context(), clubID, status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if requests == nil {
		requests = []domain.JoinRequest{}
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.resolveRequest(w, r, h.membership.ApproveRequest)
}

func (h *Handler) DenyRequest(w http.ResponseWriter, r *http.Request) {
	h.resolveRequest(w, r, h.membership.DenyRequest)
}

func (h *Handler) resolveRequest(w http.ResponseWriter, r *http.Request, resolve func(ctx context.Context, requestID, approverID int32) (*domain.JoinRequest, error)) {
	requestID, err := pathID(r, "requestID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	approverID, _ := GetUserIDFromContext(r.Context())

	req, err := resolve(r.Context(), requestID, approverID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *Handler) ActivateMembership(w http.ResponseWriter, r *http.Request) {
	h.setMembership(w, r, h.membership.ActivateMembership)
}

func (h *Handler) DeactivateMembership(w http.ResponseWriter, r *http.Request) {
	h.setMembership(w, r, h.membership.DeactivateMembership)
}

func (h *Handler) setMembership(w http.ResponseWriter, r *http.Request, set func(ctx context.Context, actorID, userID, clubID int32) error) {
	clubID, err := pathID(r, "clubID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	memberID, err := pathID(r, "userID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	actorID, _ := GetUserIDFromContext(r.Context())

	if err := set(r.Context(), actorID, memberID, clubID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	h.redeemInvitation(w, r, h.invitations.Accept)
}

func (h *Handler) DeclineInvitation(w http.ResponseWriter, r *http.Request) {
	h.redeemInvitation(w, r, h.invitations.Decline)
}

func (h *Handler) redeemInvitation(w http.ResponseWriter, r *http.Request, redeem func(ctx context.Context, token string, actorID int32) (*domain.JoinRequest, error)) {
	var body invitationRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	if body.Token == "" {
		writeError(w, r, fmt.Errorf("%w: token is required", domain.ErrInvalid))
		return
	}
	userID, _ := GetUserIDFromContext(r.Context())

	req, err := redeem(r.Context(), body.Token, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func pathID(r *http.Request, name string) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad %s", domain.ErrInvalid, name)
	}
	return int32(id), nil
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", domain.ErrInvalid, err)
	}
	return nil
}
