package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clublink/internal/domain"
	"clublink/internal/security"
	"clublink/internal/service"
)

type apiFixture struct {
	membership  *MockMembershipService
	clubs       *MockClubService
	invitations *MockInvitationService
	tokens      security.TokenManager
	router      http.Handler
}

func newAPIFixture(pingErr error) *apiFixture {
	f := &apiFixture{
		membership:  new(MockMembershipService),
		clubs:       new(MockClubService),
		invitations: new(MockInvitationService),
		tokens:      security.NewTokenManager("test-secret-key-that-is-long-enough-1234", time.Hour),
	}
	h := NewHandler(f.membership, f.clubs, f.invitations, stubPinger{err: pingErr})
	f.router = NewRouter(h, NewAuthMiddleware(f.tokens))
	return f
}

func (f *apiFixture) do(t *testing.T, method, path, body string, userID int32) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if userID != 0 {
		token, err := f.tokens.GenerateAccessToken(userID, "user@uni.edu")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestHealth(t *testing.T) {
	rec := newAPIFixture(nil).do(t, http.MethodGet, "/api/v1/health", "", 0)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = newAPIFixture(errors.New("db down")).do(t, http.MethodGet, "/api/v1/health", "", 0)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	f := newAPIFixture(nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}

func TestAuthMiddleware(t *testing.T) {
	f := newAPIFixture(nil)
	f.clubs.On("ListClubs", mock.Anything, "UQ").Return([]domain.Club{{ID: 1, Name: "Chess"}}, nil)

	t.Run("Public route", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/clubs?university=UQ", "", 0)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Missing token", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/clubs/1/join", "", 0)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		f.membership.AssertNotCalled(t, "AttemptJoin", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Invitation token is not an access token", func(t *testing.T) {
		token, _, err := f.tokens.GenerateInvitationToken(5, time.Hour)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/clubs/1/join", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestJoinClub(t *testing.T) {
	t.Run("Admitted", func(t *testing.T) {
		f := newAPIFixture(nil)
		f.membership.On("AttemptJoin", mock.Anything, int32(1), int32(7)).
			Return(&service.JoinResult{Outcome: service.JoinOutcomeAdmitted, Member: &domain.Member{ID: 3}, Ratio: 0.25}, nil)

		rec := f.do(t, http.MethodPost, "/api/v1/clubs/1/join", "", 7)
		require.Equal(t, http.StatusOK, rec.Code)

		var body service.JoinResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, service.JoinOutcomeAdmitted, body.Outcome)
		assert.Equal(t, 0.25, body.Ratio)
	})

	t.Run("Zero ratio is reported", func(t *testing.T) {
		f := newAPIFixture(nil)
		f.membership.On("AttemptJoin", mock.Anything, int32(2), int32(7)).
			Return(&service.JoinResult{Outcome: service.JoinOutcomeAdmitted, Member: &domain.Member{ID: 4}, Ratio: 0}, nil)

		rec := f.do(t, http.MethodPost, "/api/v1/clubs/2/join", "", 7)
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body, "ratio")
		assert.Equal(t, 0.0, body["ratio"])
	})

	t.Run("Queued", func(t *testing.T) {
		f := newAPIFixture(nil)
		f.membership.On("AttemptJoin", mock.Anything, int32(1), int32(8)).
			Return(&service.JoinResult{Outcome: service.JoinOutcomeQueued, Request: &domain.JoinRequest{ID: 11}}, nil)

		rec := f.do(t, http.MethodPost, "/api/v1/clubs/1/join", "", 8)
		assert.Equal(t, http.StatusAccepted, rec.Code)
	})

	t.Run("Already a member", func(t *testing.T) {
		f := newAPIFixture(nil)
		f.membership.On("AttemptJoin", mock.Anything, int32(1), int32(7)).Return(nil, domain.ErrConflict)

		rec := f.do(t, http.MethodPost, "/api/v1/clubs/1/join", "", 7)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestResolveRequest(t *testing.T) {
	f := newAPIFixture(nil)
	f.membership.On("ApproveRequest", mock.Anything, int32(5), int32(9)).
		Return(&domain.JoinRequest{ID: 5, Status: domain.JoinRequestStatusApproved}, nil)
	f.membership.On("DenyRequest", mock.Anything, int32(6), int32(9)).Return(nil, domain.ErrNotFound)

	rec := f.do(t, http.MethodPost, "/api/v1/requests/5/approve", "", 9)
	require.Equal(t, http.StatusOK, rec.Code)
	var req domain.JoinRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &req))
	assert.Equal(t, domain.JoinRequestStatusApproved, req.Status)

	rec = f.do(t, http.MethodPost, "/api/v1/requests/6/deny", "", 9)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetMembership(t *testing.T) {
	f := newAPIFixture(nil)
	f.membership.On("DeactivateMembership", mock.Anything, int32(9), int32(3), int32(1)).Return(nil)
	f.membership.On("ActivateMembership", mock.Anything, int32(9), int32(4), int32(1)).Return(domain.ErrNotFound)

	rec := f.do(t, http.MethodPost, "/api/v1/clubs/1/members/3/deactivate", "", 9)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/clubs/1/members/4/activate", "", 9)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvitations(t *testing.T) {
	f := newAPIFixture(nil)
	f.invitations.On("Accept", mock.Anything, "good", int32(3)).
		Return(&domain.JoinRequest{ID: 5, Status: domain.JoinRequestStatusApproved}, nil)
	f.invitations.On("Decline", mock.Anything, "lapsed", int32(3)).Return(nil, domain.ErrExpired)
	f.invitations.On("Accept", mock.Anything, "forged", int32(3)).Return(nil, domain.ErrInvalid)

	rec := f.do(t, http.MethodPost, "/api/v1/invitations/accept", `{"token":"good"}`, 3)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/invitations/decline", `{"token":"lapsed"}`, 3)
	assert.Equal(t, http.StatusGone, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/invitations/accept", `{"token":"forged"}`, 3)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/invitations/accept", `{"token":`, 3)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/invitations/accept", `{}`, 3)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateClub(t *testing.T) {
	f := newAPIFixture(nil)
	f.clubs.On("UpdateClub", mock.Anything, int32(9), mock.MatchedBy(func(c *domain.Club) bool {
		return c.ID == 1 && c.Name == "Chess Society" && c.Latitude != nil
	})).Return(&domain.Club{ID: 1, Name: "Chess Society"}, nil)

	rec := f.do(t, http.MethodPut, "/api/v1/clubs/1", `{"name":"Chess Society","latitude":-27.5}`, 9)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/v1/clubs/1", `{"ratio":5}`, 9)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInternalErrorsAreHidden(t *testing.T) {
	f := newAPIFixture(nil)
	f.clubs.On("GetClub", mock.Anything, int32(1)).Return(nil, domain.Dependency("postgres", errors.New("password authentication failed")))

	rec := f.do(t, http.MethodGet, "/api/v1/clubs/1", "", 0)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decodeError(t, rec))
}

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrConflict, http.StatusConflict},
		{domain.ErrExpired, http.StatusGone},
		{domain.ErrInvalid, http.StatusBadRequest},
		{domain.Dependency("smtp", errors.New("x")), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, StatusForError(tc.err), tc.err.Error())
	}
}

func TestListJoinRequests(t *testing.T) {
	f := newAPIFixture(nil)
	f.clubs.On("ListJoinRequests", mock.Anything, int32(1), domain.JoinRequestStatusPending).
		Return([]domain.JoinRequest(nil), nil)
	f.clubs.On("ListMembers", mock.Anything, int32(1)).
		Return([]domain.MemberProfile{{Name: "Ana"}}, nil)

	rec := f.do(t, http.MethodGet, "/api/v1/clubs/1/requests?status=Pending", "", 9)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/api/v1/clubs/1/members", "", 9)
	assert.Equal(t, http.StatusOK, rec.Code)
}
