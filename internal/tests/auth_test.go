package tests

import (
	"net/http"
	"testing"
	"time"

	"ridebook/internal/auth"
	"ridebook/internal/domain"
)

// ──────────────────────────────────────────────
// 12. ROLE-PROTECTED ROUTES
// ──────────────────────────────────────────────

func TestProtectedRoutes_RequireRole(t *testing.T) {
	t.Parallel()

	issuer := auth.NewIssuer("test-secret", "ridebook-test", time.Hour)
	env := newTestEnv(t, issuer)
	env.bookings.AddBooking(newPendingBooking("booking-1"))

	token := func(role domain.UserRole) string {
		t.Helper()
		signed, _, err := issuer.Issue("user-"+string(role), role)
		if err != nil {
			t.Fatalf("failed to issue token: %v", err)
		}
		return signed
	}

	testCases := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{name: "booking without token", method: http.MethodGet, path: "/api/operator/bookings/booking-1", want: http.StatusUnauthorized},
		{name: "booking with garbage token", method: http.MethodGet, path: "/api/operator/bookings/booking-1", token: "garbage", want: http.StatusUnauthorized},
		{name: "booking as passenger", method: http.MethodGet, path: "/api/operator/bookings/booking-1", token: token(domain.UserRolePassenger), want: http.StatusForbidden},
		{name: "booking as driver", method: http.MethodGet, path: "/api/operator/bookings/booking-1", token: token(domain.UserRoleDriver), want: http.StatusOK},
		{name: "booking as operator", method: http.MethodGet, path: "/api/operator/bookings/booking-1", token: token(domain.UserRoleOperator), want: http.StatusOK},
		{name: "admin id as operator", method: http.MethodPost, path: "/api/users/generate-admin-id", token: token(domain.UserRoleOperator), want: http.StatusForbidden},
		{name: "admin id as admin", method: http.MethodPost, path: "/api/users/generate-admin-id", token: token(domain.UserRoleAdmin), want: http.StatusOK},
	}

	for _, tc := range testCases {
		rec := env.do(t, tc.method, tc.path, nil, tc.token)
		if rec.Code != tc.want {
			t.Errorf("%s: expected %d, got %d: %s", tc.name, tc.want, rec.Code, rec.Body.String())
		}
	}
}

func TestGuestLogin_IssuesUsableToken(t *testing.T) {
	t.Parallel()

	issuer := auth.NewIssuer("test-secret", "ridebook-test", time.Hour)
	env := newTestEnv(t, issuer)

	rec := env.do(t, http.MethodPost, "/api/auth/guest", map[string]any{"role": "admin"}, "")
	expectStatus(t, rec, http.StatusOK)

	var resp struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
		Role   string `json:"role"`
	}
	decode(t, rec, &resp)
	if resp.Role != "admin" || resp.UserID == "" {
		t.Errorf("unexpected login response: %+v", resp)
	}

	rec = env.do(t, http.MethodPost, "/api/users/generate-admin-id", nil, resp.Token)
	expectStatus(t, rec, http.StatusOK)

	rec = env.do(t, http.MethodPost, "/api/auth/guest", map[string]any{"role": "pilot"}, "")
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestGuestLogin_AuthDisabled(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	rec := env.do(t, http.MethodPost, "/api/auth/guest", map[string]any{"role": "admin"}, "")
	expectStatus(t, rec, http.StatusNotFound)
}
