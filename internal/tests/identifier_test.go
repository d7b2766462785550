package tests

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"ridebook/internal/domain"
	"ridebook/internal/service"
)

// ──────────────────────────────────────────────
// 5. SEQUENTIAL IDENTIFIERS
// ──────────────────────────────────────────────

func TestGenerateAdminID_SequentialCalls_IncreaseAndPad(t *testing.T) {
	t.Parallel()

	svc := service.NewIdentifierService(NewMockCounterRepository())
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		id, err := svc.GenerateAdminID(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := fmt.Sprintf("AD%03d", i)
		if id != want {
			t.Fatalf("call %d: expected %s, got %s", i, want, id)
		}
	}
}

func TestGenerateAdminID_GrowsPastThreeDigits(t *testing.T) {
	t.Parallel()

	counters := NewMockCounterRepository()
	counters.SetCounter("adminId", 999)
	svc := service.NewIdentifierService(counters)

	id, err := svc.GenerateAdminID(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "AD1000" {
		t.Errorf("expected AD1000, got %s", id)
	}
}

func TestGenerateAdminID_ConcurrentCalls_AreUnique(t *testing.T) {
	t.Parallel()

	counters := NewMockCounterRepository()
	svc := service.NewIdentifierService(counters)

	const numCalls = 100
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[string]struct{}, numCalls)
	)

	for i := 0; i < numCalls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := svc.GenerateAdminID(context.Background())
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			mu.Lock()
			ids[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(ids) != numCalls {
		t.Errorf("expected %d unique ids, got %d", numCalls, len(ids))
	}
	if counters.Current("adminId") != numCalls {
		t.Errorf("expected counter at %d, got %d", numCalls, counters.Current("adminId"))
	}
}

func TestGenerate_KindsUseSeparateCounters(t *testing.T) {
	t.Parallel()

	svc := service.NewIdentifierService(NewMockCounterRepository())
	ctx := context.Background()

	testCases := []struct {
		kind service.IdentifierKind
		want string
	}{
		{kind: service.IdentifierAdmin, want: "AD001"},
		{kind: service.IdentifierDriver, want: "DR001"},
		{kind: service.IdentifierDriver, want: "DR002"},
		{kind: service.IdentifierOperator, want: "OP001"},
		{kind: service.IdentifierAdmin, want: "AD002"},
	}

	for _, tc := range testCases {
		id, err := svc.Generate(ctx, tc.kind)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != tc.want {
			t.Errorf("expected %s, got %s", tc.want, id)
		}
	}

	if _, err := svc.Generate(ctx, "passenger"); !errors.Is(err, service.ErrUnknownIdentifierKind) {
		t.Errorf("expected ErrUnknownIdentifierKind, got %v", err)
	}
}

func TestGenerateAdminIDEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	for _, want := range []string{"AD001", "AD002"} {
		rec := env.do(t, http.MethodPost, "/api/users/generate-admin-id", nil, "")
		expectStatus(t, rec, http.StatusOK)

		var resp struct {
			Success bool   `json:"success"`
			AdminID string `json:"adminId"`
		}
		decode(t, rec, &resp)
		if !resp.Success || resp.AdminID != want {
			t.Errorf("expected {true %s}, got %+v", want, resp)
		}
	}
}

func TestGenerateAdminIDEndpoint_CounterFailure_Returns500(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	env.counters.NextError = errors.New("store unavailable")

	rec := env.do(t, http.MethodPost, "/api/users/generate-admin-id", nil, "")
	expectStatus(t, rec, http.StatusInternalServerError)

	var resp struct {
		Error string `json:"error"`
	}
	decode(t, rec, &resp)
	if resp.Error != "Internal server error" {
		t.Errorf("unexpected error %q", resp.Error)
	}
}

// ──────────────────────────────────────────────
// 6. USER REGISTRATION
// ──────────────────────────────────────────────

func TestRegisterUser_AssignsCustomIDByRole(t *testing.T) {
	t.Parallel()

	users := NewMockUserRepository()
	svc := service.NewUserService(users, service.NewIdentifierService(NewMockCounterRepository()))
	ctx := context.Background()

	testCases := []struct {
		role domain.UserRole
		want string
	}{
		{role: domain.UserRoleDriver, want: "DR001"},
		{role: domain.UserRoleOperator, want: "OP001"},
		{role: domain.UserRolePassenger, want: ""},
		{role: domain.UserRoleDriver, want: "DR002"},
	}

	for _, tc := range testCases {
		user, err := svc.Register(ctx, service.RegisterUserRequest{Name: "Alex", Role: tc.role})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.CustomID != tc.want {
			t.Errorf("role %s: expected customId %q, got %q", tc.role, tc.want, user.CustomID)
		}
		if _, err := users.GetByID(ctx, user.ID); err != nil {
			t.Errorf("expected user to be stored: %v", err)
		}
	}
}

func TestRegisterUser_Validation(t *testing.T) {
	t.Parallel()

	svc := service.NewUserService(NewMockUserRepository(), nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, service.RegisterUserRequest{Role: domain.UserRoleDriver}); !errors.Is(err, service.ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
	if _, err := svc.Register(ctx, service.RegisterUserRequest{Name: "Alex", Role: "pilot"}); !errors.Is(err, service.ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserEndpoints(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodPost, "/api/users", map[string]any{
		"id": "op-1", "name": "Olu", "role": "operator",
	}, "")
	expectStatus(t, rec, http.StatusCreated)

	rec = env.do(t, http.MethodGet, "/api/users/op-1", nil, "")
	expectStatus(t, rec, http.StatusOK)

	var resp struct {
		ID       string `json:"id"`
		Role     string `json:"role"`
		CustomID string `json:"customId"`
	}
	decode(t, rec, &resp)
	if resp.Role != "operator" || resp.CustomID != "OP001" {
		t.Errorf("unexpected user: %+v", resp)
	}

	rec = env.do(t, http.MethodGet, "/api/users/nobody", nil, "")
	expectStatus(t, rec, http.StatusNotFound)
}
