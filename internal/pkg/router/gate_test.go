package router

import (
	"net/http"
	"testing"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
)

func newTestGate(t *testing.T, enforcer *casbin.Enforcer) *Gate {
	t.Helper()

	return NewGate(GateConfig{
		Public: []Route{
			{Method: http.MethodGet, Path: "/healthz"},
		},
		AuthOnly: []Route{
			{Method: http.MethodPost, Path: "/api/v1/auth/login"},
			{Method: http.MethodPost, Path: "/api/v1/auth/register"},
		},
		Landings: map[string]string{
			"student":    "/dashboard",
			"instructor": "/teach",
			"admin":      "/admin",
		},
		DefaultLanding: "/",
		Enforcer:       enforcer,
	})
}

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		t.Fatalf("model.NewModelFromString() error = %v", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		t.Fatalf("casbin.NewEnforcer() error = %v", err)
	}

	if _, err := e.AddPolicy("admin", "/api/v1/auth/users/:email", http.MethodGet); err != nil {
		t.Fatalf("AddPolicy() error = %v", err)
	}
	if _, err := e.AddPolicy("student", "/api/v1/auth/profile", http.MethodGet); err != nil {
		t.Fatalf("AddPolicy() error = %v", err)
	}

	return e
}

func TestGate_Decide(t *testing.T) {
	gate := newTestGate(t, nil)

	tests := []struct {
		name          string
		method        string
		route         string
		authenticated bool
		role          string
		wantDecision  Decision
		wantTarget    string
	}{
		{
			name:         "public route without token",
			method:       http.MethodGet,
			route:        "/healthz",
			wantDecision: DecisionAllow,
		},
		{
			name:          "public route with token",
			method:        http.MethodGet,
			route:         "/healthz",
			authenticated: true,
			role:          "student",
			wantDecision:  DecisionAllow,
		},
		{
			name:         "auth-only route without token",
			method:       http.MethodPost,
			route:        "/api/v1/auth/login",
			wantDecision: DecisionAllow,
		},
		{
			name:          "auth-only route redirects student",
			method:        http.MethodPost,
			route:         "/api/v1/auth/login",
			authenticated: true,
			role:          "student",
			wantDecision:  DecisionRedirect,
			wantTarget:    "/dashboard",
		},
		{
			name:          "auth-only route redirects instructor",
			method:        http.MethodPost,
			route:         "/api/v1/auth/register",
			authenticated: true,
			role:          "instructor",
			wantDecision:  DecisionRedirect,
			wantTarget:    "/teach",
		},
		{
			name:          "auth-only route redirects admin",
			method:        http.MethodPost,
			route:         "/api/v1/auth/login",
			authenticated: true,
			role:          "admin",
			wantDecision:  DecisionRedirect,
			wantTarget:    "/admin",
		},
		{
			name:          "unknown role falls back to default landing",
			method:        http.MethodPost,
			route:         "/api/v1/auth/login",
			authenticated: true,
			role:          "mystery",
			wantDecision:  DecisionRedirect,
			wantTarget:    "/",
		},
		{
			name:         "protected route without token",
			method:       http.MethodGet,
			route:        "/api/v1/auth/profile",
			wantDecision: DecisionUnauthorized,
		},
		{
			name:          "protected route with token and no enforcer",
			method:        http.MethodGet,
			route:         "/api/v1/auth/profile",
			authenticated: true,
			role:          "student",
			wantDecision:  DecisionAllow,
		},
		{
			name:         "unregistered route defaults to protected",
			method:       http.MethodGet,
			route:        "/api/v1/unknown",
			wantDecision: DecisionUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			decision, target := gate.Decide(tt.method, tt.route, tt.authenticated, tt.role)

			// Assert
			if decision != tt.wantDecision {
				t.Fatalf("decision = %v, want %v", decision, tt.wantDecision)
			}
			if target != tt.wantTarget {
				t.Fatalf("target = %q, want %q", target, tt.wantTarget)
			}
		})
	}
}

func TestGate_DecideWithEnforcer(t *testing.T) {
	// Arrange
	gate := newTestGate(t, newTestEnforcer(t))

	tests := []struct {
		name         string
		method       string
		route        string
		role         string
		wantDecision Decision
	}{
		{
			name:         "admin allowed on directory",
			method:       http.MethodGet,
			route:        "/api/v1/auth/users/:email",
			role:         "admin",
			wantDecision: DecisionAllow,
		},
		{
			name:         "student forbidden on directory",
			method:       http.MethodGet,
			route:        "/api/v1/auth/users/:email",
			role:         "student",
			wantDecision: DecisionForbidden,
		},
		{
			name:         "student allowed on own profile",
			method:       http.MethodGet,
			route:        "/api/v1/auth/profile",
			role:         "student",
			wantDecision: DecisionAllow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			decision, _ := gate.Decide(tt.method, tt.route, true, tt.role)

			// Assert
			if decision != tt.wantDecision {
				t.Fatalf("decision = %v, want %v", decision, tt.wantDecision)
			}
		})
	}
}
