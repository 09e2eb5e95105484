package router

import (
	"net/http"

	"github.com/casbin/casbin/v3"
	"github.com/samber/lo"
)

// RouteClass controls how the gate treats a registered route.
type RouteClass int

const (
	// RouteProtected requires a valid token; the default for unknown routes.
	RouteProtected RouteClass = iota
	// RoutePublic is reachable with or without a token.
	RoutePublic
	// RouteAuthOnly is meant for unauthenticated visitors; an authenticated
	// request is redirected to its role landing page.
	RouteAuthOnly
)

// Decision is the gate's verdict for a request.
type Decision int

const (
	// DecisionAllow lets the request through.
	DecisionAllow Decision = iota
	// DecisionRedirect sends the caller to its role landing page.
	DecisionRedirect
	// DecisionUnauthorized rejects the request with 401.
	DecisionUnauthorized
	// DecisionForbidden rejects the request with 403.
	DecisionForbidden
)

// Route identifies a registered endpoint by method and route pattern.
type Route struct {
	// Method is the HTTP method.
	Method string
	// Path is the route pattern as registered on the router.
	Path string
}

// GateConfig declares the route classes and role landing pages for a Gate.
type GateConfig struct {
	// Public lists routes reachable without a token.
	Public []Route
	// AuthOnly lists routes meant for unauthenticated visitors.
	AuthOnly []Route
	// Landings maps a role to its landing path after sign-in.
	Landings map[string]string
	// DefaultLanding is used when a role has no landing entry.
	DefaultLanding string
	// Enforcer applies role-based policies to protected routes. Optional;
	// when nil every authenticated request passes.
	Enforcer *casbin.Enforcer
}

// Gate classifies requests into allow, redirect, 401 or 403.
//
// The decision is a pure function of method, route, token validity and role,
// so it can be tested without HTTP plumbing.
type Gate struct {
	classes        map[string]map[string]RouteClass
	landings       map[string]string
	defaultLanding string
	enforcer       *casbin.Enforcer
}

// NewGate builds a Gate from the given configuration.
func NewGate(cfg GateConfig) *Gate {
	classes := make(map[string]map[string]RouteClass)

	register := func(routes []Route, class RouteClass) {
		lo.ForEach(routes, func(rt Route, _ int) {
			if _, ok := classes[rt.Method]; !ok {
				classes[rt.Method] = make(map[string]RouteClass)
			}
			classes[rt.Method][rt.Path] = class
		})
	}
	register(cfg.Public, RoutePublic)
	register(cfg.AuthOnly, RouteAuthOnly)

	defaultLanding := cfg.DefaultLanding
	if defaultLanding == "" {
		defaultLanding = "/"
	}

	return &Gate{
		classes:        classes,
		landings:       cfg.Landings,
		defaultLanding: defaultLanding,
		enforcer:       cfg.Enforcer,
	}
}

// Classify returns the route class; unknown routes are protected.
func (g *Gate) Classify(method, route string) RouteClass {
	if byPath, ok := g.classes[method]; ok {
		if class, ok := byPath[route]; ok {
			return class
		}
	}
	return RouteProtected
}

// Landing returns the landing path for a role.
func (g *Gate) Landing(role string) string {
	if path, ok := g.landings[role]; ok {
		return path
	}
	return g.defaultLanding
}

// Decide returns the verdict for a request and, for redirects, the target.
//
// authenticated reports whether the request carried a valid token; role is
// the token's role claim and is ignored when authenticated is false.
func (g *Gate) Decide(method, route string, authenticated bool, role string) (Decision, string) {
	switch g.Classify(method, route) {
	case RoutePublic:
		return DecisionAllow, ""

	case RouteAuthOnly:
		if authenticated {
			return DecisionRedirect, g.Landing(role)
		}
		return DecisionAllow, ""

	default:
		if !authenticated {
			return DecisionUnauthorized, ""
		}
		if g.enforcer == nil {
			return DecisionAllow, ""
		}

		ok, err := g.enforcer.Enforce(role, route, method)
		if err != nil || !ok {
			return DecisionForbidden, ""
		}
		return DecisionAllow, ""
	}
}

// RedirectStatus is the status code used for landing redirects.
const RedirectStatus = http.StatusSeeOther
