package router

import (
	"net/http"
	"strings"

	"github.com/arimasna/pelajarin/internal/pkg/jwt"
)

// AccessTokenCookie is the cookie checked when no Authorization header is present.
const AccessTokenCookie = "access_token"

func extractToken(r *http.Request) string {
	if p := strings.Fields(r.Header.Get("Authorization")); len(p) == 2 && strings.EqualFold(p[0], "Bearer") {
		return p[1]
	}

	if c, err := r.Cookie(AccessTokenCookie); err == nil {
		return c.Value
	}

	return ""
}

func middlewareGate(verifier jwt.JWT, gate *Gate) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)

			token := extractToken(r)

			var claims jwt.Claims
			authenticated := false
			if token != "" {
				if c, err := verifier.Verify(token); err == nil {
					claims = c
					authenticated = true
				}
			}

			decision, target := gate.Decide(r.Method, route, authenticated, claims.UserRole)
			switch decision {
			case DecisionRedirect:
				http.Redirect(w, r, target, RedirectStatus)

			case DecisionUnauthorized:
				msg := "Authentication required"
				if token != "" {
					msg = "Invalid or expired token"
				}
				writeJSON(w, errorResponse{Message: msg}, http.StatusUnauthorized)

			case DecisionForbidden:
				writeJSON(w, errorResponse{Message: "You are not allowed to access this resource"}, http.StatusForbidden)

			default:
				if authenticated {
					r = r.WithContext(jwt.SetAuth(r.Context(), claims))
				}
				next.ServeHTTP(w, r)
			}
		})
	}
}
