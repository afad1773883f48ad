package middleware

import (
	"context"
	"log/slog"
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"

	"github.com/andrewpaige1/quizbot-api/auth"
	"github.com/andrewpaige1/quizbot-api/models"
	"github.com/andrewpaige1/quizbot-api/utils"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

// SessionLookup resolves a session id to the admin stored in it.
type SessionLookup interface {
	Get(ctx context.Context, id string) (*models.Admin, error)
}

// AuthContext is what a protected handler knows about its caller.
type AuthContext struct {
	SessionID string
	Admin     models.Admin
}

type AdminHandlerFunc func(w http.ResponseWriter, r *http.Request, auth AuthContext)

// Authenticator gates handlers behind a valid admin session.
type Authenticator struct {
	sessions SessionLookup
	jwt      *jwtmiddleware.JWTMiddleware
}

func NewAuthenticator(sessions SessionLookup, tokens *validator.Validator) *Authenticator {
	return &Authenticator{
		sessions: sessions,
		jwt: jwtmiddleware.New(
			tokens.ValidateToken,
			jwtmiddleware.WithTokenExtractor(jwtmiddleware.MultiTokenExtractor(
				jwtmiddleware.CookieTokenExtractor(SessionCookieName),
				jwtmiddleware.AuthHeaderTokenExtractor,
			)),
			jwtmiddleware.WithErrorHandler(unauthorized),
		),
	}
}

// RequireAdmin resolves the session token to an admin and hands it to next.
func (a *Authenticator) RequireAdmin(next AdminHandlerFunc) http.HandlerFunc {
	resolve := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := auth.SessionID(r.Context().Value(jwtmiddleware.ContextKey{}))
		if !ok {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		admin, err := a.sessions.Get(r.Context(), sessionID)
		if err != nil {
			slog.Error("RequireAdmin: session lookup failed", "error", err, "request_id", RequestIDFrom(r.Context()))
			utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if admin == nil {
			utils.WriteError(w, http.StatusUnauthorized, "Session expired")
			return
		}

		next(w, r, AuthContext{SessionID: sessionID, Admin: *admin})
	})

	return a.jwt.CheckJWT(resolve).ServeHTTP
}

func unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	slog.Info("rejected session token", "path", r.URL.Path, "error", err, "request_id", RequestIDFrom(r.Context()))
	utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
}
