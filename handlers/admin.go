package handlers

import (
	"log/slog"
	"net/http"

	"github.com/andrewpaige1/quizbot-api/auth"
	"github.com/andrewpaige1/quizbot-api/middleware"
	"github.com/andrewpaige1/quizbot-api/utils"
)

// Both keys must be present; empty values fail as bad credentials.
type loginRequest struct {
	Email    *string `json:"email" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

// POST /admin.login
func (h *DBHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	admin, err := h.Store.Admins.GetByEmail(r.Context(), *req.Email)
	if err != nil {
		slog.Error("Login: admin lookup failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if admin == nil || !admin.IsPasswordValid(*req.Password) {
		slog.Info("Login: rejected credentials", "email", *req.Email)
		utils.WriteError(w, http.StatusForbidden, "Invalid email or password")
		return
	}

	sessionID, err := h.Store.Sessions.Create(r.Context(), *admin, h.Env.SessionTTL)
	if err != nil {
		slog.Error("Login: failed to create session", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := auth.CreateToken([]byte(h.Env.SessionSecret), sessionID, h.Env.SessionTTL)
	if err != nil {
		slog.Error("Login: failed to sign session token", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.SetCookie(w, h.sessionCookie(token, int(h.Env.SessionTTL.Seconds())))
	slog.Info("Login: admin signed in", "admin_id", admin.ID)
	utils.WriteJSON(w, http.StatusOK, admin)
}

// GET /admin.current
func (h *DBHandler) Current(w http.ResponseWriter, r *http.Request, caller middleware.AuthContext) {
	utils.WriteJSON(w, http.StatusOK, caller.Admin)
}

// POST /admin.logout
func (h *DBHandler) Logout(w http.ResponseWriter, r *http.Request, caller middleware.AuthContext) {
	if err := h.Store.Sessions.Delete(r.Context(), caller.SessionID); err != nil {
		slog.Error("Logout: failed to delete session", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.SetCookie(w, h.sessionCookie("", -1))
	utils.WriteJSON(w, http.StatusOK, struct{}{})
}

func (h *DBHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.Env.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
	if !h.Env.IsDevelopment {
		cookie.Domain = h.Env.Domain
	}
	return cookie
}
