package http

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/northarcade/gameauth/internal/auth/service"
	"github.com/northarcade/gameauth/pkg/httpx"
)

// RegisterHandler serves POST /v1/auth/register.
type RegisterHandler struct {
	Accounts *service.AccountService
}

type registerBody struct {
	Email                   string `json:"email"`
	DisplayName             string `json:"display_name"`
	Password                string `json:"password"`
	ProfileImage            string `json:"profile_image,omitempty"` // base64
	ProfileImageContentType string `json:"profile_image_content_type,omitempty"`
}

type registerResponse struct {
	UserID int64  `json:"user_id"`
	Token  string `json:"token,omitempty"`
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body registerBody
	if err := httpx.DecodeJSON(r, &body); err != nil {
		writeBadBody(w)
		return
	}

	image, ok := decodeImage(w, body.ProfileImage)
	if !ok {
		return
	}

	resp, err := h.Accounts.Register(r.Context(), service.RegisterRequest{
		Email:                   body.Email,
		DisplayName:             body.DisplayName,
		Password:                body.Password,
		ProfileImageBytes:       image,
		ProfileImageContentType: body.ProfileImageContentType,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, registerResponse{UserID: resp.UserID, Token: resp.Token})
}

// LoginHandler serves POST /v1/auth/login.
type LoginHandler struct {
	Accounts *service.AccountService
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenPayload struct {
	UserID       int64     `json:"user_id"`
	Token        string    `json:"token"`
	ExpiresAtUTC time.Time `json:"expires_at_utc"`
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if err := httpx.DecodeJSON(r, &body); err != nil {
		writeBadBody(w)
		return
	}

	resp, err := h.Accounts.Login(r.Context(), service.LoginRequest{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]tokenPayload{"token": {
		UserID:       resp.Token.UserID,
		Token:        resp.Token.Token,
		ExpiresAtUTC: resp.Token.ExpiresAtUTC,
	}})
}

// LogoutHandler serves POST /v1/auth/logout. Always 204: logout is a silent
// no-op for unknown tokens.
type LogoutHandler struct {
	Accounts *service.AccountService
}

type logoutBody struct {
	Token string `json:"token"`
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body logoutBody
	if err := httpx.DecodeJSON(r, &body); err != nil {
		writeBadBody(w)
		return
	}

	_ = h.Accounts.Logout(r.Context(), service.LogoutRequest{Token: body.Token})
	w.WriteHeader(http.StatusNoContent)
}

func decodeImage(w http.ResponseWriter, encoded string) ([]byte, bool) {
	if encoded == "" {
		return nil, true
	}
	image, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		writeBadBody(w)
		return nil, false
	}
	return image, true
}
