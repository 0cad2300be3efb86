package http

import (
	"net/http"
	"time"

	"github.com/northarcade/gameauth/internal/auth/service"
	"github.com/northarcade/gameauth/pkg/httpx"
)

// VerificationHandler serves the begin/complete code workflows for
// registration and password reset.
type VerificationHandler struct {
	Verification *service.VerificationService
}

type beginBody struct {
	Email string `json:"email"`
}

type beginResponse struct {
	ResendAfterSeconds int       `json:"resend_after_seconds"`
	ExpiresAtUTC       time.Time `json:"expires_at_utc"`
}

func (h *VerificationHandler) HandleBeginRegister(w http.ResponseWriter, r *http.Request) {
	var body beginBody
	if err := httpx.DecodeJSON(r, &body); err != nil {
		writeBadBody(w)
		return
	}

	resp, err := h.Verification.BeginRegister(r.Context(), service.BeginRegisterRequest{Email: body.Email})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, beginResponse{
		ResendAfterSeconds: resp.ResendAfterSeconds,
		ExpiresAtUTC:       resp.ExpiresAtUTC,
	})
}

type completeRegisterBody struct {
	Email                   string `json:"email"`
	DisplayName             string `json:"display_name"`
	Password                string `json:"password"`
	Code                    string `json:"code"`
	ProfileImage            string `json:"profile_image,omitempty"` // base64
	ProfileImageContentType string `json:"profile_image_content_type,omitempty"`
}

func (h *VerificationHandler) HandleCompleteRegister(w http.ResponseWriter, r *http.Request) {
	var body completeRegisterBody
	if err := httpx.DecodeJSON(r, &body); err != nil {
		writeBadBody(w)
		return
	}

	image, ok := decodeImage(w, body.ProfileImage)
	if !ok {
		return
	}

	resp, err := h.Verification.CompleteRegister(r.Context(), service.CompleteRegisterRequest{
		Email:                   body.Email,
		DisplayName:             body.DisplayName,
		Password:                body.Password,
		Code:                    body.Code,
		ProfileImageBytes:       image,
		ProfileImageContentType: body.ProfileImageContentType,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, registerResponse{UserID: resp.UserID, Token: resp.Token})
}

func (h *VerificationHandler) HandleBeginReset(w http.ResponseWriter, r *http.Request) {
	var body beginBody
	if err := httpx.DecodeJSON(r, &body); err != nil {
		writeBadBody(w)
		return
	}

	resp, err := h.Verification.BeginPasswordReset(r.Context(), service.BeginPasswordResetRequest{Email: body.Email})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, beginResponse{
		ResendAfterSeconds: resp.ResendAfterSeconds,
		ExpiresAtUTC:       resp.ExpiresAtUTC,
	})
}

type completeResetBody struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

func (h *VerificationHandler) HandleCompleteReset(w http.ResponseWriter, r *http.Request) {
	var body completeResetBody
	if err := httpx.DecodeJSON(r, &body); err != nil {
		writeBadBody(w)
		return
	}

	err := h.Verification.CompletePasswordReset(r.Context(), service.CompletePasswordResetRequest{
		Email:       body.Email,
		Code:        body.Code,
		NewPassword: body.NewPassword,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
