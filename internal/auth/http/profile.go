package http

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/northarcade/gameauth/internal/auth/service"
	"github.com/northarcade/gameauth/pkg/httpx"
)

// ProfileImageHandler serves POST /v1/profile/image. The session token rides
// in the body alongside the target account id, mirroring the workflow DTO.
type ProfileImageHandler struct {
	Profiles *service.ProfileService
}

type profileImageBody struct {
	Token            string `json:"token"`
	AccountID        int64  `json:"account_id"`
	ProfileImageCode string `json:"profile_image_code,omitempty"`
}

type profileImageResponse struct {
	Image            string     `json:"image,omitempty"` // base64
	ContentType      string     `json:"content_type,omitempty"`
	UpdatedAtUTC     *time.Time `json:"updated_at_utc,omitempty"`
	ProfileImageCode string     `json:"profile_image_code,omitempty"`
}

func (h *ProfileImageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body profileImageBody
	if err := httpx.DecodeJSON(r, &body); err != nil {
		writeBadBody(w)
		return
	}

	resp, err := h.Profiles.GetImage(r.Context(), service.GetProfileImageRequest{
		Token:            body.Token,
		AccountID:        body.AccountID,
		ProfileImageCode: body.ProfileImageCode,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := profileImageResponse{
		ContentType:      resp.ContentType,
		UpdatedAtUTC:     resp.UpdatedAtUTC,
		ProfileImageCode: resp.ProfileImageCode,
	}
	if len(resp.ImageBytes) > 0 {
		out.Image = base64.StdEncoding.EncodeToString(resp.ImageBytes)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
