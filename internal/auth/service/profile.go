package service

import (
	"context"
	"errors"

	"github.com/northarcade/gameauth/internal/auth/session"
	"github.com/northarcade/gameauth/internal/auth/store"
)

// ProfileService serves profile image reads for authenticated callers.
type ProfileService struct {
	Store    store.Store
	Sessions *session.Registry
}

// GetImage returns the stored profile image for the requested account. A
// missing image (or a missing account) is an empty payload, never a fault;
// the session token is the only gate.
func (s *ProfileService) GetImage(ctx context.Context, req GetProfileImageRequest) (GetProfileImageResponse, error) {
	if _, err := requireSession(s.Sessions, req.Token); err != nil {
		return GetProfileImageResponse{}, err
	}
	if err := ensureValidUserID(req.AccountID); err != nil {
		return GetProfileImageResponse{}, err
	}

	data, contentType, updatedAt, err := s.Store.Accounts().GetProfileImage(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return GetProfileImageResponse{ProfileImageCode: req.ProfileImageCode}, nil
		}
		return GetProfileImageResponse{}, err
	}

	return GetProfileImageResponse{
		ImageBytes:       data,
		ContentType:      contentType,
		UpdatedAtUTC:     updatedAt,
		ProfileImageCode: req.ProfileImageCode,
	}, nil
}
