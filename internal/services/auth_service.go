package services

import (
	"context"

	"github.com/saeid-a/AtlasCoachBack/pkg/utils"
)

// AuthService checks administrator credentials. Users identify by phone only.
type AuthService struct {
	settings     settingsReader
	passwordHash string
}

func NewAuthService(settings settingsReader, passwordHash string) *AuthService {
	return &AuthService{
		settings:     settings,
		passwordHash: passwordHash,
	}
}

// AuthenticateAdmin returns the normalized admin phone when both the phone
// and the password match.
func (s *AuthService) AuthenticateAdmin(ctx context.Context, phone, password string) (string, error) {
	if s.passwordHash == "" {
		return "", ErrAdminDisabled
	}

	normalized := utils.NormalizePhone(phone)
	if normalized == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return "", err
	}
	if settings.AdminPhone == "" || settings.AdminPhone != normalized {
		return "", ErrInvalidCredentials
	}
	if !utils.CheckPassword(password, s.passwordHash) {
		return "", ErrInvalidCredentials
	}
	return normalized, nil
}
