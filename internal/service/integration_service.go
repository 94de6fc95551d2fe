package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/fernet/fernet-go"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/apperrors"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/repository"
)

const dealFeedTokenKey = "deal_feed_token"

// IntegrationStatus describes the external deal-feed configuration without exposing
// the stored credential.
type IntegrationStatus struct {
	DealFeedConfigured bool `json:"dealFeedConfigured"`
}

// IntegrationService manages the external deal-feed credential. The token is
// encrypted with a fernet key before it touches the database, so a copied database
// file does not leak it.
type IntegrationService struct {
	settingsRepo *repository.SettingsRepository
	key          *fernet.Key
}

// NewIntegrationService creates a new IntegrationService. An empty encryptionKey
// falls back to a generated ephemeral key; previously stored secrets become
// unreadable after restart, which is logged loudly.
func NewIntegrationService(settingsRepo *repository.SettingsRepository, encryptionKey string) (*IntegrationService, error) {
	var key *fernet.Key
	if encryptionKey == "" {
		key = &fernet.Key{}
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate encryption key: %w", err)
		}
		log.Println("WARNING: SETTINGS_ENCRYPTION_KEY not set, using an ephemeral key; stored secrets will not survive a restart")
	} else {
		var err error
		key, err = fernet.DecodeKey(encryptionKey)
		if err != nil {
			return nil, fmt.Errorf("invalid SETTINGS_ENCRYPTION_KEY: %w", err)
		}
	}

	return &IntegrationService{settingsRepo: settingsRepo, key: key}, nil
}

// SetDealFeedToken encrypts and stores the deal-feed credential.
func (s *IntegrationService) SetDealFeedToken(ctx context.Context, token string) error {
	encrypted, err := fernet.EncryptAndSign([]byte(token), s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt deal-feed token: %w", err)
	}
	return s.settingsRepo.Set(ctx, dealFeedTokenKey, string(encrypted))
}

// DealFeedToken decrypts and returns the stored credential for outbound calls.
// Returns apperrors.ErrSettingNotFound when no token has been configured or the
// stored value cannot be decrypted with the current key.
func (s *IntegrationService) DealFeedToken(ctx context.Context) (string, error) {
	stored, err := s.settingsRepo.Get(ctx, dealFeedTokenKey)
	if err != nil {
		return "", err
	}

	plaintext := fernet.VerifyAndDecrypt([]byte(stored), 0, []*fernet.Key{s.key})
	if plaintext == nil {
		// Key rotation or an ephemeral key from a previous run. Treat as unset.
		return "", fmt.Errorf("%w: stored deal-feed token is not decryptable", apperrors.ErrSettingNotFound)
	}
	return string(plaintext), nil
}

// Status reports whether a deal-feed token is configured and readable.
func (s *IntegrationService) Status(ctx context.Context) (IntegrationStatus, error) {
	_, err := s.DealFeedToken(ctx)
	if errors.Is(err, apperrors.ErrSettingNotFound) {
		return IntegrationStatus{DealFeedConfigured: false}, nil
	}
	if err != nil {
		return IntegrationStatus{}, err
	}
	return IntegrationStatus{DealFeedConfigured: true}, nil
}
