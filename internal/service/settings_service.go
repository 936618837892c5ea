package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/fernet/fernet-go"

	"github.com/investiai/portfolio-backend/internal/apperrors"
	"github.com/investiai/portfolio-backend/internal/repository"
)

const settingGeminiAPIKey = "gemini_api_key"

// SettingsService manages runtime-configurable settings. Secrets are
// encrypted with the fernet key before they reach the settings table, so a
// copied database file does not leak the Gemini API key.
type SettingsService struct {
	settings  *repository.SettingsRepository
	fernetKey *fernet.Key
	envAPIKey string
}

// NewSettingsService creates a new SettingsService. fernetKey may be empty;
// storing secrets is then disabled and only the environment key is used.
func NewSettingsService(settings *repository.SettingsRepository, fernetKey, envAPIKey string) (*SettingsService, error) {
	service := &SettingsService{settings: settings, envAPIKey: envAPIKey}

	if strings.TrimSpace(fernetKey) != "" {
		key, err := fernet.DecodeKey(fernetKey)
		if err != nil {
			return nil, fmt.Errorf("invalid fernet key: %w", err)
		}
		service.fernetKey = key
	}

	return service, nil
}

// SetGeminiAPIKey encrypts and stores the user-provided API key. A stored
// key takes precedence over the environment one.
func (s *SettingsService) SetGeminiAPIKey(apiKey string) error {
	if s.fernetKey == nil {
		return apperrors.ErrAPIKeyNotConfigured
	}

	token, err := fernet.EncryptAndSign([]byte(apiKey), s.fernetKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt API key: %w", err)
	}

	if err := s.settings.Set(settingGeminiAPIKey, string(token)); err != nil {
		return err
	}

	log.Printf("Stored Gemini API key")
	return nil
}

// GeminiAPIKey returns the effective Gemini API key: the stored one when
// present and decryptable, otherwise the environment one. Returns
// ErrAPIKeyNotConfigured when neither is available.
func (s *SettingsService) GeminiAPIKey() (string, error) {
	if s.fernetKey != nil {
		stored, err := s.settings.Get(settingGeminiAPIKey)
		if err != nil {
			return "", err
		}
		if stored != "" {
			// TTL 0 disables token expiry; the key is valid until replaced.
			plaintext := fernet.VerifyAndDecrypt([]byte(stored), 0, []*fernet.Key{s.fernetKey})
			if plaintext != nil {
				return string(plaintext), nil
			}
			log.Printf("Stored Gemini API key failed decryption, falling back to environment")
		}
	}

	if s.envAPIKey != "" {
		return s.envAPIKey, nil
	}
	return "", apperrors.ErrAPIKeyNotConfigured
}
