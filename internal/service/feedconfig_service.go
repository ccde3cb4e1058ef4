package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/model"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/repository"
)

// FeedConfigService manages the stored AMFI feed settings. The feed auth
// token is fernet-encrypted at rest; this service is the only place the
// plaintext and ciphertext meet.
type FeedConfigService struct {
	feedConfigRepo *repository.FeedConfigRepository
	key            *fernet.Key
}

// NewFeedConfigService creates a new FeedConfigService. encodedKey is the
// base64 fernet key from configuration; it may be empty, in which case feed
// tokens cannot be stored or read.
func NewFeedConfigService(feedConfigRepo *repository.FeedConfigRepository, encodedKey string) (*FeedConfigService, error) {
	svc := &FeedConfigService{feedConfigRepo: feedConfigRepo}

	if encodedKey != "" {
		key, err := fernet.DecodeKey(encodedKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode feed token key: %w", err)
		}
		svc.key = key
	}

	return svc, nil
}

// GetFeedConfig retrieves the feed configuration with the auth token
// decrypted.
func (s *FeedConfigService) GetFeedConfig() (model.FeedConfig, error) {
	cfg, err := s.feedConfigRepo.GetFeedConfig()
	if err != nil {
		return model.FeedConfig{}, err
	}

	if cfg.AuthToken != "" && s.key != nil {
		plaintext := fernet.VerifyAndDecrypt([]byte(cfg.AuthToken), 0, []*fernet.Key{s.key})
		if plaintext == nil {
			return model.FeedConfig{}, fmt.Errorf("failed to decrypt feed auth token")
		}
		cfg.AuthToken = string(plaintext)
	}

	return cfg, nil
}

// SaveFeedConfig stores the feed configuration, encrypting the auth token
// when one is provided.
func (s *FeedConfigService) SaveFeedConfig(ctx context.Context, cfg model.FeedConfig) error {
	if cfg.AuthToken != "" {
		if s.key == nil {
			return fmt.Errorf("feed token key not configured")
		}
		ciphertext, err := fernet.EncryptAndSign([]byte(cfg.AuthToken), s.key)
		if err != nil {
			return fmt.Errorf("failed to encrypt feed auth token: %w", err)
		}
		cfg.AuthToken = string(ciphertext)
	}

	return s.feedConfigRepo.UpsertFeedConfig(ctx, cfg)
}

// MarkImported records the date of a successful import run.
func (s *FeedConfigService) MarkImported(ctx context.Context, date time.Time) error {
	return s.feedConfigRepo.SetLastImportDate(ctx, date)
}
