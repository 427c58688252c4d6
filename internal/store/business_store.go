package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gstsuite/internal/domain"
	"gstsuite/internal/port"
)

type businessStore struct {
	client
}

// NewBusinessStore creates an HTTP-backed BusinessStore against the business
// service at baseURL.
func NewBusinessStore(baseURL string, timeout time.Duration) port.BusinessStore {
	return &businessStore{client: newClient(baseURL, timeout)}
}

func (s *businessStore) GetProfile(ctx context.Context, businessID uuid.UUID, authToken string) (*domain.BusinessProfile, error) {
	path := fmt.Sprintf("/api/v1/businesses/%s/profile", businessID)
	var profile domain.BusinessProfile
	if err := s.get(ctx, path, authToken, &profile); err != nil {
		return nil, fmt.Errorf("businessStore.GetProfile: %w", err)
	}
	return &profile, nil
}
