package store

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"gstsuite/internal/domain"
	"gstsuite/internal/port"
)

// maxConcurrentLookups bounds the fan-out of a GSTIN batch lookup.
const maxConcurrentLookups = 8

type partyStore struct {
	client
}

// NewPartyStore creates an HTTP-backed PartyStore against the party service
// at baseURL.
func NewPartyStore(baseURL string, timeout time.Duration) port.PartyStore {
	return &partyStore{client: newClient(baseURL, timeout)}
}

func (s *partyStore) GetByID(ctx context.Context, businessID, partyID uuid.UUID, authToken string) (*domain.Party, error) {
	path := fmt.Sprintf("/api/v1/businesses/%s/parties/%s", businessID, partyID)
	var party domain.Party
	if err := s.get(ctx, path, authToken, &party); err != nil {
		return nil, fmt.Errorf("partyStore.GetByID: %w", err)
	}
	return &party, nil
}

// GetByGSTINs looks up parties for each GSTIN concurrently. Lookups settle
// independently: a GSTIN whose lookup fails is simply absent from the result,
// so report generation degrades to GSTIN-only rows instead of failing.
func (s *partyStore) GetByGSTINs(ctx context.Context, businessID uuid.UUID, gstins []string, authToken string) (map[string]*domain.Party, error) {
	result := make(map[string]*domain.Party, len(gstins))
	if len(gstins) == 0 {
		return result, nil
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, maxConcurrentLookups)
	)
	for _, gstin := range gstins {
		if gstin == "" {
			continue
		}
		wg.Add(1)
		go func(gstin string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			party, err := s.getByGSTIN(ctx, businessID, gstin, authToken)
			if err != nil {
				log.Printf("partyStore.GetByGSTINs: lookup failed for %s: %v", gstin, err)
				return
			}
			mu.Lock()
			result[gstin] = party
			mu.Unlock()
		}(gstin)
	}
	wg.Wait()

	return result, nil
}

func (s *partyStore) getByGSTIN(ctx context.Context, businessID uuid.UUID, gstin, authToken string) (*domain.Party, error) {
	q := url.Values{}
	q.Set("gstin", gstin)
	path := fmt.Sprintf("/api/v1/businesses/%s/parties?%s", businessID, q.Encode())
	var parties []domain.Party
	if err := s.get(ctx, path, authToken, &parties); err != nil {
		return nil, err
	}
	if len(parties) == 0 {
		return nil, domain.NotFoundf("no party with GSTIN %s", gstin)
	}
	return &parties[0], nil
}
