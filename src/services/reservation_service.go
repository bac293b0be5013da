package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/premiado/src/database"
	"github.com/username/premiado/src/logger"
	"github.com/username/premiado/src/models"
	"github.com/username/premiado/src/utils"
)

type reservationServiceImpl struct {
	httpClient    *http.Client
	url           string
	email         string
	token         string
	responseCache *cache.Cache
	db            *sql.DB
}

// NewReservationService creates the reservations fetcher. The upstream call
// is a single GET authenticated by two static headers. db may be nil, which
// disables the persisted fallback snapshot.
func NewReservationService(url, email, token string, timeout time.Duration, responseCache *cache.Cache, db *sql.DB) ReservationService {
	return &reservationServiceImpl{
		httpClient:    &http.Client{Timeout: timeout},
		url:           url,
		email:         email,
		token:         token,
		responseCache: responseCache,
		db:            db,
	}
}

func (s *reservationServiceImpl) cacheKey() string {
	return "reservations_" + utils.HashKey(s.url, s.email, s.token)
}

// RawReservations returns the decoded payload, fetching at most once per
// distinct (url, headers) input for the lifetime of the process. When the
// fetch fails, the latest persisted snapshot is served instead; the fallback
// is not memoized so the next request retries the upstream.
func (s *reservationServiceImpl) RawReservations(ctx context.Context) (map[string]models.RawReservation, error) {
	key := s.cacheKey()
	if cached, found := s.responseCache.Get(key); found {
		logger.L.Debug("Reservations cache hit", "key", key)
		return cached.(map[string]models.RawReservation), nil
	}

	body, fetchErr := s.fetch(ctx)
	if fetchErr != nil {
		logger.L.Warn("Reservations fetch failed, trying persisted snapshot", "error", fetchErr)
		snapshot, fetchedAt, snapErr := s.loadSnapshot()
		if snapErr != nil {
			if !errors.Is(snapErr, ErrNoSnapshot) {
				logger.L.Error("Loading reservation snapshot failed", "error", snapErr)
			}
			return nil, fetchErr
		}
		logger.L.Info("Serving reservations from persisted snapshot", "fetchedAt", fetchedAt)
		return decodePayload(snapshot)
	}

	payload, err := decodePayload(body)
	if err != nil {
		return nil, err
	}

	s.responseCache.Set(key, payload, cache.NoExpiration)
	if s.db != nil {
		if err := database.SaveSnapshot(s.db, body); err != nil {
			logger.L.Error("Persisting reservation snapshot failed", "error", err)
		}
	}
	return payload, nil
}

func (s *reservationServiceImpl) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrFetchFailed, err)
	}
	req.Header.Set("email", s.email)
	req.Header.Set("token", s.token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrFetchFailed, err)
	}
	return body, nil
}

func (s *reservationServiceImpl) loadSnapshot() ([]byte, time.Time, error) {
	if s.db == nil {
		return nil, time.Time{}, ErrNoSnapshot
	}
	body, fetchedAt, err := database.LoadSnapshot(s.db)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrNoSnapshot
	}
	return body, fetchedAt, err
}

func decodePayload(body []byte) (map[string]models.RawReservation, error) {
	var payload map[string]models.RawReservation
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decoding payload: %v", ErrFetchFailed, err)
	}
	return payload, nil
}

func (s *reservationServiceImpl) Invalidate() {
	s.responseCache.Delete(s.cacheKey())
	logger.L.Info("Invalidated memoized reservations response")
}
