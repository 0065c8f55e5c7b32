package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/motefuku/motefuku/storefront-api/internal/domain"
	"github.com/motefuku/motefuku/storefront-api/internal/metrics"
	"github.com/rs/zerolog/log"
)

// loadState unmarshals a persisted session value into out. A missing
// key, a storage failure, or unparseable JSON all leave out at its zero
// value and report false: persisted state is a best-effort cache, and
// every read failure degrades to "empty", never to an error.
func loadState(ctx context.Context, states domain.StateRepository, sessionID, key string, out interface{}) bool {
	raw, err := states.Load(ctx, sessionID, key)
	if err != nil {
		if errors.Is(err, domain.ErrStateNotFound) {
			metrics.StateOperations.WithLabelValues("load", "miss").Inc()
			return false
		}
		metrics.StateOperations.WithLabelValues("load", "error").Inc()
		log.Warn().Err(err).Str("session_id", sessionID).Str("key", key).Msg("Failed to load session state, treating as empty")
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		metrics.StateOperations.WithLabelValues("load", "corrupt").Inc()
		log.Warn().Err(err).Str("session_id", sessionID).Str("key", key).Msg("Corrupt session state, treating as empty")
		return false
	}
	metrics.StateOperations.WithLabelValues("load", "ok").Inc()
	return true
}

// saveState marshals value and persists it under the session key. Unlike
// reads, a failed write is surfaced: the mutation contract promises the
// persisted collection matches memory once the call returns.
func saveState(ctx context.Context, states domain.StateRepository, sessionID, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		metrics.StateOperations.WithLabelValues("save", "error").Inc()
		return err
	}
	if err := states.Save(ctx, sessionID, key, raw); err != nil {
		metrics.StateOperations.WithLabelValues("save", "error").Inc()
		return err
	}
	metrics.StateOperations.WithLabelValues("save", "ok").Inc()
	return nil
}
