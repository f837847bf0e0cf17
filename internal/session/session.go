// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package session provides Valkey-backed HTTP sessions for the web form.
// Each browser gets its own form snapshot, identified by a secure cookie and
// stored as JSON in Valkey with automatic TTL expiry.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"storyprompt/internal/form"
	"storyprompt/internal/prompt"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "sp_session"

	// DefaultTTL is how long an idle session lives in Valkey.
	DefaultTTL = 24 * time.Hour

	// keyPrefix namespaces session keys in Valkey to avoid collisions.
	keyPrefix = "session:"

	// idLength is the byte length of the random session ID (32 bytes = 64 hex chars).
	idLength = 32

	// maxModifyAttempts bounds the optimistic retries of Modify.
	maxModifyAttempts = 10
)

var (
	// ErrNoSession is returned by Modify when the request carries no session cookie.
	ErrNoSession = errors.New("no session cookie")

	// ErrConflict is returned by Modify when other requests kept changing the
	// session until the attempts ran out.
	ErrConflict = errors.New("session changed concurrently")
)

// Data is the session payload: one form snapshot plus its copy acknowledgment.
type Data struct {
	ID        uuid.UUID           `json:"id"`
	Inputs    prompt.Inputs       `json:"inputs"`
	Ack       form.Acknowledgment `json:"ack"`
	CreatedAt time.Time           `json:"created_at"`
}

// NewData returns a fresh session payload holding the default snapshot.
func NewData() *Data {
	return &Data{
		ID:     uuid.New(),
		Inputs: prompt.Defaults(),
	}
}

// Store manages session lifecycle in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

// NewStore creates a session store backed by the given Valkey client.
// When secure is true, cookies are marked Secure (HTTPS only).
func NewStore(client *redis.Client, secure bool) *Store {
	return &Store{
		client: client,
		ttl:    DefaultTTL,
		secure: secure,
	}
}

// SetTTL overrides the session lifetime. Non-positive values are ignored.
func (s *Store) SetTTL(ttl time.Duration) {
	if ttl > 0 {
		s.ttl = ttl
	}
}

// Create generates a new session, stores it in Valkey, and sets the session
// cookie on the response. Returns the session ID.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, data *Data) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}

	if data.ID == uuid.Nil {
		data.ID = uuid.New()
	}
	data.CreatedAt = time.Now()

	if err := s.save(ctx, id, data); err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})

	return id, nil
}

// Get retrieves session data using the session ID from the request cookie.
// Returns nil if no valid session exists.
func (s *Store) Get(ctx context.Context, r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, nil // No cookie = no session (not an error)
	}

	return load(ctx, s.client, keyPrefix+cookie.Value)
}

// Modify applies fn to the stored session and writes the result back,
// resetting the TTL. The session is re-read under WATCH, so fn always sees
// the latest snapshot and concurrent requests changing different parts of
// it do not overwrite each other. When the key has expired, fn is applied to
// a copy of current. Returns the data that was written.
func (s *Store) Modify(ctx context.Context, r *http.Request, current *Data, fn func(*Data)) (*Data, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, fmt.Errorf("session modify: %w", ErrNoSession)
	}
	key := keyPrefix + cookie.Value

	var written *Data
	txf := func(tx *redis.Tx) error {
		data, err := load(ctx, tx, key)
		if err != nil {
			return err
		}
		if data == nil {
			cp := *current
			data = &cp
		}
		fn(data)

		payload, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("session marshal: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		written = data
		return nil
	}

	for range maxModifyAttempts {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return written, nil
		}
		if err != redis.TxFailedErr {
			return nil, fmt.Errorf("session modify: %w", err)
		}
	}
	return nil, fmt.Errorf("session modify: %w", ErrConflict)
}

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// load reads and decodes the session stored at key. Returns nil when the key
// does not exist.
func load(ctx context.Context, c getter, key string) (*Data, error) {
	payload, err := c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Session expired or doesn't exist
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("session unmarshal: %w", err)
	}

	return &data, nil
}

func (s *Store) save(ctx context.Context, id string, data *Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session marshal: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+id, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	return nil
}

// generateID creates a cryptographically random session identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
