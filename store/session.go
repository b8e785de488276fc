// Package store holds the two state containers behind the UI: the
// session store (current user) and the notes store (notes, labels,
// filters, view mode). Handlers read derived snapshots and invoke
// mutations; they never touch state directly.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"notenexus/models"
	"notenexus/storage"
	"notenexus/utils"
)

// Session holds the current user record and the loading flag that gates
// rendering until the persisted session has been restored.
//
// Login, Register and Restore simulate backend latency; the stub itself
// never fails. Two overlapping calls race last-writer-wins on the user
// slot, which is acceptable only because the backend is simulated.
type Session struct {
	mu      sync.RWMutex
	user    *models.User
	loading bool

	persist storage.Store
	latency time.Duration
	log     *utils.Logger
}

// NewSession creates the session store. The store starts in the loading
// state until Restore has run once.
func NewSession(persist storage.Store, latency time.Duration) *Session {
	return &Session{
		persist: persist,
		latency: latency,
		loading: true,
		log:     utils.Log,
	}
}

// wait simulates one backend round trip.
func (s *Session) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Restore loads a previously persisted user, if any, then clears the
// loading flag. An empty slot is not an error.
func (s *Session) Restore(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	if err := s.wait(ctx); err != nil {
		return err
	}

	var user models.User
	err := s.persist.Load(storage.SlotUser, &user)
	if errors.Is(err, storage.ErrSlotNotFound) {
		return nil
	}
	if err != nil {
		s.log.Error("Failed to restore session: %v", err)
		return nil
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	s.log.Info("Restored session for %s", user.Email)
	return nil
}

// Login resolves to the demo profile after the simulated latency. Any
// credentials are accepted; the password is only hashed into the record
// the way a real backend would store it.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.wait(ctx); err != nil {
		return err
	}

	user := DemoUser()
	if hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost); err == nil {
		user.PasswordHash = string(hash)
	}

	s.setUser(&user)
	return nil
}

// Register builds a new unverified profile from the given email and
// display name with default preferences.
func (s *Session) Register(ctx context.Context, email, displayName, password string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.wait(ctx); err != nil {
		return err
	}

	user := DemoUser()
	user.Email = email
	user.DisplayName = displayName
	user.IsVerified = false
	if hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost); err == nil {
		user.PasswordHash = string(hash)
	}

	s.setUser(&user)
	return nil
}

// Logout clears the current user and the persisted slot synchronously.
func (s *Session) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := s.persist.Delete(storage.SlotUser); err != nil {
		s.log.Error("Failed to clear persisted session: %v", err)
	}
}

// UpdateUser shallow-merges the patch into the current user and
// persists the result. No-op when nobody is logged in.
func (s *Session) UpdateUser(patch models.UserPatch) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return
	}
	patch.Apply(s.user)
	user := *s.user
	s.mu.Unlock()

	s.save(&user)
}

// User returns a copy of the current user, or nil.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Loading reports whether the initial session restore is still pending.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Session) setUser(user *models.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.save(user)
}

// save persists the user record. Storage faults are logged, never
// surfaced to the business contract.
func (s *Session) save(user *models.User) {
	if err := s.persist.Save(storage.SlotUser, user); err != nil {
		s.log.Error("Failed to persist user: %v", err)
	}
}
