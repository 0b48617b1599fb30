// Package session holds the authenticated session's derived state and
// mirrors it to the durable side-store so a process restart reconstructs
// the last known session until the keys expire.
package session

import (
	"encoding/json"
	"errors"
	"strconv"
	"sync"

	"hunnydu/internal/service"
	"hunnydu/internal/store"
)

// Persisted keys. Each is written independently; restore tolerates any
// subset being present.
const (
	keyToken      = "apiToken"
	keyFamilyName = "familyName"
	keyMembers    = "members"
	keyIsLeader   = "isLeader"
	keyLeaders    = "leaders"
	keyID         = "id"
)

// Store exposes the current session as immutable snapshots and persists
// every field update to the side-store.
type Store struct {
	mu sync.RWMutex
	s  service.Session
	kv *store.Store
}

// New creates a Store hydrated from the side-store. A missing or expired
// token means an unauthenticated session; unreadable keys are skipped the
// same way a missing cookie would be.
func New(kv *store.Store) *Store {
	st := &Store{kv: kv}
	st.hydrate()
	return st
}

func (st *Store) hydrate() {
	if v, ok, err := st.kv.Get(keyToken); err == nil && ok && v != "" {
		st.s.Token = v
		st.s.Authenticated = true
	}
	if v, ok, _ := st.kv.Get(keyID); ok {
		if id, err := strconv.Atoi(v); err == nil {
			st.s.UserID = id
		}
	}
	if v, ok, _ := st.kv.Get(keyFamilyName); ok {
		st.s.FamilyName = v
	}
	if v, ok, _ := st.kv.Get(keyMembers); ok {
		var members []service.Member
		if err := json.Unmarshal([]byte(v), &members); err == nil {
			st.s.Members = members
		}
	}
	if v, ok, _ := st.kv.Get(keyIsLeader); ok {
		st.s.IsLeader = v == "true"
	}
	if v, ok, _ := st.kv.Get(keyLeaders); ok {
		if n, err := strconv.Atoi(v); err == nil {
			st.s.Leaders = n
		}
	}
}

// Snapshot returns a copy of the current session.
func (st *Store) Snapshot() service.Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s := st.s
	s.Members = append([]service.Member(nil), st.s.Members...)
	return s
}

// Token returns the stored auth token, or "" when logged out.
func (st *Store) Token() string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.s.Token
}

// SetLogin populates the full session after a confirmed login and persists
// every field. The in-memory state is updated even if persistence fails.
func (st *Store) SetLogin(token string, userID int, familyName string, members []service.Member, isLeader bool, leaders int) error {
	st.mu.Lock()
	st.s = service.Session{
		Authenticated: true,
		Token:         token,
		UserID:        userID,
		FamilyName:    familyName,
		Members:       append([]service.Member(nil), members...),
		IsLeader:      isLeader,
		Leaders:       leaders,
	}
	st.mu.Unlock()

	return errors.Join(
		st.kv.Put(keyToken, token),
		st.kv.Put(keyID, strconv.Itoa(userID)),
		st.persistFamily(familyName, members, isLeader, leaders),
	)
}

// SetUnconfirmed records a login that succeeded against an unconfirmed
// account: only the user ID is retained (so a confirmation email can be
// re-requested) and any stored token is discarded.
func (st *Store) SetUnconfirmed(userID int) error {
	st.mu.Lock()
	st.s = service.Session{UserID: userID}
	st.mu.Unlock()

	return errors.Join(
		st.kv.Delete(keyToken),
		st.kv.Put(keyID, strconv.Itoa(userID)),
	)
}

// SetFamily overwrites the family-derived fields, all together, and
// persists them.
func (st *Store) SetFamily(familyName string, members []service.Member, isLeader bool, leaders int) error {
	st.mu.Lock()
	st.s.FamilyName = familyName
	st.s.Members = append([]service.Member(nil), members...)
	st.s.IsLeader = isLeader
	st.s.Leaders = leaders
	st.mu.Unlock()

	return st.persistFamily(familyName, members, isLeader, leaders)
}

func (st *Store) persistFamily(familyName string, members []service.Member, isLeader bool, leaders int) error {
	data, err := json.Marshal(members)
	if err != nil {
		return err
	}
	return errors.Join(
		st.kv.Put(keyFamilyName, familyName),
		st.kv.Put(keyMembers, string(data)),
		st.kv.Put(keyIsLeader, strconv.FormatBool(isLeader)),
		st.kv.Put(keyLeaders, strconv.Itoa(leaders)),
	)
}

// RemoveToken discards the stored token and flips the session to
// unauthenticated, leaving the other fields alone. Used when the server
// rejects the credentials outright.
func (st *Store) RemoveToken() error {
	st.mu.Lock()
	st.s.Token = ""
	st.s.Authenticated = false
	st.mu.Unlock()

	return st.kv.Delete(keyToken)
}

// Clear removes all persisted keys and resets the in-memory session to its
// empty defaults. Used on logout and on any request that fails due to an
// invalid or expired token.
func (st *Store) Clear() error {
	st.mu.Lock()
	st.s = service.Session{}
	st.mu.Unlock()

	return st.kv.Clear()
}
