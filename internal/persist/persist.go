// Package persist stores the challenge state in a key/value backend under a
// versioned key.
package persist

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/sadopc/desafio200/internal/challenge"
)

// StorageKey is the versioned key the state is stored under.
const StorageKey = "desafio-200-depositos:v1"

// KV is a durable string key/value store.
type KV interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// Adapter implements challenge.Persister on top of a KV.
type Adapter struct {
	kv  KV
	key string
}

// New returns an adapter that stores state under StorageKey.
func New(kv KV) *Adapter {
	return &Adapter{kv: kv, key: StorageKey}
}

// Load reads and validates the stored state. Missing, unreadable or invalid
// data all yield false so the caller keeps its defaults.
func (a *Adapter) Load() (challenge.State, bool) {
	raw, ok, err := a.kv.Get(a.key)
	if err != nil {
		log.WithError(err).WithField("key", a.key).Warn("read stored state")
		return challenge.State{}, false
	}
	if !ok {
		return challenge.State{}, false
	}

	st, err := challenge.Decode([]byte(raw))
	if err != nil {
		log.WithError(err).WithField("key", a.key).Warn("discarding invalid stored state")
		return challenge.State{}, false
	}
	return st, true
}

// Save overwrites the stored state.
func (a *Adapter) Save(s challenge.State) error {
	data, err := challenge.Encode(s)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := a.kv.Set(a.key, string(data)); err != nil {
		return fmt.Errorf("write %q: %w", a.key, err)
	}
	return nil
}

// Clear removes the stored state.
func (a *Adapter) Clear() error {
	if err := a.kv.Delete(a.key); err != nil {
		return fmt.Errorf("delete %q: %w", a.key, err)
	}
	return nil
}
