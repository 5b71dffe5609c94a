// Package kvstore is the persistence boundary: named keys holding
// opaque text values. The record store reads each key once at startup
// and writes a full snapshot after every mutation.
package kvstore

// Store provides get/set of text values per named key.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set writes value under key, replacing any previous value.
	Set(key, value string) error
}

// Memory is an in-process Store used by tests.
type Memory struct {
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.values[key] = value
	return nil
}
