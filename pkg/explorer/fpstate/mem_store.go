package fpstate

import "encoding/json"

var _ Store = (*MemStore)(nil)

// MemStore is an in-memory Store for tests and for running without a
// writable settings directory.
type MemStore struct {
	values map[string]json.RawMessage
}

func NewMemStore() *MemStore {
	return &MemStore{values: map[string]json.RawMessage{}}
}

func (s *MemStore) Get(key string, value any) (bool, error) {
	raw, ok := s.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, value); err != nil {
		return false, err
	}
	return true, nil
}

func (s *MemStore) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.values[key] = raw
	return nil
}
