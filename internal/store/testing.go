package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Fake is an in-memory document store for tests. It keeps records as raw
// JSON per collection and matches Replace/Delete targets on the "id" field,
// mirroring the external store's contract.
type Fake struct {
	mu          sync.Mutex
	collections map[string][]json.RawMessage

	// Err, when set, makes every operation fail with a store error.
	Err error
}

// NewFake creates an empty in-memory store.
func NewFake() *Fake {
	return &Fake{collections: make(map[string][]json.RawMessage)}
}

type identified struct {
	ID string `json:"id"`
}

// GetAll decodes the whole collection into out.
func (f *Fake) GetAll(ctx context.Context, collection string, out any) error {
	if f.Err != nil {
		return &Error{Err: f.Err}
	}
	f.mu.Lock()
	records := f.collections[collection]
	if records == nil {
		records = []json.RawMessage{}
	}
	data, err := json.Marshal(records)
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// Create appends a record to the collection.
func (f *Fake) Create(ctx context.Context, collection string, record any) error {
	if f.Err != nil {
		return &Error{Err: f.Err}
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.collections[collection] = append(f.collections[collection], data)
	f.mu.Unlock()
	return nil
}

// Replace overwrites the record with the given id.
func (f *Fake) Replace(ctx context.Context, collection, id string, record any) error {
	if f.Err != nil {
		return &Error{Err: f.Err}
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, raw := range f.collections[collection] {
		var rec identified
		if err := json.Unmarshal(raw, &rec); err != nil {
			return err
		}
		if rec.ID == id {
			f.collections[collection][i] = data
			return nil
		}
	}
	return &Error{Err: fmt.Errorf("no record %q in %q", id, collection)}
}

// Delete removes the record with the given id.
func (f *Fake) Delete(ctx context.Context, collection, id string) error {
	if f.Err != nil {
		return &Error{Err: f.Err}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	records := f.collections[collection]
	for i, raw := range records {
		var rec identified
		if err := json.Unmarshal(raw, &rec); err != nil {
			return err
		}
		if rec.ID == id {
			f.collections[collection] = append(records[:i], records[i+1:]...)
			return nil
		}
	}
	return &Error{Err: fmt.Errorf("no record %q in %q", id, collection)}
}

// Count returns the number of records in a collection.
func (f *Fake) Count(collection string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.collections[collection])
}
