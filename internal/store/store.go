package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record is the listing entry for one parsed resume. The full field map is
// kept in a separate per-record file; the listing only carries what the UI
// needs to show a row.
type Record struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ResumeStore persists parse results as JSON files under a data directory:
// an index file with all records plus results/<id>.json per parse.
type ResumeStore struct {
	mu       sync.RWMutex
	records  []Record
	dataDir  string // e.g. "data/resumes"
	filePath string // e.g. "data/resumes/resumes.json"
}

// NewResumeStore initialises the store, creating directories and loading any
// existing records.
func NewResumeStore(dataDir string) (*ResumeStore, error) {
	if err := os.MkdirAll(filepath.Join(dataDir, "results"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	store := &ResumeStore{
		dataDir:  dataDir,
		filePath: filepath.Join(dataDir, "resumes.json"),
	}

	if data, err := os.ReadFile(store.filePath); err == nil {
		_ = json.Unmarshal(data, &store.records)
	}

	return store, nil
}

func (s *ResumeStore) save() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0644)
}

// Add records a parse result and persists both the listing entry and the
// full field map.
func (s *ResumeStore) Add(filename string, result map[string]any) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := Record{
		ID:         uuid.New().String(),
		Filename:   filename,
		Name:       stringField(result, "name"),
		Email:      stringField(result, "email"),
		UploadedAt: time.Now(),
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	if err := os.WriteFile(s.resultPath(rec.ID), data, 0644); err != nil {
		return nil, fmt.Errorf("failed to save result: %w", err)
	}

	s.records = append(s.records, rec)
	if err := s.save(); err != nil {
		return nil, err
	}

	return &rec, nil
}

func (s *ResumeStore) List() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Record, len(s.records))
	copy(result, s.records)
	return result
}

func (s *ResumeStore) Get(id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.records {
		if s.records[i].ID == id {
			r := s.records[i]
			return &r, nil
		}
	}
	return nil, fmt.Errorf("resume not found: %s", id)
}

// Result loads the full parsed field map for a record.
func (s *ResumeStore) Result(id string) (map[string]any, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.resultPath(id))
	if err != nil {
		return nil, fmt.Errorf("result not found: %s", id)
	}
	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ResumeStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	var updated []Record
	for _, r := range s.records {
		if r.ID == id {
			found = true
			continue
		}
		updated = append(updated, r)
	}
	if !found {
		return fmt.Errorf("resume not found: %s", id)
	}

	s.records = updated
	_ = os.Remove(s.resultPath(id))

	return s.save()
}

func (s *ResumeStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *ResumeStore) resultPath(id string) string {
	return filepath.Join(s.dataDir, "results", id+".json")
}

// stringField pulls a string value out of a parsed field map, tolerating
// missing keys and non-string values (the map is model output after all).
func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
