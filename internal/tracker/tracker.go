package tracker

import (
	"encoding/json"
	"log"
	"os"
)

// Set holds the source filenames already converted to the optimized format.
type Set map[string]struct{}

// NewSet builds a set from the given names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether name is tracked.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Add marks name as tracked.
func (s Set) Add(name string) {
	s[name] = struct{}{}
}

// Names returns the tracked filenames in set iteration order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	return names
}

// Tracker persists the set as a JSON array of strings at a fixed path.
// Membership means an optimized output existed when the name was recorded;
// nothing reconciles outputs deleted out of band.
type Tracker struct {
	path string
}

// New creates a tracker backed by the file at path.
func New(path string) *Tracker {
	return &Tracker{path: path}
}

// Load reads the tracker file. A missing file is the expected first-run state
// and yields an empty set. Any other read or parse failure is logged and also
// degrades to an empty set: the run proceeds and may redundantly reprocess
// files rather than abort.
func (t *Tracker) Load() Set {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to read tracker %s: %v (treating all sources as new)", t.path, err)
		}
		return NewSet()
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		log.Printf("Failed to parse tracker %s: %v (treating all sources as new)", t.path, err)
		return NewSet()
	}

	return NewSet(names...)
}

// Save overwrites the tracker file with the set as a JSON array. Plain
// truncate-and-write, no lock or atomic rename: the single-process, one run
// at a time usage model accepts a corrupt file on crash mid-save.
func (t *Tracker) Save(s Set) error {
	data, err := json.Marshal(s.Names())
	if err != nil {
		return err
	}
	return os.WriteFile(t.path, data, 0644)
}
