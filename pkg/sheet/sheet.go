package sheet

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/planar-kit/planar/pkg/figure"
)

// EntryID is a content-addressed identifier for sheet entries.
type EntryID string

// ZeroID is the zero value of EntryID.
const ZeroID EntryID = ""

// NewEntryID derives an ID from an entry's kind, name and dimension.
// Equal inputs always produce equal IDs.
func NewEntryID(kind, name string, dim float64) EntryID {
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatFloat(dim, 'g', -1, 64)))
	return EntryID(hex.EncodeToString(h.Sum(nil)))
}

// IsZero reports whether the ID is unset.
func (id EntryID) IsZero() bool { return id == ZeroID }

// Short returns an abbreviated form for display and error messages.
func (id EntryID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// Entry is a named figure recorded on a sheet.
type Entry struct {
	ID        EntryID            `json:"id"`
	Name      string             `json:"name"`
	Kind      string             `json:"kind"`      // figure kind, e.g. "Circle"
	Dimension float64            `json:"dimension"` // the single creating dimension
	Desc      figure.Description `json:"desc"`
	Source    string             `json:"source,omitempty"` // originating expression
}

// Sheet is the top-level container produced by script evaluation: an
// ordered, name-indexed collection of figure entries. It is never mutated
// after evaluation completes; each evaluation produces a new sheet.
type Sheet struct {
	Entries   map[EntryID]*Entry `json:"entries"`
	Order     []EntryID          `json:"order"` // insertion order
	NameIndex map[string]EntryID `json:"name_index"`
}

// New creates an empty sheet.
func New() *Sheet {
	return &Sheet{
		Entries:   make(map[EntryID]*Entry),
		NameIndex: make(map[string]EntryID),
	}
}

// Add records an entry on the sheet. It does not check for duplicate
// names; Validate reports those.
func (s *Sheet) Add(e *Entry) {
	s.Entries[e.ID] = e
	s.Order = append(s.Order, e.ID)
	if e.Name != "" {
		s.NameIndex[e.Name] = e.ID
	}
}

// Lookup returns the entry with the given user-assigned name, or nil.
func (s *Sheet) Lookup(name string) *Entry {
	id, ok := s.NameIndex[name]
	if !ok {
		return nil
	}
	return s.Entries[id]
}

// MustLookup returns the entry with the given name, or panics.
func (s *Sheet) MustLookup(name string) *Entry {
	e := s.Lookup(name)
	if e == nil {
		panic(fmt.Sprintf("sheet: no entry named %q", name))
	}
	return e
}

// Get returns the entry with the given ID, or nil.
func (s *Sheet) Get(id EntryID) *Entry {
	return s.Entries[id]
}

// Figures returns all entries in insertion order.
func (s *Sheet) Figures() []*Entry {
	entries := make([]*Entry, 0, len(s.Order))
	for _, id := range s.Order {
		if e := s.Entries[id]; e != nil {
			entries = append(entries, e)
		}
	}
	return entries
}

// Count returns the total number of entries.
func (s *Sheet) Count() int {
	return len(s.Entries)
}
