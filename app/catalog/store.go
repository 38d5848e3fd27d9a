package catalog

import (
	_ "embed"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var rawCatalog []byte

// Store is the read-only service catalog. Lookups never fail with an
// error, an unknown id is reported as a value.
type Store struct {
	entries []Entry
	byID    map[string]int
}

func New(_ *do.Injector) (*Store, error) {
	return Parse(rawCatalog)
}

func Parse(data []byte) (*Store, error) {
	var doc struct {
		Services []Entry `yaml:"services"`
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, oops.Errorf("failed to parse catalog: %w", err)
	}

	if len(doc.Services) == 0 {
		return nil, oops.Errorf("catalog is empty")
	}

	byID := make(map[string]int, len(doc.Services))

	for i := range doc.Services {
		entry := &doc.Services[i]
		entry.HasSubItems = len(entry.SubItems) > 0

		if entry.ID == "" {
			return nil, oops.Errorf("catalog entry %d has no id", i)
		}
		if _, exists := byID[entry.ID]; exists {
			return nil, oops.Errorf("duplicate catalog entry id: %s", entry.ID)
		}

		byID[entry.ID] = i
	}

	return &Store{
		entries: doc.Services,
		byID:    byID,
	}, nil
}

// Entries returns all catalog entries in declaration order.
func (s *Store) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

func (s *Store) Lookup(id string) (Entry, bool) {
	index, ok := s.byID[id]
	if !ok {
		return Entry{}, false
	}

	return s.entries[index], true
}

// SubItemsOf returns the sub-items of an entry in declaration order,
// empty if the entry is unknown or has none.
func (s *Store) SubItemsOf(entryID string) []SubItem {
	entry, ok := s.Lookup(entryID)
	if !ok || !entry.HasSubItems {
		return []SubItem{}
	}

	return append([]SubItem(nil), entry.SubItems...)
}

// SubItem resolves a sub-item id within an entry.
func (s *Store) SubItem(entryID, subID string) (SubItem, bool) {
	entry, ok := s.Lookup(entryID)
	if !ok || !entry.HasSubItems {
		return SubItem{}, false
	}

	index := pie.FindFirstUsing(entry.SubItems, func(sub SubItem) bool {
		return sub.ID == subID
	})
	if index < 0 {
		return SubItem{}, false
	}

	return entry.SubItems[index], true
}

func (s *Store) IsValidEntry(id string) bool {
	_, ok := s.byID[id]
	return ok
}

func (s *Store) IsValidSubItem(entryID, subID string) bool {
	_, ok := s.SubItem(entryID, subID)
	return ok
}
