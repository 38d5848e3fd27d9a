package catalog

// Entry is a single service of the catalog. Entries are loaded once at
// startup and never mutated afterwards.
type Entry struct {
	ID           string    `yaml:"id" json:"id"`
	Name         string    `yaml:"name" json:"name"`
	Category     string    `yaml:"category" json:"category"`
	Description  string    `yaml:"description" json:"description"`
	Price        string    `yaml:"price" json:"price"`
	Duration     string    `yaml:"duration" json:"duration"`
	Availability string    `yaml:"availability" json:"availability"`
	SubItems     []SubItem `yaml:"sub_items" json:"subItems,omitempty"`

	// HasSubItems is derived from SubItems at load time
	HasSubItems bool `yaml:"-" json:"hasSubItems"`
}

// SubItem is a finer-grained option nested under an entry that offers
// variants, e.g. a specific hairdresser service.
type SubItem struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Price    string `yaml:"price" json:"price"`
	Duration string `yaml:"duration" json:"duration"`
}
