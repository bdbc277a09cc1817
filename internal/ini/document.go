// Package ini reads INI configuration files. It is written entirely with the
// primitives and combinators of the match package and serves as a worked
// example of a grammar over binary input.
//
// The dialect is the common one: sections in square brackets, key/value
// pairs separated by '=' or ':', comments starting with ';' or '#', and
// values that may be double quoted. Pairs before the first section belong to
// the global section.
package ini

// Pair is a single key and its value.
type Pair struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// Section is a named group of pairs.
type Section struct {
	Name  string `yaml:"name"`
	Pairs []Pair `yaml:"pairs,omitempty"`
}

// Document is a parsed INI file. Pairs and sections are kept in the order
// they appear and duplicates are kept.
type Document struct {
	Global   []Pair    `yaml:"global,omitempty"`
	Sections []Section `yaml:"sections,omitempty"`
}

func (d *Document) add(e entry) {
	switch e.kind {
	case entrySection:
		d.Sections = append(d.Sections, Section{Name: e.name})
	case entryPair:
		if n := len(d.Sections); n > 0 {
			d.Sections[n-1].Pairs = append(d.Sections[n-1].Pairs, e.pair)
			return
		}
		d.Global = append(d.Global, e.pair)
	}
}

// Get returns the value of key in the named section, or in the global
// section when section is empty. When a key is repeated, or a section
// appears more than once, the last value wins.
func (d *Document) Get(section, key string) (string, bool) {
	var (
		value string
		found bool
	)

	find := func(pairs []Pair) {
		for _, p := range pairs {
			if p.Key == key {
				value, found = p.Value, true
			}
		}
	}

	if section == "" {
		find(d.Global)
		return value, found
	}

	for _, s := range d.Sections {
		if s.Name == section {
			find(s.Pairs)
		}
	}
	return value, found
}
