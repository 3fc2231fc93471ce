package manifest

import (
	"github.com/hupe1980/pagefilter/internal/maputil"
)

// MainSection is the reserved section identifier of the main package.
const MainSection = "app"

// Manifest is the canonical in-memory page manifest.
type Manifest struct {
	// Pages is the ordered page list of the main package.
	Pages []string
	// Sections are the named sub-packages in declaration order.
	Sections []Section
}

// Section is one named sub-package.
type Section struct {
	// Root identifies the section. Matching against rules is case-sensitive.
	Root string
	// Pages is the ordered page list of the section.
	Pages []string
	// Attrs holds every other field of the sub-package entry (name,
	// independent, plugins, ...). They are carried through filtering as-is.
	Attrs map[string]interface{}
}

// Clone returns a deep copy of m.
func (m *Manifest) Clone() *Manifest {
	if m == nil {
		return nil
	}

	c := &Manifest{
		Pages: cloneStrings(m.Pages),
	}

	if m.Sections != nil {
		c.Sections = make([]Section, len(m.Sections))
		for i, s := range m.Sections {
			c.Sections[i] = s.Clone()
		}
	}

	return c
}

// Clone returns a deep copy of s.
func (s Section) Clone() Section {
	return Section{
		Root:  s.Root,
		Pages: cloneStrings(s.Pages),
		Attrs: maputil.DeepCopyMap(s.Attrs),
	}
}

// Roots returns the section identifiers in order.
func (m *Manifest) Roots() []string {
	roots := make([]string, 0, len(m.Sections))
	for _, s := range m.Sections {
		roots = append(roots, s.Root)
	}

	return roots
}

// Section returns the named section, or false when no section has that root.
func (m *Manifest) Section(root string) (Section, bool) {
	for _, s := range m.Sections {
		if s.Root == root {
			return s, true
		}
	}

	return Section{}, false
}

// PageCount returns the number of pages across the main package and all sections.
func (m *Manifest) PageCount() int {
	n := len(m.Pages)
	for _, s := range m.Sections {
		n += len(s.Pages)
	}

	return n
}

func cloneStrings(src []string) []string {
	if src == nil {
		return nil
	}

	dst := make([]string, len(src))
	copy(dst, src)

	return dst
}
