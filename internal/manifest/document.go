package manifest

import (
	"fmt"

	"github.com/hupe1980/pagefilter/internal/maputil"
)

// Well-known document keys.
const (
	KeyPages       = "pages"
	KeySubpackages = "subpackages"
	KeySubPackages = "subPackages"
	KeyRoot        = "root"
)

// sectionKeys lists the accepted spellings of the sub-package collection in
// read priority order.
var sectionKeys = []string{KeySubpackages, KeySubPackages}

// Document binds a canonical Manifest to the host document it was read from.
type Document struct {
	// Manifest is the canonical view of the document's pages and sections.
	Manifest *Manifest

	raw  map[string]interface{}
	keys []string
}

// FromDocument reads the page manifest out of a host document. The document
// is copied; later changes to doc do not affect the returned Document.
//
// When both "subpackages" and "subPackages" are present, sections are read
// from "subpackages" and both keys are written back by Render.
func FromDocument(doc map[string]interface{}) (*Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", ErrMalformed)
	}

	rawPages, ok := doc[KeyPages]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", ErrMalformed, KeyPages)
	}

	pages, err := stringList(rawPages)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, KeyPages, err)
	}

	d := &Document{
		Manifest: &Manifest{Pages: pages},
		raw:      maputil.DeepCopyMap(doc),
	}

	read := false

	for _, key := range sectionKeys {
		v, present := doc[key]
		if !present {
			continue
		}

		d.keys = append(d.keys, key)

		if read {
			continue
		}

		sections, err := parseSections(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
		}

		d.Manifest.Sections = sections
		read = true
	}

	return d, nil
}

// SectionKeys returns the sub-package collection keys present on input.
func (d *Document) SectionKeys() []string {
	return append([]string(nil), d.keys...)
}

// Render returns a copy of the original host document with its page list and
// sub-package collections replaced by the contents of m. Every collection
// key present on input is written, so readers of either spelling see the
// same sections.
func (d *Document) Render(m *Manifest) map[string]interface{} {
	out := maputil.DeepCopyMap(d.raw)
	if out == nil {
		out = make(map[string]interface{})
	}

	out[KeyPages] = toInterfaceList(m.Pages)

	keys := d.keys
	if len(keys) == 0 && len(m.Sections) > 0 {
		keys = []string{KeySubpackages}
	}

	for _, key := range keys {
		out[key] = renderSections(m.Sections)
	}

	return out
}

func parseSections(v interface{}) ([]Section, error) {
	if v == nil {
		return []Section{}, nil
	}

	items, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", v)
	}

	sections := make([]Section, 0, len(items))

	for i, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("entry %d: expected an object, got %T", i, item)
		}

		root, ok := entry[KeyRoot].(string)
		if !ok {
			return nil, fmt.Errorf("entry %d: missing string %q", i, KeyRoot)
		}

		rawPages, ok := entry[KeyPages]
		if !ok {
			return nil, fmt.Errorf("entry %d (%s): missing %q", i, root, KeyPages)
		}

		pages, err := stringList(rawPages)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, root, err)
		}

		attrs := make(map[string]interface{}, len(entry))
		for k, val := range entry {
			if k == KeyRoot || k == KeyPages {
				continue
			}

			attrs[k] = val
		}

		sections = append(sections, Section{
			Root:  root,
			Pages: pages,
			Attrs: maputil.DeepCopyMap(attrs),
		})
	}

	return sections, nil
}

func renderSections(sections []Section) []interface{} {
	out := make([]interface{}, 0, len(sections))

	for _, s := range sections {
		entry := maputil.DeepCopyMap(s.Attrs)
		if entry == nil {
			entry = make(map[string]interface{}, 2)
		}

		entry[KeyRoot] = s.Root
		entry[KeyPages] = toInterfaceList(s.Pages)
		out = append(out, entry)
	}

	return out
}

// stringList accepts both decoded JSON lists and native string slices.
func stringList(v interface{}) ([]string, error) {
	switch val := v.(type) {
	case []string:
		return cloneStrings(val), nil
	case []interface{}:
		out := make([]string, 0, len(val))

		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d: expected a string, got %T", i, item)
			}

			out = append(out, s)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("expected a list of strings, got %T", v)
	}
}

func toInterfaceList(pages []string) []interface{} {
	out := make([]interface{}, len(pages))
	for i, p := range pages {
		out[i] = p
	}

	return out
}
