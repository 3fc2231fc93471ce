package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() map[string]interface{} {
	return map[string]interface{}{
		"pages": []interface{}{"pages/index/index", "pages/user/index"},
		"subpackages": []interface{}{
			map[string]interface{}{
				"root":        "packageA",
				"name":        "a",
				"independent": true,
				"pages":       []interface{}{"pages/a/1", "pages/a/2"},
			},
			map[string]interface{}{
				"root":  "packageB",
				"pages": []interface{}{"pages/b/1"},
			},
		},
		"window": map[string]interface{}{"navigationBarTitleText": "demo"},
	}
}

func TestFromDocument(t *testing.T) {
	d, err := FromDocument(sampleDocument())
	require.NoError(t, err)

	m := d.Manifest
	assert.Equal(t, []string{"pages/index/index", "pages/user/index"}, m.Pages)
	require.Len(t, m.Sections, 2)
	assert.Equal(t, "packageA", m.Sections[0].Root)
	assert.Equal(t, []string{"pages/a/1", "pages/a/2"}, m.Sections[0].Pages)
	assert.Equal(t, map[string]interface{}{"name": "a", "independent": true}, m.Sections[0].Attrs)
	assert.Equal(t, []string{KeySubpackages}, d.SectionKeys())
}

func TestFromDocument_CamelCaseKey(t *testing.T) {
	doc := map[string]interface{}{
		"pages": []interface{}{"pages/index/index"},
		"subPackages": []interface{}{
			map[string]interface{}{"root": "packageA", "pages": []interface{}{"pages/a/1"}},
		},
	}

	d, err := FromDocument(doc)
	require.NoError(t, err)

	assert.Equal(t, []string{KeySubPackages}, d.SectionKeys())
	assert.Equal(t, []string{"packageA"}, d.Manifest.Roots())

	out := d.Render(d.Manifest)
	assert.Contains(t, out, KeySubPackages)
	assert.NotContains(t, out, KeySubpackages)
}

func TestFromDocument_BothKeysReadLowercaseWriteBoth(t *testing.T) {
	doc := map[string]interface{}{
		"pages": []interface{}{"pages/index/index"},
		"subpackages": []interface{}{
			map[string]interface{}{"root": "packageA", "pages": []interface{}{"pages/a/1"}},
		},
		"subPackages": []interface{}{
			map[string]interface{}{"root": "stale", "pages": []interface{}{"pages/s/1"}},
		},
	}

	d, err := FromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"packageA"}, d.Manifest.Roots())
	assert.Equal(t, []string{KeySubpackages, KeySubPackages}, d.SectionKeys())

	out := d.Render(d.Manifest)
	assert.Equal(t, out[KeySubpackages], out[KeySubPackages])
}

func TestFromDocument_NativeStringSlices(t *testing.T) {
	doc := map[string]interface{}{
		"pages": []string{"pages/index/index"},
	}

	d, err := FromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"pages/index/index"}, d.Manifest.Pages)
	assert.Empty(t, d.Manifest.Sections)
	assert.Empty(t, d.SectionKeys())
}

func TestFromDocument_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  map[string]interface{}
	}{
		{"nil document", nil},
		{"missing pages", map[string]interface{}{"window": map[string]interface{}{}}},
		{"pages not a list", map[string]interface{}{"pages": "pages/index/index"}},
		{"page not a string", map[string]interface{}{"pages": []interface{}{1.0}}},
		{"sections not a list", map[string]interface{}{
			"pages":       []interface{}{},
			"subpackages": map[string]interface{}{},
		}},
		{"section not an object", map[string]interface{}{
			"pages":       []interface{}{},
			"subpackages": []interface{}{"packageA"},
		}},
		{"section without root", map[string]interface{}{
			"pages":       []interface{}{},
			"subpackages": []interface{}{map[string]interface{}{"pages": []interface{}{}}},
		}},
		{"section without pages", map[string]interface{}{
			"pages":       []interface{}{},
			"subpackages": []interface{}{map[string]interface{}{"root": "packageA"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromDocument(tt.doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestFromDocument_NullSectionsIsEmpty(t *testing.T) {
	doc := map[string]interface{}{
		"pages":       []interface{}{"pages/index/index"},
		"subpackages": nil,
	}

	d, err := FromDocument(doc)
	require.NoError(t, err)
	assert.Empty(t, d.Manifest.Sections)
	assert.Equal(t, []string{KeySubpackages}, d.SectionKeys())
}

func TestDocument_RenderPreservesOtherFields(t *testing.T) {
	src := sampleDocument()

	d, err := FromDocument(src)
	require.NoError(t, err)

	m := d.Manifest.Clone()
	m.Pages = []string{"pages/index/index"}
	m.Sections = m.Sections[:1]
	m.Sections[0].Pages = []string{"pages/a/2"}

	out := d.Render(m)

	assert.Equal(t, []interface{}{"pages/index/index"}, out["pages"])
	assert.Equal(t, src["window"], out["window"])

	sections := out[KeySubpackages].([]interface{})
	require.Len(t, sections, 1)

	entry := sections[0].(map[string]interface{})
	assert.Equal(t, "packageA", entry["root"])
	assert.Equal(t, "a", entry["name"])
	assert.Equal(t, true, entry["independent"])
	assert.Equal(t, []interface{}{"pages/a/2"}, entry["pages"])

	// The source document is untouched.
	assert.Len(t, src["pages"], 2)
	assert.Len(t, src[KeySubpackages], 2)
}

func TestDocument_RenderAddsSectionsKeyWhenMissing(t *testing.T) {
	d, err := FromDocument(map[string]interface{}{"pages": []interface{}{}})
	require.NoError(t, err)

	out := d.Render(&Manifest{
		Pages:    []string{},
		Sections: []Section{{Root: "packageA", Pages: []string{"pages/a/1"}}},
	})

	assert.Contains(t, out, KeySubpackages)
}
