package maputil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/pagefilter/internal/maputil"
)

func TestDeepCopyMap(t *testing.T) {
	src := map[string]interface{}{
		"pages": []interface{}{"pages/index/index", "pages/user/index"},
		"window": map[string]interface{}{
			"navigationBarTitleText": "demo",
		},
		"debug": true,
	}

	dst := maputil.DeepCopyMap(src)
	assert.Equal(t, src, dst)

	dst["window"].(map[string]interface{})["navigationBarTitleText"] = "changed"
	dst["pages"].([]interface{})[0] = "pages/other/index"

	assert.Equal(t, "demo", src["window"].(map[string]interface{})["navigationBarTitleText"])
	assert.Equal(t, "pages/index/index", src["pages"].([]interface{})[0])
}

func TestDeepCopyMap_Nil(t *testing.T) {
	assert.Nil(t, maputil.DeepCopyMap(nil))
}

func TestDeepCopySlice(t *testing.T) {
	src := []interface{}{
		"a",
		map[string]interface{}{"root": "packageA"},
		[]interface{}{1, 2},
	}

	dst := maputil.DeepCopySlice(src)
	assert.Equal(t, src, dst)

	dst[1].(map[string]interface{})["root"] = "packageB"
	assert.Equal(t, "packageA", src[1].(map[string]interface{})["root"])
}

func TestDeepCopySlice_Nil(t *testing.T) {
	assert.Nil(t, maputil.DeepCopySlice(nil))
}

func TestDeepCopyValue_NativeSlices(t *testing.T) {
	pages := []string{"pages/a/1", "pages/a/2"}
	labels := map[string]string{"k": "v"}

	gotPages := maputil.DeepCopyValue(pages).([]string)
	gotLabels := maputil.DeepCopyValue(labels).(map[string]string)

	gotPages[0] = "changed"
	gotLabels["k"] = "changed"

	assert.Equal(t, "pages/a/1", pages[0])
	assert.Equal(t, "v", labels["k"])
}

func TestDeepCopyValue_Scalar(t *testing.T) {
	assert.Equal(t, 42.0, maputil.DeepCopyValue(42.0))
	assert.Equal(t, "x", maputil.DeepCopyValue("x"))
	assert.Nil(t, maputil.DeepCopyValue(nil))
}
