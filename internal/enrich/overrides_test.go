package enrich

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faithmap/faithmap/internal/model"
)

func writeOverrides(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "websites.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverrides(t *testing.T) {
	path := writeOverrides(t, `websites:
  "22377855": http://www.sarang.org
  "8091547": " http://www.jogyesa.kr "
`)
	o, err := LoadOverrides(path)
	require.NoError(t, err)
	assert.Equal(t, Overrides{"22377855": "http://www.sarang.org", "8091547": "http://www.jogyesa.kr"}, o)
}

func TestLoadOverrides_Blocklisted(t *testing.T) {
	path := writeOverrides(t, "websites:\n  \"1\": http://cs.kakao.com/helps\n")
	_, err := LoadOverrides(path)
	require.Error(t, err)
}

func TestLoadOverrides_BadYAML(t *testing.T) {
	_, err := LoadOverrides(writeOverrides(t, "websites: [unclosed"))
	require.Error(t, err)

	_, err = LoadOverrides(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestOverrides_Apply(t *testing.T) {
	o := Overrides{"1": "http://one.org", "2": "http://two.org", "3": "http://three.org"}
	list := []model.Facility{
		{ID: "1"},
		{ID: "2", Website: "http://old.org"},
		{ID: "3", Website: "http://three.org"},
		{ID: "4"},
	}

	copyList := append([]model.Facility(nil), list...)
	assert.Equal(t, 1, o.Apply(copyList, true))
	assert.Equal(t, "http://old.org", copyList[1].Website)

	assert.Equal(t, 2, o.Apply(list, false))
	assert.Equal(t, "http://one.org", list[0].Website)
	assert.Equal(t, "http://two.org", list[1].Website)
	assert.Empty(t, list[3].Website)
}
