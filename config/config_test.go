package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/notegrid/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv("NOTEGRID_OUT_DIR", "")
	t.Setenv("NOTEGRID_METADATA_ENDPOINT", "")
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoad(t *testing.T) {
	t.Setenv("NOTEGRID_OUT_DIR", "/tmp/elsewhere")
	t.Setenv("NOTEGRID_METADATA_ENDPOINT", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
ppq: 480
quantize: "8-3"
locale: UK
remove_polyphony: false
server:
  addr: ":9000"
metadata:
  table: songs
  endpoint: http://localhost:8000
`), 0644))

	c, err := Load(path)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(480, c.PPQ)
	assert.Equal("8-3", c.Quantize)
	assert.Equal("UK", c.Locale)
	assert.False(c.RemovePolyphony)
	assert.Equal(":9000", c.Server.Addr)
	assert.Equal("songs", c.Metadata.Table)
	assert.Equal("http://localhost:8000", c.Metadata.Endpoint)
	assert.Equal("us-east-1", c.Metadata.Region)
	assert.Equal("/tmp/elsewhere", c.OutDir)
	assert.Equal(8, c.ControlNoteMax)
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"ppq":      "ppq: 0",
		"locale":   "locale: FR",
		"quantize": "quantize: sometimes",
		"yaml":     "ppq: [",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("NOTEGRID_OUT_DIR", "")
	t.Setenv("NOTEGRID_METADATA_ENDPOINT", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := Default()
	c.Quantize = "16"
	require.NoError(t, c.Save(path))

	res, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, res)
}

func TestParseQuantize(t *testing.T) {
	for _, tc := range []struct {
		in   string
		mode QuantizeMode
		arg  string
	}{
		{"", QuantizeAuto, ""},
		{"auto", QuantizeAuto, ""},
		{"none", QuantizeNone, ""},
		{"16", QuantizeNote, "16"},
		{"4.", QuantizeNote, "4."},
		{"120", QuantizeTicks, "120"},
	} {
		mode, arg, err := ParseQuantize(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.mode, mode, tc.in)
		assert.Equal(t, tc.arg, arg, tc.in)
	}

	_, _, err := ParseQuantize("-5")
	assert.ErrorIs(t, err, model.ErrValue)
}
