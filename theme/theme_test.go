package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGPL = `GIMP Palette
Name: duo
Columns: 2
# comment
  0   0   0	black
255 255 255	white
300  10  10	out of range
`

func TestParseGPL(t *testing.T) {
	p, err := ParseGPL(strings.NewReader(sampleGPL))
	require.NoError(t, err)
	assert.Equal(t, "duo", p.Name)
	assert.Equal(t, []RGB{{0, 0, 0}, {255, 255, 255}}, p.Colors)
}

func TestParseGPLEmpty(t *testing.T) {
	_, err := ParseGPL(strings.NewReader("GIMP Palette\nName: none\n"))
	assert.Error(t, err)
}

func TestLookupInterpolates(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {200, 100, 50}}}
	assert.Equal(t, RGB{0, 0, 0}, p.Lookup(-1))
	assert.Equal(t, RGB{200, 100, 50}, p.Lookup(2))
	assert.Equal(t, RGB{100, 50, 25}, p.Lookup(0.5))
}

func TestHostColor(t *testing.T) {
	assert.Equal(t, "#ff8800", FromUint32(0xFF8800).Hex())
}

func TestLoadFallsBack(t *testing.T) {
	th := Load(filepath.Join(t.TempDir(), "missing.gpl"))
	assert.Same(t, Plasma, th.Palette)

	path := filepath.Join(t.TempDir(), "duo.gpl")
	require.NoError(t, os.WriteFile(path, []byte(sampleGPL), 0o644))
	th = Load(path)
	assert.Equal(t, "duo", th.Palette.Name)
}
