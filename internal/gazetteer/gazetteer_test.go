package gazetteer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGovernorateLookup(t *testing.T) {
	gov, ok := Governorate("1002")
	require.True(t, ok)
	assert.Equal(t, "Tunis", gov)

	gov, ok = Governorate("6000")
	require.True(t, ok)
	assert.Equal(t, "Gabès", gov)

	// registry key is bare but the returned name must be accented
	gov, ok = Governorate("4100")
	require.True(t, ok)
	assert.Equal(t, "Médenine", gov)
}

func TestGovernorateLookupTrimsWhitespace(t *testing.T) {
	gov, ok := Governorate(" 1000 ")
	require.True(t, ok)
	assert.Equal(t, "Tunis", gov)
}

func TestUnknownCode(t *testing.T) {
	_, ok := Governorate("0000")
	assert.False(t, ok)
	_, ok = District("0000")
	assert.False(t, ok)
	assert.False(t, IsValid("0000"))

	// no numeric coercion: "01000" is not "1000"
	_, ok = Governorate("01000")
	assert.False(t, ok)
}

func TestDistrictLookup(t *testing.T) {
	d, ok := District("8050")
	require.True(t, ok)
	assert.Equal(t, "Hammamet", d)

	d, ok = District("2078")
	require.True(t, ok)
	assert.Equal(t, "La Marsa", d)
}

func TestCodesFor(t *testing.T) {
	codes := CodesFor("Gabès")
	require.NotEmpty(t, codes)
	assert.Contains(t, codes, "6000")
	assert.Contains(t, codes, "6080")

	// bare registry spelling works too
	assert.Equal(t, codes, CodesFor("GABES"))

	assert.Nil(t, CodesFor("Atlantis"))
}
