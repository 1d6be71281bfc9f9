package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint_Stable(t *testing.T) {
	a := Object{"acked": Bool(true), "labels": List{String("bug")}}
	b := Object{"labels": List{String("bug")}, "acked": Bool(true)}

	fa, err := Fingerprint(a)
	require.NoError(t, err)
	fb, err := Fingerprint(b)
	require.NoError(t, err)

	assert.Equal(t, fa, fb)
	assert.Len(t, fa, 64)
}

func TestFingerprint_DiffersOnContent(t *testing.T) {
	a := MustFingerprint(Object{"acked": Bool(true)})
	b := MustFingerprint(Object{"acked": Bool(false)})
	assert.NotEqual(t, a, b)
}

func TestFingerprint_DomainSeparated(t *testing.T) {
	obj := Object{"acked": Bool(true)}

	issue := MustFingerprint(obj)
	catalog, err := CatalogID(obj)
	require.NoError(t, err)

	assert.NotEqual(t, issue, catalog)
}

func TestFingerprint_NormalizationInsensitive(t *testing.T) {
	a := MustFingerprint(Object{"title": String("cafe\u0301")})
	b := MustFingerprint(Object{"title": String("caf\u00e9")})
	assert.Equal(t, a, b)
}
