package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sakura/internal/schema"
)

func TestMapping_Valid(t *testing.T) {
	require.NoError(t, Validate(Mapping))
	assert.Len(t, Mapping, 28)
}

func TestValidate_Duplicate(t *testing.T) {
	err := Validate([]Attribute{
		{Key: "saku", Enum: "Saku"},
		{Key: "saku", Enum: "SakuBawah"},
	})
	assert.ErrorContains(t, err, `duplicate key "saku"`)
}

func TestValidate_Empty(t *testing.T) {
	assert.Error(t, Validate([]Attribute{{Key: "", Enum: "Saku"}}))
	assert.Error(t, Validate([]Attribute{{Key: "saku", Enum: " "}}))
}

func TestFindAttribute(t *testing.T) {
	a, ok := FindAttribute(Mapping, "varian_saku")
	require.True(t, ok)
	assert.Equal(t, "VariasiSaku", a.Enum)

	a, ok = FindAttribute(Mapping, "  Gantungan_HT ")
	require.True(t, ok)
	assert.Equal(t, "GantunganHT", a.Enum)

	_, ok = FindAttribute(Mapping, "")
	assert.False(t, ok)
	_, ok = FindAttribute(Mapping, "unknown")
	assert.False(t, ok)
}

func TestLint(t *testing.T) {
	cat := schema.ParseEnums("enum Saku { TEMPEL }")
	issues := Lint(cat, []Attribute{
		{Key: "saku", Enum: "Saku"},
		{Key: "saku_lagi", Enum: "Saku"},
		{Key: "hoodie", Enum: "Hoodie"},
	})

	require.Len(t, issues, 2)
	assert.Equal(t, IssueEnumShared, issues[0].Code)
	assert.Equal(t, "saku_lagi", issues[0].Key)
	assert.Equal(t, IssueEnumMissing, issues[1].Code)
	assert.Equal(t, "hoodie", issues[1].Key)
}
