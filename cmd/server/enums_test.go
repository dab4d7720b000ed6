package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"sakura/internal/schema"
)

const schemaText = "enum Kerah {\n SANGHAI\n KPC_2_WARNA\n}\nenum Saku { TEMPEL }"

func TestWriteCatalog_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCatalog(&buf, schema.ParseEnums(schemaText), "json"))

	var dump catalogDump
	require.NoError(t, json.Unmarshal(buf.Bytes(), &dump))
	require.Len(t, dump.Attributes, 2)
	assert.Equal(t, "kerah", dump.Attributes[0].Key)
	assert.Equal(t, "saku", dump.Attributes[1].Key)
	assert.Len(t, dump.Options, 3)
	assert.Equal(t, "KPC 2 Warna", dump.Options[1].Label)
	assert.Equal(t, []string{"TEMPEL"}, dump.Enums["Saku"])
	// остальные 26 ключей не нашли свой enum
	assert.Len(t, dump.Issues, 26)
}

func TestWriteCatalog_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCatalog(&buf, schema.ParseEnums(schemaText), "yaml"))

	var dump catalogDump
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &dump))
	assert.Len(t, dump.Options, 3)
	assert.True(t, dump.Options[0].IsActive)
}

func TestWriteCatalog_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, writeCatalog(&buf, schema.NewCatalog(), "xml"))
}
