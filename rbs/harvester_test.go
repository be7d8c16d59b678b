package rbs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dak2/methodray/registry"
	"github.com/dak2/methodray/types"
)

func TestRecordYAMLDecoding(t *testing.T) {
	payload := `
- receiver_class: String
  method_name: upcase
  return_type: String
- receiver_class: Array
  method_name: each
  return_type: Array
  block_param_types: [Elem]
`
	var records []Record
	require.NoError(t, yaml.Unmarshal([]byte(payload), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "upcase", records[0].MethodName)
	assert.Equal(t, []string{"Elem"}, records[1].BlockParamTypes)
}

func TestLoadIntoRegistry(t *testing.T) {
	reg := registry.New()
	LoadIntoRegistry([]Record{
		{ReceiverClass: "String", MethodName: "upcase", ReturnType: "String"},
		{ReceiverClass: "::Api::User", MethodName: "name", ReturnType: "String | nil"},
		{ReceiverClass: "Array", MethodName: "each", ReturnType: "Array", BlockParamTypes: []string{"Elem"}},
	}, reg)

	m, ok := reg.Resolve(types.String(), "upcase")
	require.True(t, ok)
	assert.Equal(t, "String", m.Return.String())

	m, ok = reg.Resolve(types.NewInstance("Api::User"), "name")
	require.True(t, ok)
	assert.Equal(t, "String | nil", m.Return.String())

	m, ok = reg.Resolve(types.Array(), "each")
	require.True(t, ok)
	require.Len(t, m.BlockParams, 1)
	assert.Equal(t, "Elem", m.BlockParams[0].String())
}

func TestCommandHarvesterWithoutCommand(t *testing.T) {
	h := &CommandHarvester{}

	_, err := h.Harvest()
	assert.ErrorIs(t, err, ErrNoHarvester)

	_, err = h.Version()
	assert.ErrorIs(t, err, ErrNoHarvester)
}

func TestBuiltinRecordsLoad(t *testing.T) {
	reg := registry.New()
	LoadIntoRegistry(BuiltinRecords(), reg)

	_, ok := reg.Resolve(types.String(), "upcase")
	assert.True(t, ok)
	m, ok := reg.Resolve(types.Array(), "each")
	assert.True(t, ok)
	assert.Len(t, m.BlockParams, 1)
}
