package rbs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dak2/methodray/types"
)

func TestParseTypeForm(t *testing.T) {
	tests := []struct {
		description string
		form        string
		expect      string
	}{
		{description: "plain name", form: "String", expect: "String"},
		{description: "absolute prefix stripped", form: "::String", expect: "String"},
		{description: "qualified name", form: "::Api::User", expect: "Api::User"},
		{description: "nil keyword", form: "nil", expect: "nil"},
		{description: "void keyword", form: "void", expect: "nil"},
		{description: "untyped keyword", form: "untyped", expect: "untyped"},
		{description: "top keyword", form: "top", expect: "untyped"},
		{description: "bool keyword", form: "bool", expect: "TrueClass | FalseClass"},
		{description: "generic", form: "Array[Integer]", expect: "Array[Integer]"},
		{description: "two-arg generic", form: "Hash[String, Integer]", expect: "Hash[String, Integer]"},
		{description: "nested generic", form: "Array[Array[String]]", expect: "Array[Array[String]]"},
		{description: "union", form: "String | Integer", expect: "String | Integer"},
		{description: "union with generic member", form: "Hash[String, Integer] | nil", expect: "Hash[String, Integer] | nil"},
		{description: "singleton", form: "singleton(Api::User)", expect: "singleton(Api::User)"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expect, ParseTypeForm(tc.form).String(), tc.description)
	}
}

func TestParseTypeFormRoundTrip(t *testing.T) {
	forms := []string{
		"String",
		"Array[Integer]",
		"Hash[String, Integer]",
		"String | Integer",
		"nil",
		"untyped",
	}
	for _, form := range forms {
		parsed := ParseTypeForm(form)
		assert.Equal(t, parsed.Key(), ParseTypeForm(parsed.String()).Key(), form)
	}
}

func TestParseTypeFormBoolIsUnion(t *testing.T) {
	b, ok := ParseTypeForm("bool").(types.Union)
	assert.True(t, ok)
	assert.Len(t, b.Members, 2)
}
