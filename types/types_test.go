package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualifiedName(t *testing.T) {
	tests := []struct {
		description string
		input       string
		full        string
		name        string
		depth       int
		simple      bool
	}{
		{
			description: "simple name",
			input:       "User",
			full:        "User",
			name:        "User",
			depth:       1,
			simple:      true,
		},
		{
			description: "nested name",
			input:       "Api::V1::User",
			full:        "Api::V1::User",
			name:        "User",
			depth:       3,
		},
		{
			description: "absolute prefix is normalized away",
			input:       "::Api::User",
			full:        "Api::User",
			name:        "User",
			depth:       2,
		},
	}
	for _, tc := range tests {
		q := NewQualifiedName(tc.input)
		assert.Equal(t, tc.full, q.String(), tc.description)
		assert.Equal(t, tc.name, q.Name(), tc.description)
		assert.Equal(t, tc.depth, q.Depth(), tc.description)
		assert.Equal(t, tc.simple, q.IsSimple(), tc.description)
	}
}

func TestQualifiedNameSegments(t *testing.T) {
	q := NewQualifiedName("Api::V1::User")

	seg, ok := q.Segment(0)
	assert.True(t, ok)
	assert.Equal(t, "Api", seg)

	seg, ok = q.Segment(2)
	assert.True(t, ok)
	assert.Equal(t, "User", seg)

	_, ok = q.Segment(3)
	assert.False(t, ok)
}

func TestQualifiedNameParentChild(t *testing.T) {
	q := NewQualifiedName("Api::V1::User")

	parent, ok := q.Parent()
	assert.True(t, ok)
	assert.Equal(t, "Api::V1", parent.String())

	grand, ok := parent.Parent()
	assert.True(t, ok)
	assert.Equal(t, "Api", grand.String())
	_, ok = grand.Parent()
	assert.False(t, ok)

	assert.Equal(t, "Api::V1", SimpleName("Api").Child("V1").String())
	assert.Equal(t, "Api::V1::User", SimpleName("Api").Join(NewQualifiedName("V1::User")).String())
}

func TestTypePrinting(t *testing.T) {
	tests := []struct {
		description string
		typ         Type
		expect      string
	}{
		{description: "instance", typ: String(), expect: "String"},
		{description: "qualified instance", typ: NewInstance("Api::V1::User"), expect: "Api::V1::User"},
		{description: "generic array", typ: ArrayOf(Integer()), expect: "Array[Integer]"},
		{description: "generic hash", typ: HashOf(String(), Integer()), expect: "Hash[String, Integer]"},
		{description: "singleton", typ: NewSingleton("Api::User"), expect: "singleton(Api::User)"},
		{description: "nil", typ: Nil{}, expect: "nil"},
		{description: "bot", typ: Bot{}, expect: "untyped"},
		{description: "union keeps construction order", typ: NewUnion(String(), Integer()), expect: "String | Integer"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expect, tc.typ.String(), tc.description)
	}
}

func TestNewUnionFlattening(t *testing.T) {
	// nested unions flatten
	u := NewUnion(String(), NewUnion(Integer(), Float()))
	union, ok := u.(Union)
	assert.True(t, ok)
	assert.Len(t, union.Members, 3)

	// duplicates collapse, singleton unwraps
	assert.Equal(t, String(), NewUnion(String(), String()))

	// Bot absorbs
	assert.Equal(t, Integer(), NewUnion(Bot{}, Integer()))
	assert.Equal(t, Bot{}, NewUnion(Bot{}, Bot{}))
	assert.Equal(t, Bot{}, NewUnion())
}

func TestUnionEqualityIsUnordered(t *testing.T) {
	a := NewUnion(String(), Integer())
	b := NewUnion(Integer(), String())
	assert.True(t, Equal(a, b))
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.String(), b.String())
}

func TestBaseClassNameAndArgs(t *testing.T) {
	name, ok := BaseClassName(ArrayOf(Integer()))
	assert.True(t, ok)
	assert.Equal(t, "Array", name)

	name, ok = BaseClassName(NewInstance("Api::User"))
	assert.True(t, ok)
	assert.Equal(t, "Api::User", name)

	_, ok = BaseClassName(Nil{})
	assert.False(t, ok)
	_, ok = BaseClassName(Bot{})
	assert.False(t, ok)

	args := TypeArgs(HashOf(String(), Integer()))
	assert.Len(t, args, 2)
	assert.Nil(t, TypeArgs(String()))
}

func TestBool(t *testing.T) {
	b, ok := Bool().(Union)
	assert.True(t, ok)
	assert.Len(t, b.Members, 2)
	assert.Equal(t, "TrueClass | FalseClass", b.String())
}
