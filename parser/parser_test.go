package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValidSource(t *testing.T) {
	result, err := Parse(context.Background(), []byte(`x = "hello"`))
	require.NoError(t, err)
	require.NotNil(t, result.Root)
	assert.Equal(t, "program", result.Root.Type())
}

func TestParseClassDefinition(t *testing.T) {
	source := []byte("class User\n  def greet\n    \"hi\"\n  end\nend\n")
	result, err := Parse(context.Background(), source)
	require.NoError(t, err)
	require.EqualValues(t, 1, result.Root.NamedChildCount())
	assert.Equal(t, "class", result.Root.NamedChild(0).Type())
}

func TestParseSyntaxErrorSurfaces(t *testing.T) {
	_, err := Parse(context.Background(), []byte("class User\n  def\nend"))
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.NotEmpty(t, parseErr.Errors)
	assert.NotEmpty(t, parseErr.Error())
}

func TestParsePartialTreeStillReturned(t *testing.T) {
	result, err := Parse(context.Background(), []byte("x = ("))
	require.Error(t, err)
	require.NotNil(t, result)
	assert.NotNil(t, result.Root)
}
