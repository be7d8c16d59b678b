package checker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dak2/methodray/diagnostics"
	"github.com/dak2/methodray/rbs"
)

func coreRecords() []rbs.Record {
	return []rbs.Record{
		{ReceiverClass: "String", MethodName: "upcase", ReturnType: "String"},
		{ReceiverClass: "String", MethodName: "downcase", ReturnType: "String"},
		{ReceiverClass: "Integer", MethodName: "to_s", ReturnType: "String"},
		{ReceiverClass: "Array", MethodName: "each", ReturnType: "Array", BlockParamTypes: []string{"Elem"}},
	}
}

func newTestChecker() *Checker {
	return New(WithRecords(coreRecords()))
}

func TestCheckSourceClean(t *testing.T) {
	c := newTestChecker()
	diags, err := c.CheckSource(context.Background(), "test.rb", []byte(`x = "hello"`))
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestCheckSourceChainedCallClean(t *testing.T) {
	c := newTestChecker()
	diags, err := c.CheckSource(context.Background(), "test.rb",
		[]byte("x = \"hello\"\ny = x.upcase.downcase\n"))
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestCheckSourceUndefinedMethod(t *testing.T) {
	c := newTestChecker()
	diags, err := c.CheckSource(context.Background(), "test.rb",
		[]byte("x = 123\ny = x.upcase\n"))
	require.NoError(t, err)

	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, diagnostics.KindUndefinedMethod, d.Kind)
	assert.Equal(t, diagnostics.SeverityError, d.Severity)
	assert.Equal(t, 2, d.Line)
	assert.Equal(t, 7, d.Column)
	assert.Equal(t, 6, d.Length)
	assert.Equal(t, "undefined method `upcase` for Integer", d.Message)
}

func TestCheckSourceIvarAcrossMethods(t *testing.T) {
	source := `class User
  def initialize
    @name = 123
  end

  def greet
    @name.upcase
  end
end
`
	c := newTestChecker()
	diags, err := c.CheckSource(context.Background(), "user.rb", []byte(source))
	require.NoError(t, err)

	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.KindUndefinedMethod, diags[0].Kind)
	assert.Contains(t, diags[0].Message, "`upcase` for Integer")
	assert.Equal(t, 7, diags[0].Line)
}

func TestCheckSourceBlockParameterResolution(t *testing.T) {
	c := newTestChecker()
	diags, err := c.CheckSource(context.Background(), "test.rb",
		[]byte("[1, 2, 3].each { |i| x = i.to_s }\n"))
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestCheckSourceRestParameter(t *testing.T) {
	c := newTestChecker()
	diags, err := c.CheckSource(context.Background(), "test.rb",
		[]byte("def collect(*items)\n  items\nend\n"))
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestCheckSourceParseFailure(t *testing.T) {
	c := newTestChecker()
	diags, err := c.CheckSource(context.Background(), "bad.rb",
		[]byte("class User\n  def\nend"))
	require.NoError(t, err)

	require.NotEmpty(t, diags)
	assert.Equal(t, diagnostics.KindParseFailure, diags[0].Kind)
	assert.Equal(t, diagnostics.SeverityError, diags[0].Severity)
}

func TestCheckSourcePartialUnionWarns(t *testing.T) {
	// x may be String or Integer; upcase exists only for String
	source := "x = [\"a\", 1].first\ny = x.upcase\n"
	c := New(WithRecords(append(coreRecords(),
		rbs.Record{ReceiverClass: "Array", MethodName: "first", ReturnType: "String | Integer"})))

	diags, err := c.CheckSource(context.Background(), "test.rb", []byte(source))
	require.NoError(t, err)

	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.KindUnionPartialMethod, diags[0].Kind)
	assert.Equal(t, diagnostics.SeverityWarning, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "Integer")
}

func TestCheckSourceRunsTwiceEqually(t *testing.T) {
	source := []byte("x = 123\ny = x.upcase\nz = x.downcase\n")
	c := newTestChecker()

	first, err := c.CheckSource(context.Background(), "test.rb", source)
	require.NoError(t, err)
	second, err := c.CheckSource(context.Background(), "test.rb", source)
	require.NoError(t, err)

	assert.ElementsMatch(t, first, second)
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.rb")
	require.NoError(t, os.WriteFile(path, []byte("x = 123\nx.upcase\n"), 0o644))

	c := newTestChecker()
	diags, err := c.CheckFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, path, diags[0].File)
}

func TestCheckProject(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Gemfile"), []byte("source 'https://rubygems.org'\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "app"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app", "good.rb"), []byte("x = \"hi\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app", "bad.rb"), []byte("y = 1\ny.upcase\n"), 0o644))

	c := newTestChecker()
	diags, err := c.CheckProject(context.Background(), filepath.Join(dir, "app"))
	require.NoError(t, err)

	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].File, "bad.rb")
}

func TestFindProjectRoot(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "app", "models")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Gemfile"), nil, 0o644))

	resolved, err := filepath.EvalSymlinks(FindProjectRoot(nested))
	require.NoError(t, err)
	expected, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, expected, resolved)
}
