package expression

import (
	"testing"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/stretchr/testify/assert"

	"github.com/fabrictools/adf-migrate/internal/pkg/encoding/json"
)

func TestSubstitution_Apply(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		input      string
		parameters string
		expected   string
	}{
		{
			"expression unwrapped to plain string",
			`{"location":{"fileName":{"value":"@dataset().p_FileName","type":"Expression"}}}`,
			`{"p_FileName":"data.csv"}`,
			`{"location":{"fileName":"data.csv"}}`,
		},
		{
			"missing parameter is kept verbatim",
			`{"location":{"fileName":{"value":"@dataset().p_Other","type":"Expression"}}}`,
			`{"p_FileName":"data.csv"}`,
			`{"location":{"fileName":{"value":"@dataset().p_Other","type":"Expression"}}}`,
		},
		{
			"bracket form inside plain string",
			`{"folderPath":"root/@{dataset().p_Directory}/sub"}`,
			`{"p_Directory":"in"}`,
			`{"folderPath":"root/in/sub"}`,
		},
		{
			"both forms in one value",
			`{"path":{"value":"@{dataset().p_Container}/@dataset().p_Directory","type":"Expression"}}`,
			`{"p_Container":"c1","p_Directory":"d1"}`,
			`{"path":"c1/d1"}`,
		},
		{
			"expression parameter keeps the wrapper when unresolved",
			`{"fileSystem":{"value":"@dataset().p_FileSystem/@dataset().p_Other","type":"Expression"}}`,
			`{"p_FileSystem":"fs1"}`,
			`{"fileSystem":{"value":"fs1/@dataset().p_Other","type":"Expression"}}`,
		},
		{
			"expression parameter value is taken from the inner value",
			`{"fileSystem":{"value":"@dataset().p_FileSystem","type":"Expression"}}`,
			`{"p_FileSystem":{"value":"@pipeline().globalParameters.gp_Container","type":"Expression"}}`,
			`{"fileSystem":"@pipeline().globalParameters.gp_Container"}`,
		},
		{
			"numeric and boolean values are stringified",
			`{"a":"@dataset().p_Num","b":"@dataset().p_Bool"}`,
			`{"p_Num":13,"p_Bool":true}`,
			`{"a":"13","b":"true"}`,
		},
		{
			"arrays are rewritten recursively",
			`{"paths":["@dataset().p_A",{"value":"@dataset().p_B","type":"Expression"}]}`,
			`{"p_A":"first","p_B":"second"}`,
			`{"paths":["first","second"]}`,
		},
		{
			"non-expression objects pass through",
			`{"recursive":true,"count":3,"nothing":null}`,
			`{}`,
			`{"recursive":true,"count":3,"nothing":null}`,
		},
		{
			"malformed expression is left as-is",
			`{"path":"@dataset()..broken @data"}`,
			`{"p":"x"}`,
			`{"path":"@dataset()..broken @data"}`,
		},
	}

	for _, c := range cases {
		input := orderedmap.New()
		json.MustDecodeString(c.input, input)
		parameters := orderedmap.New()
		json.MustDecodeString(c.parameters, parameters)

		out := NewSubstitution(parameters).Apply(input)
		assert.Equal(t, c.expected, json.MustEncodeString(out, false), c.name)
		// The input must never be modified
		assert.Equal(t, c.input, json.MustEncodeString(input, false), c.name)
	}
}

func TestSubstitution_NullParameter(t *testing.T) {
	t.Parallel()

	input := orderedmap.New()
	json.MustDecodeString(`{"a":"@dataset().p_Null","b":"@dataset().p_Null"}`, input)
	parameters := orderedmap.New()
	json.MustDecodeString(`{"p_Null":null}`, parameters)

	s := NewSubstitution(parameters)
	out := s.Apply(input)
	assert.Equal(t, `{"a":"@dataset().p_Null","b":"@dataset().p_Null"}`, json.MustEncodeString(out, false))
	assert.Equal(t, []string{"p_Null"}, s.NullParameters())
}

func TestSubstitution_NilParameters(t *testing.T) {
	t.Parallel()
	out := NewSubstitution(nil).Apply("@dataset().p_Any")
	assert.Equal(t, "@dataset().p_Any", out)
}

func TestSubstitution_NilValue(t *testing.T) {
	t.Parallel()
	assert.Nil(t, NewSubstitution(orderedmap.New()).Apply(nil))
}

func TestExpressionValue(t *testing.T) {
	t.Parallel()

	value, ok := Value(New("@dataset().p_X"))
	assert.True(t, ok)
	assert.Equal(t, "@dataset().p_X", value)

	_, ok = Value("plain string")
	assert.False(t, ok)

	m := orderedmap.New()
	m.Set("value", "x")
	m.Set("type", "LinkedServiceReference")
	_, ok = Value(m)
	assert.False(t, ok)
}

func TestContainsReference(t *testing.T) {
	t.Parallel()
	assert.True(t, ContainsReference("@dataset().p_X"))
	assert.True(t, ContainsReference("prefix @{pipeline().x}"))
	assert.False(t, ContainsReference("@pipeline().globalParameters.gp_Container"))
	assert.False(t, ContainsReference("plain"))
}
