// Package expression rewrites dataset parameter references inside
// connection-shape JSON. Two textual forms are recognized:
// "@dataset().NAME" and "@{dataset().NAME}". Values wrapped in an
// Expression object {value, type: "Expression"} are unwrapped to a plain
// string once the value no longer contains an unresolved reference.
package expression

import (
	"strings"

	"github.com/keboola/go-utils/pkg/deepcopy"
	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/cast"
	"github.com/umisama/go-regexpcache"
)

const (
	ValueKey       = "value"
	TypeKey        = "type"
	TypeExpression = "Expression"
)

const (
	bracketFormPattern = `@\{dataset\(\)\.([A-Za-z0-9_]+)\}`
	plainFormPattern   = `@dataset\(\)\.([A-Za-z0-9_]+)`
)

// Substitution rewrites dataset parameter references against one
// parameter value map. It records the names of parameters that were
// referenced but had a null value, so the caller can surface a warning.
type Substitution struct {
	parameters     *orderedmap.OrderedMap
	nullParameters []string
}

func NewSubstitution(parameters *orderedmap.OrderedMap) *Substitution {
	return &Substitution{parameters: parameters}
}

// Apply returns a copy of the value with all resolvable parameter
// references replaced. The input is never modified.
// Unknown references and malformed expressions are left as they are.
func (s *Substitution) Apply(value any) any {
	if value == nil {
		return nil
	}
	return s.rewrite(deepcopy.Copy(value))
}

// NullParameters returns names of referenced parameters with a null value,
// in the order of the first occurrence.
func (s *Substitution) NullParameters() []string {
	return s.nullParameters
}

func (s *Substitution) rewrite(value any) any {
	switch v := value.(type) {
	case *orderedmap.OrderedMap:
		// An Expression object is substituted through its inner value
		if inner, ok := Value(v); ok {
			replaced := s.replaceAll(inner)
			if fullyResolved(replaced) {
				return replaced
			}
			v.Set(ValueKey, replaced)
			return v
		}
		for _, key := range v.Keys() {
			nested, _ := v.Get(key)
			v.Set(key, s.rewrite(nested))
		}
		return v
	case []any:
		for i := range v {
			v[i] = s.rewrite(v[i])
		}
		return v
	case string:
		return s.replaceAll(v)
	default:
		return value
	}
}

func (s *Substitution) replaceAll(text string) string {
	out := s.replaceForm(text, bracketFormPattern)
	out = s.replaceForm(out, plainFormPattern)
	return out
}

func (s *Substitution) replaceForm(text string, pattern string) string {
	form := regexpcache.MustCompile(pattern)
	return form.ReplaceAllStringFunc(text, func(match string) string {
		name := form.FindStringSubmatch(match)[1]
		return s.resolve(name, match)
	})
}

// resolve returns the replacement for one parameter reference,
// or the original match text when the reference cannot be substituted.
func (s *Substitution) resolve(name string, original string) string {
	if s.parameters == nil {
		return original
	}

	value, found := s.parameters.Get(name)
	if !found {
		return original
	}

	// A null value cannot be substituted, keep the reference text
	if value == nil {
		s.trackNullParameter(name)
		return original
	}

	// An Expression parameter contributes its inner value
	if inner, ok := Value(value); ok {
		return inner
	}
	return cast.ToString(value)
}

func (s *Substitution) trackNullParameter(name string) {
	for _, existing := range s.nullParameters {
		if existing == name {
			return
		}
	}
	s.nullParameters = append(s.nullParameters, name)
}

// Value returns the inner string of an Expression object.
func Value(value any) (string, bool) {
	m, ok := value.(*orderedmap.OrderedMap)
	if !ok {
		return "", false
	}
	if typeRaw, _ := m.Get(TypeKey); typeRaw != TypeExpression {
		return "", false
	}
	innerRaw, found := m.Get(ValueKey)
	if !found {
		return "", false
	}
	inner, ok := innerRaw.(string)
	return inner, ok
}

// New wraps a string in an Expression object.
func New(value string) *orderedmap.OrderedMap {
	return orderedmap.FromPairs([]orderedmap.Pair{
		{Key: ValueKey, Value: value},
		{Key: TypeKey, Value: TypeExpression},
	})
}

// fullyResolved reports whether the text contains no unresolved reference.
// Deliberately a plain substring check, the downstream deployment relies
// on this exact behavior, see ContainsReference.
func fullyResolved(value string) bool {
	return !ContainsReference(value)
}

// ContainsReference reports whether the text still looks like a dynamic
// expression: it contains "@dataset" or "@{".
func ContainsReference(value string) bool {
	return strings.Contains(value, "@dataset") || strings.Contains(value, "@{")
}
