package transform

import (
	"fmt"

	"github.com/keboola/go-utils/pkg/orderedmap"
)

// WarningKind classifies what the transform could not fully resolve.
type WarningKind string

const (
	// WarningUnresolvedDataset - a referenced dataset is not in the catalog,
	// datasetSettings were not embedded for that side.
	WarningUnresolvedDataset WarningKind = "unresolved-dataset"
	// WarningMissingReference - a Copy activity has no dataset reference
	// for one side.
	WarningMissingReference WarningKind = "missing-reference"
	// WarningMissingSide - "typeProperties.source/sink" object is missing,
	// there is no place to embed datasetSettings.
	WarningMissingSide WarningKind = "missing-side"
	// WarningNullParameter - a referenced parameter had a null value,
	// the original expression text was preserved.
	WarningNullParameter WarningKind = "null-parameter"
	// WarningMissingGlobalParameter - the transformed pipeline references
	// a global parameter that is not defined in the supplied context.
	WarningMissingGlobalParameter WarningKind = "missing-global-parameter"
)

// Warning is one best-effort degradation of the transform.
// The transform never fails on them, the caller decides what to do.
type Warning struct {
	Kind     WarningKind
	Activity string
	Detail   string
}

func (w Warning) String() string {
	if w.Activity == "" {
		return fmt.Sprintf("[%s] %s", w.Kind, w.Detail)
	}
	return fmt.Sprintf(`[%s] activity "%s": %s`, w.Kind, w.Activity, w.Detail)
}

// Result of one pipeline transform.
type Result struct {
	PipelineName string
	Pipeline     *orderedmap.OrderedMap
	Warnings     []Warning
}

// WarningsByKind filters the warnings.
func (r *Result) WarningsByKind(kind WarningKind) []Warning {
	var out []Warning
	for _, warning := range r.Warnings {
		if warning.Kind == kind {
			out = append(out, warning)
		}
	}
	return out
}
