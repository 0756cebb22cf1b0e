package model

import (
	"context"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/fabrictools/adf-migrate/internal/pkg/utils/errors"
	"github.com/fabrictools/adf-migrate/internal/pkg/validator"
)

// DatasetReference is a named pointer from an activity to a dataset
// definition, together with the call-site parameter values.
type DatasetReference struct {
	ReferenceName string
	Parameters    *orderedmap.OrderedMap
}

// ParseDatasetReference reads a dataset reference object,
// e.g. the first item of a Copy activity "inputs"/"outputs" array.
func ParseDatasetReference(value any) (*DatasetReference, bool) {
	m, ok := value.(*orderedmap.OrderedMap)
	if !ok {
		return nil, false
	}
	if StringValue(m, TypeKey) != DatasetReferenceType {
		return nil, false
	}
	name := StringValue(m, ReferenceNameKey)
	if name == "" {
		return nil, false
	}
	parameters, _ := MapValue(m, ParametersKey)
	return &DatasetReference{ReferenceName: name, Parameters: parameters}, true
}

// Dataset is a parsed dataset definition from the factory export:
// {name, definition: {properties: {type, linkedServiceName, parameters, typeProperties}}}.
type Dataset struct {
	Name              string                 `validate:"required"`
	Type              string                 `validate:"required"`
	LinkedServiceName *orderedmap.OrderedMap `validate:"-"`
	Parameters        *orderedmap.OrderedMap `validate:"-"`
	TypeProperties    *orderedmap.OrderedMap `validate:"-"`
}

// ParseDataset reads a dataset definition document.
func ParseDataset(ctx context.Context, doc *orderedmap.OrderedMap) (*Dataset, error) {
	if doc == nil {
		return nil, errors.New("dataset document is missing")
	}

	name := StringValue(doc, NameKey)
	properties, ok := MapValue(doc, DefinitionKey)
	if ok {
		properties, ok = MapValue(properties, PropertiesKey)
	} else {
		// Tolerate the flattened export shape without the "definition" envelope
		properties, ok = MapValue(doc, PropertiesKey)
	}
	if !ok {
		return nil, errors.Errorf(`dataset "%s" is missing "definition.properties"`, name)
	}

	out := &Dataset{Name: name}
	out.Type = StringValue(properties, TypeKey)
	out.LinkedServiceName, _ = MapValue(properties, LinkedServiceNameKey)
	out.Parameters, _ = MapValue(properties, ParametersKey)
	out.TypeProperties, _ = MapValue(properties, TypePropertiesKey)

	if err := validator.New().Validate(ctx, out); err != nil {
		return nil, errors.Wrap(err, "dataset definition is not valid")
	}
	return out, nil
}
