// Package model defines the document model of ADF/Fabric pipeline and
// dataset definitions. Documents are kept as ordered maps, the model
// provides typed accessors over the well-known keys.
package model

import (
	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/cast"
)

// ActivityType is the "type" discriminant of a pipeline activity.
// The transform dispatches on the closed set below,
// any other value is opaque pass-through data.
type ActivityType string

const (
	ActivityCopy        ActivityType = "Copy"
	ActivityForEach     ActivityType = "ForEach"
	ActivityIfCondition ActivityType = "IfCondition"
	ActivitySwitch      ActivityType = "Switch"
	ActivityUntil       ActivityType = "Until"
)

// Well-known document keys.
const (
	NameKey              = "name"
	TypeKey              = "type"
	PropertiesKey        = "properties"
	ActivitiesKey        = "activities"
	TypePropertiesKey    = "typeProperties"
	IfTrueActivitiesKey  = "ifTrueActivities"
	IfFalseActivitiesKey = "ifFalseActivities"
	CasesKey             = "cases"
	DefaultActivitiesKey = "defaultActivities"
	InputsKey            = "inputs"
	OutputsKey           = "outputs"
	SourceKey            = "source"
	SinkKey              = "sink"
	DatasetSettingsKey   = "datasetSettings"
	ParametersKey        = "parameters"
	ReferenceNameKey     = "referenceName"
	LinkedServiceNameKey = "linkedServiceName"
	DefinitionKey        = "definition"
)

// DatasetReferenceType is the "type" value of a dataset reference object.
const DatasetReferenceType = "DatasetReference"

// ActivityTypeOf returns the activity "type" value, empty when missing.
func ActivityTypeOf(activity *orderedmap.OrderedMap) ActivityType {
	return ActivityType(StringValue(activity, TypeKey))
}

// ActivityName returns the activity "name" value, empty when missing.
func ActivityName(activity *orderedmap.OrderedMap) string {
	return StringValue(activity, NameKey)
}

// PipelineActivities returns the top-level "properties.activities" sequence.
func PipelineActivities(pipeline *orderedmap.OrderedMap) ([]any, bool) {
	properties, ok := MapValue(pipeline, PropertiesKey)
	if !ok {
		return nil, false
	}
	return SliceValue(properties, ActivitiesKey)
}

// MapValue returns the key value if it is a JSON object.
func MapValue(m *orderedmap.OrderedMap, key string) (*orderedmap.OrderedMap, bool) {
	if m == nil {
		return nil, false
	}
	value, found := m.Get(key)
	if !found {
		return nil, false
	}
	out, ok := value.(*orderedmap.OrderedMap)
	return out, ok
}

// SliceValue returns the key value if it is a JSON array.
func SliceValue(m *orderedmap.OrderedMap, key string) ([]any, bool) {
	if m == nil {
		return nil, false
	}
	value, found := m.Get(key)
	if !found {
		return nil, false
	}
	out, ok := value.([]any)
	return out, ok
}

// StringValue returns the key value converted to string, empty when missing
// or not a scalar.
func StringValue(m *orderedmap.OrderedMap, key string) string {
	if m == nil {
		return ""
	}
	value, found := m.Get(key)
	if !found {
		return ""
	}
	out, err := cast.ToStringE(value)
	if err != nil {
		return ""
	}
	return out
}
