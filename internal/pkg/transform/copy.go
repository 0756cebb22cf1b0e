package transform

import (
	"context"

	"github.com/keboola/go-utils/pkg/deepcopy"
	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/fabrictools/adf-migrate/internal/pkg/dataset"
	"github.com/fabrictools/adf-migrate/internal/pkg/expression"
	"github.com/fabrictools/adf-migrate/internal/pkg/model"
)

// transformCopy rewrites one Copy activity in place (the tree is already
// cloned by the caller): the resolved, parameter-substituted dataset
// shapes are embedded as "typeProperties.{source,sink}.datasetSettings"
// and the legacy "inputs"/"outputs" arrays are removed. Everything else,
// store/format settings, staging and tuning fields, name, dependsOn,
// policy, stays untouched. A resolver failure degrades to a warning,
// no failure of one side aborts the activity or the pipeline.
func (r *pipelineRun) transformCopy(ctx context.Context, activity *orderedmap.OrderedMap) *orderedmap.OrderedMap {
	name := model.ActivityName(activity)
	mappings := r.resolver.CopyMappings(ctx, activity)

	if typeProperties, ok := model.MapValue(activity, model.TypePropertiesKey); ok {
		r.embedDatasetSettings(typeProperties, model.SourceKey, mappings.Source, name)
		r.embedDatasetSettings(typeProperties, model.SinkKey, mappings.Sink, name)
	} else {
		r.logger.Debugf(`activity "%s" has no typeProperties, nothing to embed`, name)
	}

	// Fabric embeds the connection shape directly in the activity,
	// the dataset reference arrays have no meaning anymore.
	activity.Delete(model.InputsKey)
	activity.Delete(model.OutputsKey)
	return activity
}

// embedDatasetSettings builds "datasetSettings" for one side.
func (r *pipelineRun) embedDatasetSettings(typeProperties *orderedmap.OrderedMap, sideKey string, side *dataset.Side, activityName string) {
	if side == nil {
		r.warn(WarningMissingReference, activityName, `no %s dataset reference`, sideKey)
		return
	}
	if side.Dataset == nil {
		r.warn(WarningUnresolvedDataset, activityName, `%s dataset "%s" was not found in the catalog`, sideKey, side.ReferenceName)
		return
	}

	sideMap, ok := model.MapValue(typeProperties, sideKey)
	if !ok {
		r.warn(WarningMissingSide, activityName, `"typeProperties.%s" is missing, datasetSettings of dataset "%s" not embedded`, sideKey, side.ReferenceName)
		return
	}

	substitution := expression.NewSubstitution(side.Parameters)

	settings := orderedmap.New()
	settings.Set(model.TypeKey, side.Dataset.Type)
	if side.Dataset.LinkedServiceName != nil {
		settings.Set(model.LinkedServiceNameKey, deepcopy.Copy(side.Dataset.LinkedServiceName))
	}
	if side.Dataset.TypeProperties != nil {
		settings.Set(model.TypePropertiesKey, substitution.Apply(side.Dataset.TypeProperties))
	}
	sideMap.Set(model.DatasetSettingsKey, settings)

	for _, parameter := range substitution.NullParameters() {
		r.warn(WarningNullParameter, activityName, `parameter "%s" of dataset "%s" is null, the expression was kept`, parameter, side.ReferenceName)
	}
}
