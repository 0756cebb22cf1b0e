// Package transform rewrites ADF pipeline definitions into the shape the
// Fabric pipeline engine expects. The walker visits every activity
// depth-first, Copy activities get the dataset shape embedded, container
// activities (ForEach, IfCondition, Switch, Until) are descended into,
// everything else passes through unchanged.
package transform

import (
	"context"
	"fmt"

	"github.com/keboola/go-utils/pkg/deepcopy"
	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/umisama/go-regexpcache"

	"github.com/fabrictools/adf-migrate/internal/pkg/dataset"
	"github.com/fabrictools/adf-migrate/internal/pkg/log"
	"github.com/fabrictools/adf-migrate/internal/pkg/model"
)

const globalParameterFormPattern = `@pipeline\(\)\.globalParameters\.([A-Za-z0-9_]+)`

// Transformer transforms pipeline definitions.
// It is safe to transform multiple pipelines concurrently, each
// invocation works on its own tree and its own resolver cache.
type Transformer struct {
	provider dataset.Provider
	logger   log.Logger
}

func New(provider dataset.Provider, logger log.Logger) *Transformer {
	return &Transformer{provider: provider, logger: logger}
}

// TransformPipeline returns a Fabric-native rendition of the pipeline:
// structurally identical, except every Copy activity (at any nesting
// depth) has datasetSettings embedded and no inputs/outputs arrays.
// The input pipeline is never modified. The transform is best-effort,
// everything it could not resolve is reported in Result.Warnings.
//
// The global parameter context is not used for rewriting, references to
// global parameters are resolved downstream. It is only checked, a
// reference to an undefined global parameter produces a warning.
func (t *Transformer) TransformPipeline(ctx context.Context, pipeline *orderedmap.OrderedMap, globalParameters *orderedmap.OrderedMap, pipelineName string) *Result {
	run := t.newRun(globalParameters, pipelineName)

	out := deepcopy.Copy(pipeline).(*orderedmap.OrderedMap)
	if activities, ok := model.PipelineActivities(out); ok {
		properties, _ := model.MapValue(out, model.PropertiesKey)
		properties.Set(model.ActivitiesKey, run.walkActivities(ctx, activities))
	} else {
		run.logger.Debugf(`pipeline "%s" has no activities`, pipelineName)
	}

	run.checkGlobalParameters(out)
	return &Result{PipelineName: pipelineName, Pipeline: out, Warnings: run.warnings}
}

// TransformCopyActivity transforms a single Copy activity node.
// The input activity is never modified.
func (t *Transformer) TransformCopyActivity(ctx context.Context, activity *orderedmap.OrderedMap) (*orderedmap.OrderedMap, []Warning) {
	run := t.newRun(nil, "")
	out := run.transformCopy(ctx, deepcopy.Copy(activity).(*orderedmap.OrderedMap))
	return out, run.warnings
}

func (t *Transformer) newRun(globalParameters *orderedmap.OrderedMap, pipelineName string) *pipelineRun {
	return &pipelineRun{
		resolver:         dataset.NewResolver(t.provider, t.logger),
		logger:           t.logger,
		globalParameters: globalParameters,
		pipelineName:     pipelineName,
	}
}

// pipelineRun holds the state of one transform invocation:
// the memoizing resolver and the collected warnings.
type pipelineRun struct {
	resolver         *dataset.Resolver
	logger           log.Logger
	globalParameters *orderedmap.OrderedMap
	pipelineName     string
	warnings         []Warning
}

// walkActivities rewrites one activity sequence. It operates on the
// already cloned tree, so nodes can be rewritten in place.
func (r *pipelineRun) walkActivities(ctx context.Context, activities []any) []any {
	out := make([]any, len(activities))
	for i, raw := range activities {
		if activity, ok := raw.(*orderedmap.OrderedMap); ok {
			out[i] = r.walkActivity(ctx, activity)
		} else {
			out[i] = raw
		}
	}
	return out
}

func (r *pipelineRun) walkActivity(ctx context.Context, activity *orderedmap.OrderedMap) *orderedmap.OrderedMap {
	switch model.ActivityTypeOf(activity) {
	case model.ActivityCopy:
		return r.transformCopy(ctx, activity)
	case model.ActivityForEach, model.ActivityUntil:
		r.walkNestedActivities(ctx, activity, model.ActivitiesKey)
		return activity
	case model.ActivityIfCondition:
		r.walkNestedActivities(ctx, activity, model.IfTrueActivitiesKey)
		r.walkNestedActivities(ctx, activity, model.IfFalseActivitiesKey)
		return activity
	case model.ActivitySwitch:
		r.walkSwitch(ctx, activity)
		return activity
	default:
		// Unknown activity types are opaque pass-through data
		return activity
	}
}

// walkNestedActivities rewrites the child sequence at
// "typeProperties.<key>", a missing or empty sequence is fine.
func (r *pipelineRun) walkNestedActivities(ctx context.Context, activity *orderedmap.OrderedMap, key string) {
	typeProperties, ok := model.MapValue(activity, model.TypePropertiesKey)
	if !ok {
		return
	}
	if children, ok := model.SliceValue(typeProperties, key); ok {
		typeProperties.Set(key, r.walkActivities(ctx, children))
	}
}

// walkSwitch rewrites "typeProperties.cases[].activities" and
// "typeProperties.defaultActivities".
func (r *pipelineRun) walkSwitch(ctx context.Context, activity *orderedmap.OrderedMap) {
	typeProperties, ok := model.MapValue(activity, model.TypePropertiesKey)
	if !ok {
		return
	}

	if cases, ok := model.SliceValue(typeProperties, model.CasesKey); ok {
		for _, caseRaw := range cases {
			caseMap, ok := caseRaw.(*orderedmap.OrderedMap)
			if !ok {
				continue
			}
			if children, ok := model.SliceValue(caseMap, model.ActivitiesKey); ok {
				caseMap.Set(model.ActivitiesKey, r.walkActivities(ctx, children))
			}
		}
	}

	if children, ok := model.SliceValue(typeProperties, model.DefaultActivitiesKey); ok {
		typeProperties.Set(model.DefaultActivitiesKey, r.walkActivities(ctx, children))
	}
}

// checkGlobalParameters warns about references to global parameters that
// are missing from the supplied context. References are never rewritten
// here, their resolution happens in the deployment step.
func (r *pipelineRun) checkGlobalParameters(pipeline *orderedmap.OrderedMap) {
	if r.globalParameters == nil {
		return
	}

	form := regexpcache.MustCompile(globalParameterFormPattern)
	seen := make(map[string]bool)
	pipeline.VisitAllRecursive(func(path orderedmap.Path, value any, parent any) {
		text, ok := value.(string)
		if !ok {
			return
		}
		for _, match := range form.FindAllStringSubmatch(text, -1) {
			name := match[1]
			if seen[name] {
				continue
			}
			seen[name] = true
			if _, found := r.globalParameters.Get(name); !found {
				r.warn(WarningMissingGlobalParameter, "", `global parameter "%s" is not defined in the context`, name)
			}
		}
	})
}

func (r *pipelineRun) warn(kind WarningKind, activity string, format string, a ...any) {
	warning := Warning{Kind: kind, Activity: activity, Detail: fmt.Sprintf(format, a...)}
	r.warnings = append(r.warnings, warning)
	r.logger.Warn(warning.String())
}
