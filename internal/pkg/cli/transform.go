package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/fabrictools/adf-migrate/internal/pkg/cli/options"
	"github.com/fabrictools/adf-migrate/internal/pkg/dataset"
	"github.com/fabrictools/adf-migrate/internal/pkg/encoding/json"
	"github.com/fabrictools/adf-migrate/internal/pkg/log"
	"github.com/fabrictools/adf-migrate/internal/pkg/model"
	"github.com/fabrictools/adf-migrate/internal/pkg/transform"
	"github.com/fabrictools/adf-migrate/internal/pkg/utils/errors"
)

func transformCommand(stdout io.Writer, stderr io.Writer, fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Transform exported ADF pipeline definitions to the Fabric-native shape.",
		Long: `Transform exported ADF pipeline definitions to the Fabric-native shape.

Copy activities get the resolved dataset shape embedded as datasetSettings,
the legacy inputs/outputs dataset references are removed. Everything the
transform could not resolve is reported as a warning, the transform itself
is best-effort and never fails on an incomplete catalog.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := options.New()
			if err := o.Load(cmd.Flags()); err != nil {
				return err
			}
			logger := log.NewCliLogger(stdout, stderr, o.Verbose)
			if err := o.Validate(cmd.Context()); err != nil {
				logger.Error(errors.Format(err))
				return err
			}
			if err := runTransform(cmd.Context(), fs, o, logger); err != nil {
				logger.Error(errors.Format(err))
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringP("input", "i", "", "pipeline definition JSON file, or a directory of them")
	flags.StringP("output", "o", "", "output directory for transformed pipelines")
	flags.String("datasets-dir", "", "directory with exported dataset definitions")
	flags.String("datasets-url", "", "factory export endpoint to fetch dataset definitions from")
	flags.String("global-parameters", "", "JSON file with the global parameter context")
	flags.BoolP("verbose", "v", false, "print debug messages")
	return cmd
}

func runTransform(ctx context.Context, fs afero.Fs, o *options.Options, logger log.Logger) error {
	var provider dataset.Provider
	if o.DatasetsDir != "" {
		provider = dataset.NewLocalProvider(fs, o.DatasetsDir)
	} else {
		provider = dataset.NewAPIProvider(o.DatasetsURL)
	}

	globalParameters, err := loadGlobalParameters(fs, o.GlobalParametersFile)
	if err != nil {
		return err
	}

	paths, err := pipelineFiles(fs, o.Input)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.Errorf(`no pipeline definitions found in "%s"`, o.Input)
	}

	if err := fs.MkdirAll(o.Output, 0o755); err != nil {
		return errors.Wrapf(err, `cannot create output directory "%s"`, o.Output)
	}

	transformer := transform.New(provider, logger)
	errs := errors.NewMultiError()
	warningsTotal := 0
	for _, path := range paths {
		result, err := transformFile(ctx, fs, transformer, globalParameters, path, o.Output)
		if err != nil {
			errs.AppendWithPrefixf(err, `cannot transform "%s"`, path)
			continue
		}
		warningsTotal += len(result.Warnings)
		logger.Infof(`transformed pipeline "%s", %d warnings`, result.PipelineName, len(result.Warnings))
	}

	if warningsTotal > 0 {
		logger.Warnf("finished with %d warnings, review them before deployment", warningsTotal)
	}
	return errs.ErrorOrNil()
}

func transformFile(ctx context.Context, fs afero.Fs, transformer *transform.Transformer, globalParameters *orderedmap.OrderedMap, path string, outputDir string) (*transform.Result, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	pipeline := orderedmap.New()
	if err := json.Decode(content, pipeline); err != nil {
		return nil, errors.Wrap(err, "invalid JSON")
	}

	name := model.StringValue(pipeline, model.NameKey)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	result := transformer.TransformPipeline(ctx, pipeline, globalParameters, name)

	out, err := json.Encode(result.Pipeline, true)
	if err != nil {
		return nil, err
	}
	target := filepath.Join(outputDir, filepath.Base(path))
	if err := afero.WriteFile(fs, target, out, 0o644); err != nil {
		return nil, err
	}
	return result, nil
}

func loadGlobalParameters(fs afero.Fs, path string) (*orderedmap.OrderedMap, error) {
	if path == "" {
		return nil, nil
	}
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, `cannot read global parameters file "%s"`, path)
	}
	out := orderedmap.New()
	if err := json.Decode(content, out); err != nil {
		return nil, errors.Wrapf(err, `global parameters file "%s" is not valid JSON`, path)
	}
	return out, nil
}

func pipelineFiles(fs afero.Fs, input string) ([]string, error) {
	info, err := fs.Stat(input)
	if err != nil {
		return nil, errors.Wrapf(err, `cannot read input "%s"`, input)
	}

	if !info.IsDir() {
		return []string{input}, nil
	}

	entries, err := afero.ReadDir(fs, input)
	if err != nil {
		return nil, errors.Wrapf(err, `cannot read input directory "%s"`, input)
	}

	var out []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		out = append(out, filepath.Join(input, entry.Name()))
	}
	return out, nil
}
