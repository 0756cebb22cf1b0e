// Package options loads the CLI configuration.
// Priority: flag > ADF_MIGRATE_* env variable > default.
package options

import (
	"context"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/fabrictools/adf-migrate/internal/pkg/utils/errors"
	"github.com/fabrictools/adf-migrate/internal/pkg/validator"
)

const envPrefix = "ADF_MIGRATE"

type Options struct {
	Input                string `validate:"required"`
	Output               string `validate:"required"`
	DatasetsDir          string
	DatasetsURL          string
	GlobalParametersFile string
	Verbose              bool
}

func New() *Options {
	return &Options{}
}

// Load reads values from the parsed flags and the environment.
func (o *Options) Load(flags *pflag.FlagSet) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return err
	}

	o.Input = v.GetString("input")
	o.Output = v.GetString("output")
	o.DatasetsDir = v.GetString("datasets-dir")
	o.DatasetsURL = v.GetString("datasets-url")
	o.GlobalParametersFile = v.GetString("global-parameters")
	o.Verbose = v.GetBool("verbose")
	return nil
}

// Validate checks that the options form a usable configuration.
func (o *Options) Validate(ctx context.Context) error {
	errs := errors.NewMultiError()
	if err := validator.New().Validate(ctx, o); err != nil {
		errs.Append(err)
	}

	switch {
	case o.DatasetsDir == "" && o.DatasetsURL == "":
		errs.Append(errors.New(`one of "datasets-dir" or "datasets-url" must be set`))
	case o.DatasetsDir != "" && o.DatasetsURL != "":
		errs.Append(errors.New(`"datasets-dir" and "datasets-url" cannot be combined`))
	}

	if err := errs.ErrorOrNil(); err != nil {
		return errors.PrefixError(err, "invalid options")
	}
	return nil
}
