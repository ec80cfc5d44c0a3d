package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/esmtools/gcmbuild/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// variantFlag collects repeated -variant name=value assignments.
type variantFlag map[string]string

func (v variantFlag) String() string {
	parts := make([]string, 0, len(v))
	for name, val := range v {
		parts = append(parts, name+"="+val)
	}
	return strings.Join(parts, ",")
}

func (v variantFlag) Set(raw string) error {
	name, value, ok := strings.Cut(raw, "=")
	if !ok || name == "" {
		return fmt.Errorf("variant must be name=value, got %q", raw)
	}
	v[name] = value
	return nil
}

// Parse processes command-line arguments. It returns a populated
// app.Config, a boolean indicating if the program should exit cleanly, or
// an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("gcmbuild", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
gcmbuild - configure and build a GEOS model fixture with CMake.

Usage:
  gcmbuild [options] [RECIPE_PATH]

Arguments:
  RECIPE_PATH
    Path to a single .hcl recipe file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	recipeFlag := flagSet.String("recipe", "", "Path to the recipe file or directory.")
	rFlag := flagSet.String("r", "", "Path to the recipe file or directory (shorthand).")
	sourceDirFlag := flagSet.String("source-dir", ".", "Fixture source checkout directory.")
	buildDirFlag := flagSet.String("build-dir", "build", "CMake build directory.")
	manifestFlag := flagSet.String("components", "", "Path to the components.yaml manifest. Defaults to <source-dir>/components.yaml.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Resolve the configuration but only print the external commands.")
	skipCloneFlag := flagSet.Bool("skip-clone", false, "Assume component repositories are already cloned.")
	mepoFlag := flagSet.String("mepo", "", "mepo executable. Defaults to 'mepo' on PATH.")
	cmakeFlag := flagSet.String("cmake", "", "cmake executable. Defaults to 'cmake' on PATH.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	variants := variantFlag{}
	flagSet.Var(variants, "variant", "Override a variant as name=value. May be repeated.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *recipeFlag != "" {
		path = *recipeFlag
	} else if *rFlag != "" {
		path = *rFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Recipe path determined.", "path", path)

	if path == "" {
		slog.Debug("No recipe path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		RecipePath:       path,
		SourceDir:        *sourceDirFlag,
		BuildDir:         *buildDirFlag,
		ManifestPath:     *manifestFlag,
		VariantOverrides: variants,
		LogFormat:        logFormat,
		LogLevel:         logLevel,
		DryRun:           *dryRunFlag,
		SkipClone:        *skipCloneFlag,
		MepoBin:          *mepoFlag,
		CMakeBin:         *cmakeFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
