package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/signup/internal/config"
	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/output"
	"github.com/zjrosen/signup/internal/registration"
	"github.com/zjrosen/signup/internal/schema"
)

// ErrInvalidInput is returned by validate when the file fails validation.
// The issues themselves are written to stderr.
var ErrInvalidInput = errors.New("input is invalid")

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Validate a registration file without the form",
	Long: `Validate a YAML or JSON registration file with the same rules as the form.

On success the normalized record is printed to stdout in the configured
output format. On failure every issue is printed to stderr as
"path: message" and the command exits non-zero. Use "-" to read stdin.

Example:
  signup validate user.yaml
  signup validate --format yaml user.json
  cat user.json | signup validate -`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cleanup, err := initLogging("signup-validate")
	if err != nil {
		return err
	}
	defer cleanup()

	if err := config.ValidateForm(cfg.Form); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	in, err := readInputFile(cmd, args[0])
	if err != nil {
		return err
	}

	rec, err := schema.Validate(registration.NewSchema(cfg.Form.Options()), in)
	if err != nil {
		iss, ok := schema.AsIssues(err)
		if !ok {
			return err
		}
		log.Info(log.CatCLI, "Validation failed", "path", args[0], "issues", len(iss))
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), output.RenderIssues(iss))
		return ErrInvalidInput
	}

	text, err := output.Render(rec, format)
	if err != nil {
		return err
	}
	log.Info(log.CatCLI, "Validation passed", "path", args[0], "techs", len(rec.Techs))
	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}

// readInputFile reads a registration input from path, or from the command's
// stdin when path is "-".
func readInputFile(cmd *cobra.Command, path string) (registration.Input, error) {
	if path == "-" {
		return decodeInput(cmd.InOrStdin())
	}

	f, err := os.Open(path)
	if err != nil {
		return registration.Input{}, fmt.Errorf("opening input: %w", err)
	}
	defer func() { _ = f.Close() }()

	in, err := decodeInput(f)
	if err != nil {
		return registration.Input{}, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

// decodeInput parses YAML or JSON into an Input. Unknown keys are rejected;
// an empty document yields an empty Input.
func decodeInput(r io.Reader) (registration.Input, error) {
	var in registration.Input
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		return registration.Input{}, fmt.Errorf("decoding input: %w", err)
	}
	return in, nil
}
