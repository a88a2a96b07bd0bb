package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	exportsvc "github.com/cheerioskun/reqninja/internal/export"
	"github.com/cheerioskun/reqninja/internal/form"
	"github.com/cheerioskun/reqninja/internal/models"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	submitData   string
	submitInput  string
	submitFilter []string
	submitOutput string
	submitForce  bool
)

// submitCmd represents the submit command
var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a payload without the TUI and print the filtered response",
	Long: `Validate a JSON payload, post it to the configured endpoint and print
the response restricted to the mandatory fields plus the selected filters.

The payload must be a JSON object with a "data" array. Filters are any of
numbers, alphabets and highest_alphabet, in the order they should appear.

Examples:
  reqninja submit --data '{"data": ["M","1","334","4","B"]}'
  reqninja submit --input payload.json --filter alphabets,numbers
  reqninja submit --input payload.json --filter highest_alphabet --output out.json`,
	Args: cobra.NoArgs,
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().StringVarP(&submitData, "data", "d", "", "JSON payload")
	submitCmd.Flags().StringVarP(&submitInput, "input", "i", "", "file containing the JSON payload")
	submitCmd.Flags().StringSliceVarP(&submitFilter, "filter", "f", nil, "fields to reveal (numbers, alphabets, highest_alphabet)")
	submitCmd.Flags().StringVarP(&submitOutput, "output", "o", "", "also write the filtered response to this file")
	submitCmd.Flags().BoolVar(&submitForce, "force", false, "overwrite the output file if it exists")

	submitCmd.MarkFlagsMutuallyExclusive("data", "input")
}

// submitRequest collects everything one submission needs
type submitRequest struct {
	Payload   string
	Filters   models.FilterSelection
	Output    string
	Overwrite bool
}

func runSubmit(cmd *cobra.Command, args []string) error {
	payload, err := readPayload(appFs, submitData, submitInput)
	if err != nil {
		return err
	}

	filters, err := parseFilters(submitFilter)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	controller := form.NewController(newClient(appConfig))
	return executeSubmit(ctx, cmd.OutOrStdout(), controller, exportsvc.NewService(appFs), submitRequest{
		Payload:   payload,
		Filters:   filters,
		Output:    submitOutput,
		Overwrite: submitForce,
	})
}

// readPayload picks the payload from the inline flag or the input file
func readPayload(fs afero.Fs, data, path string) (string, error) {
	switch {
	case data != "" && path != "":
		return "", errors.New("use either --data or --input, not both")
	case data != "":
		return data, nil
	case path != "":
		content, err := afero.ReadFile(fs, path)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(content), nil
	default:
		return "", errors.New("a payload is required: pass --data or --input")
	}
}

// parseFilters maps flag values to options, keeping their order
func parseFilters(values []string) (models.FilterSelection, error) {
	var options []models.FilterOption
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}
		opt, err := models.ParseFilterOption(value)
		if err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	return models.NewFilterSelection(options...), nil
}

func executeSubmit(ctx context.Context, out io.Writer, controller *form.Controller, exporter *exportsvc.Service, req submitRequest) error {
	if _, err := controller.Submit(ctx, req.Payload); err != nil {
		return err
	}

	controller.UpdateFilterSelection(req.Filters)

	projection, ok := controller.ProjectResponse()
	if !ok {
		return errors.New("no response stored")
	}

	formatted, err := projection.Format()
	if err != nil {
		return fmt.Errorf("failed to render response: %w", err)
	}
	fmt.Fprintln(out, formatted)

	if req.Output == "" {
		return nil
	}

	if err := exporter.ValidateExportPath(req.Output); err != nil {
		return err
	}

	summary, err := exporter.SaveProjection(projection, exportsvc.ExportOptions{
		DestinationPath: req.Output,
		Overwrite:       req.Overwrite,
	})
	if err != nil {
		return err
	}

	if appConfig != nil && appConfig.Verbose {
		fmt.Fprintf(os.Stderr, "Saved %d fields to %s\n", summary.FieldCount, summary.DestinationPath)
	}

	return nil
}
