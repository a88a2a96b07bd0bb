package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	exportsvc "github.com/cheerioskun/reqninja/internal/export"
	"github.com/cheerioskun/reqninja/internal/form"
	"github.com/cheerioskun/reqninja/ui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	tuiInput string
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive form",
	Long: `Start the interactive Terminal User Interface for submitting a payload.

The TUI provides:
- A JSON input area with validation
- A submit control with a loading indicator
- A multi-select to reveal numbers, alphabets and the highest alphabet
- A scrollable view of the filtered response
- Export of the filtered response to a file

Examples:
  reqninja tui
  reqninja tui --input payload.json`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().StringVarP(&tuiInput, "input", "i", "", "file whose contents prefill the input area")
}

func runTUI(cmd *cobra.Command, args []string) error {
	initial, err := readInitialInput(appFs, tuiInput)
	if err != nil {
		return err
	}

	controller := form.NewController(newClient(appConfig))

	model := ui.NewAppModel(controller, exportsvc.NewService(appFs), ui.Options{
		Title:        appConfig.Title,
		RollNumber:   appConfig.RollNumber,
		InitialInput: initial,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())

	if appConfig.Verbose {
		fmt.Fprintf(os.Stderr, "Starting TUI...\n")
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// readInitialInput returns the contents of path, or "" when path is empty
func readInitialInput(fs afero.Fs, path string) (string, error) {
	if path == "" {
		return "", nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}
