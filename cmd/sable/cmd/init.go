package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-sable/sable/cmd/sable/internal/scaffold"
)

var initCmd = &cobra.Command{
	Use:   "init <directory> [module-path]",
	Short: "Create a new Sable application project",
	Long: `Create a new Sable application project in a new directory.

This command creates:
  - A new directory at the specified path
  - go.mod with the specified module path
  - main.go with a starter application
  - sable.yaml with default settings

The project name is derived from the directory basename.
The module path defaults to the project name if not specified.

Examples:
  sable init myapp
  sable init myapp github.com/username/myapp
  sable init ./projects/myapp`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	raw := args[0]
	if strings.HasPrefix(raw, "~") {
		return fmt.Errorf("tilde (~) is not expanded by sable; use an absolute path or $HOME instead")
	}

	dir := filepath.Clean(raw)
	projectName := filepath.Base(dir)
	if projectName == "." || projectName == string(filepath.Separator) {
		return fmt.Errorf("cannot derive a project name from %q", raw)
	}

	modulePath := projectName
	if len(args) > 1 {
		modulePath = args[1]
	}
	if modulePath == "" {
		return fmt.Errorf("module path cannot be empty")
	}

	if err := scaffold.Project(dir, modulePath, projectName); err != nil {
		return err
	}

	fmt.Printf("Created %s\n", dir)
	fmt.Println("Next steps:")
	fmt.Printf("  cd %s\n", dir)
	fmt.Println("  go mod tidy")
	fmt.Println("  go run .")
	return nil
}
