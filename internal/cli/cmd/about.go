package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/sysparse/internal/cli/styles"
)

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Show version and build information",
	Long:  `Display version, build info, the running kernel and the repository URL.`,
	Args:  cobra.NoArgs,
	RunE:  runAbout,
}

func init() {
	rootCmd.AddCommand(aboutCmd)
}

func runAbout(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	renderer := styles.NewAboutRenderer(a.Theme)
	fmt.Fprintln(cmd.OutOrStdout(), renderer.Render(a.BuildInfo, kernelRelease()))
	return nil
}
