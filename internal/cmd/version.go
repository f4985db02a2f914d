package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/uiforge/internal/oracle"
	"github.com/felixgeelhaar/uiforge/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print version information including version number, git commit,
build date, Go version, platform and the configured oracle.`,
	Args: cobra.NoArgs,
	RunE: instrumented(runVersion),
}

var (
	versionVerbose bool
	versionJSON    bool
)

func init() {
	versionCmd.Flags().BoolVarP(&versionVerbose, "verbose", "v", false, "show detailed version information")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "output version information as JSON")

	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	info := version.GetInfo()
	out := cmd.OutOrStdout()

	if versionJSON {
		return writeJSON(out, info)
	}

	if versionVerbose {
		fmt.Fprintln(out, info.String())
		fmt.Fprintf(out, "oracle: %s at %s\n",
			oracle.DisplayName(appConfig.Oracle.Provider), oracle.Endpoint(appConfig.Oracle))
		return nil
	}

	fmt.Fprintf(out, "uiforge %s\n", info.Short())
	return nil
}
