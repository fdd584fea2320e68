package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/sysparse/internal/cli"
	"github.com/bnema/sysparse/internal/domain/entity"
	"github.com/bnema/sysparse/internal/infrastructure/config"
)

var (
	ipaddrFile  string
	ipaddrIface string
)

var ipaddrCmd = &cobra.Command{
	Use:   "ipaddr",
	Short: "Parse 'ip addr' output into interfaces and addresses",
	Long: `Parse the output of 'ip addr show'.

Without --file the command runs 'ip addr show' itself. Use '--file -' to
read captured output from stdin.

Examples:
  sysparse ipaddr
  sysparse ipaddr --iface eth0 --format text
  ip -6 addr | sysparse ipaddr --file -`,
	Args: cobra.NoArgs,
	RunE: runIPAddr,
}

func init() {
	rootCmd.AddCommand(ipaddrCmd)
	ipaddrCmd.Flags().StringVar(&ipaddrFile, "file", "", "read captured output from a file, '-' for stdin")
	ipaddrCmd.Flags().StringVar(&ipaddrIface, "iface", "", "only report this interface")
	addFormatFlag(ipaddrCmd)
}

func runIPAddr(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, a)
	if err != nil {
		return err
	}

	var ifaces []entity.NetInterface
	switch ipaddrFile {
	case "":
		ifaces, err = a.InspectUC.Execute(a.Ctx(), ipaddrIface)
	case stdinName:
		ifaces, err = a.InspectUC.FromReader(a.Ctx(), cmd.InOrStdin(), ipaddrIface)
	default:
		ifaces, err = inspectFile(a, ipaddrFile)
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if format == config.OutputJSON {
		return writeJSON(w, ifaces, a.Config.Output.Pretty)
	}
	fmt.Fprint(w, a.Theme.RenderInterfaces(ifaces))
	return nil
}

func inspectFile(a *cli.App, path string) ([]entity.NetInterface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return a.InspectUC.FromReader(a.Ctx(), f, ipaddrIface)
}
