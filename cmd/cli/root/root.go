package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "inventario",
	Short: "Inventario CLI",
	Long:  "Command line interface for the Inventario asset inventory API",
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// GetRoot returns the root command so subcommand packages can register
// themselves on it.
func GetRoot() *cobra.Command {
	return RootCmd
}
