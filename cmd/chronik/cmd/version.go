package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/msto63/chronik/pkg/core/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Zeigt die Version an",
		// no config needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "chronik v%s\n", version.Application)
			fmt.Fprintf(out, "  API:          %s\n", version.API)
			fmt.Fprintf(out, "  Store-Schema: %d\n", version.Store)
			fmt.Fprintf(out, "  Git Commit:   %s\n", version.Commit)
			fmt.Fprintf(out, "  Build Date:   %s\n", version.BuildDate)
			fmt.Fprintf(out, "  Go Version:   %s\n", runtime.Version())
			fmt.Fprintf(out, "  OS/Arch:      %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
