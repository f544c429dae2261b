package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/notelab/notelab-cli/internal/output"
	"github.com/notelab/notelab-cli/internal/version"
)

func createVersionCmd(flags *Flags) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output.Plainf("notelab %s", version.String())
			output.Plainf("Go:       %s", runtime.Version())
			output.Plainf("Platform: %s/%s", runtime.GOOS, runtime.GOARCH)

			if !check {
				return nil
			}

			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			compat, err := version.Check(cmd.Context(), a.client)
			if err != nil {
				return err
			}

			output.Plainf("Backend:  %s", compat.Backend.Version)
			if compat.Compatible {
				output.Success("Client is compatible with the backend")
			} else {
				output.Warn(compat.UpdateMessage)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Also check compatibility against the backend")

	return cmd
}
