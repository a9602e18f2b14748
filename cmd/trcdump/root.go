package main

import "github.com/spf13/cobra"

// newRootCommand builds the trcdump command tree: decode replays a
// captured file, capture reads live from a probe's serial/SWO port.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "trcdump",
		Short:        "Decode ARM CoreSight Instrumentation/Formatter trace captures",
		SilenceUsage: true,
	}
	cmd.AddCommand(newDecodeCommand())
	cmd.AddCommand(newCaptureCommand())
	return cmd
}
