package main

import (
	"fmt"

	"github.com/restic/fhbackup/internal/errors"
	"github.com/restic/fhbackup/internal/feature"
	"github.com/restic/fhbackup/internal/ui/table"

	"github.com/spf13/cobra"
)

func newFeaturesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "features",
		Short: "Print list of feature flags",
		Long: `
The "features" command prints the feature flags of fhbackup.

Set FHBACKUP_FEATURES to "legacy-exit-status=true,numeric-drive-type=false"
to change them. Alpha flags are disabled by default, beta flags are enabled by
default. Unknown flags are an error.
`,
		Hidden:            true,
		DisableAutoGenTag: true,
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 {
				return errors.Fatal("the feature command expects no arguments")
			}

			_, _ = fmt.Fprintf(globalOptions.stdout, "All Feature Flags:\n")
			flags := feature.Flag.List()

			tab := table.New()
			tab.AddColumn("Name", "{{ .Name }}")
			tab.AddColumn("Type", "{{ .Type }}")
			tab.AddColumn("Default", "{{ .Default }}")
			tab.AddColumn("Description", "{{ .Description }}")

			for _, flag := range flags {
				tab.AddRow(flag)
			}
			return tab.Write(globalOptions.stdout)
		},
	}

	return cmd
}
