package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/logsheet/pkg/store"
	"github.com/matzehuels/logsheet/pkg/workout"
)

func (c *CLI) importCommand() *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "import <workout-file>...",
		Short: "Store workout files",
		Long: `Validate workout files and add them to the configured store.

A file without an id gets one derived from its content, so importing the same
file again replaces the stored copy.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd.Context(), args, owner)
		},
	}
	cmd.Flags().StringVar(&owner, "owner", store.LocalOwner, "owner of the imported workouts")
	return cmd
}

func (c *CLI) runImport(ctx context.Context, paths []string, owner string) error {
	// Validate everything before writing anything.
	workouts := make([]*workout.Workout, len(paths))
	for i, path := range paths {
		w, err := workout.Load(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		w.Owner = owner
		workouts[i] = w
	}

	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	prog := newProgress(loggerFromContext(ctx))
	for i, w := range workouts {
		if err := st.Put(ctx, w); err != nil {
			return fmt.Errorf("%s: %w", paths[i], err)
		}
		printSuccess("Imported %s", paths[i])
		printDetail("%s · %s", w.ID, plural(len(w.Days), "day"))
	}
	prog.done("imported", "workouts", len(workouts), "owner", owner)
	return nil
}

func (c *CLI) listCommand() *cobra.Command {
	var (
		owner  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored workouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			list, err := st.List(cmd.Context(), owner)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}
			if len(list) == 0 {
				printInfo("No stored workouts")
				return nil
			}
			fmt.Fprintln(stdout, workoutTable(list, -1, time.Now()))
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", store.LocalOwner, "owner whose workouts to list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print summaries as JSON")
	return cmd
}
