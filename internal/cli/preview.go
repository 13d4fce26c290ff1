package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/logsheet/pkg/pipeline"
	"github.com/matzehuels/logsheet/pkg/workout"
)

func (c *CLI) previewCommand() *cobra.Command {
	var flags sheetFlags

	cmd := &cobra.Command{
		Use:   "preview [workout-file|id]",
		Short: "Page through a log sheet in the terminal",
		Long: `Render a workout as a text sheet and page through it.

Without an argument, pick one of the stored workouts from a list.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runPreview(cmd.Context(), input, &flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input string, flags *sheetFlags) error {
	var (
		w   *workout.Workout
		err error
	)
	if input == "" {
		if w, err = c.pickWorkout(ctx, flags.owner); err != nil || w == nil {
			return err
		}
	} else if w, _, err = c.loadWorkout(ctx, input, flags.owner); err != nil {
		return err
	}

	opts, err := c.pipelineOptions()
	if err != nil {
		return err
	}
	flags.apply(&opts)
	opts.Formats = []string{pipeline.FormatText}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, w, opts)
	if err != nil {
		return err
	}

	title := res.Document.Title
	if w.Comment != "" {
		title += " · " + w.Comment
	}
	_, err = tea.NewProgram(NewPreviewModel(title, string(res.Artifacts[pipeline.FormatText])), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// pickWorkout lets the user choose a stored workout. It returns nil when the
// store is empty or the user quits.
func (c *CLI) pickWorkout(ctx context.Context, owner string) (*workout.Workout, error) {
	st, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	list, err := st.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		printInfo("No stored workouts")
		printDetail("Import one with: logsheet import <file>")
		return nil, nil
	}

	final, err := tea.NewProgram(NewWorkoutListModel(list), tea.WithContext(ctx)).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(WorkoutListModel)
	if !ok || m.Selected == nil {
		return nil, nil
	}
	return st.Get(ctx, owner, m.Selected.ID)
}
