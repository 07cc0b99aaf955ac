package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"student-aid-matcher/models"
	"student-aid-matcher/service"
)

type queryFlags struct {
	students   string
	difficulty string
	category   string
	jsonOutput bool
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.students, "students", "s", "", "Student roster (.xlsx or .xls)")
	cmd.Flags().StringVarP(&f.difficulty, "difficulty", "d", "", "Difficulty-type table (.xlsx or .xls)")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "Difficulty type, see the categories command")
	cmd.Flags().BoolVar(&f.jsonOutput, "json", false, "Print the result envelope as JSON")
}

func (f *queryFlags) request() service.QueryRequest {
	return service.QueryRequest{
		StudentPath:    f.students,
		DifficultyPath: f.difficulty,
		Category:       f.category,
	}
}

func newCategoriesCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the difficulty types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := newCLIService(opts)
			if err != nil {
				return err
			}
			defer done()

			cats := svc.ListCategories()
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), models.OK(cats))
			}
			for _, c := range cats {
				fmt.Fprintln(cmd.OutOrStdout(), c.Label)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result envelope as JSON")
	return cmd
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a file is a readable spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := newCLIService(opts)
			if err != nil {
				return err
			}
			defer done()

			info, err := svc.ValidateFile(args[0])
			if jsonOutput {
				return writeResult(cmd, info, err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", info.Name, info.Extension, info.SizeText)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result envelope as JSON")
	return cmd
}

func newMatchCmd(opts *rootOptions) *cobra.Command {
	var (
		flags  queryFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Show the students listed under a difficulty type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := newCLIService(opts)
			if err != nil {
				return err
			}
			defer done()

			out, err := svc.Query(cmd.Context(), flags.request())
			if flags.jsonOutput {
				if err := writeResult(cmd, out, err); err != nil {
					return err
				}
			} else {
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderMatches(out.Matches))
				if out.Statistics != nil {
					fmt.Fprintln(cmd.OutOrStdout(), renderStatistics(*out.Statistics))
				}
			}

			if output == "" {
				return nil
			}
			path, err := svc.Export(out.Matches, output)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d matches to %s\n", len(out.Matches), path)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Also export the matches to this .xlsx or .csv file")
	return cmd
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var flags queryFlags
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count the matches of a difficulty type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := newCLIService(opts)
			if err != nil {
				return err
			}
			defer done()

			stats, err := svc.GetStatistics(flags.request())
			if flags.jsonOutput {
				return writeResult(cmd, stats, err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderStatistics(stats))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		flags  queryFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the matches of a difficulty type to a spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := newCLIService(opts)
			if err != nil {
				return err
			}
			defer done()

			matches, err := svc.FindMatches(flags.request())
			if err != nil {
				if flags.jsonOutput {
					return writeResult[*string](cmd, nil, err)
				}
				return err
			}
			path, err := svc.Export(matches, output)
			if flags.jsonOutput {
				return writeResult(cmd, path, err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination .xlsx or .csv file")
	return cmd
}
