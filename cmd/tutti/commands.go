package main

import (
	"bufio"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/opal-lang/tutti/core/catalog"
	"github.com/opal-lang/tutti/core/instfmt/formatter"
	"github.com/opal-lang/tutti/core/seating"
	"github.com/opal-lang/tutti/runtime/engine"
)

const scratch seating.ContextID = "cli"

func (a *app) formatCmd() *cobra.Command {
	var (
		doublings string
		separate  bool
	)

	cmd := &cobra.Command{
		Use:   "format <notation>",
		Short: "Print the canonical form of a notation line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e := a.newEngine()

			res, err := e.Apply(ctx, scratch, args[0], a.callOptions()...)
			if err != nil {
				return err
			}
			diags := res.Diagnostics

			if doublings != "" {
				var opts []engine.CallOption
				if separate {
					opts = append(opts, engine.Separate())
				}
				res, err := e.AllocateDoublings(ctx, scratch, doublings, a.callOptions(opts...)...)
				if err != nil {
					return err
				}
				diags = append(diags, res.Diagnostics...)
			}

			line, err := e.Format(ctx, scratch)
			if err != nil {
				return err
			}
			FormatDiagnostics(cmd.ErrOrStderr(), "", diags, a.useColor(cmd.ErrOrStderr()))
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}

	cmd.Flags().StringVar(&doublings, "doublings", "", "Doubling notation to distribute over the seats")
	cmd.Flags().BoolVar(&separate, "separate", false, "Flag the doublings for separate notation")
	return cmd
}

func (a *app) sectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections <notation>",
		Short: "Show the seats of a notation line by section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e := a.newEngine()

			res, err := e.Apply(ctx, scratch, args[0], a.callOptions()...)
			if err != nil {
				return err
			}
			line, err := e.Format(ctx, scratch)
			if err != nil {
				return err
			}
			sections, err := e.Sections(ctx, scratch)
			if err != nil {
				return err
			}

			FormatDiagnostics(cmd.ErrOrStderr(), "", res.Diagnostics, a.useColor(cmd.ErrOrStderr()))
			formatter.FormatTree(cmd.OutOrStdout(), line, sections, a.useColor(cmd.OutOrStdout()))
			return nil
		},
	}
}

func (a *app) diffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <before> <after>",
		Short: "Compare two notation lines instrument by instrument",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e := a.newEngine()

			var sides [2][]*seating.Seat
			for i, id := range []seating.ContextID{"before", "after"} {
				res, err := e.Apply(ctx, id, args[i], a.callOptions()...)
				if err != nil {
					return err
				}
				FormatDiagnostics(cmd.ErrOrStderr(), string(id), res.Diagnostics, a.useColor(cmd.ErrOrStderr()))
				sides[i] = res.Seats
			}

			result := formatter.Diff(sides[0], sides[1], a.cat)
			_, _ = fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDiff(result, a.useColor(cmd.OutOrStdout())))
			return nil
		},
	}
}

func (a *app) normalizeCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Rewrite notation lines in canonical form, one per input line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, closeFunc, err := getInputReader(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			defer func() { _ = closeFunc() }()

			lines, err := readLines(reader)
			if err != nil {
				return err
			}

			out, diags, err := a.normalize(cmd, lines)
			if err != nil {
				return err
			}
			useColor := a.useColor(cmd.ErrOrStderr())
			for i, line := range out {
				FormatDiagnostics(cmd.ErrOrStderr(), fmt.Sprintf("line %d", i+1), diags[i], useColor)
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read notation from file (- for stdin)")
	return cmd
}

// normalize formats every line in its own context, in parallel. Results
// keep input order.
func (a *app) normalize(cmd *cobra.Command, lines []string) ([]string, [][]seating.Diagnostic, error) {
	e := a.newEngine()
	out := make([]string, len(lines))
	diags := make([][]seating.Diagnostic, len(lines))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			id := seating.ContextID(fmt.Sprintf("line/%d", i+1))
			res, err := e.Apply(ctx, id, line, a.callOptions()...)
			if err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
			diags[i] = res.Diagnostics
			out[i], err = e.Format(ctx, id)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return out, diags, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return lines, nil
}

func (a *app) catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect instrument catalogs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check <file>",
		Short: "Validate a catalog document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.LoadFile(args[0])
			if err != nil {
				return &CLIError{
					Type:    "catalog",
					Message: "catalog document is invalid",
					Details: err.Error(),
					Hint:    "documents list sections, their groups and the groups' instruments",
				}
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d instruments\n",
				Colorize("ok", ColorGreen, a.useColor(cmd.OutOrStdout())), c.Len())
			return nil
		},
	})

	return cmd
}
