// Package generate implements the generate command, which previews a post
// without publishing it.
package generate

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/jonesrussell/north-cloud/postbot/cmd/common"
	"github.com/jonesrussell/north-cloud/postbot/internal/content"
	"github.com/spf13/cobra"
)

// Command returns the generate command.
func Command() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a post and print it without publishing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to get dependencies: %w", err)
			}
			defer func() { _ = deps.Logger.Sync() }()

			return run(cmd.Context(), cmd.OutOrStdout(), deps, category)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "",
		"category to generate (coding_tip, motivational_quote, tech_fact, career_advice); default is the next in rotation")

	return cmd
}

// run generates one post for category, or for the next rotated category
// when it is empty, and writes it to out.
func run(ctx context.Context, out io.Writer, deps common.CommandDeps, category string) error {
	var (
		c   content.Category
		err error
	)
	if category != "" {
		if c, err = content.ParseCategory(category); err != nil {
			return err
		}
	} else {
		rotator, rotErr := common.Rotator(deps.Config)
		if rotErr != nil {
			return rotErr
		}
		c = rotator.Next()
	}

	gen, err := common.Generator(ctx, deps, common.HTTPClient(deps.Config))
	if err != nil {
		return err
	}
	generated := gen.Generate(ctx, c)

	fmt.Fprintf(out, "Category: %s\n", generated.Category)
	fmt.Fprintf(out, "Length:   %d/%d\n", utf8.RuneCountInString(generated.Text), content.MaxLength)
	if generated.UsedFallback {
		fmt.Fprintf(out, "Fallback: yes (%v)\n", generated.FallbackReason)
	}
	fmt.Fprintf(out, "\n%s\n", generated.Text)
	return nil
}
