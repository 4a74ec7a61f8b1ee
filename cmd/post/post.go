// Package post implements the post command: one immediate generate-and-post.
package post

import (
	"errors"
	"fmt"
	"io"

	"github.com/jonesrussell/north-cloud/postbot/cmd/common"
	"github.com/jonesrussell/north-cloud/postbot/internal/publisher"
	"github.com/spf13/cobra"
)

// Command returns the post command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "post",
		Short: "Generate and publish one post now",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to get dependencies: %w", err)
			}
			defer func() { _ = deps.Logger.Sync() }()

			b, err := common.Bot(cmd.Context(), deps, nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "🚀 Generating and posting...")

			res, err := b.Run(cmd.Context())
			if err != nil {
				printFailure(out, err)
				return err
			}

			fmt.Fprintf(out, "\n✅ Posted successfully! ID: %s\n%s\n", res.ID, res.Text)
			fmt.Fprintln(out, "\n💡 Tip: use 'postbot serve' to post on the daily schedule")
			return nil
		},
	}
}

func printFailure(out io.Writer, err error) {
	fmt.Fprintf(out, "\n❌ Post failed: %v\n", err)
	if errors.Is(err, publisher.ErrAuthentication) || errors.Is(err, publisher.ErrPermission) {
		fmt.Fprintln(out, "Please check your Twitter API credentials in the .env file")
	}
	if g := publisher.Guidance(err); g != "" {
		fmt.Fprintln(out, g)
	}
}
