package commands

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"spectre/internal/worker"
)

func identiconCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "identicon",
		Short: "Print the identicon of a user, to recognise a mistyped secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			c, err := authenticate(ctx, cmd)
			if err != nil {
				return err
			}

			st, err := c.Wait(ctx, func(s worker.State) bool {
				return s.User.Identicon != nil || s.User.Error != ""
			})
			if err != nil {
				return err
			}
			if st.User.Identicon == nil {
				return fmt.Errorf("identicon: %s (%s)", st.User.Error, st.User.Cause)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", st.User.UserName, st.User.Identicon)
			return nil
		},
	}
}
