package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"spectre/internal/domain/types"
	"spectre/internal/worker"
)

// siteCmd builds password, login and answer; they differ only in purpose.
func siteCmd(use, short string, purpose types.Purpose) *cobra.Command {
	var (
		counter    uint64
		typeName   string
		keyContext string
	)
	cmd := &cobra.Command{
		Use:   use + " <site>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resultType := types.ResultNone
			if typeName != "" {
				t, ok := types.ResultTypeByName(typeName)
				if !ok {
					return fmt.Errorf("unknown result type %q", typeName)
				}
				resultType = t
			}
			var ctxParam *string
			if cmd.Flags().Changed("context") {
				ctxParam = &keyContext
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			c, err := authenticate(ctx, cmd)
			if err != nil {
				return err
			}

			siteName := args[0]
			if err := c.Request(ctx, siteName, resultType, types.Counter(counter), purpose, ctxParam); err != nil {
				return err
			}
			st, err := c.Wait(ctx, func(s worker.State) bool { return !s.Site.Pending })
			if err != nil {
				return err
			}
			if st.Site.Error != "" {
				return fmt.Errorf("%s: %s (%s)", use, st.Site.Error, st.Site.Cause)
			}

			result, _ := c.Result(siteName, purpose, ctxParam)
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().Uint64VarP(&counter, "counter", "c", uint64(types.CounterDefault), "result counter (1-4294967295)")
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "result type: Maximum, Long, Medium, Short, Basic, PIN, Name or Phrase")
	cmd.Flags().StringVar(&keyContext, "context", "", "context scoping the result, e.g. a security question")
	return cmd
}

// authenticate connects a client to the app's worker and authenticates the
// configured user with a secret read from the environment or the terminal.
func authenticate(ctx context.Context, cmd *cobra.Command) (*worker.Client, error) {
	name := appCtx.Config.UserName
	if name == "" {
		return nil, fmt.Errorf("user name required (-u or userName in config)")
	}
	secret, err := readSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), name)
	if err != nil {
		return nil, err
	}

	c := appCtx.Connect(ctx)
	if err := c.Authenticate(ctx, name, secret, appCtx.Config.AlgorithmVersion); err != nil {
		return nil, err
	}
	return c, nil
}
