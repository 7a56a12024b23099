package cli

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/solrdex"
)

// DeleteOptions holds the flags of the delete command.
type DeleteOptions struct {
	IDs    []string
	Query  string
	Commit bool
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{}

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete documents by unique key or by query",
		Example: `  solrdex delete --id SP2514N --id 6H500F0
  solrdex delete --query 'cat:discontinued' --commit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var err error
			switch {
			case len(opts.IDs) > 0:
				err = rootOpts.client.DeleteByID(ctx, opts.IDs...)
			default:
				err = rootOpts.client.DeleteByQuery(ctx, opts.Query)
			}
			if err != nil {
				return remoteError("delete", err)
			}
			if opts.Commit {
				if err := rootOpts.client.Commit(ctx); err != nil {
					return remoteError("commit", err)
				}
			}
			return newPrinter(rootOpts, cmd.OutOrStdout()).print(status{Status: "ok", Count: len(opts.IDs)})
		},
	}

	cmd.Flags().StringArrayVar(&opts.IDs, "id", nil, "unique key to delete (repeatable)")
	cmd.Flags().StringVar(&opts.Query, "query", "", "delete every document matching this query")
	cmd.Flags().BoolVar(&opts.Commit, "commit", false, "commit after deleting")
	cmd.MarkFlagsMutuallyExclusive("id", "query")
	cmd.MarkFlagsOneRequired("id", "query")

	return cmd
}

// commitFlags holds the flags shared by commit and optimize.
type commitFlags struct {
	waitFlush    bool
	waitSearcher bool
}

func (f *commitFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.waitFlush, "wait-flush", false, "send waitFlush")
	cmd.Flags().BoolVar(&f.waitSearcher, "wait-searcher", false, "send waitSearcher")
}

// options returns the flags that were given explicitly; the others are not sent.
func (f *commitFlags) options(cmd *cobra.Command) []solrdex.CommitOption {
	var out []solrdex.CommitOption
	if cmd.Flags().Changed("wait-flush") {
		out = append(out, solrdex.WaitFlush(f.waitFlush))
	}
	if cmd.Flags().Changed("wait-searcher") {
		out = append(out, solrdex.WaitSearcher(f.waitSearcher))
	}
	return out
}

// NewCommitCommand creates the commit command.
func NewCommitCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &commitFlags{}
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Make pending changes visible to searchers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rootOpts.client.Commit(cmd.Context(), flags.options(cmd)...); err != nil {
				return remoteError("commit", err)
			}
			return newPrinter(rootOpts, cmd.OutOrStdout()).print(status{Status: "ok"})
		},
	}
	flags.register(cmd)
	return cmd
}

// NewOptimizeCommand creates the optimize command.
func NewOptimizeCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &commitFlags{}
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Merge index segments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rootOpts.client.Optimize(cmd.Context(), flags.options(cmd)...); err != nil {
				return remoteError("optimize", err)
			}
			return newPrinter(rootOpts, cmd.OutOrStdout()).print(status{Status: "ok"})
		},
	}
	flags.register(cmd)
	return cmd
}

// NewPingCommand creates the ping command.
func NewPingCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the core is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rootOpts.client.Ping(cmd.Context()); err != nil {
				return remoteError("ping", err)
			}
			return newPrinter(rootOpts, cmd.OutOrStdout()).print(status{Status: "ok"})
		},
	}
}
