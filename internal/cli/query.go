package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/solrdex/internal/domain/query"
	"github.com/kailas-cloud/solrdex/internal/xmlwire"
)

// QueryOptions holds the flags of the query command.
type QueryOptions struct {
	Raw       string
	By        []string // field=value
	Ranges    []string // field=lower..upper, either side may be empty
	Exclusive bool
	Sort      []string // field[:asc|desc]
	Start     int
	Rows      int
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a select query and print the matching documents",
		Long: `Run a select query and print the matching documents.

Clauses are joined in the order --q, --by, --range. Values given to --by
and --range are escaped; --q is sent as is. Without any clause every
document matches.`,
		Example: `  solrdex query --by cat=electronics --range price=..100 --sort price:desc --rows 5
  solrdex query --q 'name:ipod OR name:zune' --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := opts.params(cmd, rootOpts.cfg.Solr.DefaultRows)
			if err != nil {
				return err
			}
			return runQuery(cmd, rootOpts, params)
		},
	}

	cmd.Flags().StringVarP(&opts.Raw, "q", "q", "", "raw query fragment, sent unescaped")
	cmd.Flags().StringArrayVar(&opts.By, "by", nil, "equality clause field=value (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Ranges, "range", nil, "range clause field=lower..upper (repeatable)")
	cmd.Flags().BoolVar(&opts.Exclusive, "exclusive", false, "exclude range bounds")
	cmd.Flags().StringArrayVar(&opts.Sort, "sort", nil, "sort key field[:asc|desc] (repeatable)")
	cmd.Flags().IntVar(&opts.Start, "start", 0, "offset of the first document")
	cmd.Flags().IntVar(&opts.Rows, "rows", 0, "page size (default solr.default_rows)")

	return cmd
}

func runQuery(cmd *cobra.Command, opts *RootOptions, params query.Params) error {
	raw, err := opts.client.Select(cmd.Context(), params)
	if err != nil {
		return remoteError("query", err)
	}
	res, err := xmlwire.DecodeResponse(raw)
	if err != nil {
		return remoteError("query", err)
	}

	out := results{NumFound: res.NumFound, Start: res.Start, Docs: make([]docView, len(res.Records))}
	for i, rec := range res.Records {
		out.Docs[i] = docView(rec)
	}
	return newPrinter(opts, cmd.OutOrStdout()).print(out)
}

// params builds the select parameters from the flags.
func (o *QueryOptions) params(cmd *cobra.Command, defaultRows int) (query.Params, error) {
	var expr query.Expression
	if o.Raw != "" {
		expr = expr.And(query.Raw(o.Raw))
	}
	for _, arg := range o.By {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, usageError("--by %q: want field=value", arg)
		}
		c, err := query.Equal(name, value)
		if err != nil {
			return nil, WrapExitError(ExitUsage, "--by "+arg, err)
		}
		expr = expr.And(c)
	}
	for _, arg := range o.Ranges {
		c, err := parseRange(arg)
		if err != nil {
			return nil, err
		}
		if o.Exclusive {
			c = c.Exclusive()
		}
		expr = expr.And(c)
	}

	var sort query.Sort
	for _, arg := range o.Sort {
		name, dir, _ := strings.Cut(arg, ":")
		if name == "" {
			return nil, usageError("--sort %q: field is required", arg)
		}
		d, err := query.ParseDirection(dir)
		if err != nil {
			return nil, WrapExitError(ExitUsage, "--sort "+arg, err)
		}
		sort = sort.Then(name, d)
	}

	var page query.Page
	if cmd.Flags().Changed("start") {
		page = page.WithStart(o.Start)
	}
	if cmd.Flags().Changed("rows") {
		page = page.WithRows(o.Rows)
	} else if defaultRows > 0 {
		page = page.WithRows(defaultRows)
	}
	if err := page.Validate(); err != nil {
		return nil, WrapExitError(ExitUsage, "pagination", err)
	}
	return query.Select(expr, sort, page), nil
}

func parseRange(arg string) (query.Clause, error) {
	name, bounds, ok := strings.Cut(arg, "=")
	if !ok {
		return query.Clause{}, usageError("--range %q: want field=lower..upper", arg)
	}
	lo, hi, ok := strings.Cut(bounds, "..")
	if !ok {
		return query.Clause{}, usageError("--range %q: want field=lower..upper", arg)
	}
	c, err := query.Between(name, openBound(lo), openBound(hi))
	if err != nil {
		return query.Clause{}, WrapExitError(ExitUsage, "--range "+arg, err)
	}
	return c, nil
}

// openBound maps an empty bound to nil, which renders as an open end.
func openBound(s string) any {
	if s == "" {
		return nil
	}
	return s
}
