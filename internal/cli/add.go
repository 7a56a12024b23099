package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/solrdex"
	"github.com/kailas-cloud/solrdex/internal/logger"
)

// AddOptions holds the flags of the add command.
type AddOptions struct {
	File   string
	Commit bool
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Index documents read from a YAML file",
		Long: `Index documents read from a YAML file.

The file holds a list of mappings, one per document. Scalar values become
one field; lists become one field per element. Field order is kept.`,
		Example: `  solrdex add --file products.yaml --commit
  cat products.yaml | solrdex add --file -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAdd(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "YAML documents file, - for stdin (required)")
	cmd.Flags().BoolVar(&opts.Commit, "commit", false, "commit after adding")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runAdd(cmd *cobra.Command, rootOpts *RootOptions, opts *AddOptions) error {
	data, err := readInput(cmd.InOrStdin(), opts.File)
	if err != nil {
		return WrapExitError(ExitUsage, "read documents", err)
	}
	docs, err := parseDocuments(data)
	if err != nil {
		return WrapExitError(ExitUsage, "parse documents", err)
	}

	ctx := cmd.Context()
	if err := rootOpts.client.AddDocuments(ctx, docs...); err != nil {
		return remoteError("add", err)
	}
	if opts.Commit {
		if err := rootOpts.client.Commit(ctx); err != nil {
			return remoteError("commit", err)
		}
	}
	logger.FromContext(ctx).Info("documents added",
		zap.Int("count", len(docs)),
		zap.Bool("committed", opts.Commit),
	)
	return newPrinter(rootOpts, cmd.OutOrStdout()).print(status{Status: "ok", Count: len(docs)})
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(filepath.Clean(path))
}

// parseDocuments decodes a YAML sequence of mappings into update documents.
func parseDocuments(data []byte) ([]solrdex.Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		return nil, nil // empty input
	}
	seq := &root
	if seq.Kind == yaml.DocumentNode && len(seq.Content) == 1 {
		seq = seq.Content[0]
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: want a list of documents", seq.Line)
	}

	docs := make([]solrdex.Document, 0, len(seq.Content))
	for i, m := range seq.Content {
		if m.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("document %d (line %d): want a mapping", i, m.Line)
		}
		doc := solrdex.Document{}
		for j := 0; j+1 < len(m.Content); j += 2 {
			key, val := m.Content[j], m.Content[j+1]
			fields, err := documentFields(key.Value, val)
			if err != nil {
				return nil, fmt.Errorf("document %d: %w", i, err)
			}
			doc = append(doc, fields...)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func documentFields(name string, val *yaml.Node) ([]solrdex.FieldValue, error) {
	switch val.Kind {
	case yaml.ScalarNode:
		if val.Tag == "!!null" {
			return nil, nil
		}
		return []solrdex.FieldValue{{Name: name, Value: val.Value}}, nil
	case yaml.SequenceNode:
		out := make([]solrdex.FieldValue, 0, len(val.Content))
		for _, el := range val.Content {
			if el.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("field %q (line %d): list elements must be scalars", name, el.Line)
			}
			out = append(out, solrdex.FieldValue{Name: name, Value: el.Value})
		}
		return out, nil
	}
	return nil, fmt.Errorf("field %q (line %d): nested mappings are not supported", name, val.Line)
}
