package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	omnitree "github.com/reoring/omnitree"
	"github.com/reoring/omnitree/encode"
	"github.com/reoring/omnitree/i18n"
	"github.com/reoring/omnitree/internal/loader"
	"github.com/reoring/omnitree/internal/logger"
	"github.com/reoring/omnitree/jsonschema"
	"github.com/reoring/omnitree/schema"
	"github.com/reoring/omnitree/wire"
)

func encodeCmd() *cobra.Command {
	var format string
	var pretty bool
	var indent int
	var stopAt string
	var maxNodes int
	var output string

	c := &cobra.Command{
		Use:   "encode <schema.yaml>",
		Short: "Encode a schema definition as JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "json", "yaml"); err != nil {
				return err
			}
			pkg, err := loader.Load(args[0])
			if err != nil {
				return err
			}
			log := logger.L()
			log.Debug("loader.loaded", "path", args[0], "package", pkg.Name,
				"entities", len(pkg.Entities))

			w, closeOut, err := openOutput(cmd, output)
			if err != nil {
				return err
			}

			wo := wire.Options{PrettyPrint: pretty, IndentSize: indent}
			var opts []encode.Option
			if stopAt != "" {
				opts = append(opts, encode.WithStop(schema.NameIs(stopAt)))
			}
			if maxNodes > 0 {
				opts = append(opts, encode.WithMaxNodes(maxNodes))
			}
			enc := encode.NewJSON(w, wo, opts...)
			if format == "yaml" {
				enc = encode.NewYAML(w, wo, opts...)
			}

			complete, err := enc.Encode(pkg)
			if err == nil && format == "json" {
				_, err = io.WriteString(w, "\n")
			}
			if cerr := closeOut(); err == nil {
				err = cerr
			}
			if err != nil {
				return withMessage(err)
			}
			log.Debug("encode.done", "format", format, "complete", complete, "bytes", enc.Written())
			if !complete {
				return fmt.Errorf("%w: %s (stopped at %q)", omnitree.ErrIncomplete,
					i18n.T(omnitree.CodeIncomplete, nil), stopAt)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	c.Flags().BoolVar(&pretty, "pretty", false, "indent output")
	c.Flags().IntVar(&indent, "indent", wire.DefaultIndentSize, "spaces per nesting level with --pretty")
	c.Flags().StringVar(&stopAt, "stop-at", "", "stop encoding at the first node with this name")
	c.Flags().IntVar(&maxNodes, "max-nodes", 0, "fail once more than this many schema nodes are visited; 0 for no limit")
	c.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return c
}

// withMessage prefixes encoder-level errors with their catalogue message.
func withMessage(err error) error {
	if code := omnitree.ErrorCode(err); code != "" {
		return fmt.Errorf("%s: %w", i18n.T(code, nil), err)
	}
	return err
}

func jsonSchemaCmd() *cobra.Command {
	var indent int
	var output string

	c := &cobra.Command{
		Use:   "jsonschema <schema.yaml>",
		Short: "Export a schema definition as a JSON Schema document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := loader.Load(args[0])
			if err != nil {
				return err
			}
			doc, err := jsonschema.Export(pkg)
			if err != nil {
				return err
			}
			b, err := doc.MarshalIndent(strings.Repeat(" ", max(indent, 0)))
			if err != nil {
				return err
			}

			w, closeOut, err := openOutput(cmd, output)
			if err != nil {
				return err
			}
			_, err = w.Write(append(b, '\n'))
			if cerr := closeOut(); err == nil {
				err = cerr
			}
			return err
		},
	}

	c.Flags().IntVar(&indent, "indent", wire.DefaultIndentSize, "spaces per nesting level; 0 for compact output")
	c.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return c
}
