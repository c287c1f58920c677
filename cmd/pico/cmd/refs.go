package cmd

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-drift/pico/pkg/core"
	"github.com/go-drift/pico/pkg/dom"
)

// RefsOptions holds flags for the refs command.
type RefsOptions struct {
	Marker string
}

// ComponentRefs describes the refs one component element would receive.
type ComponentRefs struct {
	Component string              `json:"component"`
	Element   string              `json:"element"`
	Refs      map[string][]string `json:"refs"`
}

// NewRefsCommand creates the refs command.
func NewRefsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RefsOptions{}

	cmd := &cobra.Command{
		Use:   "refs <file>",
		Short: "List the refs each component in a markup file receives",
		Long: `Parse an HTML fragment and list, for every custom element or
customized built-in in it, the refs its connect procedure would receive.

Use "-" to read from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefs(cmd, rootOpts, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Marker, "marker", core.DefaultRefMarker, "ref attribute name")

	return cmd
}

func runRefs(cmd *cobra.Command, rootOpts *RootOptions, opts *RefsOptions, path string) error {
	markup, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	els, err := dom.Parse(markup)
	if err != nil {
		return err
	}
	doc := dom.NewDocument()
	doc.Body().Append(els...)
	verbosef(cmd, rootOpts, "parsed %d element(s) from %s", len(doc.Elements()), path)

	result := InspectRefs(doc, opts.Marker)
	verbosef(cmd, rootOpts, "found %d component(s)", len(result))

	if rootOpts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	return writeRefsText(cmd.OutOrStdout(), result)
}

// InspectRefs collects the refs of every component element in doc, in
// document order. An element is a component when its tag name or its "is"
// attribute contains a hyphen.
func InspectRefs(doc *dom.Document, marker string) []ComponentRefs {
	result := []ComponentRefs{}
	for _, el := range doc.Elements() {
		name := componentName(el)
		if name == "" {
			continue
		}
		refs := core.CollectRefs(el, marker)
		entry := ComponentRefs{
			Component: name,
			Element:   describe(el),
			Refs:      make(map[string][]string),
		}
		for _, ref := range refs.Names() {
			for _, target := range refs.All(ref) {
				entry.Refs[ref] = append(entry.Refs[ref], describe(target))
			}
		}
		result = append(result, entry)
	}
	return result
}

func componentName(el *dom.Element) string {
	if is := el.IsName(); strings.Contains(is, "-") {
		return is
	}
	if strings.Contains(el.TagName(), "-") {
		return el.TagName()
	}
	return ""
}

func describe(el *dom.Element) string {
	if is := el.IsName(); is != "" {
		return fmt.Sprintf("%s[is=%s]", el.TagName(), is)
	}
	return el.TagName()
}

func writeRefsText(w io.Writer, result []ComponentRefs) error {
	if len(result) == 0 {
		_, err := fmt.Fprintln(w, "no components found")
		return err
	}
	for _, entry := range result {
		fmt.Fprintln(w, entry.Element)
		for _, name := range slices.Sorted(maps.Keys(entry.Refs)) {
			targets := entry.Refs[name]
			suffix := ""
			if len(targets) > 1 {
				suffix = fmt.Sprintf(" (list of %d)", len(targets))
			}
			fmt.Fprintf(w, "  %s: %s%s\n", name, strings.Join(targets, ", "), suffix)
		}
	}
	return nil
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
