package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
	"go.uber.org/multierr"

	"github.com/vango-dev/vdom/internal/treefile"
	"github.com/vango-dev/vdom/pkg/dom/htmldoc"
	"github.com/vango-dev/vdom/pkg/render"
)

type renderOptions struct {
	then     []string
	minify   bool
	tree     bool
	selector string
	stats    bool
}

func renderCmd(c *cli) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render tree files and print the document",
		Long: `Render a YAML tree file into a fresh document and print the root's HTML.

Every --then file is rendered as a further pass into the same root, so
the output shows what the differ made of the sequence.

Examples:
  vdomctl render list.yaml
  vdomctl render list.yaml --then reordered.yaml --stats
  vdomctl render page.yaml --select "li.active" --tree`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Output.Minify {
				opts.minify = true
			}
			return runRender(cmd.Context(), cmd.OutOrStdout(), c, append(args, opts.then...), opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.then, "then", nil, "Tree file rendered as a subsequent pass (repeatable)")
	cmd.Flags().BoolVar(&opts.minify, "minify", false, "Minify the printed HTML")
	cmd.Flags().BoolVar(&opts.tree, "tree", false, "Print the rendered vnode tree")
	cmd.Flags().StringVar(&opts.selector, "select", "", "Print only elements matching a CSS selector")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "Print statistics of every pass")

	return cmd
}

func runRender(ctx context.Context, w io.Writer, c *cli, files []string, opts renderOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var passes []render.PassStats
	r := render.New(
		render.WithLogger(c.logger),
		render.WithTracerName(c.cfg.Tracing.TracerName),
		render.WithObserver(render.ObserverFunc(func(s render.PassStats) {
			passes = append(passes, s)
		})),
	)

	doc := htmldoc.New()
	root := doc.CreateElement("div", "").(*htmldoc.Element)
	doc.Body().AppendChild(root)

	var errs error
	for _, file := range files {
		nodes, err := treefile.ParseFile(file)
		if err != nil {
			return err
		}
		before := doc.Stats()
		if err := r.RenderContext(ctx, root, treefile.Build(nodes), nil); err != nil {
			errs = multierr.Append(errs, err)
		}
		if opts.stats && len(passes) > 0 {
			s := passes[len(passes)-1]
			fmt.Fprintf(w, "pass %d (%s): created=%d updated=%d removed=%d moved=%d deferred=%d mutations=%d\n",
				s.Pass, file, s.Created, s.Updated, s.Removed, s.Moved, s.Deferred, doc.Stats().Sub(before).Mutations())
		}
	}

	var out []string
	if opts.selector != "" {
		matches, err := root.QuerySelectorAll(opts.selector)
		if err != nil {
			return err
		}
		for _, el := range matches {
			out = append(out, el.OuterHTML())
		}
	} else {
		out = append(out, root.InnerHTML())
	}
	for _, s := range out {
		if opts.minify {
			s = minifyHTML(s)
		}
		fmt.Fprintln(w, s)
	}

	if opts.tree {
		fmt.Fprint(w, treefile.Sprint(r.Rendered(root)))
	}
	return errs
}

var (
	minifier *minify.M
	once     sync.Once
)

// getMinifier returns a configured HTML minifier (singleton)
func getMinifier() *minify.M {
	once.Do(func() {
		minifier = minify.New()
		minifier.AddFunc("text/html", html.Minify)
	})
	return minifier
}

// minifyHTML removes unnecessary whitespace from HTML. Markup the minifier
// rejects is returned unchanged.
func minifyHTML(content string) string {
	if !strings.Contains(content, "<") {
		return strings.Join(strings.Fields(content), " ")
	}
	minified, err := getMinifier().String("text/html", content)
	if err != nil {
		return content
	}
	return minified
}
