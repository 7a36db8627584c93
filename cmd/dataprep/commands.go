package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/theuddeshya/Dynasty/internal/codec"
	"github.com/theuddeshya/Dynasty/internal/core/graph"
	"github.com/theuddeshya/Dynasty/internal/domain"
	"github.com/theuddeshya/Dynasty/internal/loader"
	"github.com/theuddeshya/Dynasty/internal/repository"
	"github.com/theuddeshya/Dynasty/internal/repository/sqlite"
)

type options struct {
	dbPath string
	from   string
	to     string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "dataprep",
		Short:         "Prepare family datasets for the explorer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.dbPath, "db", "d", "dynasty.db", "Path to the dataset store (SQLite)")

	root.AddCommand(newConvertCmd(opts), newImportCmd(opts), newInspectCmd(opts))
	return root
}

func newConvertCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input> [output]",
		Short: "Convert a dataset between json, yaml and markdown",
		Long: "Convert a dataset between formats. Formats are inferred from file extensions\n" +
			"unless --from/--to are given. Without an output path the result goes to stdout.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := readDataset(cmd, args[0], opts.from)
			if err != nil {
				return err
			}

			to := opts.to
			if to == "" {
				to = codec.FormatJSON
				if len(args) == 2 {
					to = codec.FormatFromPath(args[1])
				}
			}
			exporter, err := codec.Lookup(to)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 2 {
				f, err := os.Create(args[1])
				if err != nil {
					return fmt.Errorf("failed to create output: %w", err)
				}
				defer f.Close()
				out = f
			}
			if err := exporter.Export(ds, out); err != nil {
				return fmt.Errorf("failed to write %s: %w", exporter.Format(), err)
			}
			if len(args) == 2 {
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d families (%d members) to %s\n", len(ds), ds.MemberCount(), args[1])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.from, "from", "", "input format (json, yaml, markdown)")
	cmd.Flags().StringVar(&opts.to, "to", "", "output format (json, yaml, markdown)")
	return cmd
}

func newImportCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <input>",
		Short: "Replace the dataset in the store with a dataset file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := readDataset(cmd, args[0], opts.from)
			if err != nil {
				return err
			}

			store, err := sqlite.New(opts.dbPath)
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer store.Close()

			ctx := cmd.Context()
			if err := store.SaveDataset(ctx, ds, args[0]); err != nil {
				return err
			}
			stats, err := store.Stats(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d families, %d members, %d connections into %s\n",
				stats.Families, stats.Members, stats.Connections, opts.dbPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.from, "from", "", "input format (json, yaml, markdown)")
	return cmd
}

func newInspectCmd(opts *options) *cobra.Command {
	var showSkipped bool
	cmd := &cobra.Command{
		Use:   "inspect <input|store>",
		Short: "Build the graph for a dataset and print its statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var store repository.Repository
			if args[0] == loader.StoreLocation {
				s, err := sqlite.New(opts.dbPath)
				if err != nil {
					return fmt.Errorf("failed to open store: %w", err)
				}
				defer s.Close()
				store = s
			}

			src, err := loader.NewSource(args[0], opts.from, store)
			if err != nil {
				return err
			}
			snap, err := loader.New(graph.NewBuilder()).Load(cmd.Context(), src)
			if err != nil {
				return err
			}

			printSnapshot(cmd.OutOrStdout(), snap)
			if showSkipped {
				for _, s := range snap.Skipped {
					if s.MemberIndex < 0 {
						fmt.Fprintf(cmd.OutOrStdout(), "skipped family %d: %s\n", s.GroupIndex, s.Reason)
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "skipped member %d-%d: %s\n", s.GroupIndex, s.MemberIndex, s.Reason)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.from, "from", "", "input format (json, yaml, markdown)")
	cmd.Flags().BoolVar(&showSkipped, "skipped", false, "list records left out of the graph")
	return cmd
}

func printSnapshot(w io.Writer, snap *loader.Snapshot) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	g := snap.Graph
	fmt.Fprintf(tw, "source\t%s\n", snap.Source)
	fmt.Fprintf(tw, "families\t%d\n", len(snap.Dataset))
	fmt.Fprintf(tw, "members\t%d\n", snap.Dataset.MemberCount())
	fmt.Fprintf(tw, "nodes\t%d\n", len(g.Nodes))
	fmt.Fprintf(tw, "group links\t%d\n", g.CountEdges(domain.EdgeTypeGroup))
	fmt.Fprintf(tw, "mention links\t%d\n", g.CountEdges(domain.EdgeTypeResolvedMention))
	fmt.Fprintf(tw, "skipped\t%d\n", len(snap.Skipped))
	fmt.Fprintf(tw, "groups\t%d\n", len(snap.Facets.Groups))
	fmt.Fprintf(tw, "professions\t%d\n", len(snap.Facets.Professions))
}

// readDataset parses a dataset file; markdown warnings are reported on stderr
func readDataset(cmd *cobra.Command, path, format string) (domain.Dataset, error) {
	if format == "" {
		format = codec.FormatFromPath(path)
	}
	c, err := codec.Lookup(format)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	if md, ok := c.(*codec.MarkdownCodec); ok {
		ds, warnings, err := md.ParseDocument(f)
		if err != nil {
			return nil, err
		}
		for _, w := range warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
		}
		return ds, nil
	}
	return c.Parse(f)
}
