package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tluyben/hn-top/config"
	"github.com/tluyben/hn-top/hn"
	"github.com/tluyben/hn-top/present"
	"github.com/tluyben/hn-top/search"
	"github.com/tluyben/hn-top/types"
)

var cfgFile string

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds an API client from it
func setup() (config.Config, *hn.Client, error) {
	cfg, err := config.Load(viper.New(), cfgFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, hn.NewClient(cfg.ClientOptions()), nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hn",
		Short:         "Print one-line summaries of the current Hacker News top items",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := setup()
			if err != nil {
				return err
			}
			items, err := client.TopItems(cmd.Context(), cfg.Count)
			if err != nil {
				return err
			}
			return printItems(cmd, items)
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./hn.yaml)")

	root.AddCommand(newItemCmd(), newSearchCmd(), newServeCmd())
	return root
}

func newItemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "item <id>",
		Short: "Print the summary of a single item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid item ID %q", args[0])
			}
			_, client, err := setup()
			if err != nil {
				return err
			}
			item, err := client.Item(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printItems(cmd, []types.Item{item})
		},
	}
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Print the top items matching a full-text query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := setup()
			if err != nil {
				return err
			}
			items, err := client.TopItems(cmd.Context(), cfg.Count)
			if err != nil {
				return err
			}

			matches, err := searchItems(items, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "no matching items")
				return nil
			}
			return printItems(cmd, matches)
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve item summaries over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := setup()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg.Listen, client, cfg.Count)
		},
	}
}

// searchItems returns the items matching query, best match first
func searchItems(items []types.Item, query string) ([]types.Item, error) {
	idx, err := search.NewIndex()
	if err != nil {
		return nil, err
	}
	defer idx.Close()

	if err := idx.Add(items...); err != nil {
		return nil, err
	}
	positions, err := idx.Search(query, len(items))
	if err != nil {
		return nil, err
	}

	matches := make([]types.Item, len(positions))
	for i, pos := range positions {
		matches[i] = items[pos]
	}
	return matches, nil
}

func printItems(cmd *cobra.Command, items []types.Item) error {
	if len(items) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), present.Lines(items))
	return err
}
