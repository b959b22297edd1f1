package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/papertrade/internal/models"
)

var (
	quoteSearch bool
	quoteCrypto bool
)

var quoteCmd = &cobra.Command{
	Use:   "quote [symbol]",
	Short: "Show a quote, search instruments, or list trending symbols",
	Long: `With a symbol, print its latest quote. With --search, treat the argument as a query.
Without arguments, list trending symbols.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		ctx := cmd.Context()

		if len(args) == 0 {
			trending := papertrade.MarketService.Trending(ctx)
			for _, item := range trending.Items {
				fmt.Fprintf(out, "%-6s %+6.2f%%\n", item.Symbol, item.PercentChange)
			}
			if trending.Fallback {
				fmt.Fprintln(out, "(market data unavailable, showing sample data)")
			}
			return nil
		}

		if quoteSearch {
			marketType := models.MarketStock
			if quoteCrypto {
				marketType = models.MarketCrypto
			}
			results, err := papertrade.MarketService.Search(ctx, args[0], marketType)
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Fprintf(out, "%-20s %-30s %s\n", r.DisplaySymbol, r.Name, r.Type)
			}
			return nil
		}

		q, err := papertrade.MarketService.Quote(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s  %.2f  %+.2f (%s%%)\n", q.Symbol, q.Current, q.Change, q.PercentChange)
		fmt.Fprintf(out, "open %.2f  high %.2f  low %.2f  prev close %.2f\n", q.Open, q.High, q.Low, q.PreviousClose)
		return nil
	},
}

func init() {
	quoteCmd.Flags().BoolVarP(&quoteSearch, "search", "s", false, "Search instruments instead of quoting")
	quoteCmd.Flags().BoolVar(&quoteCrypto, "crypto", false, "Search cryptocurrencies instead of stocks")
}
