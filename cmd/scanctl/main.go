// Command scanctl drives an orderscan server from a scanning station or a
// shell: it records scans, updates statuses and bulk-loads orders.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"orderscan/pkg/client"
	"orderscan/pkg/order"
)

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	addr := os.Getenv("SCANCTL_ADDR")
	if addr == "" {
		addr = "http://localhost:5000"
	}
	var c *client.Client

	rootCmd := &cobra.Command{
		Use:           "scanctl",
		Short:         "orderscan command line client",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c = client.New(addr)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&addr, "addr", addr, "orderscan server URL")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "ping",
			Short: "check the server is alive",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := c.Ping(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", p.Status, time.UnixMilli(p.Timestamp).Format(time.RFC3339))
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "show system status",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := c.Status(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (version %s)\n", st.Status, st.Timestamp, st.Version)
				return nil
			},
		},
		&cobra.Command{
			Use:   "orders",
			Short: "list order line items",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				rows, err := c.Orders(cmd.Context())
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ORDER\tSKU\tTITLE\tCOLOR\tSCANNED\tSTATUS\tLAST SCAN")
				for _, r := range rows {
					last := "-"
					if r.ScanTimestamp != nil {
						last = *r.ScanTimestamp
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d/%d\t%s\t%s\n",
						r.ID, r.SKU, r.Title, r.Color, r.Scanned, r.Quantity, r.Status, last)
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:   "order [orderId]",
			Short: "print a full order record",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				o, err := c.Order(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(o)
			},
		},
		&cobra.Command{
			Use:   "scan [orderId] [sku]",
			Short: "record one scan of a SKU",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				msg, err := c.Scan(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), msg)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set-status [orderId] [status]",
			Short: "overwrite an order status",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				msg, err := c.SetStatus(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), msg)
				return nil
			},
		},
		&cobra.Command{
			Use:   "transfer [orderId] [type]",
			Short: "show or set the carrier of an order (پست, اسنپ باکس, ماهکس)",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if len(args) == 1 {
					t, err := c.Transfer(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					if t == "" {
						t = "-"
					}
					fmt.Fprintln(cmd.OutOrStdout(), t)
					return nil
				}
				msg, err := c.SetTransfer(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), msg)
				return nil
			},
		},
		&cobra.Command{
			Use:   "import [file]",
			Short: "bulk-load orders from a JSON file keyed by order id",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				orders, err := order.LoadFile(args[0])
				if err != nil {
					return err
				}
				n, err := c.Import(cmd.Context(), orders)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d orders\n", n)
				return nil
			},
		},
	)

	return rootCmd
}
