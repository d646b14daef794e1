package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emphz/rfqcart/pkg/types"
)

func newCartCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the quote cart",
		Long: `Cart commands show and edit the quote cart. Every change is written to
each configured storage channel so the cart survives between runs.`,
	}
	cmd.AddCommand(newCartShowCmd(s))
	cmd.AddCommand(newCartAddCmd(s))
	cmd.AddCommand(newCartRemoveCmd(s))
	cmd.AddCommand(newCartClearCmd(s))
	return cmd
}

// cartView is the JSON shape of the cart.
type cartView struct {
	Items []types.LineItem `json:"items"`
	Count int              `json:"count"`
}

func newCartShowCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the items in the quote cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.openApp()
			if err != nil {
				return err
			}
			defer a.close()
			return s.printCart(cmd.OutOrStdout(), a)
		},
	}
}

func newCartAddCmd(s *session) *cobra.Command {
	var qty int
	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the quote cart",
		Long: `Add a catalog product to the quote cart. Adding a product already in the
cart increases its quantity.

Example:
  rfq cart add grp-enclosure-600
  rfq cart add ex-junction-box-200 --qty 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.openApp()
			if err != nil {
				return err
			}
			defer a.close()

			p, err := a.catalog.ByID(args[0])
			if err != nil {
				return fmt.Errorf("%w (run 'rfq catalog list' to see available products)", err)
			}
			if err := a.store.AddItem(types.LineItem{ProductID: p.ID, Quantity: qty, ProductName: p.Name}); err != nil {
				return fmt.Errorf("add to cart: %w", err)
			}
			if !s.flags.jsonMode {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d x %s to the quote cart.\n", qty, p.Name)
			}
			return s.printCart(cmd.OutOrStdout(), a)
		},
	}
	cmd.Flags().IntVarP(&qty, "qty", "q", 1, "quantity to add")
	return cmd
}

func newCartRemoveCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <product-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a product from the quote cart",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if _, ok := a.store.Item(args[0]); !ok && !s.flags.jsonMode {
				notice(cmd.OutOrStdout(), "%s is not in the quote cart.", args[0])
			}
			a.store.RemoveItem(args[0])
			return s.printCart(cmd.OutOrStdout(), a)
		},
	}
}

func newCartClearCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every item from the quote cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.openApp()
			if err != nil {
				return err
			}
			defer a.close()

			a.store.ClearCart()
			if s.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), cartView{Items: []types.LineItem{}})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Quote cart cleared.")
			return nil
		},
	}
}

func (s *session) printCart(w io.Writer, a *app) error {
	items := a.store.Items()
	if s.flags.jsonMode {
		if items == nil {
			items = []types.LineItem{}
		}
		return writeJSON(w, cartView{Items: items, Count: a.store.Count()})
	}

	if len(items) == 0 {
		fmt.Fprintln(w, "Your quote cart is empty.")
		return nil
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{item.ProductID, truncate(item.ProductName, 40), strconv.Itoa(item.Quantity)})
	}
	writeTable(w, []string{"PRODUCT", "NAME", "QTY"}, rows)
	fmt.Fprintf(w, "Total: %d item(s)\n", a.store.Count())
	return nil
}
