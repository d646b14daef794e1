package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emphz/rfqcart/internal/catalog"
	"github.com/emphz/rfqcart/pkg/types"
)

func newCatalogCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse, filter and compare catalog products",
	}
	cmd.AddCommand(newCatalogListCmd(s))
	cmd.AddCommand(newCatalogShowCmd(s))
	cmd.AddCommand(newCatalogCategoriesCmd(s))
	cmd.AddCommand(newCatalogCompareCmd(s))
	return cmd
}

// openCatalog loads only the catalog; catalog commands never touch the cart.
func (s *session) openCatalog() (*catalog.Catalog, error) {
	cat, err := catalog.Open(s.settings.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	return cat, nil
}

func newCatalogListCmd(s *session) *cobra.Command {
	var fs types.FilterState
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		Long: `List catalog products, optionally narrowed to one category and to
products carrying every given feature tag.

Feature tags: ` + strings.Join(catalog.FeatureTags(), ", ") + `

Example:
  rfq catalog list
  rfq catalog list --category "Junction Boxes"
  rfq catalog list --feature IP66/IP67 --feature "Fire Rated"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, tag := range fs.Features {
				if _, ok := catalog.Rule(tag); !ok {
					return fmt.Errorf("%w: unknown feature tag %q (valid: %s)",
						errUsage, tag, strings.Join(catalog.FeatureTags(), ", "))
				}
			}
			cat, err := s.openCatalog()
			if err != nil {
				return err
			}

			products := catalog.Filter(cat.Products(), fs)
			out := cmd.OutOrStdout()
			if s.flags.jsonMode {
				return writeJSON(out, products)
			}
			if len(products) == 0 {
				fmt.Fprintln(out, "No products match the selected filters.")
				return nil
			}
			rows := make([][]string, 0, len(products))
			for _, p := range products {
				rows = append(rows, []string{p.ID, truncate(p.Name, 40), p.Category})
			}
			writeTable(out, []string{"ID", "NAME", "CATEGORY"}, rows)
			fmt.Fprintf(out, "Total: %d product(s)\n", len(products))
			return nil
		},
	}
	cmd.Flags().StringVarP(&fs.Category, "category", "c", types.CategoryAll, "category to show")
	cmd.Flags().StringArrayVarP(&fs.Features, "feature", "f", nil, "required feature tag (repeatable)")
	return cmd
}

func newCatalogShowCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show <product-id>",
		Short: "Show one product's details and specifications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := s.openCatalog()
			if err != nil {
				return err
			}
			p, err := cat.ByID(args[0])
			if err != nil {
				if errors.Is(err, types.ErrProductNotFound) && !s.flags.jsonMode {
					notice(cmd.ErrOrStderr(), "Product not found. Run 'rfq catalog list' to browse the catalog.")
				}
				return err
			}
			if s.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), p)
			}
			printProduct(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func printProduct(w io.Writer, p types.Product) {
	fmt.Fprintln(w, p.Name)
	fmt.Fprintf(w, "ID:       %s\n", p.ID)
	fmt.Fprintf(w, "Category: %s\n", p.Category)
	fmt.Fprintln(w)
	fmt.Fprintln(w, p.ShortDescription)
	if p.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, strings.TrimSpace(p.Description))
	}
	if len(p.Specs) > 0 {
		fmt.Fprintln(w)
		rows := make([][]string, 0, len(p.Specs))
		for _, spec := range p.Specs {
			rows = append(rows, []string{spec.Label, spec.Value})
		}
		writeTable(w, []string{"SPEC", "VALUE"}, rows)
	}
	if len(p.Features) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Features:")
		for _, f := range p.Features {
			fmt.Fprintf(w, "  - %s\n", f)
		}
	}
	if len(p.Applications) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Applications: %s\n", strings.Join(p.Applications, ", "))
	}
}

func newCatalogCategoriesCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := s.openCatalog()
			if err != nil {
				return err
			}
			categories := cat.Categories()
			if s.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), categories)
			}
			for _, c := range categories {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

// compareView is the JSON output of catalog compare. Notices lists the ids
// refused because the selection was full.
type compareView struct {
	catalog.Comparison
	Notices []string `json:"notices,omitempty"`
}

func newCatalogCompareCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <product-id>...",
		Short: "Compare up to three products side by side",
		Long: `Compare toggles each product id into the compare selection in order and
prints the specification table for the result. Naming a product twice
removes it again; ids beyond the capacity are reported and skipped.

Example:
  rfq catalog compare grp-enclosure-600 grp-enclosure-400`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := s.openCatalog()
			if err != nil {
				return err
			}
			for _, id := range args {
				if _, err := cat.ByID(id); err != nil {
					return err
				}
			}

			sel := &catalog.Selection{}
			var notices []string
			for _, id := range args {
				if err := sel.Toggle(id); errors.Is(err, types.ErrCompareFull) {
					msg := fmt.Sprintf("%s Skipping %s.", catalog.CapacityNotice, id)
					notices = append(notices, msg)
					notice(cmd.ErrOrStderr(), "%s", msg)
				}
			}

			cmp, err := cat.CompareSelection(sel)
			if err != nil {
				return err
			}
			if s.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), compareView{Comparison: cmp, Notices: notices})
			}
			printComparison(cmd.OutOrStdout(), cmp)
			return nil
		},
	}
}

func printComparison(w io.Writer, cmp catalog.Comparison) {
	if len(cmp.Products) == 0 {
		fmt.Fprintln(w, "No products selected for comparison.")
		return
	}
	header := []string{"SPEC"}
	for _, p := range cmp.Products {
		header = append(header, p.Name)
	}
	rows := make([][]string, 0, len(cmp.Rows))
	for _, r := range cmp.Rows {
		rows = append(rows, append([]string{r.Label}, r.Values...))
	}
	writeTable(w, header, rows)
}
