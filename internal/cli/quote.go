package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emphz/rfqcart/internal/storage"
	"github.com/emphz/rfqcart/pkg/types"
)

func newQuoteCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Submit and review quote requests",
	}
	cmd.AddCommand(newQuoteSubmitCmd(s))
	cmd.AddCommand(newQuoteListCmd(s))
	cmd.AddCommand(newQuoteShowCmd(s))
	cmd.AddCommand(newQuoteExportCmd(s))
	cmd.AddCommand(newQuoteImportCmd(s))
	return cmd
}

func newQuoteSubmitCmd(s *session) *cobra.Command {
	var (
		contact types.Contact
		notes   string
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit the quote cart as a quote request",
		Long: `Submit sends the cart contents with your contact details as a quote
request. The cart is emptied once the request is accepted.

Example:
  rfq quote submit --name "Jane Smith" --email jane@example.com --company Acme`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.openApp()
			if err != nil {
				return err
			}
			defer a.close()

			receipt, err := a.quotes.Submit(cmd.Context(), contact, notes)
			if err != nil {
				return err
			}
			if s.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), receipt)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Quote request %s submitted with %d item(s).\n", receipt.QuoteID, receipt.ItemCount)
			fmt.Fprintln(out, "Your quote cart has been cleared.")
			return nil
		},
	}
	cmd.Flags().StringVar(&contact.Name, "name", "", "contact name (required)")
	cmd.Flags().StringVar(&contact.Email, "email", "", "contact email (required)")
	cmd.Flags().StringVar(&contact.Company, "company", "", "company name")
	cmd.Flags().StringVar(&contact.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&notes, "notes", "", "additional requirements")
	return cmd
}

func newQuoteListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List submitted quote requests, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.openApp()
			if err != nil {
				return err
			}
			defer a.close()

			quotes, err := a.archive.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list quotes: %w", err)
			}
			out := cmd.OutOrStdout()
			if s.flags.jsonMode {
				return writeJSON(out, quotes)
			}
			if len(quotes) == 0 {
				fmt.Fprintln(out, "No quote requests submitted.")
				return nil
			}
			rows := make([][]string, 0, len(quotes))
			for _, q := range quotes {
				rows = append(rows, []string{
					q.QuoteID,
					truncate(q.Contact.Name, 30),
					fmt.Sprint(len(q.Items)),
					q.SubmittedAt.Format("2006-01-02 15:04"),
				})
			}
			writeTable(out, []string{"QUOTE", "CONTACT", "ITEMS", "SUBMITTED"}, rows)
			return nil
		},
	}
}

func newQuoteShowCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show <quote-id>",
		Short: "Show a submitted quote request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.openApp()
			if err != nil {
				return err
			}
			defer a.close()

			q, err := a.archive.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if s.flags.jsonMode {
				return writeJSON(out, q)
			}
			fmt.Fprintf(out, "Quote:     %s\n", q.QuoteID)
			fmt.Fprintf(out, "Submitted: %s\n", q.SubmittedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "Contact:   %s <%s>\n", q.Contact.Name, q.Contact.Email)
			if q.Contact.Company != "" {
				fmt.Fprintf(out, "Company:   %s\n", q.Contact.Company)
			}
			if q.Contact.Phone != "" {
				fmt.Fprintf(out, "Phone:     %s\n", q.Contact.Phone)
			}
			if q.Notes != "" {
				fmt.Fprintf(out, "Notes:     %s\n", q.Notes)
			}
			fmt.Fprintln(out)
			rows := make([][]string, 0, len(q.Items))
			for _, item := range q.Items {
				rows = append(rows, []string{item.ProductID, item.ProductName, fmt.Sprint(item.Quantity)})
			}
			writeTable(out, []string{"PRODUCT", "NAME", "QTY"}, rows)
			return nil
		},
	}
}

// transferResult is the JSON output of export and import.
type transferResult struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

func newQuoteExportCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.jsonl>",
		Short: "Export submitted quote requests as JSON Lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.openApp()
			if err != nil {
				return err
			}
			defer a.close()

			n, err := a.archive.ExportJSONL(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if s.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), transferResult{Path: args[0], Count: n})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d quote request(s) to %s\n", n, args[0])
			return nil
		},
	}
}

func newQuoteImportCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.jsonl>",
		Short: "Import quote requests exported by 'rfq quote export'",
		Long: `Import reads a JSON Lines export and archives every quote request whose
id is not already present. Malformed lines are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quotes, err := storage.ReadQuotesJSONL(args[0])
			if err != nil {
				return err
			}
			a, err := s.openApp()
			if err != nil {
				return err
			}
			defer a.close()

			n, err := a.archive.Import(cmd.Context(), quotes)
			if err != nil {
				return err
			}
			if s.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), transferResult{Path: args[0], Count: n})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d quote request(s)\n", n, len(quotes))
			return nil
		},
	}
}
