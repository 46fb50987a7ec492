package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/light-bringer/procat-inventory/internal/app/product/contracts"
	"github.com/light-bringer/procat-inventory/internal/app/product/listengine"
	"github.com/light-bringer/procat-inventory/internal/app/product/queries/get_product"
	"github.com/light-bringer/procat-inventory/internal/app/product/queries/list_products"
	"github.com/light-bringer/procat-inventory/internal/app/product/usecases/create_product"
	"github.com/light-bringer/procat-inventory/internal/app/product/usecases/delete_product"
	"github.com/light-bringer/procat-inventory/internal/app/product/usecases/update_product"
	"github.com/light-bringer/procat-inventory/internal/services"
)

var errNotLoggedIn = errors.New("not logged in: run 'inventory login' first")

var (
	listSearch   string
	listSort     string
	listDesc     bool
	listPage     int
	listPageSize int

	updateName     string
	updateQuantity string

	deleteYes bool
)

var addCmd = &cobra.Command{
	Use:   "add NAME QUANTITY",
	Short: "Add a product",
	Args:  cobra.ExactArgs(2),
	RunE: withSession(func(cmd *cobra.Command, opts *services.ServiceOptions, args []string) error {
		id, err := opts.CreateProduct.Execute(cmd.Context(), &create_product.Request{
			Name:     args[0],
			Quantity: args[1],
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	}),
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Long: `Lists one page of products. The search matches names containing the text,
ignoring case. --sort orders by name or date, ascending unless --desc is set.`,
	Args: cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, opts *services.ServiceOptions, args []string) error {
		engine := opts.Engine

		engine.SetSearchQuery(listSearch)
		if err := applySort(engine, listSort, listDesc); err != nil {
			return err
		}
		if err := engine.SetPageSize(listPageSize); err != nil {
			return fmt.Errorf("invalid --page-size %d: %w", listPageSize, err)
		}

		result, err := opts.ListProducts.Execute(cmd.Context(), &list_products.Request{Page: listPage})
		if err != nil {
			return err
		}
		return printProducts(cmd.OutOrStdout(), result)
	}),
}

var updateCmd = &cobra.Command{
	Use:   "update PRODUCT_ID",
	Short: "Change a product's name or quantity",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(cmd *cobra.Command, opts *services.ServiceOptions, args []string) error {
		ctx := cmd.Context()

		current, err := opts.GetProduct.Execute(ctx, &get_product.Request{ProductID: args[0]})
		if err != nil {
			return err
		}

		req := &update_product.Request{
			ProductID: current.ProductID,
			Name:      current.Name,
			Quantity:  current.Quantity,
		}
		if cmd.Flags().Changed("name") {
			req.Name = updateName
		}
		if cmd.Flags().Changed("quantity") {
			req.Quantity = updateQuantity
		}
		return opts.UpdateProduct.Execute(ctx, req)
	}),
}

var deleteCmd = &cobra.Command{
	Use:   "delete PRODUCT_ID",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(cmd *cobra.Command, opts *services.ServiceOptions, args []string) error {
		if !deleteYes {
			ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Are you sure you want to delete this?")
			if err != nil || !ok {
				return err
			}
		}
		return opts.DeleteProduct.Execute(cmd.Context(), &delete_product.Request{ProductID: args[0]})
	}),
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "only names containing this text")
	listCmd.Flags().StringVar(&listSort, "sort", "", "sort by name or date")
	listCmd.Flags().BoolVar(&listDesc, "desc", false, "sort descending")
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "page number")
	listCmd.Flags().IntVar(&listPageSize, "page-size", listengine.DefaultPageSize, "products per page: 10, 20, 30, 40 or 50")

	updateCmd.Flags().StringVar(&updateName, "name", "", "new product name")
	updateCmd.Flags().StringVar(&updateQuantity, "quantity", "", "new quantity")

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "do not ask for confirmation")
}

// withSession opens the services and refuses to run fn unless a session is
// active, mirroring the login gate of the terminal UI.
func withSession(fn func(*cobra.Command, *services.ServiceOptions, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		opts, err := openServices(cmd.Context())
		if err != nil {
			return err
		}
		defer opts.Close()

		if !opts.Session.State().LoggedIn {
			return errNotLoggedIn
		}
		return fn(cmd, opts, args)
	}
}

// applySort selects the sort key. The first toggle of a key sorts it
// descending, so ascending takes a second toggle.
func applySort(engine *listengine.Engine, key string, desc bool) error {
	var toggle func()
	switch contracts.SortKey(key) {
	case contracts.SortNone:
		return nil
	case contracts.SortName:
		toggle = engine.ToggleSortByName
	case contracts.SortDate:
		toggle = engine.ToggleSortByDate
	default:
		return fmt.Errorf("unknown sort %q: want name or date", key)
	}

	toggle()
	if !desc {
		toggle()
	}
	return nil
}

func printProducts(out io.Writer, result *contracts.ListResult) error {
	if len(result.Products) == 0 {
		_, err := fmt.Fprintln(out, "No products found")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPRODUCT ID\tDATE & TIME\tQUANTITY")
	for _, p := range result.Products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.ProductID, p.DateTime, p.Quantity)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "\nPage %d of %d (%d of %d products)\n",
		result.Page, max(result.PageCount, 1), result.FilteredCount, result.TotalCount)
	return err
}

func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
