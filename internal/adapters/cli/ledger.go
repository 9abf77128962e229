package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/adapters/persistence"
	"github.com/andrescamacho/homestead-go/internal/application/ledger/commands"
	"github.com/andrescamacho/homestead-go/internal/application/ledger/queries"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/database"
)

// NewLedgerCommand creates the ledger command with subcommands
func NewLedgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inventory balances and the resource journal",
		Long: `View balances and analyze resource transactions.

The journal records every debit and credit: construction and upgrade costs,
demolition refunds, production output, storage withdrawals and grants.

Examples:
  homestead ledger balance
  homestead ledger grant --items wood=20,stone=10 --currencies gold=50
  homestead ledger transactions --category CONSTRUCTION --limit 20
  homestead ledger flow --start-date 2026-01-01 --end-date 2026-01-31 --group-by resource`,
	}

	cmd.AddCommand(newLedgerBalanceCommand())
	cmd.AddCommand(newLedgerGrantCommand())
	cmd.AddCommand(newLedgerTransactionsCommand())
	cmd.AddCommand(newLedgerFlowCommand())

	return cmd
}

func newLedgerBalanceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show item and currency balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, err := openWorld(cmd, false)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := send[*queries.GetBalancesResponse](ctx, app.Mediator, &queries.GetBalancesQuery{})
			if err != nil {
				return err
			}

			w := newTable()
			fmt.Fprintln(w, "KIND\tRESOURCE\tQUANTITY")
			for _, b := range resp.Currencies {
				fmt.Fprintf(w, "currency\t%s\t%d\n", b.Resource, b.Quantity)
			}
			for _, b := range resp.Items {
				fmt.Fprintf(w, "item\t%s\t%d\n", b.Resource, b.Quantity)
			}
			return w.Flush()
		},
	}

	return cmd
}

func newLedgerGrantCommand() *cobra.Command {
	var items, currencies, description string

	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Credit resources to the inventory",
		Long: `Credit items and currencies outside of gameplay, for example quest rewards
handed over by another system. Every grant is journaled as an ADJUSTMENT.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			itemMap, err := parseResources(items)
			if err != nil {
				return err
			}
			currencyMap, err := parseResources(currencies)
			if err != nil {
				return err
			}

			app, ctx, err := openWorld(cmd, true)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := send[*commands.GrantResourcesResponse](ctx, app.Mediator, &commands.GrantResourcesCommand{
				Items:       itemMap,
				Currencies:  currencyMap,
				Description: description,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Granted %s (transaction %s)\n", resp.Granted.String(), resp.TransactionID)
			return nil
		},
	}

	cmd.Flags().StringVar(&items, "items", "", "Items as name=quantity,...")
	cmd.Flags().StringVar(&currencies, "currencies", "", "Currencies as kind=amount,...")
	cmd.Flags().StringVar(&description, "description", "", "Journal description")

	return cmd
}

func newLedgerTransactionsCommand() *cobra.Command {
	var (
		startDate  string
		endDate    string
		category   string
		txType     string
		buildingID string
		limit      int
		offset     int
		orderBy    string
	)

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List journal entries",
		Long: `List resource transactions with optional filtering.

Results are ordered by timestamp descending (newest first) by default.

Categories:
  CONSTRUCTION  - Placement and upgrade costs
  REFUND        - Demolition refunds
  PRODUCTION    - Production output and storage withdrawals
  ADJUSTMENT    - Grants

Transaction Types:
  PLACE_BUILDING, UPGRADE_BUILDING, DEMOLISH_REFUND,
  PRODUCTION_OUTPUT, STORAGE_WITHDRAWAL, GRANT`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseDateRange(startDate, endDate)
			if err != nil {
				return err
			}

			query := &queries.GetTransactionsQuery{
				StartDate: start,
				EndDate:   end,
				Limit:     limit,
				Offset:    offset,
				OrderBy:   orderBy,
			}
			if category != "" {
				query.Category = &category
			}
			if txType != "" {
				query.TransactionType = &txType
			}
			if buildingID != "" {
				query.BuildingID = &buildingID
			}

			return withTransactionRepository(cmd.Context(), func(ctx context.Context, repo *persistence.GormTransactionRepository) error {
				result, err := queries.NewGetTransactionsHandler(repo).Handle(ctx, query)
				if err != nil {
					return err
				}
				displayTransactionList(result.(*queries.GetTransactionsResponse))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&startDate, "start-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&txType, "type", "", "Filter by transaction type")
	cmd.Flags().StringVar(&buildingID, "building", "", "Filter by building id")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of transactions to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of transactions to skip")
	cmd.Flags().StringVar(&orderBy, "order-by", "timestamp DESC", "Sort order (timestamp DESC or timestamp ASC)")

	return cmd
}

func newLedgerFlowCommand() *cobra.Command {
	var startDate, endDate, groupBy string

	cmd := &cobra.Command{
		Use:   "flow",
		Short: "Summarize resource inflow and outflow",
		Long: `Generate a resource flow statement for a date range, grouped by category
or by resource. Defaults to the last 7 days.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if startDate == "" {
				startDate = now.AddDate(0, 0, -7).Format("2006-01-02")
			}
			if endDate == "" {
				endDate = now.Format("2006-01-02")
			}
			start, end, err := parseDateRange(startDate, endDate)
			if err != nil {
				return err
			}

			return withTransactionRepository(cmd.Context(), func(ctx context.Context, repo *persistence.GormTransactionRepository) error {
				result, err := queries.NewGetResourceFlowHandler(repo).Handle(ctx, &queries.GetResourceFlowQuery{
					StartDate: *start,
					EndDate:   *end,
					GroupBy:   groupBy,
				})
				if err != nil {
					return fmt.Errorf("failed to generate resource flow: %w", err)
				}
				displayResourceFlow(result.(*queries.GetResourceFlowResponse))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&startDate, "start-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&groupBy, "group-by", "category", "Group by (category, resource)")

	return cmd
}

// withTransactionRepository opens only the journal; read-only reports do not need the world
func withTransactionRepository(ctx context.Context, fn func(context.Context, *persistence.GormTransactionRepository) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return fn(ctx, persistence.NewGormTransactionRepository(db))
}

// displayTransactionList formats and displays transaction list
func displayTransactionList(response *queries.GetTransactionsResponse) {
	if len(response.Transactions) == 0 {
		fmt.Println("No transactions found")
		return
	}

	fmt.Printf("\nTRANSACTIONS (Showing %d of %d total)\n", len(response.Transactions), response.Total)
	fmt.Println("─────────────────────────────────────────────────────────────────────────────")

	w := newTable()
	fmt.Fprintln(w, "Timestamp\tType\tBuilding\tChanges\tDescription")
	fmt.Fprintln(w, "─────────\t────\t────────\t───────\t───────────")

	for _, tx := range response.Transactions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			tx.Timestamp.Format("2006-01-02 15:04:05"),
			tx.Type,
			orDash(tx.BuildingID),
			formatEntries(tx.Entries),
			tx.Description,
		)
	}

	w.Flush()
	fmt.Println("─────────────────────────────────────────────────────────────────────────────")
	fmt.Printf("Total: %d transactions\n\n", response.Total)
}

// displayResourceFlow formats and displays the flow statement
func displayResourceFlow(response *queries.GetResourceFlowResponse) {
	fmt.Printf("\nRESOURCE FLOW\n")
	fmt.Printf("Period: %s\n", response.Period)
	fmt.Println("─────────────────────────────────────────────────────────────────────────────")

	if len(response.Flows) == 0 {
		fmt.Println("No resource movement in this period")
		return
	}

	w := newTable()
	fmt.Fprintln(w, "Group\tResource\tIn\tOut\tNet\tTxns")
	for _, f := range response.Flows {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%+d\t%d\n", f.Group, f.Resource, f.Inflow, f.Outflow, f.Net, f.Transactions)
	}
	w.Flush()
	fmt.Println()
}

func formatEntries(entries []queries.EntryDTO) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%+d %s", e.Delta, e.Resource)
	}
	return strings.Join(parts, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
