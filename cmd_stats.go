package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/maximkravchenko/fintui/aggregate"
	"github.com/maximkravchenko/fintui/financery"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate statistics for a user",
	Long:  `Compute income/expense totals, a per-tag spending breakdown, and a time-bucketed cash-flow series for a user.`,
	RunE:  statsRun,
}

func init() {
	statsCmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")
	statsCmd.Flags().Int64("user", 0, "user ID to compute statistics for")
	statsCmd.Flags().String("range", string(aggregate.Month), "chart range: day, week, month, or year")
	statsCmd.Flags().Int64("account", 0, "restrict to one account ID, 0 for all")
	statsCmd.Flags().String("period", "all", "period filter: all or month")
	_ = statsCmd.MarkFlagRequired("user")
}

// statsReport is the JSON shape of the stats output.
type statsReport struct {
	Income    string            `json:"income"`
	Expense   string            `json:"expense"`
	Net       string            `json:"net"`
	Tags      []statsTagEntry   `json:"tags"`
	Range     string            `json:"range"`
	CashFlow  []statsFlowBucket `json:"cash_flow"`
	UserID    int64             `json:"user_id"`
	Generated time.Time         `json:"generated_at"`
}

type statsTagEntry struct {
	Title string `json:"title"`
	Total string `json:"total"`
}

type statsFlowBucket struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Income  string    `json:"income"`
	Expense string    `json:"expense"`
}

func statsRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	userID, _ := cmd.Flags().GetInt64("user")
	rangeStr, _ := cmd.Flags().GetString("range")

	granularity := aggregate.Granularity(rangeStr)
	if !granularity.Valid() {
		return fmt.Errorf("unknown range %q, expected day, week, month, or year", rangeStr)
	}

	accountID, _ := cmd.Flags().GetInt64("account")
	period, _ := cmd.Flags().GetString("period")
	if period != "all" && period != "month" {
		return fmt.Errorf("unknown period %q, expected all or month", period)
	}

	// transactions drive everything; tags ride along for the breakdown
	// titles, so fetch both at once
	var ts []financery.Transaction
	var tags []financery.Tag

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var fetchErr error
		ts, fetchErr = client.GetTransactionsByUser(gctx, userID)
		return fetchErr
	})
	g.Go(func() error {
		var fetchErr error
		tags, fetchErr = client.GetTagsByUser(gctx, userID)
		return fetchErr
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to fetch user data: %w", err)
	}

	ts = filterByAccount(ts, accountID)
	if period == "month" {
		ts = filterThisMonth(ts, time.Now())
	}

	summary := aggregate.Totals(ts)
	breakdown := aggregate.TagBreakdown(ts, financery.Expense)
	series := aggregate.Series(ts, granularity, time.Now())

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd, buildStatsReport(userID, granularity, summary, breakdown, series))
	case tableOutputFormat:
		return outputStatsTables(cmd, len(tags), summary, breakdown, series)
	default:
		return errors.New("unsupported output format")
	}
}

func buildStatsReport(
	userID int64,
	granularity aggregate.Granularity,
	summary aggregate.Summary,
	breakdown []aggregate.TagBucket,
	series []aggregate.Bucket,
) statsReport {
	report := statsReport{
		Income:    summary.Income.Display(),
		Expense:   summary.Expense.Display(),
		Net:       summary.Net.Display(),
		Range:     string(granularity),
		UserID:    userID,
		Generated: time.Now(),
	}

	for _, b := range breakdown {
		report.Tags = append(report.Tags, statsTagEntry{Title: b.Title, Total: b.Total.Display()})
	}

	for _, b := range series {
		if b.Income.IsZero() && b.Expense.IsZero() {
			continue
		}
		report.CashFlow = append(report.CashFlow, statsFlowBucket{
			Start:   b.Start,
			End:     b.End,
			Income:  b.Income.Display(),
			Expense: b.Expense.Display(),
		})
	}

	return report
}

func outputStatsTables(
	cmd *cobra.Command,
	tagCount int,
	summary aggregate.Summary,
	breakdown []aggregate.TagBucket,
	series []aggregate.Bucket,
) error {
	totals := createStyledTable("FIELD", "VALUE")
	totals.Row("Income", summary.Income.Display())
	totals.Row("Expense", summary.Expense.Display())
	totals.Row("Net", summary.Net.Display())
	totals.Row("Tags", fmt.Sprintf("%d", tagCount))
	fmt.Fprintln(cmd.OutOrStdout(), totals)

	if len(breakdown) > 0 {
		tagTable := createStyledTable("TAG", "TOTAL SPENT")
		for _, b := range breakdown {
			tagTable.Row(b.Title, b.Total.Display())
		}
		fmt.Fprintln(cmd.OutOrStdout(), tagTable)
	}

	flow := createStyledTable("FROM", "TO", "INCOME", "EXPENSE")
	for _, b := range series {
		if b.Income.IsZero() && b.Expense.IsZero() {
			continue
		}
		flow.Row(
			b.Start.Format("02.01.2006 15:04"),
			b.End.Format("02.01.2006 15:04"),
			b.Income.Display(),
			b.Expense.Display(),
		)
	}
	fmt.Fprintln(cmd.OutOrStdout(), flow)

	return nil
}
