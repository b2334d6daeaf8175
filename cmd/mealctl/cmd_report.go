package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Attendance dashboards and reports",
	}
	cmd.AddCommand(reportTodayCmd())
	cmd.AddCommand(reportDailyCmd())
	cmd.AddCommand(reportMonthlyCmd())
	cmd.AddCommand(reportDepartmentCmd())
	return cmd
}

func reportTodayCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Live snapshot of one business day",
		Run: func(cmd *cobra.Command, args []string) {
			snap, err := apiClient.Reports.Today(context.Background(), date)
			if err != nil {
				fatal("today report", err)
			}

			if flagFmt == "table" {
				rows := make([][]string, 0, len(snap.PerPolicy))
				for _, p := range snap.PerPolicy {
					rows = append(rows, []string{
						p.MealType,
						strconv.Itoa(p.Count),
						strconv.Itoa(p.BasePrice),
					})
				}
				formatTable([]string{"MEAL", "COUNT", "PRICE"}, rows)
				formatQuiet("total " + strconv.Itoa(snap.TotalCount) +
					", employees " + strconv.Itoa(snap.EmployeeCount) +
					", guests " + strconv.Itoa(snap.GuestCount) +
					", exceptions " + strconv.Itoa(snap.ExceptionCount))
				return
			}

			output(snap, strconv.Itoa(snap.TotalCount))
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Business day (2006-01-02, default today)")
	return cmd
}

func reportDailyCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Per-meal-type counts for one business day",
		Run: func(cmd *cobra.Command, args []string) {
			meals, err := apiClient.Reports.Daily(context.Background(), date)
			if err != nil {
				fatal("daily report", err)
			}

			if flagFmt == "table" {
				rows := make([][]string, 0, len(meals))
				for _, m := range meals {
					rows = append(rows, []string{
						m.MealType,
						strconv.Itoa(m.EmployeeCount),
						strconv.Itoa(m.GuestCount),
					})
				}
				formatTable([]string{"MEAL", "EMPLOYEES", "GUESTS"}, rows)
				return
			}

			output(map[string]any{"date": date, "meals": meals}, strconv.Itoa(len(meals)))
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Business day (2006-01-02)")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func reportMonthlyCmd() *cobra.Command {
	var year, month int
	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Per-day buckets over one calendar month",
		Run: func(cmd *cobra.Command, args []string) {
			days, err := apiClient.Reports.Monthly(context.Background(), year, month)
			if err != nil {
				fatal("monthly report", err)
			}

			if flagFmt == "table" {
				rows := make([][]string, 0, len(days))
				for _, d := range days {
					rows = append(rows, []string{
						d.Date,
						strconv.Itoa(d.Count),
						strconv.Itoa(d.GuestCount),
						strconv.Itoa(d.Amount),
					})
				}
				formatTable([]string{"DATE", "COUNT", "GUESTS", "AMOUNT"}, rows)
				return
			}

			output(map[string]any{"year": year, "month": month, "days": days}, strconv.Itoa(len(days)))
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "Calendar year")
	cmd.Flags().IntVar(&month, "month", 0, "Calendar month (1-12)")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("month")
	return cmd
}

func reportDepartmentCmd() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "department",
		Short: "Per-department totals over a date range",
		Run: func(cmd *cobra.Command, args []string) {
			depts, err := apiClient.Reports.Department(context.Background(), from, to)
			if err != nil {
				fatal("department report", err)
			}

			if flagFmt == "table" {
				rows := make([][]string, 0, len(depts))
				for _, d := range depts {
					rows = append(rows, []string{
						d.DepartmentName,
						strconv.Itoa(d.Count),
						strconv.Itoa(d.GuestCount),
					})
				}
				formatTable([]string{"DEPARTMENT", "COUNT", "GUESTS"}, rows)
				return
			}

			output(map[string]any{"from": from, "to": to, "departments": depts}, strconv.Itoa(len(depts)))
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Start date (inclusive, 2006-01-02)")
	cmd.Flags().StringVar(&to, "to", "", "End date (inclusive, 2006-01-02)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
