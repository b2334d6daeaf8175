package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gmdcok-crypto/meal-manage/client"
)

func newEventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Record, inspect, and void meal events",
	}
	cmd.AddCommand(eventScanCmd())
	cmd.AddCommand(eventRecordCmd())
	cmd.AddCommand(eventGetCmd())
	cmd.AddCommand(eventListCmd())
	cmd.AddCommand(eventVoidCmd())
	return cmd
}

func eventScanCmd() *cobra.Command {
	var guests int
	cmd := &cobra.Command{
		Use:   "scan <subject-id>",
		Short: "Record a self-service check-in",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			subjectID := parseIDArg(args[0])
			resp, err := apiClient.Events.Scan(context.Background(), &client.RecordEventRequest{
				SubjectID:  subjectID,
				GuestCount: guests,
			})
			if err != nil {
				fatal("scan", err)
			}
			output(resp, strconv.FormatInt(resp.Event.ID, 10))
		},
	}
	cmd.Flags().IntVar(&guests, "guests", 0, "Accompanying guest count")
	return cmd
}

func eventRecordCmd() *cobra.Command {
	var guests int
	var policyID, operatorID int64
	var occurredAt, path, reason string
	cmd := &cobra.Command{
		Use:   "record <subject-id>",
		Short: "Record a meal event manually",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			req := &client.RecordEventRequest{
				SubjectID:  parseIDArg(args[0]),
				GuestCount: guests,
				Path:       path,
				OccurredAt: occurredAt,
				OperatorID: operatorID,
				Reason:     reason,
			}
			if policyID != 0 {
				req.PolicyID = &policyID
			}
			ev, err := apiClient.Events.Record(context.Background(), req)
			if err != nil {
				fatal("record event", err)
			}
			output(ev, strconv.FormatInt(ev.ID, 10))
		},
	}
	cmd.Flags().IntVar(&guests, "guests", 0, "Accompanying guest count")
	cmd.Flags().Int64Var(&policyID, "policy", 0, "Explicit policy id (skips window matching)")
	cmd.Flags().Int64Var(&operatorID, "operator", 0, "Operator employee id")
	cmd.Flags().StringVar(&occurredAt, "at", "", "Local time of attendance (2006-01-02T15:04:05)")
	cmd.Flags().StringVar(&path, "path", "MANUAL", "Entry path: SCAN|KIOSK|MANUAL")
	cmd.Flags().StringVar(&reason, "reason", "", "Reason for the manual entry")
	return cmd
}

func eventGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <event-id>",
		Short: "Get a meal event by id",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ev, err := apiClient.Events.Get(context.Background(), parseIDArg(args[0]))
			if err != nil {
				fatal("get event", err)
			}
			output(ev, strconv.FormatInt(ev.ID, 10))
		},
	}
}

func eventListCmd() *cobra.Command {
	var from, to, search, path string
	var voided bool
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List meal events in a date range",
		Run: func(cmd *cobra.Command, args []string) {
			opts := &client.EventListOptions{
				From: from, To: to, Search: search, Path: path,
				Limit: limit, Offset: offset,
			}
			if cmd.Flags().Changed("voided") {
				opts.IsVoid = &voided
			}
			events, hasMore, err := apiClient.Events.List(context.Background(), opts)
			if err != nil {
				fatal("list events", err)
			}

			if flagFmt == "table" {
				rows := make([][]string, 0, len(events))
				for _, ev := range events {
					voidMark := ""
					if ev.IsVoid {
						voidMark = "VOID"
					}
					rows = append(rows, []string{
						strconv.FormatInt(ev.ID, 10),
						ev.SubjectName,
						ev.MealType,
						strconv.Itoa(1 + ev.GuestCount),
						ev.Path,
						ev.OccurredAt.Format("2006-01-02 15:04:05"),
						voidMark,
					})
				}
				formatTable([]string{"ID", "NAME", "MEAL", "HEADS", "PATH", "OCCURRED (UTC)", ""}, rows)
				if hasMore {
					formatQuiet("(more results available)")
				}
				return
			}

			output(map[string]any{"events": events, "has_more": hasMore}, strconv.Itoa(len(events)))
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Start date (inclusive, local)")
	cmd.Flags().StringVar(&to, "to", "", "End date (inclusive, local)")
	cmd.Flags().StringVar(&search, "search", "", "Subject name or number filter")
	cmd.Flags().StringVar(&path, "path", "", "Entry path filter")
	cmd.Flags().BoolVar(&voided, "voided", false, "Filter by void state")
	cmd.Flags().IntVar(&limit, "limit", 200, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")
	return cmd
}

func eventVoidCmd() *cobra.Command {
	var reason string
	var operatorID int64
	cmd := &cobra.Command{
		Use:   "void <event-id>",
		Short: "Void a meal event",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ev, err := apiClient.Events.Void(context.Background(), parseIDArg(args[0]), &client.VoidEventRequest{
				Reason:     reason,
				OperatorID: operatorID,
			})
			if err != nil {
				fatal("void event", err)
			}
			output(ev, strconv.FormatInt(ev.ID, 10))
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "Reason for voiding (required)")
	cmd.Flags().Int64Var(&operatorID, "operator", 0, "Operator employee id")
	_ = cmd.MarkFlagRequired("reason")
	return cmd
}

func parseIDArg(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		fatal("parse id", err)
	}
	return v
}
