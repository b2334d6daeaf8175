package main

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/gmdcok-crypto/meal-manage/client"
)

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Query the audit trail",
	}
	cmd.AddCommand(auditQueryCmd())
	return cmd
}

func auditQueryCmd() *cobra.Command {
	var targetKind, action, since string
	var targetID int64
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "query",
		Short: "List audit records, newest first",
		Run: func(cmd *cobra.Command, args []string) {
			opts := &client.AuditQueryOptions{
				TargetKind: targetKind,
				TargetID:   targetID,
				Action:     action,
				Limit:      limit,
				Offset:     offset,
			}
			if since != "" {
				t, err := time.Parse(time.RFC3339, since)
				if err != nil {
					fatal("parse --since", err)
				}
				opts.Since = &t
			}
			records, hasMore, err := apiClient.Audit.Query(context.Background(), opts)
			if err != nil {
				fatal("query audit", err)
			}

			if flagFmt == "table" {
				rows := make([][]string, 0, len(records))
				for _, rec := range records {
					operator := "-"
					if rec.OperatorName != "" {
						operator = rec.OperatorName
					} else if rec.OperatorID != nil {
						operator = strconv.FormatInt(*rec.OperatorID, 10)
					}
					rows = append(rows, []string{
						strconv.FormatInt(rec.ID, 10),
						rec.Action,
						rec.TargetKind + "/" + strconv.FormatInt(rec.TargetID, 10),
						operator,
						rec.CreatedAt.Format(time.RFC3339),
					})
				}
				formatTable([]string{"ID", "ACTION", "TARGET", "OPERATOR", "AT"}, rows)
				if hasMore {
					formatQuiet("(more results available)")
				}
				return
			}

			output(map[string]any{"records": records, "has_more": hasMore}, strconv.Itoa(len(records)))
		},
	}
	cmd.Flags().StringVar(&targetKind, "kind", "", "Target kind filter (event|policy)")
	cmd.Flags().Int64Var(&targetID, "target", 0, "Target id filter")
	cmd.Flags().StringVar(&action, "action", "", "Action filter (e.g. event.void)")
	cmd.Flags().StringVar(&since, "since", "", "Only records at or after this RFC3339 instant")
	cmd.Flags().IntVar(&limit, "limit", 50, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")
	return cmd
}
