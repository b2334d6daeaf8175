package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gmdcok-crypto/meal-manage/client"
)

func newPolicyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Manage meal policies",
	}
	cmd.AddCommand(policyListCmd())
	cmd.AddCommand(policyGetCmd())
	cmd.AddCommand(policyCreateCmd())
	cmd.AddCommand(policyUpdateCmd())
	cmd.AddCommand(policyDeleteCmd())
	return cmd
}

func policyListCmd() *cobra.Command {
	var activeOnly bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List meal policies",
		Run: func(cmd *cobra.Command, args []string) {
			policies, err := apiClient.Policies.List(context.Background(), activeOnly)
			if err != nil {
				fatal("list policies", err)
			}

			if flagFmt == "table" {
				rows := make([][]string, 0, len(policies))
				for _, p := range policies {
					rows = append(rows, []string{
						strconv.FormatInt(p.ID, 10),
						p.MealType,
						p.StartTime + " - " + p.EndTime,
						strconv.Itoa(p.BasePrice),
						strconv.Itoa(p.GuestPrice),
						strconv.FormatBool(p.IsActive),
					})
				}
				formatTable([]string{"ID", "MEAL", "WINDOW", "BASE", "GUEST", "ACTIVE"}, rows)
				return
			}

			output(map[string]any{"policies": policies}, strconv.Itoa(len(policies)))
		},
	}
	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only active policies")
	return cmd
}

func policyGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <policy-id>",
		Short: "Get a meal policy by id",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			p, err := apiClient.Policies.Get(context.Background(), parseIDArg(args[0]))
			if err != nil {
				fatal("get policy", err)
			}
			output(p, strconv.FormatInt(p.ID, 10))
		},
	}
}

func policyCreateCmd() *cobra.Command {
	var companyID, operatorID int64
	var mealType, start, end string
	var basePrice, guestPrice int
	var inactive bool
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a meal policy",
		Run: func(cmd *cobra.Command, args []string) {
			req := &client.CreatePolicyRequest{
				CompanyID:  companyID,
				MealType:   mealType,
				StartTime:  start,
				EndTime:    end,
				BasePrice:  basePrice,
				GuestPrice: guestPrice,
			}
			if inactive {
				active := false
				req.IsActive = &active
			}
			p, err := apiClient.Policies.Create(context.Background(), req, operatorID)
			if err != nil {
				fatal("create policy", err)
			}
			output(p, strconv.FormatInt(p.ID, 10))
		},
	}
	cmd.Flags().Int64Var(&companyID, "company", 1, "Company id")
	cmd.Flags().StringVar(&mealType, "meal", "", "Meal type label (e.g. lunch)")
	cmd.Flags().StringVar(&start, "start", "", "Window start (HH:MM:SS, local)")
	cmd.Flags().StringVar(&end, "end", "", "Window end (HH:MM:SS, local, inclusive)")
	cmd.Flags().IntVar(&basePrice, "base-price", 0, "Employee price in won")
	cmd.Flags().IntVar(&guestPrice, "guest-price", 0, "Per-guest price in won")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "Create in the inactive state")
	cmd.Flags().Int64Var(&operatorID, "operator", 0, "Operator employee id")
	_ = cmd.MarkFlagRequired("meal")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func policyUpdateCmd() *cobra.Command {
	var operatorID int64
	var mealType, start, end string
	var basePrice, guestPrice int
	var active bool
	cmd := &cobra.Command{
		Use:   "update <policy-id>",
		Short: "Edit a meal policy",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			req := &client.UpdatePolicyRequest{}
			if cmd.Flags().Changed("meal") {
				req.MealType = &mealType
			}
			if cmd.Flags().Changed("start") {
				req.StartTime = &start
			}
			if cmd.Flags().Changed("end") {
				req.EndTime = &end
			}
			if cmd.Flags().Changed("base-price") {
				req.BasePrice = &basePrice
			}
			if cmd.Flags().Changed("guest-price") {
				req.GuestPrice = &guestPrice
			}
			if cmd.Flags().Changed("active") {
				req.IsActive = &active
			}
			p, err := apiClient.Policies.Update(context.Background(), parseIDArg(args[0]), req, operatorID)
			if err != nil {
				fatal("update policy", err)
			}
			output(p, strconv.FormatInt(p.ID, 10))
		},
	}
	cmd.Flags().StringVar(&mealType, "meal", "", "Meal type label")
	cmd.Flags().StringVar(&start, "start", "", "Window start (HH:MM:SS, local)")
	cmd.Flags().StringVar(&end, "end", "", "Window end (HH:MM:SS, local, inclusive)")
	cmd.Flags().IntVar(&basePrice, "base-price", 0, "Employee price in won")
	cmd.Flags().IntVar(&guestPrice, "guest-price", 0, "Per-guest price in won")
	cmd.Flags().BoolVar(&active, "active", true, "Active state")
	cmd.Flags().Int64Var(&operatorID, "operator", 0, "Operator employee id")
	return cmd
}

func policyDeleteCmd() *cobra.Command {
	var operatorID int64
	cmd := &cobra.Command{
		Use:   "delete <policy-id>",
		Short: "Delete a meal policy",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id := parseIDArg(args[0])
			if err := apiClient.Policies.Delete(context.Background(), id, operatorID); err != nil {
				fatal("delete policy", err)
			}
			output(map[string]any{"deleted": true, "id": id}, args[0])
		},
	}
	cmd.Flags().Int64Var(&operatorID, "operator", 0, "Operator employee id")
	return cmd
}
