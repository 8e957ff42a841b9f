package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hospos-dev/hospos/internal/billing"
	"github.com/hospos-dev/hospos/internal/workflow"
)

var billingCmd = &cobra.Command{
	Use:   "billing",
	Short: "Billing counter: verify prescriptions, take payment, print receipt",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Any signed-in role can run billing, same as the counter it replaces.
		user, err := requireLogin()
		if err != nil {
			return err
		}
		fmt.Printf("Billing counter - welcome, %s\n", user.Name)

		prices := billing.RandomPrices(rand.New(rand.NewSource(time.Now().UnixNano())))
		b := workflow.NewBilling(client, docs, prices, logger)
		p := newPrompter(os.Stdin, os.Stdout)
		runBilling(cmd.Context(), b, p)
		return nil
	},
}

func runBilling(ctx context.Context, b *workflow.Billing, p *prompter) {
	for !p.done() {
		switch b.Tab() {
		case workflow.TabBillingCheck:
			fmt.Println("\n[1] Check prescription by slip  [0] Exit")
			switch p.line("Choose") {
			case "1":
				if err := b.Check(ctx, p.required("Slip number")); err != nil {
					p.fail(err)
				}
			case "0":
				return
			}

		case workflow.TabBillingBill:
			renderBill(os.Stdout, b.Bill(), b.Patient())
			fmt.Println("[1] Confirm payment & print receipt  [2] Back to search  [0] Exit")
			switch p.line("Choose") {
			case "1":
				path, err := b.ConfirmPayment(ctx)
				if err != nil {
					p.fail(err)
				} else {
					fmt.Println("Payment recorded. Receipt saved:", path)
				}
			case "2":
				b.Reset()
			case "0":
				return
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(billingCmd)
}
