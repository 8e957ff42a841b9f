package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hospos-dev/hospos/internal/models"
	"github.com/hospos-dev/hospos/internal/workflow"
)

var pharmacyCmd = &cobra.Command{
	Use:   "pharmacy",
	Short: "Pharmacy counter: dispensing queue and prescription search",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireRole(models.RolePharmacy)
		if err != nil {
			return err
		}
		fmt.Printf("Pharmacy counter - welcome, %s\n", user.Name)

		ph := workflow.NewPharmacy(client, docs, logger)
		p := newPrompter(os.Stdin, os.Stdout)
		if err := ph.Refresh(cmd.Context()); err != nil {
			p.fail(err)
		}
		runPharmacy(cmd.Context(), ph, p)
		return nil
	},
}

func runPharmacy(ctx context.Context, ph *workflow.Pharmacy, p *prompter) {
	for !p.done() {
		switch ph.Tab() {
		case workflow.TabPharmacyList:
			fmt.Println()
			renderPharmacyQueue(ph.Prescriptions())
			fmt.Println("[1] Advance status  [2] View prescription  [3] Search by slip  [4] Refresh  [0] Exit")
			switch p.line("Choose") {
			case "1":
				id, ok := p.number("Prescription ID")
				if !ok {
					continue
				}
				next, err := ph.Advance(ctx, id)
				if err != nil {
					p.fail(err)
				} else {
					fmt.Printf("Prescription status updated to %s\n", next)
				}
			case "2":
				id, ok := p.number("Prescription ID")
				if !ok {
					continue
				}
				opened := false
				for _, pres := range ph.Prescriptions() {
					if pres.ID == id {
						if err := ph.View(ctx, pres); err != nil {
							p.fail(err)
						}
						opened = true
						break
					}
				}
				if !opened {
					fmt.Println("No such prescription.")
				}
			case "3":
				if err := ph.OpenSearch(); err != nil {
					p.fail(err)
				}
			case "4":
				if err := ph.Refresh(ctx); err != nil {
					p.fail(err)
				}
			case "0":
				return
			}

		case workflow.TabPharmacySearch:
			fmt.Println("\n[1] Find prescription by slip  [2] Back  [0] Exit")
			switch p.line("Choose") {
			case "1":
				if err := ph.Search(ctx, p.required("Slip number")); err != nil {
					p.fail(err)
				}
			case "2":
				if err := ph.OpenList(ctx); err != nil {
					p.fail(err)
				}
			case "0":
				return
			}

		case workflow.TabPharmacyView:
			prescription, patient := ph.Current()
			renderPrescription(os.Stdout, prescription, patient)
			fmt.Println("[1] Generate PDF  [2] Back to prescriptions  [0] Exit")
			switch p.line("Choose") {
			case "1":
				path, err := ph.Print()
				if err != nil {
					p.fail(err)
				} else {
					fmt.Println("Saved", path)
				}
			case "2":
				if err := ph.CloseView(); err != nil {
					p.fail(err)
				}
			case "0":
				return
			}
		}
	}
}

// renderPharmacyQueue shows each prescription with its status badge and the
// single action the status allows.
func renderPharmacyQueue(prescriptions []models.Prescription) {
	if len(prescriptions) == 0 {
		fmt.Println("There are no prescriptions to display at the moment.")
		return
	}
	for _, pres := range prescriptions {
		status := pres.PharmacyStatus
		if status == "" {
			status = models.StatusPending
		}
		action := status.ActionLabel()
		if action == "" {
			action = "Medicine Dispensed"
		}
		fmt.Printf("[%d] %s  %s  Dr. %s  %d medicine(s)  [%s]  -> %s\n",
			pres.ID, pres.SlipNumber, pres.PatientName, pres.DoctorName,
			len(pres.MedicineList), status.Label(), action)
	}
}

func init() {
	rootCmd.AddCommand(pharmacyCmd)
}
