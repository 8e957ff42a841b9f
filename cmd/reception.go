package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hospos-dev/hospos/internal/api"
	"github.com/hospos-dev/hospos/internal/models"
	"github.com/hospos-dev/hospos/internal/workflow"
)

var receptionCmd = &cobra.Command{
	Use:   "reception",
	Short: "Reception counter: registration, slips, patient records",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireRole(models.RoleReception)
		if err != nil {
			return err
		}
		fmt.Printf("Reception counter - welcome, %s\n", user.Name)

		r := workflow.NewReception(client, docs, logger)
		p := newPrompter(os.Stdin, os.Stdout)
		runReception(cmd.Context(), r, p)
		return nil
	},
}

func runReception(ctx context.Context, r *workflow.Reception, p *prompter) {
	for !p.done() {
		switch r.Tab() {
		case workflow.TabRegistration:
			fmt.Println("\n[1] Register patient  [2] Find prescription by slip  [3] Patient records  [0] Exit")
			switch p.line("Choose") {
			case "1":
				req := api.RegisterPatientRequest{
					Name:    p.required("Full name"),
					Contact: p.required("Contact number"),
					Gender:  promptGender(p),
					DOB:     p.required("Date of birth (YYYY-MM-DD)"),
				}
				if err := r.Register(ctx, req); err != nil {
					p.fail(err)
				}
			case "2":
				if err := r.ViewPrescription(ctx, p.required("Slip number")); err != nil {
					p.fail(err)
				}
			case "3":
				if err := r.OpenPatients(ctx); err != nil {
					p.fail(err)
				}
			case "0":
				return
			}

		case workflow.TabSlip:
			slip := r.Slip()
			fmt.Printf("\nSlip issued: %s (patient #%d)\n", slip.SlipNumber, slip.PatientID)
			fmt.Println("[1] Generate slip PDF  [2] View prescription  [3] New registration  [0] Exit")
			switch p.line("Choose") {
			case "1":
				path, err := r.PrintSlip()
				if err != nil {
					p.fail(err)
				} else {
					fmt.Println("Saved", path)
				}
			case "2":
				if err := r.ViewPrescription(ctx, slip.SlipNumber); err != nil {
					p.fail(err)
				}
			case "3":
				r.NewRegistration()
			case "0":
				return
			}

		case workflow.TabReceptionView:
			renderPrescription(os.Stdout, r.Prescription(), r.Patient())
			fmt.Println("[1] Generate prescription PDF  [2] New registration  [0] Exit")
			switch p.line("Choose") {
			case "1":
				path, err := r.PrintPrescription()
				if err != nil {
					p.fail(err)
				} else {
					fmt.Println("Saved", path)
				}
			case "2":
				r.NewRegistration()
			case "0":
				return
			}

		case workflow.TabReceptionPatients:
			if runPatientDirectory(ctx, r.Patients, p) {
				return
			}
			r.NewRegistration()
		}
	}
}

func promptGender(p *prompter) models.Gender {
	for {
		switch p.required("Gender (male/female/other)") {
		case "male":
			return models.GenderMale
		case "female":
			return models.GenderFemale
		case "other":
			return models.GenderOther
		}
		fmt.Println("Gender must be male, female or other.")
	}
}

// runPatientDirectory drives the shared patient list view. Returns true when
// the operator chose to exit the program entirely.
func runPatientDirectory(ctx context.Context, d *workflow.PatientDirectory, p *prompter) bool {
	for !p.done() {
		renderPatients(os.Stdout, d.All())
		fmt.Println("[1] Search  [2] Delete patient  [3] Refresh  [4] Back  [0] Exit")
		switch p.line("Choose") {
		case "1":
			renderPatients(os.Stdout, d.Filter(p.line("Search by name, contact, or ID")))
		case "2":
			id, ok := p.number("Patient ID to delete")
			if !ok {
				continue
			}
			if !p.confirm(fmt.Sprintf("Delete patient #%d and all their prescriptions?", id)) {
				continue
			}
			if err := d.Delete(ctx, id); err != nil {
				p.fail(err)
			} else {
				fmt.Println("Patient deleted.")
			}
		case "3":
			if err := d.Load(ctx); err != nil {
				p.fail(err)
			}
		case "4":
			return false
		case "0":
			return true
		}
	}
	return true
}

func init() {
	rootCmd.AddCommand(receptionCmd)
}
