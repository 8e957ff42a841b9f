package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hospos-dev/hospos/internal/models"
	"github.com/hospos-dev/hospos/internal/workflow"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Doctor portal: lookup, prescriptions, patient records",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireRole(models.RoleDoctor)
		if err != nil {
			return err
		}
		fmt.Printf("Doctor portal - welcome back, Dr. %s\n", user.Name)

		d := workflow.NewDoctor(client, docs, logger)
		p := newPrompter(os.Stdin, os.Stdout)
		if err := d.OpenPatients(cmd.Context()); err != nil {
			p.fail(err)
		}
		runDoctor(cmd.Context(), d, p)
		return nil
	},
}

func runDoctor(ctx context.Context, d *workflow.Doctor, p *prompter) {
	for !p.done() {
		switch d.Tab() {
		case workflow.TabDoctorPatients:
			if runPatientDirectory(ctx, d.Patients, p) {
				return
			}
			if err := d.OpenLookup(); err != nil {
				p.fail(err)
			}

		case workflow.TabDoctorPrescriptions:
			if runPrescriptionDirectory(ctx, d, p) {
				return
			}

		case workflow.TabDoctorLookup:
			fmt.Println("\n[1] Find patient by slip  [2] Patient records  [3] Prescriptions  [0] Exit")
			switch p.line("Choose") {
			case "1":
				if err := d.Lookup(ctx, p.required("Slip number")); err != nil {
					p.fail(err)
				}
			case "2":
				if err := d.OpenPatients(ctx); err != nil {
					p.fail(err)
				}
			case "3":
				if err := d.OpenPrescriptions(ctx); err != nil {
					p.fail(err)
				}
			case "0":
				return
			}

		case workflow.TabDoctorAuthor:
			runDraft(ctx, d, p)

		case workflow.TabDoctorView:
			renderPrescription(os.Stdout, d.Prescription(), d.Patient())
			fmt.Println("[1] Generate PDF  [2] Edit prescription  [3] Back to search  [0] Exit")
			switch p.line("Choose") {
			case "1":
				path, err := d.Print()
				if err != nil {
					p.fail(err)
				} else {
					fmt.Println("Saved", path)
				}
			case "2":
				if err := d.EditAgain(); err != nil {
					p.fail(err)
				}
			case "3":
				if err := d.OpenLookup(); err != nil {
					p.fail(err)
				}
			case "0":
				return
			}
		}
	}
}

// runDraft edits the in-progress prescription until it is submitted or
// abandoned.
func runDraft(ctx context.Context, d *workflow.Doctor, p *prompter) {
	patient := d.Patient()
	fmt.Printf("\nWriting prescription for %s (slip %s)\n", patient.Name, patient.SlipNumber)

	for d.Tab() == workflow.TabDoctorAuthor && !p.done() {
		draft := d.Draft()
		for i, med := range draft.Medicines {
			fmt.Printf("%d. %q  %s  %s  %s\n", i+1, med.Name,
				orDash(med.Dosage), orDash(med.Frequency), orDash(med.Duration))
		}
		fmt.Println("[1] Edit row  [2] Add row  [3] Remove row  [4] Notes  [5] Save prescription  [6] Cancel")
		switch p.line("Choose") {
		case "1":
			n, ok := p.number("Row")
			if !ok {
				continue
			}
			if n < 1 || n > len(draft.Medicines) {
				fmt.Println("No such row.")
				continue
			}
			draft.Medicines[n-1] = models.Medicine{
				Name:      p.line("Medicine name"),
				Dosage:    p.line("Dosage (e.g., 500mg)"),
				Frequency: p.line("Frequency (e.g., 2 times daily)"),
				Duration:  p.line("Duration (e.g., 7 days)"),
			}
		case "2":
			draft.AddRow()
		case "3":
			n, ok := p.number("Row to remove")
			if !ok {
				continue
			}
			if err := draft.RemoveRow(n - 1); err != nil {
				p.fail(err)
			}
		case "4":
			draft.Notes = p.line("Diagnosis & instructions")
		case "5":
			if err := d.Submit(ctx); err != nil {
				p.fail(err)
			}
		case "6":
			if err := d.OpenLookup(); err != nil {
				p.fail(err)
			}
		}
	}
}

// runPrescriptionDirectory drives the prescription list. Returns true when
// the operator chose to exit the program entirely.
func runPrescriptionDirectory(ctx context.Context, d *workflow.Doctor, p *prompter) bool {
	list := d.Prescriptions
	for !p.done() {
		renderPrescriptionRows(os.Stdout, list.All())
		fmt.Println("[1] Search  [2] View  [3] Delete  [4] Refresh  [5] Back  [0] Exit")
		switch p.line("Choose") {
		case "1":
			renderPrescriptionRows(os.Stdout, list.Filter(p.line("Search by patient, slip, or doctor")))
		case "2":
			id, ok := p.number("Prescription ID")
			if !ok {
				continue
			}
			for _, pres := range list.All() {
				if pres.ID == id {
					if err := d.ViewFromList(ctx, pres); err != nil {
						p.fail(err)
					}
					return false
				}
			}
			fmt.Println("No such prescription.")
		case "3":
			id, ok := p.number("Prescription ID to delete")
			if !ok {
				continue
			}
			if !p.confirm(fmt.Sprintf("Delete prescription #%d?", id)) {
				continue
			}
			if err := list.Delete(ctx, id); err != nil {
				p.fail(err)
			} else {
				fmt.Println("Prescription deleted.")
			}
		case "4":
			if err := list.Load(ctx); err != nil {
				p.fail(err)
			}
		case "5":
			if err := d.OpenLookup(); err != nil {
				p.fail(err)
			}
			return false
		case "0":
			return true
		}
	}
	return true
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
