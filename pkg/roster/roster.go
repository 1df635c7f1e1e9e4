// Package roster loads the HR employee roster, the source of truth
// for cost-center assignment. The export comes from the German HR
// system, hence the German column names.
package roster

import (
	"strings"

	"github.com/costops/fleetbook/internal/xlsx"
)

// Expected column names in the HR export.
const (
	ColFirstName      = "Vorname"
	ColLastName       = "Nachname"
	ColCostCenter     = "Kostenstelle"
	ColCostCenterDesc = "Bezeichnung d.KST"
)

// Employee is one HR roster row.
type Employee struct {
	FirstName      string
	LastName       string
	CostCenter     string
	CostCenterDesc string
}

// FullName returns "First Last" with blanks collapsed. Either part may
// be empty in hand-maintained exports.
func (e Employee) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(e.FirstName) + " " + strings.TrimSpace(e.LastName))
}

// Roster is the loaded HR snapshot for one run.
type Roster struct {
	File      string
	Employees []Employee

	byName map[string]Employee
}

// Load reads the HR roster from an .xlsx export. Vorname, Nachname and
// Kostenstelle are required; the cost-center description is optional.
// Rows without any name are dropped since they cannot be matched.
func Load(path string) (*Roster, error) {
	table, err := xlsx.ReadFile(path)
	if err != nil {
		return nil, err
	}

	bind, err := table.Bind("HR",
		[]string{ColFirstName, ColLastName, ColCostCenter},
		[]string{ColCostCenterDesc},
	)
	if err != nil {
		return nil, err
	}

	r := &Roster{
		File:   path,
		byName: make(map[string]Employee),
	}
	for _, row := range table.Rows {
		e := Employee{
			FirstName:      bind.Value(row, ColFirstName),
			LastName:       bind.Value(row, ColLastName),
			CostCenter:     bind.Value(row, ColCostCenter),
			CostCenterDesc: bind.Value(row, ColCostCenterDesc),
		}
		name := e.FullName()
		if name == "" {
			continue
		}
		r.Employees = append(r.Employees, e)
		// First occurrence wins on duplicate names.
		if _, exists := r.byName[name]; !exists {
			r.byName[name] = e
		}
	}

	return r, nil
}

// Names returns the unique full names in roster order.
func (r *Roster) Names() []string {
	seen := make(map[string]bool, len(r.Employees))
	names := make([]string, 0, len(r.Employees))
	for _, e := range r.Employees {
		name := e.FullName()
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// ByName returns the employee for an exact full name.
func (r *Roster) ByName(name string) (Employee, bool) {
	e, ok := r.byName[name]
	return e, ok
}

// Len returns the number of usable roster rows.
func (r *Roster) Len() int {
	return len(r.Employees)
}
