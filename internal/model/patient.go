package model

// Well-known patient table columns.
const (
	ColPatientID   = "patient_id"
	ColPatientName = "patient_name"
)

// Patient is one row of the patient panel. Attrs holds every non-empty cell
// keyed by column name, including patient_id and patient_name.
type Patient struct {
	ID    string
	Name  string
	Attrs map[string]Value
}

// Get returns the attribute for field. Empty cells and unknown columns both
// report false.
func (p Patient) Get(field string) (Value, bool) {
	v, ok := p.Attrs[field]
	if !ok || v.IsNull() {
		return Value{}, false
	}
	return v, true
}

// Panel is the read-only patient table for a run.
type Panel struct {
	Patients []Patient
	// Columns is the table header in file order.
	Columns []string

	byID map[string][]int
}

// NewPanel indexes patients by ID. Duplicate IDs are kept so lookups can
// report them as ambiguous.
func NewPanel(columns []string, patients []Patient) *Panel {
	p := &Panel{
		Patients: patients,
		Columns:  columns,
		byID:     make(map[string][]int, len(patients)),
	}
	for i, pt := range patients {
		p.byID[pt.ID] = append(p.byID[pt.ID], i)
	}
	return p
}

// Lookup returns every patient whose ID equals id exactly.
func (p *Panel) Lookup(id string) []Patient {
	idx := p.byID[id]
	out := make([]Patient, 0, len(idx))
	for _, i := range idx {
		out = append(out, p.Patients[i])
	}
	return out
}

// HasColumn reports whether the panel table has the named column.
func (p *Panel) HasColumn(name string) bool {
	for _, c := range p.Columns {
		if c == name {
			return true
		}
	}
	return false
}
