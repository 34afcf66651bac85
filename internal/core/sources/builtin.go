// Package sources provides the source definitions a run processes.
// Default returns the built-in set; Load reads a YAML definition file instead.
package sources

import "github.com/JonMunkholm/cleanload/internal/core"

// Default returns the built-in source set in processing order.
func Default() *core.Registry {
	r := core.NewRegistry()
	registerClinicalTrials(r)
	registerPubmed(r)
	registerDrugs(r)
	return r
}

func registerClinicalTrials(r *core.Registry) {
	r.MustRegister(core.Source{
		Name: "clinical_trials",
		File: "clinical_trials.csv",
		Fields: []core.FieldSpec{
			{Name: "id", Type: core.FieldText},
			{Name: "scientific_title", Type: core.FieldText},
			{Name: "journal", Type: core.FieldText},
		},
		DateColumns: []string{"date"},
	})
}

// Both pubmed exports feed the same output file.
func registerPubmed(r *core.Registry) {
	r.MustRegister(core.Source{
		Name:   "pubmed_csv",
		File:   "pubmed.csv",
		Output: "pubmed.csv",
		Fields: []core.FieldSpec{
			{Name: "id", Type: core.FieldInt},
			{Name: "title", Type: core.FieldText},
			{Name: "journal", Type: core.FieldText},
		},
		DateColumns: []string{"date"},
		IntColumns:  []string{"id"},
	})

	r.MustRegister(core.Source{
		Name:   "pubmed_json",
		File:   "pubmed.json",
		Output: "pubmed.csv",
		Fields: []core.FieldSpec{
			{Name: "id"},
			{Name: "title"},
			{Name: "date"},
			{Name: "journal"},
		},
		ConvertDates: []string{"date"},
		IntColumns:   []string{"id"},
	})
}

// Drugs are a pre-validated reference list and skip every hygiene rule.
func registerDrugs(r *core.Registry) {
	r.MustRegister(core.Source{
		Name: "drugs",
		File: "drugs.csv",
		Fields: []core.FieldSpec{
			{Name: "atccode", Type: core.FieldText},
			{Name: "drug", Type: core.FieldText},
		},
		PassThrough: true,
	})
}
