// Package catalog builds the lookup mappings the journal derivation reads:
// treatment to revenue account, expense type to expense account, and
// account code to display name.
package catalog

import (
	"strings"

	"fjacquet/clinic-journal/internal/models"
)

// Mappings is an immutable snapshot of the three dictionaries for one
// derivation pass. The zero value resolves nothing.
type Mappings struct {
	treatments   map[string]string
	expenseTypes map[string]string
	accountNames map[string]string
}

// Stats reports how many keys each mapping holds.
type Stats struct {
	Treatments   int
	ExpenseTypes int
	AccountNames int
}

// NormalizeKey lower-cases and trims a concept name.
func NormalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Resolve builds the mappings from the dictionary rows. Rows are applied in
// order, so a repeated key keeps the value of its last row. Rows with a blank
// name (or, for the accounting map, a blank account code) are skipped.
func Resolve(treatments []models.TreatmentCatalogRow, expenseTypes []models.ExpenseCatalogRow, accountingMap []models.AccountingMapRow) Mappings {
	m := Mappings{
		treatments:   make(map[string]string, len(treatments)),
		expenseTypes: make(map[string]string, len(expenseTypes)),
		accountNames: make(map[string]string, len(accountingMap)),
	}

	for _, row := range treatments {
		if key := NormalizeKey(row.Name); key != "" {
			m.treatments[key] = strings.TrimSpace(row.AccountCode)
		}
	}
	for _, row := range expenseTypes {
		if key := NormalizeKey(row.Name); key != "" {
			m.expenseTypes[key] = strings.TrimSpace(row.AccountCode)
		}
	}
	for _, row := range accountingMap {
		if code := strings.TrimSpace(row.AccountCode); code != "" {
			m.accountNames[code] = strings.TrimSpace(row.ConceptName)
		}
	}

	return m
}

// FromSnapshot resolves the dictionaries carried by a snapshot.
func FromSnapshot(s *models.Snapshot) Mappings {
	return Resolve(s.Treatments, s.ExpenseTypes, s.AccountingMap)
}

// TreatmentAccount returns the revenue account of a treatment. A key mapped
// to a blank code counts as unmapped.
func (m Mappings) TreatmentAccount(treatment string) (string, bool) {
	return lookup(m.treatments, NormalizeKey(treatment))
}

// ExpenseAccount returns the expense account of an expense-type label. A key
// mapped to a blank code counts as unmapped.
func (m Mappings) ExpenseAccount(label string) (string, bool) {
	return lookup(m.expenseTypes, NormalizeKey(label))
}

// DisplayName returns the accounting-map name of an account code.
func (m Mappings) DisplayName(accountCode string) (string, bool) {
	return lookup(m.accountNames, strings.TrimSpace(accountCode))
}

// Stats returns the number of keys per mapping.
func (m Mappings) Stats() Stats {
	return Stats{
		Treatments:   len(m.treatments),
		ExpenseTypes: len(m.expenseTypes),
		AccountNames: len(m.accountNames),
	}
}

func lookup(table map[string]string, key string) (string, bool) {
	if key == "" {
		return "", false
	}
	v, ok := table[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
