package store

import (
	"fmt"

	"fjacquet/clinic-journal/internal/fileutils"
	"fjacquet/clinic-journal/internal/logging"
	"fjacquet/clinic-journal/internal/models"
	"gopkg.in/yaml.v3"
)

// WriteSnapshot saves a fetched snapshot and its opening balances as table
// files readable by FileSource. Existing table files in the directory are replaced.
func (s *FileSource) WriteSnapshot(snapshot *models.Snapshot, openings []models.OpeningBalanceRow) error {
	if err := fileutils.EnsureDirectoryExists(s.dir); err != nil {
		return fmt.Errorf("error creating snapshot directory %s: %w", s.dir, err)
	}

	tables := []struct {
		name string
		rows interface{}
		n    int
	}{
		{TableTreatmentCatalog, snapshot.Treatments, len(snapshot.Treatments)},
		{TableExpenseCatalog, snapshot.ExpenseTypes, len(snapshot.ExpenseTypes)},
		{TableAccountingMap, snapshot.AccountingMap, len(snapshot.AccountingMap)},
		{TableIncomes, snapshot.Incomes, len(snapshot.Incomes)},
		{TableExpenses, snapshot.Expenses, len(snapshot.Expenses)},
		{TableOpeningBalances, openings, len(openings)},
	}

	for _, table := range tables {
		if err := s.writeTable(table.name, table.rows); err != nil {
			return err
		}
		s.logger.Debug("Table written",
			logging.F(logging.FieldTable, table.name),
			logging.F(logging.FieldCount, table.n))
	}
	return nil
}

func (s *FileSource) writeTable(table string, rows interface{}) (err error) {
	path := s.TablePath(table)
	file, err := fileutils.CreateFile(path)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing %s: %w", path, cerr)
		}
	}()

	enc := yaml.NewEncoder(file)
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("error marshaling %s: %w", table, err)
	}
	return enc.Close()
}
