package signboard

import (
	"github.com/bodgit/signboard/config"
	"github.com/bodgit/signboard/mode"
	"github.com/bodgit/signboard/store"
	"github.com/bodgit/signboard/table"
)

// Table names used in the database.
const (
	FullTable = "full"
	TypeTable = "type"
	DestTable = "dest"
	NextTable = "next"
)

func tableFiles(cfg *config.Config) map[string]string {
	return map[string]string{
		FullTable: cfg.Assets.Full,
		TypeTable: cfg.Assets.Type,
		DestTable: cfg.Assets.Dest,
		NextTable: cfg.Assets.Next,
	}
}

// CSVTables reads the four CSV tables named in cfg from st.
func CSVTables(cfg *config.Config, st store.Store) (mode.Tables, error) {
	tables := make(map[string]table.Reader)
	for name, path := range tableFiles(cfg) {
		t, err := table.OpenCSV(st, path)
		if err != nil {
			return mode.Tables{}, err
		}
		tables[name] = t
	}

	return mode.Tables{
		Full: tables[FullTable],
		Type: tables[TypeTable],
		Dest: tables[DestTable],
		Next: tables[NextTable],
	}, nil
}

// DBTables returns the four tables held in db.
func DBTables(db *table.DB) mode.Tables {
	return mode.Tables{
		Full: db.Table(FullTable),
		Type: db.Table(TypeTable),
		Dest: db.Table(DestTable),
		Next: db.Table(NextTable),
	}
}

// Import copies the four CSV tables named in cfg from st into db.
func Import(db *table.DB, cfg *config.Config, st store.Store) error {
	for name, path := range tableFiles(cfg) {
		if err := importTable(db, st, name, path); err != nil {
			return err
		}
	}
	return nil
}

func importTable(db *table.DB, st store.Store, name, path string) error {
	f, err := st.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return db.ImportCSV(name, f)
}
