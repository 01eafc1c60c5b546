package inmemdb

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/tutoria/core/listing"
)

// DB is an in-memory store of rows keyed by entity, then by id.
// It is safe for concurrent use.
type DB struct {
	mutex  sync.RWMutex
	tables map[string]map[string]listing.Row
}

func Open() *DB {
	return &DB{tables: make(map[string]map[string]listing.Row)}
}

// Insert copies rows into entity. Every row needs a string "id"; an existing id is replaced.
func (db *DB) Insert(entity string, rows ...listing.Row) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	table, ok := db.tables[entity]
	if !ok {
		table = make(map[string]listing.Row)
		db.tables[entity] = table
	}
	for _, row := range rows {
		id, _ := row["id"].(string)
		if id == "" {
			return errors.Errorf("inserting into %s: row without id", entity)
		}
		table[id] = copyRow(row)
	}
	return nil
}

// Truncate empties every table.
func (db *DB) Truncate() {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.tables = make(map[string]map[string]listing.Row)
}

// scan returns copies of the rows of entity matching where, in no particular order.
func (db *DB) scan(entity string, where listing.Where) ([]listing.Row, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	var rows []listing.Row
	for _, row := range db.tables[entity] {
		ok, err := matchAll(row, where.Predicates())
		if err != nil {
			return nil, err
		}
		if ok {
			rows = append(rows, copyRow(row))
		}
	}
	return rows, nil
}

func copyRow(row listing.Row) listing.Row {
	cp := make(listing.Row, len(row))
	for k, v := range row {
		cp[k] = v
	}
	return cp
}
