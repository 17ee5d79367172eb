package schema

import (
	"fmt"

	"schema-verify/internal/dialect"
)

// ObjectKey identifies a column, constraint or index within one snapshot.
type ObjectKey struct {
	Table string
	Name  string
}

func (k ObjectKey) String() string {
	return k.Table + "." + k.Name
}

type Column struct {
	Table    string
	Name     string
	Type     string // logical type name, uppercase
	Size     int    // declared or reported size, 0 when absent
	Nullable bool
	AutoInc  bool
	// Default is the raw default: a literal, a symbolic null marker, or an
	// expression string.
	Default string
}

func (c Column) Key() ObjectKey {
	return ObjectKey{Table: c.Table, Name: c.Name}
}

// PrimaryKey column order is significant for composite keys.
type PrimaryKey struct {
	Table   string
	Columns []string
}

// ColumnPair links a foreign column to the primary column it references.
type ColumnPair struct {
	Foreign string
	Primary string
}

type ForeignKey struct {
	Name              string
	Table             string
	RefTable          string
	Columns           []ColumnPair
	OnUpdate          dialect.Rule
	OnDelete          dialect.Rule
	Deferrable        bool
	InitiallyDeferred bool
}

func (f ForeignKey) Key() ObjectKey {
	return ObjectKey{Table: f.Table, Name: f.Name}
}

type Unique struct {
	Name    string
	Table   string
	Columns []string
}

func (u Unique) Key() ObjectKey {
	return ObjectKey{Table: u.Table, Name: u.Name}
}

type Index struct {
	Name    string
	Table   string
	Unique  bool
	Columns []string
	// Generated marks indexes the engine created to back another object
	// (primary key, unique constraint); they are excluded from comparison
	// to avoid double-checking.
	Generated bool
}

func (i Index) Key() ObjectKey {
	return ObjectKey{Table: i.Table, Name: i.Name}
}

// Snapshot is an inert structured capture of one schema instance. The slices
// preserve producer order (the comparator reports in that order); the maps
// back the keyed lookups and enforce key uniqueness.
type Snapshot struct {
	Tables      []string
	Columns     []Column
	PrimaryKeys []PrimaryKey
	ForeignKeys []ForeignKey
	Uniques     []Unique
	Indexes     []Index

	// TableDDL retains per-table creation text for recovery-capable
	// dialects; empty for everything else.
	TableDDL map[string]string

	tables  map[string]bool
	columns map[ObjectKey]int
	pks     map[string]int
	fks     map[ObjectKey]int
	uniques map[ObjectKey]int
	indexes map[ObjectKey]int
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		TableDDL: make(map[string]string),
		tables:   make(map[string]bool),
		columns:  make(map[ObjectKey]int),
		pks:      make(map[string]int),
		fks:      make(map[ObjectKey]int),
		uniques:  make(map[ObjectKey]int),
		indexes:  make(map[ObjectKey]int),
	}
}

func (s *Snapshot) AddTable(name string) error {
	if s.tables[name] {
		return fmt.Errorf("duplicate table %s", name)
	}
	s.tables[name] = true
	s.Tables = append(s.Tables, name)
	return nil
}

func (s *Snapshot) HasTable(name string) bool {
	return s.tables[name]
}

func (s *Snapshot) AddColumn(c Column) error {
	if _, dup := s.columns[c.Key()]; dup {
		return fmt.Errorf("duplicate column %s", c.Key())
	}
	s.columns[c.Key()] = len(s.Columns)
	s.Columns = append(s.Columns, c)
	return nil
}

func (s *Snapshot) AddPrimaryKey(pk PrimaryKey) error {
	if _, dup := s.pks[pk.Table]; dup {
		return fmt.Errorf("duplicate primary key for table %s", pk.Table)
	}
	s.pks[pk.Table] = len(s.PrimaryKeys)
	s.PrimaryKeys = append(s.PrimaryKeys, pk)
	return nil
}

func (s *Snapshot) AddForeignKey(fk ForeignKey) error {
	if _, dup := s.fks[fk.Key()]; dup {
		return fmt.Errorf("duplicate foreign key %s", fk.Key())
	}
	s.fks[fk.Key()] = len(s.ForeignKeys)
	s.ForeignKeys = append(s.ForeignKeys, fk)
	return nil
}

func (s *Snapshot) AddUnique(u Unique) error {
	if _, dup := s.uniques[u.Key()]; dup {
		return fmt.Errorf("duplicate unique constraint %s", u.Key())
	}
	s.uniques[u.Key()] = len(s.Uniques)
	s.Uniques = append(s.Uniques, u)
	return nil
}

func (s *Snapshot) AddIndex(idx Index) error {
	if _, dup := s.indexes[idx.Key()]; dup {
		return fmt.Errorf("duplicate index %s", idx.Key())
	}
	s.indexes[idx.Key()] = len(s.Indexes)
	s.Indexes = append(s.Indexes, idx)
	return nil
}

func (s *Snapshot) Column(key ObjectKey) (Column, bool) {
	i, ok := s.columns[key]
	if !ok {
		return Column{}, false
	}
	return s.Columns[i], true
}

func (s *Snapshot) PrimaryKey(table string) (PrimaryKey, bool) {
	i, ok := s.pks[table]
	if !ok {
		return PrimaryKey{}, false
	}
	return s.PrimaryKeys[i], true
}

func (s *Snapshot) ForeignKey(key ObjectKey) (ForeignKey, bool) {
	i, ok := s.fks[key]
	if !ok {
		return ForeignKey{}, false
	}
	return s.ForeignKeys[i], true
}

func (s *Snapshot) Unique(key ObjectKey) (Unique, bool) {
	i, ok := s.uniques[key]
	if !ok {
		return Unique{}, false
	}
	return s.Uniques[i], true
}

func (s *Snapshot) Index(key ObjectKey) (Index, bool) {
	i, ok := s.indexes[key]
	if !ok {
		return Index{}, false
	}
	return s.Indexes[i], true
}
