package schema

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"schema-verify/internal/dialect"
)

// The canonical schema definition is a YAML document produced by the schema
// generation module. It is loaded exactly once per verification run; the
// resulting Snapshot is immutable and shared read-only across all dialect
// runs.

type canonicalDoc struct {
	Tables []canonicalTable `yaml:"tables"`
}

type canonicalTable struct {
	Name        string            `yaml:"name"`
	Columns     []canonicalColumn `yaml:"columns"`
	PrimaryKey  []string          `yaml:"primaryKey"`
	ForeignKeys []canonicalFK     `yaml:"foreignKeys"`
	Uniques     []canonicalUnique `yaml:"uniques"`
	Indexes     []canonicalIndex  `yaml:"indexes"`
}

type canonicalColumn struct {
	Name          string `yaml:"name"`
	Type          string `yaml:"type"`
	Size          int    `yaml:"size"`
	Nullable      bool   `yaml:"nullable"`
	AutoIncrement bool   `yaml:"autoIncrement"`
	Default       string `yaml:"default"`
}

type canonicalFK struct {
	Name              string   `yaml:"name"`
	Columns           []string `yaml:"columns"`
	RefTable          string   `yaml:"refTable"`
	RefColumns        []string `yaml:"refColumns"`
	OnUpdate          string   `yaml:"onUpdate"`
	OnDelete          string   `yaml:"onDelete"`
	Deferrable        bool     `yaml:"deferrable"`
	InitiallyDeferred bool     `yaml:"initiallyDeferred"`
}

type canonicalUnique struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
}

type canonicalIndex struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
	Unique  bool     `yaml:"unique"`
}

// LoadCanonical reads a canonical schema definition file and builds the
// canonical snapshot.
func LoadCanonical(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read canonical schema: %w", err)
	}
	return parseCanonical(data)
}

func parseCanonical(data []byte) (*Snapshot, error) {
	var doc canonicalDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse canonical schema: %w", err)
	}

	snap := NewSnapshot()
	for _, t := range doc.Tables {
		if t.Name == "" {
			return nil, fmt.Errorf("canonical schema contains a table without a name")
		}
		if err := snap.AddTable(t.Name); err != nil {
			return nil, err
		}

		for _, c := range t.Columns {
			col := Column{
				Table:    t.Name,
				Name:     c.Name,
				Type:     strings.ToUpper(c.Type),
				Size:     c.Size,
				Nullable: c.Nullable,
				AutoInc:  c.AutoIncrement,
				Default:  c.Default,
			}
			if err := snap.AddColumn(col); err != nil {
				return nil, err
			}
		}

		if len(t.PrimaryKey) > 0 {
			if err := snap.AddPrimaryKey(PrimaryKey{Table: t.Name, Columns: t.PrimaryKey}); err != nil {
				return nil, err
			}
		}

		for _, fk := range t.ForeignKeys {
			if len(fk.Columns) != len(fk.RefColumns) {
				return nil, fmt.Errorf("foreign key %s.%s: column count mismatch", t.Name, fk.Name)
			}
			pairs := make([]ColumnPair, len(fk.Columns))
			for i := range fk.Columns {
				pairs[i] = ColumnPair{Foreign: fk.Columns[i], Primary: fk.RefColumns[i]}
			}
			err := snap.AddForeignKey(ForeignKey{
				Name:              fk.Name,
				Table:             t.Name,
				RefTable:          fk.RefTable,
				Columns:           pairs,
				OnUpdate:          dialect.ParseRule(fk.OnUpdate),
				OnDelete:          dialect.ParseRule(fk.OnDelete),
				Deferrable:        fk.Deferrable,
				InitiallyDeferred: fk.InitiallyDeferred,
			})
			if err != nil {
				return nil, err
			}
		}

		for _, u := range t.Uniques {
			if err := snap.AddUnique(Unique{Name: u.Name, Table: t.Name, Columns: u.Columns}); err != nil {
				return nil, err
			}
		}

		for _, idx := range t.Indexes {
			err := snap.AddIndex(Index{
				Name:    idx.Name,
				Table:   t.Name,
				Unique:  idx.Unique,
				Columns: idx.Columns,
			})
			if err != nil {
				return nil, err
			}
		}
	}

	return snap, nil
}
