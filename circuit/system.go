// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package circuit

// ConstraintSystem tracks the columns of a circuit and which of them take
// part in the permutation (copy constraint) argument.
type ConstraintSystem struct {
	columns  []Column
	equality map[Column]struct{}
	tables   []LookupTable
}

func NewConstraintSystem() *ConstraintSystem {
	return &ConstraintSystem{
		equality: make(map[Column]struct{}),
	}
}

func (cs *ConstraintSystem) newColumn(name string, typ ColumnType) Column {
	col := Column{
		Index: len(cs.columns),
		Type:  typ,
		Name:  name,
	}
	cs.columns = append(cs.columns, col)
	return col
}

func (cs *ConstraintSystem) AdviceColumn(name string) Column {
	return cs.newColumn(name, Advice)
}

func (cs *ConstraintSystem) FixedColumn(name string) Column {
	return cs.newColumn(name, Fixed)
}

func (cs *ConstraintSystem) InstanceColumn(name string) Column {
	return cs.newColumn(name, Instance)
}

// EnableEquality lets col take part in copy constraints.
func (cs *ConstraintSystem) EnableEquality(col Column) {
	cs.equality[col] = struct{}{}
}

func (cs *ConstraintSystem) EqualityEnabled(col Column) bool {
	_, ok := cs.equality[col]
	return ok
}

func (cs *ConstraintSystem) Columns() []Column {
	return append([]Column(nil), cs.columns...)
}

// LookupTable records a named group of columns so sibling components can
// refer to it.
func (cs *ConstraintSystem) LookupTable(name string, columns ...Column) LookupTable {
	table := LookupTable{
		Name:    name,
		Columns: append([]Column(nil), columns...),
	}
	cs.tables = append(cs.tables, table)
	return table
}

func (cs *ConstraintSystem) LookupTables() []LookupTable {
	return append([]LookupTable(nil), cs.tables...)
}
