package dialect

import "fmt"

// Type mapping is an ordered sequence of rule variants evaluated in order,
// first match wins. Every dialect's rule list ends with identityRule, so a
// lookup miss always means "compare the canonical value unchanged".
type typeRule interface {
	apply(t ColumnType) (ColumnType, bool)
}

// exactRule maps one exact (name, size) pair to another.
type exactRule struct {
	from ColumnType
	to   ColumnType
}

func (r exactRule) apply(t ColumnType) (ColumnType, bool) {
	if t != r.from {
		return ColumnType{}, false
	}
	return r.to, true
}

// renameRule swaps the type name and keeps the declared size.
type renameRule struct {
	from string
	to   string
}

func (r renameRule) apply(t ColumnType) (ColumnType, bool) {
	if t.Name != r.from {
		return ColumnType{}, false
	}
	return ColumnType{Name: r.to, Size: t.Size}, true
}

// varcharRule is parametric: the engine ignores the declared length at
// storage time but still reports it embedded in the type name, together
// with a fixed oversized sentinel as the size. The parameter space is
// unbounded, so this cannot be a static table entry.
type varcharRule struct {
	reportedSize int
}

func (r varcharRule) apply(t ColumnType) (ColumnType, bool) {
	if t.Name != "VARCHAR" || t.Size <= 0 {
		return ColumnType{}, false
	}
	return ColumnType{Name: fmt.Sprintf("VARCHAR(%d)", t.Size), Size: r.reportedSize}, true
}

// identityRule terminates every rule list: no transformation expected.
type identityRule struct{}

func (identityRule) apply(t ColumnType) (ColumnType, bool) {
	return t, true
}

func applyTypeRules(rules []typeRule, t ColumnType) ColumnType {
	for _, r := range rules {
		if mapped, ok := r.apply(t); ok {
			return mapped
		}
	}
	return t
}

// defaultKey addresses the per-dialect default-value table: the lookup is
// keyed by the already-mapped type name plus the canonical default literal.
type defaultKey struct {
	typeName  string
	canonical string
}

func lookupDefault(table map[defaultKey]string, mapped ColumnType, canonical string) string {
	if v, ok := table[defaultKey{typeName: mapped.Name, canonical: canonical}]; ok {
		return v
	}
	return canonical
}

// inSet reports membership in a dialect's recognized null-default spellings.
func inSet(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
