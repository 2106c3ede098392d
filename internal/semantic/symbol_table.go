package semantic

import "sort"

// Symbol is an entry in the symbol table: a declared variable or function.
// Immutable once declared (§3).
type Symbol struct {
	Name       string
	DataType   string
	ScopeLevel int
	IsFunction bool
}

// SymbolTable is a scope-nested symbol table implemented as a stack of
// per-scope maps (the alternative sanctioned by §9 Design Notes over the
// source's single flat map keyed by name_scope): each entry in scopes is
// the set of symbols declared directly in that scope, and lookup walks the
// stack from innermost to outermost. This gives O(depth) lookup and lets
// exitScope simply pop, while remaining observably equivalent to the flat
// model for every invariant in §8.
type SymbolTable struct {
	scopes []map[string]*Symbol
}

// NewSymbolTable returns a table with only the global scope (level 0) open.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		scopes: []map[string]*Symbol{make(map[string]*Symbol)},
	}
}

// currentLevel is the scope level of the top of the stack.
func (st *SymbolTable) currentLevel() int {
	return len(st.scopes) - 1
}

// EnterScope pushes a new, empty scope one level deeper than the current one.
func (st *SymbolTable) EnterScope() {
	st.scopes = append(st.scopes, make(map[string]*Symbol))
}

// ExitScope pops the current scope, discarding every symbol declared in it.
func (st *SymbolTable) ExitScope() {
	if len(st.scopes) > 1 {
		st.scopes = st.scopes[:len(st.scopes)-1]
	}
}

// Declare inserts a new symbol into the current scope. It reports false
// without modifying the table if a symbol with the same name already
// exists at the current scope level.
func (st *SymbolTable) Declare(name, dataType string, isFunction bool) bool {
	current := st.scopes[st.currentLevel()]
	if _, exists := current[name]; exists {
		return false
	}
	current[name] = &Symbol{
		Name:       name,
		DataType:   dataType,
		ScopeLevel: st.currentLevel(),
		IsFunction: isFunction,
	}
	return true
}

// Lookup returns the innermost (highest-scope) symbol visible for name, or
// nil if none is declared in any enclosing scope.
func (st *SymbolTable) Lookup(name string) *Symbol {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if sym, ok := st.scopes[i][name]; ok {
			return sym
		}
	}
	return nil
}

// All returns every symbol still visible in the table, outermost scope
// first, ordered by name within a scope. Used by the CLI's symbol table
// dump; since nested scopes are popped on ExitScope, this is normally just
// the global scope by the time a full Analyze has returned.
func (st *SymbolTable) All() []*Symbol {
	var out []*Symbol
	for _, scope := range st.scopes {
		names := make([]string, 0, len(scope))
		for name := range scope {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			out = append(out, scope[name])
		}
	}
	return out
}
