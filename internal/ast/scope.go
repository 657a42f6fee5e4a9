package ast

import "github.com/ejmvar/mirah/internal/types"

// Scope identifies a lexical region: a method body or a closure body.
// The front end marks a scope with the set of local variables that some
// nested closure reads or writes; those variables live in the scope's
// capture container instead of plain locals.
type Scope struct {
	Parent   *Scope
	binding  *types.Type
	captured map[string]*types.Type
}

// NewScope creates a scope nested in parent (parent may be nil).
func NewScope(parent *Scope) *Scope {
	return &Scope{Parent: parent, captured: make(map[string]*types.Type)}
}

// Capture marks name as captured by a nested closure and assigns the
// scope a capture container of the given type on first use.
func (s *Scope) Capture(name string, varType *types.Type, container *types.Type) {
	s.captured[name] = varType
	if s.binding == nil {
		s.binding = container
	}
}

// HasBinding reports whether this scope owns a capture container.
func (s *Scope) HasBinding() bool {
	return s.binding != nil
}

// BindingType returns the capture container type, or nil.
func (s *Scope) BindingType() *types.Type {
	return s.binding
}

// Captured reports whether name is routed through a capture container,
// searching this scope and its ancestors.
func (s *Scope) Captured(name string) bool {
	_, ok := s.CapturedType(name)
	return ok
}

// CapturedType returns the declared type of a captured variable.
func (s *Scope) CapturedType(name string) (*types.Type, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if t, ok := sc.captured[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// OwnerOf returns the scope whose capture container holds name,
// searching this scope and its ancestors.
func (s *Scope) OwnerOf(name string) *Scope {
	for sc := s; sc != nil; sc = sc.Parent {
		if _, ok := sc.captured[name]; ok {
			return sc
		}
	}
	return nil
}

// NearestBinding returns the closest scope (this one included) that
// owns a capture container, or nil.
func (s *Scope) NearestBinding() *Scope {
	for sc := s; sc != nil; sc = sc.Parent {
		if sc.HasBinding() {
			return sc
		}
	}
	return nil
}
