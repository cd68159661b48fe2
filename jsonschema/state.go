package jsonschema

import (
	katachi "github.com/kadomatsu/katachi"
	"github.com/kadomatsu/katachi/dsl"
)

// kind enumerates the runtime value categories tracked during admissibility
// resolution. Tuple supersedes array when a positional items list is seen;
// file supersedes string when the binary-content marker is seen.
type kind int

const (
	kindString kind = iota
	kindNumber
	kindBool
	kindNull
	kindArray
	kindTuple
	kindObject
	kindFile
	kindCount
)

// entryMode is the per-kind admissibility slot. Pending marks a kind whose
// concrete check (deep equality against a composite const/enum member) is
// deferred to the refinement phase; assembly materializes a permissive base
// for it.
type entryMode int

const (
	modeUnset entryMode = iota
	modeDisabled
	modePending
	modeSet
)

type entry struct {
	mode      entryMode
	validator katachi.Validator
}

// admissibility records, per kind, whether the constraints seen so far allow
// it and which base validator applies. One instance exists per schema-node
// conversion; it is never shared across recursive calls. Disabling is a
// one-way latch: later handlers cannot re-enable a disabled kind.
type admissibility struct {
	entries [kindCount]entry
}

func newAdmissibility() *admissibility { return &admissibility{} }

func (s *admissibility) mode(k kind) entryMode { return s.entries[k].mode }

func (s *admissibility) validator(k kind) katachi.Validator { return s.entries[k].validator }

func (s *admissibility) disable(k kind) {
	s.entries[k] = entry{mode: modeDisabled}
}

func (s *admissibility) disableAll() {
	for k := kind(0); k < kindCount; k++ {
		s.disable(k)
	}
}

// disableExcept disables every kind but keep.
func (s *admissibility) disableExcept(keep kind) {
	for k := kind(0); k < kindCount; k++ {
		if k != keep {
			s.disable(k)
		}
	}
}

// set installs or replaces the kind's base validator unless the kind was
// disabled earlier.
func (s *admissibility) set(k kind, v katachi.Validator) {
	if s.entries[k].mode == modeDisabled {
		return
	}
	s.entries[k] = entry{mode: modeSet, validator: v}
}

// pend marks the kind for refinement-phase deep equality unless disabled.
func (s *admissibility) pend(k kind) {
	if s.entries[k].mode == modeDisabled {
		return
	}
	s.entries[k] = entry{mode: modePending}
}

// admitted returns the validators of every admitted kind in fixed kind order.
// Pending kinds materialize a permissive base of their kind; the refinement
// phase narrows them to the actual literal set.
func (s *admissibility) admitted() []katachi.Validator {
	var out []katachi.Validator
	for k := kind(0); k < kindCount; k++ {
		switch s.entries[k].mode {
		case modeSet:
			out = append(out, s.entries[k].validator)
		case modePending:
			out = append(out, pendingBase(k))
		}
	}
	return out
}

// pendingBase is the loosest validator of the given kind, used for kinds
// whose exact check arrives in the refinement phase.
func pendingBase(k kind) katachi.Validator {
	switch k {
	case kindArray:
		return dsl.Array(dsl.Any())
	case kindObject:
		return dsl.Object().UnknownPassthrough().Build()
	default:
		// Scalar kinds never stay pending; their literal check is immediate.
		return dsl.Any()
	}
}

// kindOfValue classifies a JSON-shaped value into a kind, reporting whether
// the value is composite (array/object).
func kindOfValue(v any) (kind, bool, bool) {
	if _, ok := katachi.AsNumber(v); ok {
		return kindNumber, false, true
	}
	switch v.(type) {
	case nil:
		return kindNull, false, true
	case bool:
		return kindBool, false, true
	case string:
		return kindString, false, true
	case []any:
		return kindArray, true, true
	case map[string]any:
		return kindObject, true, true
	default:
		return 0, false, false
	}
}
