// Package condition defines the predicate capability attached to issue states
// and the micro-language used to write a single condition as text.
//
// A condition atom names one piece of issue metadata, optionally negated and
// optionally compared against a literal:
//
//	acked          metadata "acked" is present
//	!closed        metadata "closed" is absent
//	priority>=3    compare with GreaterThanOrEqual against "3"
//	labels!~bug    negated Contains against "bug"
//
// The reserved characters are '!', '=', '<', '>' and '~'. ParseAtom only
// tokenizes; the literal is returned as text and its meaning is left to a
// Factory supplied by the caller.
package condition
