// Package meta models issue metadata: the key/value document a catalog's
// conditions are evaluated against.
//
// Values form a closed set (Null, String, Int, Bool, List, Object). Floats are
// not representable; decoding a fractional number fails rather than rounding,
// so two decodes of the same document always compare equal.
//
// MarshalCanonical renders a value as RFC 8785 canonical JSON with NFC
// normalized strings. Fingerprint hashes that rendering with a domain prefix
// and is what traces and golden files use to identify an issue.
package meta
