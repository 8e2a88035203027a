// Package importer loads part descriptors from a checkout of the parts
// repository and reconciles them into the catalog.
//
// Descriptors live at <root>/<system>/<device>/<part>/metadata.json; the three
// directory names form the part's natural key. Reconciliation matches on that
// key: a known part has every descriptive field overwritten in place, an
// unknown one gets a freshly minted UUID and a zeroed counter. A descriptor
// that fails to parse is logged and skipped; catalog errors abort the run.
//
// Runs are expected to be serialized through Lock so two updates never
// interleave their read-then-write reconciliation.
package importer
