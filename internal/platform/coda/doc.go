// Package coda implements the record store client over the Coda.io
// REST API. It is the only component that knows the table's column
// names; everything it hands out is a domain.StudyError.
//
// The error contract is deliberately asymmetric: FetchPending and
// FetchByDiscipline propagate transport failures so batch runs can
// abort early, while FetchByID and MarkDone swallow failures and
// report absence/false, because their callers only need to know
// whether the single-row operation took effect.
package coda
