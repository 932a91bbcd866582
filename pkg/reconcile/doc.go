// Package reconcile validates, narrows and deduplicates a roster table.
//
// The three steps are pure functions of their input table and the column
// binding resolved for it:
//
//	exceptions := reconcile.NewClassifier(s.Status, s.Cycle).Classify(tbl, b)
//	filtered := reconcile.Filter(tbl, b, reconcile.Selection{Statuses: []string{"Completed"}})
//	unique := reconcile.Dedupe(filtered, b)
//
// None of them mutate the table they read.
package reconcile
