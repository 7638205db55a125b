// Package identify coordinates the identification and submission workflows.
//
// An Identifier owns the pieces one workflow run needs: the fpcalc
// fingerprinter, the AcoustID client, the process-wide submission registry,
// and an optional history store. Identify produces every plausible candidate
// for a file; Submit pushes a fingerprint back to the service and folds all
// failures into a boolean result so a failed submission never aborts the
// caller's workflow.
package identify
