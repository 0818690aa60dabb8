// Package errors defines the error taxonomy of the report tools.
//
// Errors fall into three groups. Per-input errors (ErrTypeInput) affect one
// school's export; the merge logs them and continues. Structural errors
// (ErrTypeNoData, ErrTypeStorage, ErrTypeConfig, ErrTypeValidation) end the
// run with exit code 1 before any output of the failing step is written.
// Data-level ambiguity (an unreadable percentage, a class without grade
// digit) is never an error; the affected value falls back or the row is
// dropped.
package errors
