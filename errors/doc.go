// Package errors provides the mapping error taxonomy for connectmap.
//
// Every condition the mapping engine can report is identified by a Code
// and carried as an Entry. Entry message text is part of the observable
// contract: operators parse the mapping_errors and mapping_warnings
// arrays for aggregate reporting, so the exact phrasing produced by the
// New* constructors must stay stable across releases.
//
// Codes split into errors and warnings. A connector is classified
// successful iff it accumulated no error-severity entries; warnings
// never block success.
//
// The package also provides classified wrapping helpers (Wrap,
// WrapInvalid, WrapFatal) for internal failures that are not part of
// the taxonomy, e.g. a template file that cannot be read. These never
// cross a connector boundary: the orchestrator converts them into a
// single MappingFailure entry on the affected connector.
//
// # Usage
//
//	var errs errors.List
//	errs.Add(errors.NewInvalidValue("input.key.format", "BYTES",
//		[]string{"AVRO", "JSON_SR", "PROTOBUF", "STRING"}))
//	for _, msg := range errs.Messages() {
//		fmt.Println(msg)
//	}
package errors
