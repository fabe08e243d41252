package logging

// Standard field names for structured log output. Every derivation run logs
// with run_id and year so the lines of one run can be grepped together.
const (
	FieldYear          = "year"
	FieldRunID         = "run_id"
	FieldTransactionID = "transaction_id"
	FieldAccountCode   = "account_code"
	FieldDocumentRef   = "document_ref"
	FieldConcept       = "concept"
	FieldRecordKind    = "record_kind"
	FieldReason        = "reason"
	FieldSource        = "source"
	FieldTable         = "table"
	FieldCount         = "count"
	FieldDuration      = "duration_ms"
	FieldFormat        = "format"
	FieldOutputFile    = "output_file"
	FieldError         = "error"
)
