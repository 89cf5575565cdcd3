package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile       = "file_path"
	FieldSource     = "source"
	FieldColumn     = "column"
	FieldRow        = "row"
	FieldValue      = "value"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldDropped    = "dropped"
	FieldPeriod     = "period"
	FieldCategory   = "category"
	FieldSymbol     = "symbol"
	FieldProvider   = "provider"
	FieldReport     = "report"
	FieldOutputFile = "output_file"
	FieldRequestID  = "request_id"
)
