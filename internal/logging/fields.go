package logging

// Standardized attribute keys used across components.
const (
	FieldComponent  = "component"
	FieldEventType  = "event_type"
	FieldRunID      = "run_id"
	FieldCollection = "collection"
	FieldErrorHint  = "error_hint"
)
