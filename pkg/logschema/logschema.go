package logschema

// Log schema constants for electrode structured logs.
const (
	SchemaID    = "electrode.log.v1"
	FieldSchema = "log_schema"

	FieldTimestamp = "ts"
	FieldLevel     = "level"
	FieldMessage   = "msg"
	FieldLogger    = "logger"
	FieldCaller    = "caller"
	FieldStack     = "stack"

	FieldComponent = "component"
	FieldEvent     = "event"
	FieldStage     = "stage"
	FieldResult    = "result"
	FieldError     = "error"
	FieldArtifact  = "artifact"
)

// LogRecord is a generic map representation of a log entry.
type LogRecord map[string]interface{}
