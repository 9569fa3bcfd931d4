package logging

// Field names shared by every component so log lines can be grepped uniformly.
const (
	FieldComponent  = "component"
	FieldMethod     = "method"
	FieldURL        = "url"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldEndpoint   = "endpoint"
	FieldUntil      = "blocked_until"
	FieldMonth      = "month"
	FieldError      = "error"
)

// Component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentSession = "session"
	ComponentStorage = "storage"
	ComponentEvents  = "events"
	ComponentExport  = "export"
	ComponentHealth  = "health"
)
