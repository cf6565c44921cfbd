package log

// Field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldBackend    = "backend"
	FieldAccount    = "account"
	FieldCategory   = "category"
	FieldProject    = "project"
	FieldRowCount   = "row_count"
	FieldRange      = "range"
	FieldFilterKey  = "filter_key"
)

// Standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentSheets  = "sheets"
	ComponentCache   = "cache"
	ComponentFilters = "filters"
	ComponentCharts  = "charts"
)

// Standard operation names.
const (
	OpFetch     = "fetch"
	OpNormalize = "normalize"
	OpFilter    = "filter"
	OpAggregate = "aggregate"
	OpSort      = "sort"
	OpRender    = "render"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
