// Defines request and response types for the roster API.
//
// Record cells cross the wire as plain JSON values: null, string, or number.
// Dates render as 2006-01-02 strings. The handlers package converts between
// this representation and the typed in-memory one, so dto stays free of
// internal domain types.

package dto

// HealthRequest is the request for the health check endpoint.
type HealthRequest struct{}

// Validate implements Validatable.
func (r *HealthRequest) Validate() error { return nil }

// HealthResponse reports server liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// TableResponse carries a table view: the uniform column list and one cell
// map per row.
type TableResponse struct {
	Columns   []string         `json:"columns"`
	Rows      []map[string]any `json:"rows"`
	Total     int              `json:"total"`
	DatasetID string           `json:"dataset_id,omitempty"`
	Revision  uint64           `json:"revision"`
}

// QueryRequest filters the table view. Filters maps a column name to the
// set of accepted values; Search is a case-insensitive substring match.
// Everything is optional: an empty request returns the full table.
//
// On GET requests the fields bind from query parameters, with filters
// passed as repeated filter=Column=Value pairs.
type QueryRequest struct {
	Filters map[string][]string `json:"filters,omitempty" query:"filter"`
	Search  string              `json:"search,omitempty" query:"search"`
	Limit   int                 `json:"limit,omitempty" query:"limit"`
}

// Validate implements Validatable.
func (r *QueryRequest) Validate() error {
	if r.Limit < 0 {
		return BadRequest("limit must not be negative")
	}
	return nil
}

// AppendRequest adds one record to the roster.
type AppendRequest struct {
	Record map[string]any `json:"record"`
}

// Validate implements Validatable.
func (r *AppendRequest) Validate() error {
	if len(r.Record) == 0 {
		return MissingField("record")
	}
	return nil
}

// UpdateRequest patches the single record whose identity column equals
// Identity.
type UpdateRequest struct {
	Identity string         `json:"identity"`
	Patch    map[string]any `json:"patch"`
}

// Validate implements Validatable.
func (r *UpdateRequest) Validate() error {
	if r.Identity == "" {
		return MissingField("identity")
	}
	if len(r.Patch) == 0 {
		return MissingField("patch")
	}
	return nil
}

// ClearRequest drops the loaded dataset.
type ClearRequest struct{}

// Validate implements Validatable.
func (r *ClearRequest) Validate() error { return nil }

// MutationResponse reports the table state after a successful mutation.
type MutationResponse struct {
	Rows      int    `json:"rows"`
	DatasetID string `json:"dataset_id,omitempty"`
	Revision  uint64 `json:"revision"`
}

// UploadResponse reports the result of a spreadsheet ingest.
type UploadResponse struct {
	DatasetID string   `json:"dataset_id"`
	Rows      int      `json:"rows"`
	Columns   []string `json:"columns"`
}

// OptionsRequest asks for the distinct values of one column.
type OptionsRequest struct {
	Column string `query:"column"`
}

// Validate implements Validatable.
func (r *OptionsRequest) Validate() error {
	if r.Column == "" {
		return MissingField("column")
	}
	return nil
}

// OptionsResponse lists the distinct non-null values of a column, sorted
// case-insensitively.
type OptionsResponse struct {
	Column  string   `json:"column"`
	Options []string `json:"options"`
}

// MetricsRequest asks for the headline metrics.
type MetricsRequest struct{}

// Validate implements Validatable.
func (r *MetricsRequest) Validate() error { return nil }

// MetricsResponse carries the headline numbers shown above the table.
type MetricsResponse struct {
	TotalEmployees int            `json:"total_employees"`
	RecentHires    int            `json:"recent_hires"`
	ClassCounts    map[string]int `json:"class_counts"`
}

// ClassesRequest asks for per-class enrollment of one class column.
type ClassesRequest struct {
	Column string `query:"column"`
}

// Validate implements Validatable.
func (r *ClassesRequest) Validate() error {
	if r.Column == "" {
		return MissingField("column")
	}
	return nil
}

// ClassGroup is one class and its student count.
type ClassGroup struct {
	Name     string `json:"name"`
	Students int    `json:"students"`
}

// ClassesResponse lists classes newest first.
type ClassesResponse struct {
	Column  string       `json:"column"`
	Classes []ClassGroup `json:"classes"`
}

// CompletionRequest asks for completion totals across the class columns,
// optionally restricted to the rows passing the same filters the table
// view takes. On GET requests the fields bind from query parameters, with
// filters passed as repeated filter=Column=Value pairs.
type CompletionRequest struct {
	Filters map[string][]string `json:"filters,omitempty" query:"filter"`
	Search  string              `json:"search,omitempty" query:"search"`
}

// Validate implements Validatable.
func (r *CompletionRequest) Validate() error { return nil }

// CompletionEntry is the completed/not-completed split for one class column.
type CompletionEntry struct {
	Column       string `json:"column"`
	Completed    int    `json:"completed"`
	NotCompleted int    `json:"not_completed"`
}

// CompletionResponse lists one entry per configured class column.
type CompletionResponse struct {
	Completion []CompletionEntry `json:"completion"`
}

// DistributionRequest asks for the value histogram of one column.
type DistributionRequest struct {
	Column string `query:"column"`
}

// Validate implements Validatable.
func (r *DistributionRequest) Validate() error {
	if r.Column == "" {
		return MissingField("column")
	}
	return nil
}

// ValueCount is one histogram bucket.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// DistributionResponse lists buckets by descending count.
type DistributionResponse struct {
	Column string       `json:"column"`
	Counts []ValueCount `json:"counts"`
}
