package models

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ErrorDetail represents the error payload body
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse represents an error response envelope
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// StoreResponse represents one store catalog entry
type StoreResponse struct {
	Store int    `json:"store"`
	Type  string `json:"type,omitempty"`
	Size  int    `json:"size,omitempty"`
}

// StoreListResponse represents the store catalog
type StoreListResponse struct {
	Stores []StoreResponse `json:"stores"`
	Count  int             `json:"count"`
}

// DepartmentListResponse represents the departments of one store
type DepartmentListResponse struct {
	Store       int   `json:"store"`
	Departments []int `json:"departments"`
	Count       int   `json:"count"`
}

// ReloadResponse represents the dataset reload result
type ReloadResponse struct {
	Reloaded     bool   `json:"reloaded"`
	Observations int    `json:"observations"`
	LoadedAt     string `json:"loaded_at"`
}
