package dto

// Response is the envelope every API endpoint writes
type Response struct {
	Success bool       `json:"success"`
	Status  string     `json:"status"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	RequestID string             `json:"request_id,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail is the message attached to one input field
type ValidationDetail struct {
	Field   string `json:"field"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// Meta represents pagination metadata
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{
		Success: true,
		Status:  StatusSuccess,
		Data:    data,
	}
}

// NewPageResponse creates a success response carrying one page of items
func NewPageResponse(items any, meta Meta) Response {
	return Response{
		Success: true,
		Status:  StatusSuccess,
		Data:    items,
		Meta:    &meta,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(status, code, message, requestID string, details ...ValidationDetail) Response {
	return Response{
		Success: false,
		Status:  status,
		Error: &ErrorInfo{
			Code:      code,
			Message:   message,
			RequestID: requestID,
			Details:   details,
		},
	}
}
