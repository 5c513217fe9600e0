package dto

// Response represents the standard envelope of the admin API
type Response struct {
	Success bool       `json:"success"`
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

// ValidationDetail describes one rejected request field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Meta describes a bounded listing
type Meta struct {
	Count int `json:"count"`
	Limit int `json:"limit"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewSuccessResponseWithMeta creates a success response for a listing
func NewSuccessResponseWithMeta(data any, count, limit int) Response {
	return Response{
		Success: true,
		Data:    data,
		Meta: &Meta{
			Count: count,
			Limit: limit,
		},
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithRequestID creates an error response tagged with the request ID
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	resp := NewErrorResponse(code, message)
	resp.Error.RequestID = requestID
	return resp
}

// NewValidationErrorResponse creates a validation error response with field details
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	resp := NewErrorResponseWithRequestID(ErrCodeValidation, message, requestID)
	resp.Error.Details = details
	return resp
}

// IDRequest represents a request with a UUID path parameter
type IDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// ---------------------------------------------------------------------------
// Shopify-facing bodies
// ---------------------------------------------------------------------------

// WebhookFailure is the body of a rejected or aborted webhook delivery
type WebhookFailure struct {
	Success bool `json:"success"`
}

// ProxyErrorBody is the body of a rejected app proxy request
type ProxyErrorBody struct {
	Error string `json:"error"`
}

// ProxyPing is the body of GET /proxy
type ProxyPing struct {
	OK bool `json:"ok"`
}
