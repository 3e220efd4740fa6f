package helpers

import "time"

// ApiResponse is the envelope every endpoint returns.
type ApiResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Page      int         `json:"page,omitempty"`
	Limit     int         `json:"limit,omitempty"`
	Total     int         `json:"total,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func SuccessResponse(data interface{}, message string) ApiResponse {
	return ApiResponse{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

func ErrorResponse(err string) ApiResponse {
	return ApiResponse{
		Success:   false,
		Error:     err,
		Timestamp: time.Now().UTC(),
	}
}

func PaginatedResponse(data interface{}, page, limit, total int) ApiResponse {
	return ApiResponse{
		Success:   true,
		Data:      data,
		Page:      page,
		Limit:     limit,
		Total:     total,
		Timestamp: time.Now().UTC(),
	}
}
