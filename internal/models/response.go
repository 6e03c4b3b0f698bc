package models

// Response is the envelope every API route answers with
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Token   string      `json:"token,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// DataResponse always carries the data key, null included
type DataResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// NewErrorResponse wraps an APIError in a failed envelope. The envelope message repeats
// the human readable part so clients that only read message keep working.
func NewErrorResponse(code, message string, details ...map[string]interface{}) Response {
	apiErr := NewAPIError(code, message, details...)
	return Response{
		Success: false,
		Message: message,
		Error:   &apiErr,
	}
}
