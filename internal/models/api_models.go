package models

type LoginRequest struct {
	Password *string `json:"password" binding:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse mirrors the {"detail": ...} error body clients already parse.
// Detail is a string for auth and runtime errors and a list for validation errors.
type ErrorResponse struct {
	Detail any `json:"detail"`
}

type ValidationIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}
