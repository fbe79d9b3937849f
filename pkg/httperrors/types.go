package httperrors

// HTTPError is the body of every error response.
type HTTPError struct {
	Error string `json:"error" example:"there is no budget with ID 7"`
	Kind  string `json:"kind,omitempty" example:"not_found" enums:"not_found,conflict,validation,storage"`
}
