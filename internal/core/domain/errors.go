package domain

import "net/http"

// Error is a service failure carrying an HTTP status class and a user-facing
// message. The message is the only detail allowed to reach a client; causes
// stay in the logs.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrDuplicateEmail        = &Error{Status: http.StatusBadRequest, Message: "A user with this email already exists."}
	ErrUnknownEmail          = &Error{Status: http.StatusBadRequest, Message: "A user with this email does not exist."}
	ErrInvalidPayload        = &Error{Status: http.StatusBadRequest, Message: "Invalid request payload."}
	ErrInvalidUserID         = &Error{Status: http.StatusBadRequest, Message: "Invalid user id."}
	ErrInvalidCredentials    = &Error{Status: http.StatusUnauthorized, Message: "Invalid email or password."}
	ErrInvalidOrExpiredToken = &Error{Status: http.StatusUnauthorized, Message: "The provided token is invalid or expired."}
	ErrUsersNotFound         = &Error{Status: http.StatusNotFound, Message: "Users not found"}
	ErrUserNotFound          = &Error{Status: http.StatusNotFound, Message: "User not found"}
	ErrPasswordUpdateFailed  = &Error{Status: http.StatusNotFound, Message: "User not found or update failed"}
	ErrCreationFailed        = &Error{Status: http.StatusInternalServerError, Message: "Failed to create a new user."}
	ErrTokenGenerationFailed = &Error{Status: http.StatusInternalServerError, Message: "An error occurred while generating the token."}
	ErrEmailDeliveryFailed   = &Error{Status: http.StatusInternalServerError, Message: "Failed to send the welcome email."}
	ErrBlacklistFailed       = &Error{Status: http.StatusInternalServerError, Message: "An error occurred while blacklisting the token."}
	ErrPasswordHashFailed    = &Error{Status: http.StatusInternalServerError, Message: "An error occurred while hashing the password."}
	ErrUpdateFailed          = &Error{Status: http.StatusInternalServerError, Message: "User update failed"}
)
