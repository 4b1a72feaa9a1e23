package apperrors

import (
	"fmt"
	"net/http"
)

// Factories for the portal's domain errors. Handlers never build these
// by hand; services return them and HandleError renders them.

// PersistenceError surfaces a rejected or empty backend write. The backend's
// own message is preserved where available.
func PersistenceError(err error, domain string) *AppError {
	msg := "Database operation failed"
	if err != nil {
		msg = err.Error()
	}
	return Wrap(err, CodeDatabaseError, domain, msg, http.StatusInternalServerError)
}

// UploadError names the file whose blob transfer failed.
func UploadError(err error, filename string) *AppError {
	return Wrap(err, CodeUploadFailed, "upload",
		fmt.Sprintf("Failed to upload %s: %v", filename, err), http.StatusBadGateway)
}

// PermissionError is deliberately vague: the caller cannot distinguish
// "no such row" from "policy rejected the write".
func PermissionError(domain string) *AppError {
	return New(CodeForbidden, domain,
		"You may not have permission to perform this action", http.StatusForbidden)
}

var ErrGroupNotFound = New(CodeNotFound, "groups", "Upload group not found", http.StatusNotFound)

var ErrProfileNotFound = New(CodeNotFound, "profiles", "User not found", http.StatusNotFound)

var ErrNoFilesSelected = New(CodeValidationFailed, "upload", "No files selected", http.StatusBadRequest)

var ErrEmailAlreadyExists = New(CodeAlreadyExists, "auth", "Email is already registered", http.StatusConflict)

var ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)

var ErrInvalidToken = New(CodeInvalidToken, "auth", "Invalid or expired token", http.StatusUnauthorized)

var ErrInvalidRole = New(CodeInvalidOperation, "profiles", "Invalid profile role", http.StatusBadRequest)

var ErrInvalidStatus = New(CodeInvalidOperation, "profiles", "Invalid profile status", http.StatusBadRequest)
