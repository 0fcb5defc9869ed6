// Package apperrors defines the error taxonomy shared by the services
// and translated to HTTP statuses at the controller boundary.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Code is the machine-readable error code.
type Code string

const (
	CodeNotFound   Code = "NOT_FOUND"
	CodeBusiness   Code = "BUSINESS_RULE"
	CodeValidation Code = "VALIDATION"
	CodeForbidden  Code = "FORBIDDEN"
	CodeDuplicate  Code = "DUPLICATE_ISSUE"
)

var statusByCode = map[Code]int{
	CodeNotFound:   http.StatusNotFound,
	CodeBusiness:   http.StatusUnprocessableEntity,
	CodeValidation: http.StatusBadRequest,
	CodeForbidden:  http.StatusForbidden,
	CodeDuplicate:  http.StatusConflict,
}

// AppError is a business-rule rejection with a human-readable reason.
type AppError struct {
	Code    Code
	Message string
}

func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HTTPStatus returns the HTTP status matching the error code.
func (e *AppError) HTTPStatus() int {
	if s, ok := statusByCode[e.Code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// NotFound signals that an identifier did not resolve in a store lookup.
func NotFound(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Business signals a general invariant violation.
func Business(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeBusiness, Message: fmt.Sprintf(format, args...)}
}

// Validation signals missing or oversized input fields.
func Validation(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// Forbidden signals that the acting user lacks authority.
func Forbidden(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeForbidden, Message: fmt.Sprintf(format, args...)}
}

// DuplicateIssueError rejects an issue whose location falls within the
// duplicate radius of an unresolved issue of the same type. It carries the
// conflicting issue and measured distance so clients can suggest supporting
// the existing report instead.
type DuplicateIssueError struct {
	IssueID        primitive.ObjectID
	IssueType      string
	DistanceMeters float64
}

func (e *DuplicateIssueError) Error() string {
	return fmt.Sprintf(
		"an unresolved issue of type %q already exists %.1f meters away (ID: %s); consider supporting the existing issue",
		e.IssueType, e.DistanceMeters, e.IssueID.Hex(),
	)
}

// HTTPStatus returns 409 Conflict.
func (e *DuplicateIssueError) HTTPStatus() int { return http.StatusConflict }

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code Code) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// HTTPStatus resolves the HTTP status for any error in the taxonomy;
// unknown errors map to 500.
func HTTPStatus(err error) int {
	var sc interface{ HTTPStatus() int }
	if errors.As(err, &sc) {
		return sc.HTTPStatus()
	}
	return http.StatusInternalServerError
}
