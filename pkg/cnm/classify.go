package cnm

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Status is the outcome reported in a CNM-Response
type Status string

// ErrorCode is the coarse failure category reported in a CNM-Response
type ErrorCode string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailure Status = "FAILURE"

	ValidationError ErrorCode = "VALIDATION_ERROR"
	TransferError   ErrorCode = "TRANSFER_ERROR"
	ProcessingError ErrorCode = "PROCESSING_ERROR"
)

// IngestionMetadata points at the catalog entry created for the granule
type IngestionMetadata struct {
	CatalogID  string `json:"catalogId"`
	CatalogURL string `json:"catalogUrl"`
}

// Response is the block attached to the outbound CNM under "response".
// ErrorMessage is a pointer so that an empty message still appears on failure.
type Response struct {
	Status            Status             `json:"status"`
	ErrorCode         ErrorCode          `json:"errorCode,omitempty"`
	ErrorMessage      *string            `json:"errorMessage,omitempty"`
	IngestionMetadata *IngestionMetadata `json:"ingestionMetadata,omitempty"`
}

// IsEmptyException reports whether the workflow exception stands for "no error"
func IsEmptyException(exception *string) bool {
	if exception == nil {
		return true
	}
	switch *exception {
	case "", "None", `"None"`:
		return true
	}
	return false
}

// ClassifyError maps a workflow exception's Error value to an error code
func ClassifyError(name string) ErrorCode {
	switch name {
	case "FileNotFound", "RemoteResourceError", "ConnectionTimeout":
		return TransferError
	case "InvalidChecksum", "UnexpectedFileSize":
		return ValidationError
	default:
		return ProcessingError
	}
}

// Classify turns a workflow exception into a response block
func Classify(exception *string) (*Response, error) {
	if IsEmptyException(exception) {
		return &Response{Status: StatusSuccess}, nil
	}

	if !gjson.Valid(*exception) {
		return nil, errors.Errorf("failed to parse workflow exception: invalid JSON: %q", *exception)
	}
	ex := gjson.Parse(*exception)
	if !ex.IsObject() {
		return nil, errors.Wrap(mismatch("WorkflowException", "object"), "failed to parse workflow exception")
	}

	name, err := String(ex, "Error")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read workflow exception")
	}
	cause, err := String(ex, "Cause")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read workflow exception")
	}

	msg := causeMessage(cause)
	return &Response{
		Status:       StatusFailure,
		ErrorCode:    ClassifyError(name),
		ErrorMessage: &msg,
	}, nil
}

// causeMessage prefers the errorMessage of a JSON encoded cause, falling back to the cause itself
func causeMessage(cause string) string {
	if !gjson.Valid(cause) {
		return cause
	}
	c := gjson.Parse(cause)
	if !c.IsObject() {
		return cause
	}
	m, err := String(c, "errorMessage")
	if err != nil {
		return cause
	}
	return m
}
