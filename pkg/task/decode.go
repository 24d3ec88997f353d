package task

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/podaac/cnm-response/pkg/cnm"
)

// Request is the task input unwrapped from {"config": ..., "input": ...}
type Request struct {
	OriginalCNM       string
	WorkflowException *string
	Method            string
	Region            string
	Endpoint          string
	Granule           *cnm.Granule
}

// Decode reads a Request from a raw task payload
func Decode(raw string) (*Request, error) {

	if !gjson.Valid(raw) {
		return nil, errors.New("failed to parse task input: invalid JSON")
	}
	root := gjson.Parse(raw)

	if _, err := cnm.Object(root, "config"); err != nil {
		return nil, err
	}

	original := root.Get("config.OriginalCNM")
	if !original.Exists() {
		return nil, &cnm.FieldError{Kind: cnm.MissingField, Field: "config.OriginalCNM"}
	}

	granule, err := firstGranule(root)
	if err != nil {
		return nil, err
	}

	req := &Request{
		OriginalCNM:       original.Raw,
		WorkflowException: cnm.Raw(root, "config.WorkflowException"),
		Granule:           granule,
	}

	if req.Method, err = cnm.String(root, "config.type"); err != nil {
		return nil, err
	}
	if req.Region, err = cnm.String(root, "config.region"); err != nil {
		return nil, err
	}
	if req.Endpoint, err = cnm.String(root, "config.response-endpoint"); err != nil {
		return nil, err
	}

	return req, nil
}

func firstGranule(root gjson.Result) (*cnm.Granule, error) {

	if _, err := cnm.Object(root, "input"); err != nil {
		return nil, err
	}

	granules := root.Get("input.granules")
	if !granules.Exists() {
		return nil, &cnm.FieldError{Kind: cnm.MissingField, Field: "input.granules"}
	}
	if !granules.IsArray() {
		return nil, &cnm.FieldError{Kind: cnm.TypeMismatch, Field: "input.granules", Want: "array"}
	}

	first, err := cnm.Object(root, "input.granules.0")
	if err != nil {
		return nil, err
	}
	return cnm.NewGranule(first)
}
