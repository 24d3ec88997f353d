// Package cnm builds CNM-Response messages from an original CNM and the outcome of the workflow that ingested it.
package cnm

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const (
	productKey      = "product"
	responseKey     = "response"
	completeTimeKey = "processCompleteTime"
)

// Document is a CNM message. Fields this task does not touch are carried through untouched.
type Document struct {
	// Product is read from the original message and never written back out
	Product             json.RawMessage
	Response            *Response
	ProcessCompleteTime string

	fields map[string]json.RawMessage
}

// ParseDocument reads a CNM message, which must be a JSON object
func ParseDocument(raw string) (*Document, error) {
	if !gjson.Valid(raw) {
		return nil, errors.Errorf("failed to parse CNM: invalid JSON")
	}
	if !gjson.Parse(raw).IsObject() {
		return nil, errors.Wrap(mismatch("OriginalCNM", "object"), "failed to parse CNM")
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal CNM")
	}

	d := &Document{
		Product: fields[productKey],
		fields:  fields,
	}
	delete(fields, productKey)
	delete(fields, responseKey)
	delete(fields, completeTimeKey)
	return d, nil
}

// field returns a pass-through field
func (d *Document) field(name string) (json.RawMessage, bool) {
	v, ok := d.fields[name]
	return v, ok
}

// MarshalJSON writes the pass-through fields plus response and processCompleteTime when set
func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(d.fields)+2)
	for k, v := range d.fields {
		out[k] = v
	}
	if d.Response != nil {
		out[responseKey] = d.Response
	}
	if d.ProcessCompleteTime != "" {
		out[completeTimeKey] = d.ProcessCompleteTime
	}
	return json.Marshal(out)
}

// Granule is the first record of input.granules
type Granule struct {
	result gjson.Result
}

// NewGranule wraps a granule record, which must be a JSON object
func NewGranule(r gjson.Result) (*Granule, error) {
	if !r.IsObject() {
		return nil, mismatch("granule", "object")
	}
	return &Granule{result: r}, nil
}

// IngestionMetadata copies the catalog identifiers out of the granule
func (g *Granule) IngestionMetadata() (*IngestionMetadata, error) {
	id, err := String(g.result, "cmrConceptId")
	if err != nil {
		return nil, err
	}
	link, err := String(g.result, "cmrLink")
	if err != nil {
		return nil, err
	}
	return &IngestionMetadata{CatalogID: id, CatalogURL: link}, nil
}
