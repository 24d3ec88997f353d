package cnm

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// TimeLayout is the format of processCompleteTime, always in UTC
const TimeLayout = "2006-01-02T15:04:05.000"

// Builder produces CNM-Response messages
type Builder struct {
	now func() time.Time
}

// NewBuilder returns a Builder stamping messages with the wall clock
func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

// NewBuilderWithClock returns a Builder stamping messages with the given clock
func NewBuilderWithClock(now func() time.Time) *Builder {
	return &Builder{now: now}
}

// Build turns the original CNM into its response, given the workflow exception
// and, optionally, the granule the workflow produced
func (b *Builder) Build(original string, exception *string, granule *Granule) (string, error) {

	doc, err := ParseDocument(original)
	if err != nil {
		return "", err
	}

	res, err := Classify(exception)
	if err != nil {
		return "", err
	}

	if granule != nil && res.Status == StatusSuccess {
		md, err := granule.IngestionMetadata()
		if err != nil {
			return "", errors.Wrap(err, "failed to read granule")
		}
		res.IngestionMetadata = md
	}

	doc.Response = res
	doc.ProcessCompleteTime = b.now().UTC().Format(TimeLayout)

	out, err := json.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal CNM response")
	}
	return string(out), nil
}
