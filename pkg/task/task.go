// Package task is the CNM-Response workflow step: it builds the response for the
// original CNM, sends it to the configured destination and returns both.
package task

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/podaac/cnm-response/pkg/cnm"
	"github.com/podaac/cnm-response/pkg/logger"
)

// Dispatcher sends a message using the named method
type Dispatcher interface {
	Dispatch(method, region, endpoint, message string) error
}

// Envelope is the task output
type Envelope struct {
	CNM   json.RawMessage `json:"cnm"`
	Input json.RawMessage `json:"input"`
}

// Task builds and sends CNM-Responses
type Task struct {
	builder *cnm.Builder
	disp    Dispatcher
}

// NewTask returns a new Task
func NewTask(b *cnm.Builder, d Dispatcher) *Task {
	return &Task{builder: b, disp: d}
}

// Perform handles one raw task payload and returns the output envelope
func (t *Task) Perform(ctx context.Context, raw string) (string, error) {

	log := logger.Log.WithFields(fields(ctx))
	log.Debugf("processing %s", raw)

	req, err := Decode(raw)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode task input")
	}

	output, err := t.builder.Build(req.OriginalCNM, req.WorkflowException, req.Granule)
	if err != nil {
		return "", errors.Wrap(err, "failed to build CNM response")
	}

	log = log.WithFields(logrus.Fields{
		"method":   req.Method,
		"region":   req.Region,
		"endpoint": req.Endpoint,
	})

	err = t.disp.Dispatch(req.Method, req.Region, req.Endpoint, output)
	if err != nil {
		return "", errors.Wrap(err, "failed to send CNM response")
	}
	log.Info("CNM response handled")

	env, err := json.Marshal(Envelope{CNM: json.RawMessage(output), Input: json.RawMessage(raw)})
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal task output")
	}
	return string(env), nil
}

// fields picks the request id out of a Lambda context when there is one
func fields(ctx context.Context) logrus.Fields {
	f := logrus.Fields{}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		f["requestID"] = lc.AwsRequestID
	}
	return f
}
