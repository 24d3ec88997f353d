package task

import (
	"context"
	"encoding/json"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/podaac/cnm-response/pkg/adapter"
	"github.com/podaac/cnm-response/pkg/logger"
)

// Handler exposes a task through its invocation surfaces
type Handler struct {
	task    adapter.Task
	adapter adapter.Adapter
}

// NewHandler returns a new Handler
func NewHandler(t adapter.Task, a adapter.Adapter) *Handler {
	return &Handler{task: t, adapter: a}
}

// HandleAdapter runs the task inside a workflow message. When the message
// cannot be handled the error message is the whole output.
func (h *Handler) HandleAdapter(ctx context.Context, message string) string {

	out, err := h.adapter.RunTask(ctx, message, h.task)
	if err != nil {
		logger.Log.WithFields(fields(ctx)).WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("failed to run task")
		return err.Error()
	}
	return out
}

// HandleDirect runs the task on a payload already shaped as {"config": ..., "input": ...}
func (h *Handler) HandleDirect(ctx context.Context, payload string) (string, error) {

	out, err := h.task.Perform(ctx, payload)
	if err != nil {
		logger.Log.WithFields(fields(ctx)).WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("failed to perform task")
		return "", err
	}
	return out, nil
}

// HandleStream reads a payload from r and writes the output to w
func (h *Handler) HandleStream(ctx context.Context, r io.Reader, w io.Writer, direct bool) error {

	in, err := ioutil.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "failed to read input")
	}

	var out string
	if direct {
		out, err = h.HandleDirect(ctx, string(in))
		if err != nil {
			return err
		}
	} else {
		out, err = h.adapter.RunTask(ctx, string(in), h.task)
		if err != nil {
			return err
		}
	}

	_, err = io.WriteString(w, out)
	if err != nil {
		return errors.Wrap(err, "failed to write output")
	}
	return nil
}

// AdapterLambda is HandleAdapter shaped for lambda.Start. Error messages are returned as JSON strings.
func (h *Handler) AdapterLambda(ctx context.Context, event json.RawMessage) (json.RawMessage, error) {

	out := h.HandleAdapter(ctx, string(event))
	if gjson.Valid(out) {
		return json.RawMessage(out), nil
	}
	b, err := json.Marshal(out)
	return json.RawMessage(b), err
}

// DirectLambda is HandleDirect shaped for lambda.Start
func (h *Handler) DirectLambda(ctx context.Context, event json.RawMessage) (json.RawMessage, error) {

	out, err := h.HandleDirect(ctx, string(event))
	if err != nil {
		return nil, err
	}
	return json.RawMessage(out), nil
}
