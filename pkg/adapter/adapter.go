// Package adapter runs a task inside a Cumulus workflow message. It unwraps the
// task's input and configuration from the message and writes the task's output
// back as the message payload.
package adapter

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// ErrMalformedMessage is returned when the workflow message cannot be unwrapped
var ErrMalformedMessage = errors.New("malformed cumulus message")

// Task is the work run between unwrapping and rewrapping
type Task interface {
	Perform(ctx context.Context, input string) (string, error)
}

// TaskFunc lets an ordinary function be used as a Task
type TaskFunc func(ctx context.Context, input string) (string, error)

// Perform calls f
func (f TaskFunc) Perform(ctx context.Context, input string) (string, error) {
	return f(ctx, input)
}

// Adapter runs a task against a raw workflow message
type Adapter interface {
	RunTask(ctx context.Context, message string, t Task) (string, error)
}

// MessageAdapter handles plain Cumulus messages and messages wrapped under a "cma" key
type MessageAdapter struct{}

// NewMessageAdapter returns a new MessageAdapter
func NewMessageAdapter() *MessageAdapter {
	return &MessageAdapter{}
}

type taskInput struct {
	Input  json.RawMessage `json:"input"`
	Config json.RawMessage `json:"config"`
}

// RunTask unwraps message, performs t on {"input": payload, "config": task_config}
// and returns message with its payload replaced by the task output
func (a *MessageAdapter) RunTask(ctx context.Context, message string, t Task) (string, error) {

	event, rawConfig, err := unwrap(message)
	if err != nil {
		return "", err
	}

	config, err := resolveTemplates(rawConfig, event)
	if err != nil {
		return "", err
	}

	payload := json.RawMessage("null")
	if p := gjson.Get(event, "payload"); p.Exists() {
		payload = json.RawMessage(p.Raw)
	}

	in, err := json.Marshal(taskInput{Input: payload, Config: config})
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal task input")
	}

	out, err := t.Perform(ctx, string(in))
	if err != nil {
		return "", errors.Wrap(err, "task failed")
	}

	return rewrap(event, out)
}

// unwrap returns the workflow event and its task configuration
func unwrap(message string) (string, string, error) {

	if !gjson.Valid(message) {
		return "", "", errors.Wrap(ErrMalformedMessage, "invalid JSON")
	}
	msg := gjson.Parse(message)
	if !msg.IsObject() {
		return "", "", errors.Wrap(ErrMalformedMessage, "message is not an object")
	}

	event := msg
	config := msg.Get("task_config")
	if cma := msg.Get("cma"); cma.Exists() {
		event = cma.Get("event")
		if !event.IsObject() {
			return "", "", errors.Wrap(ErrMalformedMessage, "missing cma.event")
		}
		config = cma.Get("task_config")
	}

	if event.Get("replace").Exists() {
		return "", "", errors.Wrap(ErrMalformedMessage, "remote messages are not supported")
	}

	if !config.Exists() {
		return event.Raw, "{}", nil
	}
	if !config.IsObject() {
		return "", "", errors.Wrap(ErrMalformedMessage, "task_config is not an object")
	}
	return event.Raw, config.Raw, nil
}

// rewrap stores output as the event payload
func rewrap(event, output string) (string, error) {

	if !gjson.Valid(output) {
		return "", errors.New("task output is not valid JSON")
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal([]byte(event), &fields); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal cumulus message")
	}
	fields["payload"] = json.RawMessage(output)

	out, err := json.Marshal(fields)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal cumulus message")
	}
	return string(out), nil
}
