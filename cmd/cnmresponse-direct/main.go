package main

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"

	"github.com/podaac/cnm-response/pkg/adapter"
	"github.com/podaac/cnm-response/pkg/cnm"
	"github.com/podaac/cnm-response/pkg/dispatcher"
	"github.com/podaac/cnm-response/pkg/environment"
	"github.com/podaac/cnm-response/pkg/task"
)

var sess *session.Session
var h *task.Handler

func init() {
	sess = session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
		Config:            aws.Config{Region: aws.String(environment.GetString("AWS_REGION", ""))},
	}))
	clients := dispatcher.NewSessionClients(sess, environment.GetString("AWS_ENDPOINT_URL", ""))
	t := task.NewTask(cnm.NewBuilder(), dispatcher.NewDispatcher(clients))
	h = task.NewHandler(t, adapter.NewMessageAdapter())
}

func handler(ctx context.Context, event json.RawMessage) (json.RawMessage, error) {
	return h.DirectLambda(ctx, event)
}

func main() {
	lambda.Start(handler)
}
