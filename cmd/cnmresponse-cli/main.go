package main

import (
	"context"
	"io"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/sirupsen/logrus"

	"github.com/podaac/cnm-response/pkg/adapter"
	"github.com/podaac/cnm-response/pkg/cnm"
	"github.com/podaac/cnm-response/pkg/dispatcher"
	"github.com/podaac/cnm-response/pkg/environment"
	"github.com/podaac/cnm-response/pkg/logger"
	"github.com/podaac/cnm-response/pkg/task"
)

type args struct {
	Direct   bool   `arg:"-d,--direct" help:"input is {config, input} instead of a cumulus message"`
	Input    string `arg:"-i,--input" help:"read the payload from this file instead of stdin"`
	Endpoint string `arg:"-e,--endpoint,env:AWS_ENDPOINT_URL" help:"override the SNS and Kinesis endpoint"`
}

func (args) Description() string {
	return "\nbuild a CNM-Response for one payload and send it\n"
}

func main() {
	var a args
	arg.MustParse(&a)

	var in io.ReadCloser = os.Stdin
	if a.Input != "" {
		f, err := os.Open(a.Input)
		if err != nil {
			logger.Log.WithFields(logrus.Fields{"error": err.Error()}).Fatal("failed to open input")
		}
		in = f
	}

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
		Config:            aws.Config{Region: aws.String(environment.GetString("AWS_REGION", ""))},
	}))
	clients := dispatcher.NewSessionClients(sess, a.Endpoint)
	t := task.NewTask(cnm.NewBuilder(), dispatcher.NewDispatcher(clients))
	h := task.NewHandler(t, adapter.NewMessageAdapter())

	err := h.HandleStream(context.Background(), in, os.Stdout, a.Direct)
	in.Close()
	if err != nil {
		logger.Log.WithFields(logrus.Fields{"error": err.Error()}).Fatal("failed to handle payload")
	}
}
