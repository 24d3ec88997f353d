// Package dispatcher sends CNM-Response messages to an SNS topic or a Kinesis stream.
package dispatcher

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/kinesis"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/podaac/cnm-response/pkg/logger"
)

const (
	// MethodSNS publishes to the topic ARN given as endpoint
	MethodSNS = "sns"
	// MethodKinesis puts a record to the stream name given as endpoint
	MethodKinesis = "kinesis"

	// PartitionKey is used for every Kinesis record
	PartitionKey = "1"
)

// Sender delivers a message to one destination
type Sender interface {
	Send(endpoint, message string) error
}

// TopicSender publishes messages to SNS
type TopicSender struct {
	svc Publisher
}

// NewTopicSender returns a new TopicSender
func NewTopicSender(p Publisher) *TopicSender {
	return &TopicSender{svc: p}
}

// Send publishes message to the topic ARN
func (s *TopicSender) Send(topicArn, message string) error {

	input := &sns.PublishInput{
		TopicArn: aws.String(topicArn),
		Message:  aws.String(message),
	}

	out, err := s.svc.Publish(input)
	if err != nil {
		return errors.Wrapf(err, "failed to publish to %v", topicArn)
	}

	logger.Log.WithFields(logrus.Fields{
		"endpoint":  topicArn,
		"messageID": aws.StringValue(out.MessageId),
	}).Info("published CNM response")
	return nil
}

// StreamSender puts messages to Kinesis
type StreamSender struct {
	svc Putter
}

// NewStreamSender returns a new StreamSender
func NewStreamSender(p Putter) *StreamSender {
	return &StreamSender{svc: p}
}

// Send puts message as a single record to the named stream
func (s *StreamSender) Send(streamName, message string) error {

	input := &kinesis.PutRecordInput{
		StreamName:   aws.String(streamName),
		PartitionKey: aws.String(PartitionKey),
		Data:         []byte(message),
	}

	out, err := s.svc.PutRecord(input)
	if err != nil {
		return errors.Wrapf(err, "failed to put record to %v", streamName)
	}

	logger.Log.WithFields(logrus.Fields{
		"endpoint":       streamName,
		"shardID":        aws.StringValue(out.ShardId),
		"sequenceNumber": aws.StringValue(out.SequenceNumber),
	}).Info("put CNM response")
	return nil
}

// Dispatcher picks a Sender by method name
type Dispatcher struct {
	clients Clients
}

// NewDispatcher returns a new Dispatcher
func NewDispatcher(c Clients) *Dispatcher {
	return &Dispatcher{clients: c}
}

// Sender returns the Sender for method in region, or false when the method is not recognised
func (d *Dispatcher) Sender(method, region string) (Sender, bool) {
	switch method {
	case MethodSNS:
		return NewTopicSender(d.clients.SNS(region)), true
	case MethodKinesis:
		return NewStreamSender(d.clients.Kinesis(region)), true
	default:
		return nil, false
	}
}

// Dispatch sends message to endpoint. An unrecognised method sends nothing and is not an error.
func (d *Dispatcher) Dispatch(method, region, endpoint, message string) error {

	s, ok := d.Sender(method, region)
	if !ok {
		logger.Log.WithFields(logrus.Fields{
			"method":   method,
			"endpoint": endpoint,
		}).Debug("unrecognised response type, nothing sent")
		return nil
	}

	return s.Send(endpoint, message)
}
