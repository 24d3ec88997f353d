package dispatcher

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/kinesis"
	"github.com/aws/aws-sdk-go/service/sns"
)

// Publisher publishes to an SNS topic
type Publisher interface {
	Publish(*sns.PublishInput) (*sns.PublishOutput, error)
}

// Putter puts records to a Kinesis stream
type Putter interface {
	PutRecord(*kinesis.PutRecordInput) (*kinesis.PutRecordOutput, error)
}

// Clients builds messaging clients for a region
type Clients interface {
	SNS(region string) Publisher
	Kinesis(region string) Putter
}

// SessionClients builds clients from a shared AWS session
type SessionClients struct {
	sess     *session.Session
	endpoint string
}

// NewSessionClients returns SessionClients. A non-empty endpoint overrides the
// service endpoint of every client, e.g. to point at a local stack.
func NewSessionClients(sess *session.Session, endpoint string) *SessionClients {
	return &SessionClients{sess: sess, endpoint: endpoint}
}

func (c *SessionClients) config(region string) *aws.Config {
	cfg := &aws.Config{Region: aws.String(region)}
	if c.endpoint != "" {
		cfg.Endpoint = aws.String(c.endpoint)
	}
	return cfg
}

// SNS returns a new SNS client for region
func (c *SessionClients) SNS(region string) Publisher {
	return sns.New(c.sess, c.config(region))
}

// Kinesis returns a new Kinesis client for region
func (c *SessionClients) Kinesis(region string) Putter {
	return kinesis.New(c.sess, c.config(region))
}
