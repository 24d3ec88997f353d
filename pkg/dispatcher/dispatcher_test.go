package dispatcher

import (
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/kinesis"
	"github.com/aws/aws-sdk-go/service/kinesis/kinesisiface"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sns/snsiface"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type mockSNS struct {
	snsiface.SNSAPI
	inputs []*sns.PublishInput
	err    error
}

func (m *mockSNS) Publish(input *sns.PublishInput) (*sns.PublishOutput, error) {
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-1")}, nil
}

type mockKinesis struct {
	kinesisiface.KinesisAPI
	inputs []*kinesis.PutRecordInput
	err    error
}

func (m *mockKinesis) PutRecord(input *kinesis.PutRecordInput) (*kinesis.PutRecordOutput, error) {
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	return &kinesis.PutRecordOutput{ShardId: aws.String("shardId-000000000000"), SequenceNumber: aws.String("1")}, nil
}

type mockClients struct {
	sns     *mockSNS
	kinesis *mockKinesis
	regions []string
}

func newMockClients() *mockClients {
	return &mockClients{sns: &mockSNS{}, kinesis: &mockKinesis{}}
}

func (m *mockClients) SNS(region string) Publisher {
	m.regions = append(m.regions, region)
	return m.sns
}

func (m *mockClients) Kinesis(region string) Putter {
	m.regions = append(m.regions, region)
	return m.kinesis
}

const message = `{"identifier":"abc","response":{"status":"SUCCESS"}}`

func TestDispatch(t *testing.T) {

	tt := []struct {
		name    string
		method  string
		snsErr  error
		kinErr  error
		sns     []*sns.PublishInput
		kinesis []*kinesis.PutRecordInput
		regions []string
		err     string
	}{
		{
			name:    "sns",
			method:  "sns",
			sns:     []*sns.PublishInput{{TopicArn: aws.String("arn:aws:sns:us-west-2:123456789012:cnm"), Message: aws.String(message)}},
			regions: []string{"us-west-2"},
		},
		{
			name:   "kinesis",
			method: "kinesis",
			kinesis: []*kinesis.PutRecordInput{{
				StreamName:   aws.String("arn:aws:sns:us-west-2:123456789012:cnm"),
				PartitionKey: aws.String("1"),
				Data:         []byte(message),
			}},
			regions: []string{"us-west-2"},
		},
		{name: "unrecognised", method: "carrier-pigeon"},
		{name: "unset", method: ""},
		{name: "case sensitive", method: "SNS"},
		{
			name:    "sns failure",
			method:  "sns",
			snsErr:  errors.New("throttled"),
			sns:     []*sns.PublishInput{{TopicArn: aws.String("arn:aws:sns:us-west-2:123456789012:cnm"), Message: aws.String(message)}},
			regions: []string{"us-west-2"},
			err:     "failed to publish to arn:aws:sns:us-west-2:123456789012:cnm: throttled",
		},
		{
			name:   "kinesis failure",
			method: "kinesis",
			kinErr: errors.New("no such stream"),
			kinesis: []*kinesis.PutRecordInput{{
				StreamName:   aws.String("arn:aws:sns:us-west-2:123456789012:cnm"),
				PartitionKey: aws.String("1"),
				Data:         []byte(message),
			}},
			regions: []string{"us-west-2"},
			err:     "failed to put record to",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {

			mc := newMockClients()
			mc.sns.err = tc.snsErr
			mc.kinesis.err = tc.kinErr

			err := NewDispatcher(mc).Dispatch(tc.method, "us-west-2", "arn:aws:sns:us-west-2:123456789012:cnm", message)
			if err != nil {
				if tc.err == "" {
					t.Fatalf("unexpected error: %v", err)
				}
				if msg := err.Error(); !strings.Contains(msg, tc.err) {
					t.Errorf("expected error %q, got: %q", tc.err, msg)
				}
			} else if tc.err != "" {
				t.Fatalf("expected error %q, got none", tc.err)
			}

			if diff := cmp.Diff(tc.sns, mc.sns.inputs); diff != "" {
				t.Errorf("unexpected sns calls (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.kinesis, mc.kinesis.inputs); diff != "" {
				t.Errorf("unexpected kinesis calls (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.regions, mc.regions); diff != "" {
				t.Errorf("unexpected regions (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSender(t *testing.T) {
	c := require.New(t)
	d := NewDispatcher(newMockClients())

	s, ok := d.Sender("sns", "us-east-1")
	c.True(ok)
	c.IsType(&TopicSender{}, s)

	s, ok = d.Sender("kinesis", "us-east-1")
	c.True(ok)
	c.IsType(&StreamSender{}, s)

	s, ok = d.Sender("sqs", "us-east-1")
	c.False(ok)
	c.Nil(s)
}

func TestSessionClients(t *testing.T) {
	c := require.New(t)

	sess := session.Must(session.NewSession(&aws.Config{
		Region:      aws.String("us-east-1"),
		Credentials: credentials.NewStaticCredentials("id", "secret", ""),
	}))

	plain := NewSessionClients(sess, "")
	svc, ok := plain.SNS("us-west-2").(*sns.SNS)
	c.True(ok)
	c.Equal("us-west-2", aws.StringValue(svc.Config.Region))

	local := NewSessionClients(sess, "http://localhost:4566")
	kin, ok := local.Kinesis("us-west-2").(*kinesis.Kinesis)
	c.True(ok)
	c.Equal("us-west-2", aws.StringValue(kin.Config.Region))
	c.Equal("http://localhost:4566", aws.StringValue(kin.Config.Endpoint))
}
