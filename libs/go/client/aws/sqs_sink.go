package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/ledgerprint/ledgerprint-api/libs/go/types/business"
	"github.com/pkg/errors"
)

// SQSAPI is the subset of the SQS client used by the sink
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSRowSink publishes each export call as one SQS message. Sheets map to queues;
// a sheet without its own queue uses the default queue.
type SQSRowSink struct {
	client       SQSAPI
	defaultQueue string
	queues       map[string]string
}

// NewSQSRowSink creates a sink from the default AWS configuration chain
func NewSQSRowSink(ctx context.Context, defaultQueueURL string, sheetQueues map[string]string) (*SQSRowSink, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return NewSQSRowSinkWithAPI(sqs.NewFromConfig(cfg), defaultQueueURL, sheetQueues), nil
}

// NewSQSRowSinkWithAPI wraps an existing SQS client
func NewSQSRowSinkWithAPI(client SQSAPI, defaultQueueURL string, sheetQueues map[string]string) *SQSRowSink {
	queues := make(map[string]string, len(sheetQueues))
	for sheet, url := range sheetQueues {
		if url != "" {
			queues[sheet] = url
		}
	}
	return &SQSRowSink{client: client, defaultQueue: defaultQueueURL, queues: queues}
}

func (s *SQSRowSink) queueFor(sheet string) string {
	if url, ok := s.queues[sheet]; ok {
		return url
	}
	return s.defaultQueue
}

// Append implements interfaces.RowSink
func (s *SQSRowSink) Append(ctx context.Context, sheet string, rows [][]any, timestamp time.Time) error {
	body, err := json.Marshal(business.NewExportPayload(sheet, rows, timestamp))
	if err != nil {
		return errors.Wrap(err, "failed to marshal export payload")
	}

	_, err = s.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.queueFor(sheet)),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"Sheet": {
				DataType:    aws.String("String"),
				StringValue: aws.String(sheet),
			},
			"RowCount": {
				DataType:    aws.String("Number"),
				StringValue: aws.String(strconv.Itoa(len(rows))),
			},
		},
	})
	if err != nil {
		return errors.Wrapf(err, "failed to publish %d rows for sheet %s", len(rows), sheet)
	}
	return nil
}
