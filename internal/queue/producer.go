// Package queue provides the SQS producer that hands transactional email
// jobs to the worker process.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqsTypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"golfphysics/internal/config"
	"golfphysics/internal/types"
)

// SQSSender abstracts the SQS SendMessage operation for testability.
// Production code uses the *sqs.Client from aws-sdk-go-v2.
type SQSSender interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// EmailProducer serializes EmailJob payloads onto the email queue. It
// implements the EmailEnqueuer interfaces declared by the handler and
// billing packages.
type EmailProducer struct {
	client   SQSSender
	queueURL string
	logger   *slog.Logger
}

// NewEmailProducer creates a producer for the configured email queue.
func NewEmailProducer(client SQSSender, awsCfg config.AWSConfig, logger *slog.Logger) *EmailProducer {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmailProducer{
		client:   client,
		queueURL: awsCfg.EmailQueueURL,
		logger:   logger,
	}
}

// Enqueue sends one email job. The kind rides along as a message attribute
// so queue dashboards can break traffic down without parsing bodies.
func (p *EmailProducer) Enqueue(ctx context.Context, job types.EmailJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("queue: failed to marshal EmailJob: %w", err)
	}

	input := &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]sqsTypes.MessageAttributeValue{
			"kind": {
				DataType:    aws.String("String"),
				StringValue: aws.String(string(job.Kind)),
			},
		},
	}

	if _, err := p.client.SendMessage(ctx, input); err != nil {
		return types.NewAppError(
			types.ErrCodeInternalQueue,
			fmt.Sprintf("failed to enqueue %s email", job.Kind),
			err,
		)
	}

	p.logger.InfoContext(ctx, "email job enqueued",
		"job_id", job.JobID,
		"kind", string(job.Kind),
		"request_id", job.RequestID,
	)

	return nil
}
