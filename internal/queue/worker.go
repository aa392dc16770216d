package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"golfphysics/internal/config"
	"golfphysics/internal/external"
	"golfphysics/internal/types"
)

const (
	// maxDeliveryAttempts bounds re-publish cycles for a single job. After
	// this many failed sends the job is dropped with an error log.
	maxDeliveryAttempts = 3

	receiveWaitSeconds = 20
	receiveBatchSize   = 10
	retryBaseDelay     = 30 * time.Second
	maxSQSDelay        = 900 * time.Second
)

// SQSQueue is the slice of the SQS API the worker needs. Production code
// uses *sqs.Client.
type SQSQueue interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// EmailRenderer turns a queued job into a deliverable email.
// Implemented by email.Renderer.
type EmailRenderer interface {
	Render(job types.EmailJob) (external.Email, error)
}

// Worker is the email delivery loop. It long-polls the email queue, renders
// each job, and hands it to the provider. Transient send failures are
// re-published with an incremented retry count and a backoff delay rather
// than being left to the SQS visibility timeout, so one slow job never
// blocks the batch.
type Worker struct {
	queue    SQSQueue
	queueURL string
	renderer EmailRenderer
	provider external.EmailProvider
	logger   *slog.Logger
}

// NewWorker creates an email worker for the configured queue.
func NewWorker(queue SQSQueue, awsCfg config.AWSConfig, renderer EmailRenderer, provider external.EmailProvider, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		queue:    queue,
		queueURL: awsCfg.EmailQueueURL,
		renderer: renderer,
		provider: provider,
		logger:   logger,
	}
}

// Run polls until ctx is cancelled. Receive errors are logged and retried
// after a short pause so a transient SQS outage does not kill the process.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.InfoContext(ctx, "email worker polling", "queue_url", w.queueURL)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		out, err := w.queue.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(w.queueURL),
			MaxNumberOfMessages: receiveBatchSize,
			WaitTimeSeconds:     receiveWaitSeconds,
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			w.logger.ErrorContext(ctx, "receive from email queue failed", "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(5 * time.Second):
			}
			continue
		}

		for _, msg := range out.Messages {
			w.handleMessage(ctx, msg.Body, msg.ReceiptHandle)
		}
	}
}

// handleMessage processes one SQS message and always removes it from the
// queue afterwards. Retries happen through re-publish, never through
// redelivery of the original message.
func (w *Worker) handleMessage(ctx context.Context, body, receiptHandle *string) {
	if body != nil {
		w.processJob(ctx, []byte(*body))
	}
	w.deleteMessage(ctx, receiptHandle)
}

// ProcessBody runs the delivery pipeline for a raw message body. Split out
// from the polling loop for tests.
func (w *Worker) ProcessBody(ctx context.Context, body []byte) {
	w.processJob(ctx, body)
}

func (w *Worker) processJob(ctx context.Context, body []byte) {
	var job types.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		// Malformed body is permanent; retrying cannot fix it.
		w.logger.ErrorContext(ctx, "dropping unparseable email job", "error", err)
		return
	}

	logger := w.logger.With(
		"job_id", job.JobID,
		"kind", string(job.Kind),
		"request_id", job.RequestID,
		"retry_count", job.RetryCount,
	)

	rendered, err := w.renderer.Render(job)
	if err != nil {
		// Render failures are permanent too: the template set is static, so
		// a job that fails once fails forever.
		logger.ErrorContext(ctx, "dropping unrenderable email job", "error", err)
		return
	}

	messageID, err := w.provider.Send(ctx, rendered)
	if err != nil {
		w.retryJob(ctx, job, err, logger)
		return
	}

	logger.InfoContext(ctx, "email delivered",
		"to", job.ToEmail,
		"provider_message_id", messageID,
	)
}

// retryJob re-publishes a failed job with backoff, or drops it once the
// attempt budget is spent.
func (w *Worker) retryJob(ctx context.Context, job types.EmailJob, sendErr error, logger *slog.Logger) {
	if job.RetryCount+1 >= maxDeliveryAttempts {
		logger.ErrorContext(ctx, "email delivery failed permanently",
			"to", job.ToEmail,
			"error", sendErr,
		)
		return
	}

	job.RetryCount++
	delay := retryBaseDelay * time.Duration(job.RetryCount)
	if delay > maxSQSDelay {
		delay = maxSQSDelay
	}

	body, err := json.Marshal(job)
	if err != nil {
		logger.ErrorContext(ctx, "failed to marshal retry job", "error", err)
		return
	}

	_, err = w.queue.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:     aws.String(w.queueURL),
		MessageBody:  aws.String(string(body)),
		DelaySeconds: int32(delay.Seconds()),
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to re-publish email job for retry",
			"error", err,
			"send_error", sendErr,
		)
		return
	}

	logger.WarnContext(ctx, "email delivery retry scheduled",
		"delay_seconds", int(delay.Seconds()),
		"error", sendErr,
	)
}

func (w *Worker) deleteMessage(ctx context.Context, receiptHandle *string) {
	if receiptHandle == nil {
		return
	}
	_, err := w.queue.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(w.queueURL),
		ReceiptHandle: receiptHandle,
	})
	if err != nil {
		w.logger.ErrorContext(ctx, "failed to delete processed message", "error", err)
	}
}
