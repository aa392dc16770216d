// Package telemetry publishes operational metrics to CloudWatch.
package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"golfphysics/internal/types"
)

// CloudWatchClient abstracts the CloudWatch PutMetricData operation for
// testability. Production code uses the *cloudwatch.Client from aws-sdk-go-v2.
type CloudWatchClient interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// publishTimeout bounds a metric publish so telemetry never holds a request
// goroutine hostage.
const publishTimeout = 2 * time.Second

// Collector emits metrics to CloudWatch. Publishing is best effort: failures
// are logged and dropped. It implements both the core.MetricsCollector
// middleware interface and types.MetricsCollector used by domain code.
type Collector struct {
	client    CloudWatchClient
	namespace string
	logger    *slog.Logger
}

// NewCollector creates a collector publishing under the given namespace.
// An empty namespace falls back to the service default.
func NewCollector(client CloudWatchClient, namespace string, logger *slog.Logger) *Collector {
	if namespace == "" {
		namespace = types.MetricNamespace
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{
		client:    client,
		namespace: namespace,
		logger:    logger,
	}
}

// Count emits a count metric with the given dimensions.
func (c *Collector) Count(ctx context.Context, name string, value float64, dims map[string]string) {
	c.publish(ctx, cwtypes.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(value),
		Unit:       cwtypes.StandardUnitCount,
		Dimensions: toDimensions(dims),
	})
}

// Timing emits a latency metric in milliseconds.
func (c *Collector) Timing(ctx context.Context, name string, d time.Duration, dims map[string]string) {
	c.publish(ctx, cwtypes.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(float64(d.Milliseconds())),
		Unit:       cwtypes.StandardUnitMilliseconds,
		Dimensions: toDimensions(dims),
	})
}

// RecordRequest publishes the per-request middleware metrics: a request
// count, a latency datum, and an error count for 5xx statuses. All three
// carry the Endpoint and Status dimensions.
func (c *Collector) RecordRequest(method, endpoint, status string, duration time.Duration) {
	ctx := context.Background()
	dims := map[string]string{
		types.DimEndpoint: method + " " + endpoint,
		types.DimStatus:   status,
	}

	c.Count(ctx, types.MetricAPIRequest, 1, dims)
	c.Timing(ctx, types.MetricAPILatency, duration, dims)

	if len(status) > 0 && status[0] == '5' {
		c.Count(ctx, types.MetricAPIError, 1, dims)
	}
}

func (c *Collector) publish(ctx context.Context, datum cwtypes.MetricDatum) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(c.namespace),
		MetricData: []cwtypes.MetricDatum{datum},
	}

	if _, err := c.client.PutMetricData(pubCtx, input); err != nil {
		c.logger.WarnContext(ctx, "failed to publish metric",
			"metric", aws.ToString(datum.MetricName),
			"error", err,
		)
	}
}

func toDimensions(dims map[string]string) []cwtypes.Dimension {
	if len(dims) == 0 {
		return nil
	}
	out := make([]cwtypes.Dimension, 0, len(dims))
	for k, v := range dims {
		out = append(out, cwtypes.Dimension{
			Name:  aws.String(k),
			Value: aws.String(v),
		})
	}
	return out
}
