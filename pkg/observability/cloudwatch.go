package observability

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// maxDatumsPerPut is the PutMetricData datum limit
const maxDatumsPerPut = 1000

// CloudWatchAPI is the subset of the CloudWatch API the recorder uses
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

var _ CloudWatchAPI = (*cloudwatch.Client)(nil)

// CloudWatchRecorder buffers analytics metrics and ships them on Flush.
// Lambda handlers flush once per invocation.
type CloudWatchRecorder struct {
	namespace string
	client    CloudWatchAPI
	logger    *zap.Logger
	now       func() time.Time

	mu      sync.Mutex
	pending []types.MetricDatum
}

// NewCloudWatchRecorder creates a recorder publishing under namespace
func NewCloudWatchRecorder(namespace string, client CloudWatchAPI, logger *zap.Logger) *CloudWatchRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CloudWatchRecorder{
		namespace: namespace,
		client:    client,
		logger:    logger,
		now:       time.Now,
	}
}

func (r *CloudWatchRecorder) add(name, dimName, dimValue string, value float64, unit types.StandardUnit) {
	if r.client == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, types.MetricDatum{
		MetricName: aws.String(name),
		Dimensions: []types.Dimension{{Name: aws.String(dimName), Value: aws.String(dimValue)}},
		Value:      aws.Float64(value),
		Unit:       unit,
		Timestamp:  aws.Time(r.now()),
	})
}

// RecordInsights implements ports.MetricsRecorder
func (r *CloudWatchRecorder) RecordInsights(kind string, count int) {
	r.add("InsightsGenerated", "Kind", kind, float64(count), types.StandardUnitCount)
}

// RecordAnalysisDuration implements ports.MetricsRecorder
func (r *CloudWatchRecorder) RecordAnalysisDuration(kind string, d time.Duration) {
	r.add("AnalysisDuration", "Kind", kind, float64(d.Microseconds())/1000, types.StandardUnitMilliseconds)
}

// RecordSkipped implements ports.MetricsRecorder
func (r *CloudWatchRecorder) RecordSkipped(reason string, count int) {
	if count <= 0 {
		return
	}
	r.add("RecordsSkipped", "Reason", reason, float64(count), types.StandardUnitCount)
}

// Pending reports how many datums wait for the next Flush
func (r *CloudWatchRecorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Flush sends the buffered datums. Datums of a failed put are dropped.
func (r *CloudWatchRecorder) Flush(ctx context.Context) error {
	r.mu.Lock()
	data := r.pending
	r.pending = nil
	r.mu.Unlock()

	if r.client == nil || len(data) == 0 {
		return nil
	}

	for start := 0; start < len(data); start += maxDatumsPerPut {
		end := min(start+maxDatumsPerPut, len(data))
		_, err := r.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(r.namespace),
			MetricData: data[start:end],
		})
		if err != nil {
			r.logger.Warn("Failed to publish metrics",
				zap.String("namespace", r.namespace),
				zap.Int("dropped", len(data)-start),
				zap.Error(err),
			)
			return err
		}
	}
	return nil
}
