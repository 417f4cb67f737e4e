package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// MethodTracer times a method call as a segment of the New Relic transaction
// in its context, and records the call's duration as a metric when ended.
//
// A nil MethodTracer is valid and does nothing, so callers never need to
// check whether tracing is enabled.
type MethodTracer struct {
	ctx   context.Context
	name  string
	start time.Time
	txn   *newrelic.Transaction
	seg   *newrelic.Segment
}

// TraceMethodCall starts tracing structOrPackageName.methodName. It returns nil
// when ctx carries no New Relic transaction.
func TraceMethodCall(ctx context.Context, structOrPackageName, methodName string) *MethodTracer {
	txn := newrelic.FromContext(ctx)
	if txn == nil {
		return nil
	}

	name := fmt.Sprintf("%s %s", structOrPackageName, methodName)
	return &MethodTracer{
		ctx:   ctx,
		name:  name,
		start: time.Now(),
		txn:   txn,
		seg:   txn.StartSegment(name),
	}
}

func (t *MethodTracer) AddAttribute(key string, value interface{}) {
	if t == nil {
		return
	}
	t.seg.AddAttribute(key, value)
}

func (t *MethodTracer) AddAttributes(attributes map[string]interface{}) {
	if t == nil {
		return
	}
	for key, value := range attributes {
		t.seg.AddAttribute(key, value)
	}
}

// OnError notices err on the transaction. Nil errors are ignored.
func (t *MethodTracer) OnError(err error) {
	if t == nil || err == nil {
		return
	}
	t.txn.NoticeError(err)
}

// End closes the segment and records the call's duration.
func (t *MethodTracer) End() {
	if t == nil {
		return
	}
	t.seg.End()
	RecordDuration(t.ctx, t.name+" duration", time.Since(t.start))
}
