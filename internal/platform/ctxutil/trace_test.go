package ctxutil

import (
	"context"
	"testing"
)

func TestTraceData(t *testing.T) {
	ctx := context.Background()
	if GetTraceData(ctx) != nil || RequestID(ctx) != "" {
		t.Fatalf("empty context should carry no trace data")
	}
	ctx = WithTraceData(ctx, &TraceData{TraceID: "t1", RequestID: "r1"})
	if got := GetTraceData(ctx); got == nil || got.TraceID != "t1" {
		t.Fatalf("trace data=%+v", got)
	}
	if got := RequestID(ctx); got != "r1" {
		t.Fatalf("request id=%q", got)
	}
}
