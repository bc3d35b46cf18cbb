package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew_RegistersWithoutPanic(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordClassification("rule", "locker")
	m.RecordDispatch("locker", "answered", 0.01)
	m.RecordResolve("locations", "exact_name")
	m.RecordConversation("started")
	m.SetConversationActive(1)
	m.RecordQABackend("remote", "success", 0.5)
	m.RecordRateLimiterDrop("user")

	if got := testutil.ToFloat64(m.ClassificationsTotal.WithLabelValues("rule", "locker")); got != 1 {
		t.Errorf("classifications counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.DispatchTotal.WithLabelValues("locker", "answered")); got != 1 {
		t.Errorf("dispatch counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ConversationActive); got != 1 {
		t.Errorf("conversation gauge = %v, want 1", got)
	}
}

func TestNilReceiverSafe(t *testing.T) {
	var m *Metrics
	// All record helpers must be no-ops on nil, handlers pass nil in tests.
	m.RecordClassification("rule", "qa")
	m.RecordDispatch("qa", "failed", 0)
	m.RecordResolve("faq", "none")
	m.RecordConversation("consumed")
	m.SetConversationActive(0)
	m.RecordQABackend("bm25", "error", 0)
	m.RecordRateLimiterDrop("user")
}
