package metrics_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/outreach-crm/outreach-api/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordTodo(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.RecordTodo(4, 1, 2)
	m.RecordTodoFailure()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.TodoComputations.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TodoComputations.WithLabelValues("error")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.TodoContacts.WithLabelValues("due_today")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TodoContacts.WithLabelValues("rollover")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TodoContacts.WithLabelValues("next_business_day")))
}

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.RecordHTTPRequest(http.MethodGet, "/api/v1/todo", http.StatusOK, 15*time.Millisecond)
	m.RecordHTTPRequest(http.MethodGet, "/api/v1/todo", http.StatusOK, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/todo", "200")))
}

func TestMetrics_LoginAndOutreach(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.RecordLogin(true)
	m.RecordLogin(false)
	m.RecordLogin(false)
	m.RecordOutreach("call")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OutreachLogged.WithLabelValues("call")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.RecordTodo(1, 1, 1)
		m.RecordTodoFailure()
		m.RecordHTTPRequest("GET", "/", 200, time.Second)
		m.RecordLogin(true)
		m.RecordOutreach("email")
		m.RecordDigest("sent")
	})
}
