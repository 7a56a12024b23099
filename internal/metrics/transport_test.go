package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequest_RecordsCountDurationAndBytes(t *testing.T) {
	before := testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "/select", "200"))

	ObserveRequest("GET", "/select", 200, 0.01, 128)

	after := testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "/select", "200"))
	if after-before != 1 {
		t.Errorf("requests_total delta = %f, want 1", after-before)
	}
	if testutil.CollectAndCount(RequestDuration) == 0 {
		t.Error("expected request_duration_seconds to have observations")
	}
	if got := testutil.ToFloat64(ResponseBytes.WithLabelValues("/select")); got < 128 {
		t.Errorf("response_bytes_total = %f, want >= 128", got)
	}
}

func TestObserveRequest_NetworkFailure(t *testing.T) {
	ObserveRequest("POST", "/update", 0, 0.5, 0)
	if got := testutil.ToFloat64(RequestsTotal.WithLabelValues("POST", "/update", "error")); got < 1 {
		t.Errorf("requests_total{status=error} = %f, want >= 1", got)
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{0, "error"},
		{200, "200"},
		{503, "503"},
	}
	for _, tc := range tests {
		if got := StatusLabel(tc.code); got != tc.want {
			t.Errorf("StatusLabel(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestRegister_Twice(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := Register(reg); err != nil {
		t.Errorf("second register: %v", err)
	}
}
