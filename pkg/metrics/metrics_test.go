package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveCalculation(t *testing.T) {
	before := testutil.ToFloat64(CalculatedBarsMetrics.WithLabelValues("CCI"))
	ObserveCalculation("CCI", "openFilter", 120, 3*time.Millisecond)
	ObserveCalculation("CCI", "openFilter", 80, time.Millisecond)

	assert.Equal(t, before+200, testutil.ToFloat64(CalculatedBarsMetrics.WithLabelValues("CCI")))
	assert.Equal(t, 1, testutil.CollectAndCount(CalculationDurationMetrics, "indicore_calculation_duration_seconds"))
}

func TestObserveCacheHit(t *testing.T) {
	ObserveCacheHit("Trix Index", "closeFilter")
	ObserveCacheHit("Trix Index", "closeFilter")
	assert.Equal(t, 2.0, testutil.ToFloat64(CacheHitMetrics.WithLabelValues("Trix Index", "closeFilter")))
}

func TestWriteTextfile(t *testing.T) {
	SetLastSignal("Parabolic SAR", "openFilter", "AllowOpenLong", 1)

	file := filepath.Join(t.TempDir(), "indicore.prom")
	require.NoError(t, WriteTextfile(file))

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), `indicore_last_signal{indicator="Parabolic SAR",role="AllowOpenLong",slot="openFilter"} 1`)
}
