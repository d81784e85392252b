package uplift

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	correctionScore      = "score"
	correctionImportance = "importance"
	correctionAllocation = "allocation"
)

var (
	UpliftComputationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uplift_computations_total",
			Help: "Count of uplift computations by outcome (ok, input_error, scaling_error, scoring_error, allocation_error).",
		},
		[]string{"outcome"},
	)

	UpliftCorrectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uplift_degeneracy_corrections_total",
			Help: "Count of degeneracy corrections applied by kind (score, importance, allocation).",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(UpliftComputationsTotal, UpliftCorrectionsTotal)
}
