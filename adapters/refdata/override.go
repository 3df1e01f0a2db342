package refdata

import "waradvisor/ports"

// WithMaxAdjustment returns a view of the dataset with the affinity bound
// replaced. Backs the MAX_ADJUSTMENT configuration override.
func WithMaxAdjustment(data ports.ReferenceData, bound float64) ports.ReferenceData {
	return maxAdjustmentOverride{ReferenceData: data, bound: bound}
}

type maxAdjustmentOverride struct {
	ports.ReferenceData
	bound float64
}

func (o maxAdjustmentOverride) MaxAdjustment() float64 {
	return o.bound
}
