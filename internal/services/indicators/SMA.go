package indicators

// SMAService provides simple moving average calculations over daily closes.
type SMAService struct{}

// NewSMAService creates a new SMA service instance
func NewSMAService() *SMAService {
	return &SMAService{}
}

// Calculate computes the rolling mean of values with the given window.
// Early rows average whatever history is available (minimum one observation),
// matching how the feature columns are defined for the rule evaluator.
func (s *SMAService) Calculate(values []float64, window int) []float64 {
	if len(values) == 0 || window <= 0 {
		return nil
	}

	out := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		count := i + 1
		if count > window {
			count = window
		}
		out[i] = sum / float64(count)
	}
	return out
}
