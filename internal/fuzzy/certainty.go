package fuzzy

// Instantiate scales a rule confidence by its activation strength.
func Instantiate(confidence, activation float64) float64 {
	return confidence * activation
}

// Combine folds a new positive certainty factor into an accumulated one.
// Repeated application is equivalent to 1 - Π(1 - cf_i).
func Combine(old, next float64) float64 {
	return old + next*(1-old)
}
