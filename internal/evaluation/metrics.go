package evaluation

// Accuracy computes the fraction of results marked correct.
// Returns 0.0 for an empty result set.
func Accuracy(results []CaseResult) float64 {
	if len(results) == 0 {
		return 0.0
	}

	correct := 0
	for _, r := range results {
		if r.Correct {
			correct++
		}
	}

	return float64(correct) / float64(len(results))
}

// EmergencyRecall computes the fraction of expected-emergency cases the
// assistant actually routed to the emergency path.
// Returns 0.0 when no case expects an emergency.
func EmergencyRecall(results []CaseResult) float64 {
	expected := 0
	caught := 0
	for _, r := range results {
		if !r.ExpectedEmergency {
			continue
		}
		expected++
		if r.GotEmergency {
			caught++
		}
	}

	if expected == 0 {
		return 0.0
	}

	return float64(caught) / float64(expected)
}
