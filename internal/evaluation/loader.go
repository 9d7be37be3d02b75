package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// LoadGoldenCases reads and parses a golden case set from a JSON file.
func LoadGoldenCases(path string) ([]GoldenCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read golden cases file: %w", err)
	}

	var cases []GoldenCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("failed to parse golden cases: %w", err)
	}

	return cases, nil
}

var validDifficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

var validUrgencies = map[string]bool{
	"HIGH":   true,
	"MEDIUM": true,
	"LOW":    true,
}

// ValidateGoldenCases checks that all golden cases have required fields and valid values.
func ValidateGoldenCases(cases []GoldenCase) error {
	seen := make(map[string]struct{}, len(cases))

	for i, c := range cases {
		if c.ID == "" {
			return fmt.Errorf("case at index %d: missing id", i)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("case at index %d: duplicate id %q", i, c.ID)
		}
		seen[c.ID] = struct{}{}

		if !c.Surface.IsValid() {
			return fmt.Errorf("case %q: invalid surface %q", c.ID, c.Surface)
		}
		if !validDifficulties[c.Difficulty] {
			return fmt.Errorf("case %q: invalid difficulty %q (must be easy/medium/hard)", c.ID, c.Difficulty)
		}

		switch c.Surface {
		case SurfaceChat:
			if c.Message == "" {
				return fmt.Errorf("case %q: chat case missing message", c.ID)
			}
			if c.ExpectTopic == "" && !c.ExpectEmergency {
				return fmt.Errorf("case %q: chat case needs expect_topic or expect_emergency", c.ID)
			}
		case SurfaceTriage:
			if c.MainSymptom == "" {
				return fmt.Errorf("case %q: triage case missing main_symptom", c.ID)
			}
			if !validUrgencies[strings.ToUpper(c.ExpectUrgency)] {
				return fmt.Errorf("case %q: invalid expect_urgency %q (must be HIGH/MEDIUM/LOW)", c.ID, c.ExpectUrgency)
			}
		}
	}

	return nil
}
