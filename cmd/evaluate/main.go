package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/careloop/backend/internal/application/services"
	"github.com/careloop/backend/internal/evaluation"
)

// Runs the golden-case evaluation against the local assistant layers (keyword
// responder and rule-based triage). No network, database or API keys needed.
func main() {
	casesPath := flag.String("cases", "config/golden_cases.json", "path to the golden cases JSON file")
	flag.Parse()

	cases, err := evaluation.LoadGoldenCases(*casesPath)
	if err != nil {
		log.Fatalf("Failed to load golden cases: %v", err)
	}
	if err := evaluation.ValidateGoldenCases(cases); err != nil {
		log.Fatalf("Invalid golden cases: %v", err)
	}

	chat := services.NewChatService(services.NewKeywordResponder(), nil, nil)
	triage := services.NewTriageService(nil, nil)

	runner := evaluation.NewRunner(chat, triage)
	summary, err := runner.Run(context.Background(), cases)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}

	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))
}
