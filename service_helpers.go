package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"statlab/internal/analysis"
)

const workerClass = "StatlabWorker"

type sidekiqJob struct {
	Class string            `json:"class"`
	Args  []json.RawMessage `json:"args"`
	Queue string            `json:"queue"`
	JID   string            `json:"jid"`
}

// analysisJob is a decoded request to run one analysis.
type analysisJob struct {
	JID   string
	Kind  analysis.Kind
	Input string
}

// parseJob decodes a Sidekiq payload of the form
// {"class":"StatlabWorker","args":["<kind>","<input path>"]}.
func parseJob(payload string) (analysisJob, error) {
	var job sidekiqJob
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		return analysisJob{}, fmt.Errorf("invalid job json: %w", err)
	}
	if job.Class != workerClass {
		return analysisJob{}, fmt.Errorf("unsupported job class %q", job.Class)
	}
	if len(job.Args) < 2 {
		return analysisJob{}, fmt.Errorf("job needs [kind, input] args, got %d", len(job.Args))
	}
	rawKind, err := parseStringArg(job.Args[0])
	if err != nil {
		return analysisJob{}, fmt.Errorf("kind: %w", err)
	}
	kind, err := analysis.ParseKind(rawKind)
	if err != nil {
		return analysisJob{}, err
	}
	input, err := parseStringArg(job.Args[1])
	if err != nil {
		return analysisJob{}, fmt.Errorf("input: %w", err)
	}
	return analysisJob{JID: job.JID, Kind: kind, Input: input}, nil
}

// parseStringArg extracts a non-empty string from a Sidekiq payload argument.
// Numbers are accepted and rendered in their shortest decimal form.
func parseStringArg(raw json.RawMessage) (string, error) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if asString == "" {
			return "", fmt.Errorf("empty string")
		}
		return asString, nil
	}

	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return strconv.FormatFloat(asNumber, 'f', -1, 64), nil
	}

	return "", fmt.Errorf("unsupported arg: %s", string(raw))
}
