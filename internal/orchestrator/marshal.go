package orchestrator

import (
	"encoding/json"

	"github.com/deployhub/orchestrator/internal/pipeline"
	"github.com/deployhub/orchestrator/internal/resource"
)

func marshalStepLog(log []resource.StepLogEntry) ([]byte, error) {
	return json.Marshal(log)
}

func marshalResults(r pipeline.Results) ([]byte, error) {
	return json.Marshal(r)
}
