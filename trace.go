package launch

import (
	"encoding/json"

	"github.com/google/uuid"
)

// ResolutionTrace captures provenance for a single binary resolution across
// the lookup sources that were probed.
type ResolutionTrace struct {
	Binary     string  `json:"binary"`
	SnapshotID string  `json:"snapshot_id,omitempty"`
	Probes     []Probe `json:"probes"`
}

// Probe details how one lookup source contributed to a resolution.
type Probe struct {
	Source    string `json:"source"`
	Candidate string `json:"candidate,omitempty"`
	Found     bool   `json:"found"`
}

// NewResolutionTrace starts an empty trace for binary with a fresh snapshot
// identifier.
func NewResolutionTrace(binary string) ResolutionTrace {
	return ResolutionTrace{
		Binary:     binary,
		SnapshotID: uuid.NewString(),
	}
}

// Record appends a probe result in resolution order.
func (t *ResolutionTrace) Record(source, candidate string, found bool) {
	t.Probes = append(t.Probes, Probe{
		Source:    source,
		Candidate: candidate,
		Found:     found,
	})
}

// SourceNames returns the probed source names in the order they were tried.
func (t ResolutionTrace) SourceNames() []string {
	if len(t.Probes) == 0 {
		return nil
	}
	names := make([]string, 0, len(t.Probes))
	for _, probe := range t.Probes {
		names = append(names, probe.Source)
	}
	return names
}

// ToJSON serialises the trace into JSON for logging or transport helpers.
func (t ResolutionTrace) ToJSON() ([]byte, error) {
	type alias ResolutionTrace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a JSON payload that was previously generated via
// ToJSON.
func TraceFromJSON(payload []byte) (ResolutionTrace, error) {
	type alias ResolutionTrace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return ResolutionTrace{}, err
	}
	return ResolutionTrace(trace), nil
}
