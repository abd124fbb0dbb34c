// Package runstore keeps a history of runs found by builds.
package runstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	tm "github.com/comalice/turingmachines"
)

// RunRecord summarises one run of a machine.
type RunRecord struct {
	SchemaVersion int       `json:"schemaVersion"`
	ID            string    `json:"id"`
	MachineID     string    `json:"machineId"`
	Accepting     bool      `json:"accepting"`
	States        []string  `json:"states"`
	Transitions   []string  `json:"transitions"`
	Steps         int       `json:"steps"`
	Iterations    int       `json:"iterations"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewRunRecord records p, a run of m. State names are listed per
// configuration and transitions by their String form.
func NewRunRecord(m *tm.TuringMachine, p *tm.Path) RunRecord {
	r := RunRecord{
		SchemaVersion: CurrentSchemaVersion,
		ID:            uuid.NewString(),
		MachineID:     m.ID(),
		Accepting:     p.Accepting,
		Steps:         p.Len(),
		Iterations:    p.Iterations,
		CreatedAt:     time.Now().UTC(),
	}
	for _, c := range p.Configurations {
		r.States = append(r.States, m.StateName(c.State))
	}
	for _, t := range p.Transitions {
		r.Transitions = append(r.Transitions, t.String())
	}
	return r
}

// Store persists run records.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run RunRecord) error
	GetRun(ctx context.Context, id string) (RunRecord, bool, error)
	// ListRuns returns the runs of a machine, oldest first. An empty
	// machineID lists every run.
	ListRuns(ctx context.Context, machineID string) ([]RunRecord, error)
}
