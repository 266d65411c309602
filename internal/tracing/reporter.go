package tracing

import (
	"cmp"
	"fmt"
	"go/token"
	"io"
	"slices"
	"sync"

	"github.com/sirkon/absint/internal/absrules"
)

// Reporter collects findings of analyses that may run concurrently.
type Reporter struct {
	mu      sync.Mutex
	reports []Report
}

// Report represents a single diagnostic entry.
type Report struct {
	Phase    ReportPhase
	RuleCode absrules.Rule
	Pos      token.Position
	Message  string
	Details  any
}

// ReportPhase marks the stage where a report was generated.
type ReportPhase int

const (
	reportPhaseInvalid ReportPhase = iota
	ReportSource                   // AST collection phase
	ReportTrace                    // SSA interpretation
	ReportState                    // checks over stable states
)

func (p ReportPhase) String() string {
	switch p {
	case ReportSource:
		return "source"
	case ReportTrace:
		return "trace"
	case ReportState:
		return "state"
	default:
		return fmt.Sprintf("unknown-phase(%d)", p)
	}
}

// ReporterPhase binds a Reporter to a fixed phase.
type ReporterPhase struct {
	parent *Reporter
	phase  ReportPhase
}

// Phase returns a reporter that sets the given phase for all reports produced through it.
func (r *Reporter) Phase(p ReportPhase) *ReporterPhase {
	return &ReporterPhase{parent: r, phase: p}
}

// Report adds a new record to the reporter.
func (r *Reporter) Report(rep Report) {
	r.mu.Lock()
	r.reports = append(r.reports, rep)
	r.mu.Unlock()
}

// Report records a new rule violation under the bound phase.
func (rp *ReporterPhase) Report(rule absrules.Rule, message string, pos token.Position) {
	rp.parent.Report(Report{
		Phase:    rp.phase,
		RuleCode: rule,
		Message:  message,
		Pos:      pos,
	})
}

// Reports returns a snapshot of all collected records.
func (r *Reporter) Reports() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Report, len(r.reports))
	copy(out, r.reports)
	return out
}

// Sorted returns a snapshot ordered by position.
func (r *Reporter) Sorted() []Report {
	out := r.Reports()
	slices.SortStableFunc(out, func(a, b Report) int {
		if c := cmp.Compare(a.Pos.Filename, b.Pos.Filename); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Pos.Line, b.Pos.Line); c != 0 {
			return c
		}
		return cmp.Compare(a.Pos.Column, b.Pos.Column)
	})
	return out
}

// PrintSummary prints all collected reports in a compact, human-readable form.
func (r *Reporter) PrintSummary(w io.Writer) error {
	for _, rep := range r.Sorted() {
		if _, err := fmt.Fprintf(w, "%s:%d:%d: [%s] %s: %s\n",
			rep.Pos.Filename,
			rep.Pos.Line,
			rep.Pos.Column,
			rep.Phase,
			rep.RuleCode.Code(),
			rep.Message,
		); err != nil {
			return err
		}
	}
	return nil
}
