// Package prover is the top-level orchestration spec.md §2 describes
// as "an external driver loads formulas into the tableau; initializes
// the hydra from the initial targets; calls the waterfall": it wires
// together the tableau, hydra tree, variable registry, moves engine,
// and waterfall scheduler into the single object a driver or library
// loader holds.
package prover

import (
	"time"

	"github.com/proofdroid/prover/pkg/diag"
	"github.com/proofdroid/prover/pkg/formula"
	"github.com/proofdroid/prover/pkg/hydra"
	"github.com/proofdroid/prover/pkg/moves"
	"github.com/proofdroid/prover/pkg/proverr"
	"github.com/proofdroid/prover/pkg/registry"
	"github.com/proofdroid/prover/pkg/tableau"
	"github.com/proofdroid/prover/pkg/waterfall"
)

// Config bounds one Automate run and controls diagnostic verbosity,
// per spec.md §5's "configurable move-count or wall-clock budget" and
// §6's silent-mode switch.
type Config struct {
	MoveBudget      int
	WallClockBudget time.Duration
	Silent          bool
}

// Prover bundles one proof attempt's state. A Prover is not safe for
// concurrent use (spec.md §5: single logical prover instance, no
// shared mutable state across threads).
type Prover struct {
	Tab   *tableau.Tableau
	Hydra *hydra.Tree
	Reg   *registry.Registry
	Moves *moves.Engine
	Log   *diag.Logger

	scheduler *waterfall.Scheduler
	loaded    bool
}

// New returns a Prover with an empty tableau and no hydra tree yet; the
// hydra tree requires the full initial target list, supplied via Load.
func New(cfg Config) (*Prover, error) {
	log, err := diag.New(cfg.Silent)
	if err != nil {
		return nil, err
	}
	return &Prover{
		Tab: tableau.New(),
		Reg: registry.New(),
		Log: log,
	}, nil
}

// NewSilent returns a Prover whose diagnostic sink discards everything,
// for callers (tests, library use) with no driver-level log stream.
func NewSilent() *Prover {
	return &Prover{
		Tab: tableau.New(),
		Reg: registry.New(),
		Log: diag.Noop(),
	}
}

// AddHypothesis appends f as a fresh, active hypothesis line and
// returns its index. Must be called before Load.
func (p *Prover) AddHypothesis(f *formula.Node) (int, error) {
	if p.loaded {
		return 0, proverr.NewStructural("AddHypothesis", "cannot add lines after Load")
	}
	just := tableau.Justification{Reason: tableau.ReasonHypothesis}
	return p.Tab.Append(tableau.NewHypothesis(f, just)), nil
}

// AddTarget appends f as a fresh, active target line, caching the
// negation of a deep copy of f in the line's Negation field. Must be
// called before Load.
func (p *Prover) AddTarget(f *formula.Node) (int, error) {
	if p.loaded {
		return 0, proverr.NewStructural("AddTarget", "cannot add lines after Load")
	}
	negation, err := formula.NegateNode(formula.DeepCopy(f), true)
	if err != nil {
		return 0, err
	}
	just := tableau.Justification{Reason: tableau.ReasonTarget}
	return p.Tab.Append(tableau.NewTarget(f, negation, just)), nil
}

// Load initializes the hydra tree from every target line appended so
// far (spec.md §2: "initializes the hydra from the initial targets")
// and builds the moves engine and waterfall scheduler. Load may only be
// called once; further hypotheses/targets belong to a new Prover. The
// scheduler starts with an unbounded Budget; Automate tightens it.
func (p *Prover) Load() error {
	if p.loaded {
		return proverr.NewStructural("Load", "already loaded")
	}
	var targets []int
	for i, line := range p.Tab.Lines {
		if line.Target {
			targets = append(targets, i)
		}
	}
	p.Hydra = hydra.New(targets)
	p.Moves = moves.New(p.Tab, p.Hydra, p.Reg)
	p.scheduler = waterfall.New(p.Tab, p.Hydra, p.Moves, p.Log, waterfall.Budget{})
	p.loaded = true
	return nil
}

// Automate runs the waterfall scheduler under cfg's budget and returns
// its terminal result. Load must have been called first.
func (p *Prover) Automate(cfg Config) (waterfall.Result, error) {
	if !p.loaded {
		return waterfall.Stuck, proverr.NewStructural("Automate", "Load must run before Automate")
	}
	p.Log.SetSilent(cfg.Silent)
	p.scheduler.Budget = waterfall.Budget{MaxPasses: cfg.MoveBudget, MaxWall: cfg.WallClockBudget}
	return p.scheduler.Run(), nil
}

// AddLibraryLine appends f as a fresh, active hypothesis line after
// Load, the shape a library record takes once parsed (spec.md §6:
// "each becomes a tableau line"). Unlike AddHypothesis/AddTarget this
// requires Load to have already run, since the cleanup pass that
// follows needs the moves engine and hydra tree built.
func (p *Prover) AddLibraryLine(f *formula.Node) (int, error) {
	if !p.loaded {
		return 0, proverr.NewStructural("AddLibraryLine", "Load must run before AddLibraryLine")
	}
	just := tableau.Justification{Reason: tableau.ReasonHypothesis}
	return p.Tab.Append(tableau.NewHypothesis(f, just)), nil
}

// Cleanup runs the full cleanup fixed point, the pass a loaded
// "theorem" record gets.
func (p *Prover) Cleanup() {
	p.scheduler.Cleanup()
}

// CleanupDefinition runs the reduced Skolemize/ME-only cleanup pass a
// loaded "definition" record gets.
func (p *Prover) CleanupDefinition(i int) {
	p.scheduler.CleanupDefinition(i)
}

// Proved is a convenience wrapper equivalent to checking
// Automate's result equals waterfall.Proved, matching spec.md §6's
// "exit status of the driver: 0 on proved, non-zero on stuck".
func Proved(result waterfall.Result) bool {
	return result == waterfall.Proved
}
