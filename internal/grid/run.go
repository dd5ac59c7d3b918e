package grid

import "time"

type RunStatus string

const (
	RunIdle      RunStatus = "idle"
	RunRunning   RunStatus = "running"
	RunStopped   RunStatus = "stopped"
	RunCompleted RunStatus = "completed"
)

func (s RunStatus) Label() string {
	switch s {
	case RunRunning:
		return "Processing"
	case RunStopped:
		return "Stopped"
	case RunCompleted:
		return "Done"
	default:
		return "Idle"
	}
}

const (
	TickInterval    = 200 * time.Millisecond
	LoadingDelay    = 500 * time.Millisecond
	ProgressStep    = 5
	ProgressMax     = 100
	InjectThreshold = 40
	InjectRowLimit  = 10
)

type TickResult struct {
	// Applied is false when the tick belonged to a run that is no longer live.
	Applied  bool
	Progress int
	Inject   bool
	Done     bool
}

// RunController simulates the enrichment job. It owns no timer: the caller
// schedules ticks and hands back the run id it got from Start, which lets a
// tick that was already in flight when Cancel ran be recognised and dropped.
type RunController struct {
	status   RunStatus
	progress int
	counter  int
	runID    int
	lastID   int
}

func NewRunController() *RunController {
	return &RunController{status: RunIdle}
}

func (c *RunController) Status() RunStatus {
	return c.status
}

func (c *RunController) Progress() int {
	return c.progress
}

func (c *RunController) Running() bool {
	return c.status == RunRunning
}

// RunID is the live run's id, or 0 when nothing is running.
func (c *RunController) RunID() int {
	return c.runID
}

// Start enters running from any other state. Progress carries over from
// the previous run.
func (c *RunController) Start() (int, bool) {
	if c.Running() {
		return c.runID, false
	}
	c.lastID++
	c.runID = c.lastID
	c.counter = c.progress
	c.status = RunRunning
	return c.runID, true
}

// Tick advances the run identified by runID. rowCount is the active
// sheet's row count as of this tick.
func (c *RunController) Tick(runID, rowCount int) TickResult {
	if !c.Running() || runID != c.runID || runID == 0 {
		return TickResult{Progress: c.progress}
	}
	c.counter += ProgressStep
	c.progress = min(c.counter, ProgressMax)

	res := TickResult{
		Applied:  true,
		Progress: c.progress,
		Inject:   c.counter > InjectThreshold && rowCount < InjectRowLimit,
	}
	if c.counter >= ProgressMax {
		c.status = RunCompleted
		c.runID = 0
		res.Done = true
	}
	return res
}

// Cancel stops a running run and leaves progress untouched. Calling it when
// nothing runs does nothing.
func (c *RunController) Cancel() bool {
	if !c.Running() {
		return false
	}
	c.status = RunStopped
	c.runID = 0
	return true
}

// EnrichedRow is the synthetic contact a run appends. The store assigns its
// id.
func EnrichedRow() Row {
	return Row{
		Name:     "Enriched User",
		Date:     "Just now",
		Company:  "Apple",
		Website:  "apple.com",
		LinkedIn: "linkedin/apple",
		Email:    "contact@apple.com",
		Status:   StatusFound,
	}
}
