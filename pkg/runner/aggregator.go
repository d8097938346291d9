package runner

// Failure pairs a failed step's position with its error detail.
type Failure struct {
	Index int
	Err   error
}

// Summary is the run's aggregate outcome.
type Summary struct {
	Total    int
	Passed   int
	Failed   int
	Failures []Failure
}

// OK reports the overall verdict: true only if every step passed.
func (s Summary) OK() bool {
	return s.Failed == 0
}

// Aggregator accumulates per-step outcomes across the run.
type Aggregator struct {
	total    int
	passed   int
	failures []Failure
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Record adds one step's outcome.
func (a *Aggregator) Record(index int, result StepResult) {
	a.total++
	if result.OK {
		a.passed++
		return
	}
	a.failures = append(a.failures, Failure{Index: index, Err: result.Err})
}

// Summarize derives the aggregate verdict. Failures keep declaration order.
func (a *Aggregator) Summarize() Summary {
	return Summary{
		Total:    a.total,
		Passed:   a.passed,
		Failed:   len(a.failures),
		Failures: a.failures,
	}
}
