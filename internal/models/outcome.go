package models

// Outcome is either Closed with a Win/Loss result, or an open status
// (Running, Pending) that stands in for the result.
type Outcome struct {
	status Status
	result Result
}

// Closed returns the outcome of a finished trade.
func Closed(r Result) Outcome {
	return Outcome{status: StatusClosed, result: r}
}

// Open returns the outcome of a trade that has not been closed yet.
func Open(s Status) Outcome {
	return Outcome{status: s}
}

func (o Outcome) Status() Status { return o.status }

// Result is empty unless the outcome is closed.
func (o Outcome) Result() Result { return o.result }

func (o Outcome) IsClosed() bool { return o.status == StatusClosed }

func (o Outcome) IsWin() bool { return o.IsClosed() && o.result == ResultWin }

func (o Outcome) IsLoss() bool { return o.IsClosed() && o.result == ResultLoss }

// String renders the value stored in the result column.
func (o Outcome) String() string {
	if o.IsClosed() {
		return string(o.result)
	}
	return string(o.status)
}
