package waitdialog

// DialogResult is the close code of a modal dialog.
type DialogResult int

const (
	ResultNone DialogResult = iota
	ResultOK
	ResultCancel
)

func (r DialogResult) String() string {
	switch r {
	case ResultOK:
		return "OK"
	case ResultCancel:
		return "Cancel"
	default:
		return "None"
	}
}

// Outcome tells apart the ways a run can end. ResultCancel alone does not
// distinguish a user cancellation from a failure.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeSucceeded
	OutcomeCancelled
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Result returns the close code matching the outcome.
func (o Outcome) Result() DialogResult {
	switch o {
	case OutcomeSucceeded:
		return ResultOK
	case OutcomeCancelled, OutcomeFailed:
		return ResultCancel
	default:
		return ResultNone
	}
}

func classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSucceeded
	case IsCancelled(err):
		return OutcomeCancelled
	default:
		return OutcomeFailed
	}
}
