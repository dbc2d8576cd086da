package domain

import "net/http"

// OutcomeKind enumerates what the transport must do with a response.
type OutcomeKind int

const (
	// OutcomePass delivers the response to the caller unchanged.
	OutcomePass OutcomeKind = iota
	// OutcomeRetry replays Request once.
	OutcomeRetry
	// OutcomeFail delivers Err to the caller.
	OutcomeFail
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomePass:
		return "pass"
	case OutcomeRetry:
		return "retry"
	case OutcomeFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Outcome is the decision taken for one response.
type Outcome struct {
	Kind     OutcomeKind
	Response *http.Response
	Request  OutgoingRequest
	Err      error
}

// Pass builds a pass-through outcome.
func Pass(resp *http.Response) Outcome {
	return Outcome{Kind: OutcomePass, Response: resp}
}

// Retry builds a replay outcome.
func Retry(req OutgoingRequest) Outcome {
	return Outcome{Kind: OutcomeRetry, Request: req}
}

// Fail builds a failure outcome.
func Fail(err error) Outcome {
	return Outcome{Kind: OutcomeFail, Err: err}
}
