package retrieval

import "github.com/astrodine/menusearch/core"

// Monitor observes the stages of one retrieval invocation. Implementations
// must not block; every callback runs on the invocation's goroutine.
// All methods are optional in spirit: NoopMonitor is embedded by convention
// so implementations only override what they watch.
type Monitor interface {
	// OnExtraction fires after the filter and semantic query are derived.
	OnExtraction(question string, extraction Extraction)

	// OnAttempt fires after each store query, before verification.
	// filtered is true for the first attempt, false for the fallback.
	OnAttempt(question string, filtered bool, hits []core.SearchHit)

	// OnVerified fires after each verification pass with the surviving names.
	OnVerified(question string, filtered bool, names []string)

	// OnFailure fires when an attempt is abandoned because a collaborator
	// call failed. The invocation still returns an empty result normally.
	OnFailure(question string, err error)
}

// NoopMonitor is a Monitor that ignores everything.
type NoopMonitor struct{}

func (NoopMonitor) OnExtraction(string, Extraction)          {}
func (NoopMonitor) OnAttempt(string, bool, []core.SearchHit) {}
func (NoopMonitor) OnVerified(string, bool, []string)        {}
func (NoopMonitor) OnFailure(string, error)                  {}
