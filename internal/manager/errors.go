package manager

import "sdx/internal/sderr"

// outcomeOK labels a successful generation in metrics and events.
const outcomeOK = "ok"

// outcomeOf maps a pipeline error to a low-cardinality label.
func outcomeOf(err error) string {
	if err == nil {
		return outcomeOK
	}
	return sderr.KindOf(err).String()
}
