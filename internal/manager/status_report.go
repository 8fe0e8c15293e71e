package manager

import (
	"time"

	"sdx/pkg/types"
)

// Status builds the /status payload. It never waits on the gate.
func (m *Manager) Status() types.StatusResponse {
	m.mu.Lock()
	st := m.stats
	m.mu.Unlock()

	sanity := m.SanityCheck()
	now := time.Now()
	resp := types.StatusResponse{
		State:             "idle",
		GateBusy:          m.gate.Busy(),
		Waiters:           m.gate.Waiters(),
		GenerationsTotal:  st.total,
		GenerationsFailed: st.failed,
		ImagesTotal:       st.images,
		LastError:         st.lastError,
		LastModel:         st.lastModel,
		Models:            m.reg.Len(),
		ExecutableFound:   sanity.ExecutableFound,
		MissingWeights:    len(sanity.MissingPaths),
		UptimeSeconds:     int64(now.Sub(m.startTime).Seconds()),
		ServerTimeUnix:    now.Unix(),
	}
	if !st.lastErrorAt.IsZero() {
		resp.LastErrorUnix = st.lastErrorAt.Unix()
	}
	if resp.GateBusy {
		resp.State = "busy"
	}
	return resp
}
