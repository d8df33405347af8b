package core

import "github.com/eapache/queue"

// Call records a single invocation and the key it resolved to.
type Call struct {
	Method string
	Key    string
	Args   []any
}

// Calls returns recorded invocations of method, oldest first.
// An empty method returns every recorded call.
func (m *Mock) Calls(method string) []Call {
	return m.history.filter(method)
}

// history keeps the most recent calls, dropping the oldest past its limit.
type history struct {
	calls *queue.Queue
	limit int
}

func newHistory(limit int) *history {
	return &history{calls: queue.New(), limit: limit}
}

func (h *history) filter(method string) []Call {
	var out []Call

	for i := range h.calls.Length() {
		call, ok := h.calls.Get(i).(Call)
		if !ok {
			continue
		}

		if method == "" || call.Method == method {
			out = append(out, call)
		}
	}

	return out
}

func (h *history) record(call Call) {
	if h.limit <= 0 {
		return
	}

	h.calls.Add(call)

	for h.calls.Length() > h.limit {
		h.calls.Remove()
	}
}
