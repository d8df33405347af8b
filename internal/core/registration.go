package core

// Commit is what a Builder hands its mock when a terminal call ends it.
type Commit struct {
	Method     string
	Conditions []Condition
	Fault      *Fault
	Value      any
	Outputs    map[string]any
}

// Fault is a configured failure that pre-empts any return for its key.
type Fault struct {
	Err   error
	Panic any

	panics bool
}

// Registration is one stored behavior, keyed by the bare method name or by
// the method name composed with the hash of its condition set.
type Registration struct {
	Key     string
	Outputs map[string]any

	thunk    func() any
	property bool
}

// Value runs the registration's thunk.
func (r *Registration) Value() any {
	if r.thunk == nil {
		return nil
	}

	return r.thunk()
}

// raise returns the fault's error, or panics with its value.
func (f Fault) raise() error {
	if f.panics {
		panic(f.Panic)
	}

	return f.Err
}

func constant(value any) func() any {
	return func() any { return value }
}
