package driver

// Status describes what happened to one file during a batch run.
type Status uint8

const (
	StatusQueued Status = iota
	StatusFormatting
	StatusDone
	StatusCached
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusFormatting:
		return "formatting"
	case StatusDone:
		return "done"
	case StatusCached:
		return "cached"
	case StatusError:
		return "error"
	}
	return ""
}

// Event is one progress update from a batch run. Consumers receive them in
// completion order, not collection order.
type Event struct {
	File   string
	Status Status
}
