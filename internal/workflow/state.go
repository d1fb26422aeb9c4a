package workflow

// AccessState is the lock axis of the controller. It only ever moves from
// Locked to Unlocked within a process.
type AccessState int

const (
	Locked AccessState = iota
	Unlocked
)

func (s AccessState) String() string {
	switch s {
	case Locked:
		return "locked"
	case Unlocked:
		return "unlocked"
	}
	return "unknown"
}

// PendingState tracks the single unsaved face slot.
type PendingState int

const (
	// Idle means there is no pending face.
	Idle PendingState = iota
	// AwaitingImage means an image transfer from the picker is in flight.
	AwaitingImage
	// AwaitingName means a pending face holds image bytes and waits for a name.
	AwaitingName
)

func (s PendingState) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingImage:
		return "awaiting_image"
	case AwaitingName:
		return "awaiting_name"
	}
	return "unknown"
}

// Alert is a user-visible message raised by the controller.
type Alert struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}
