package main

// --- STATE MANAGEMENT ---

// attemptStatus is the progress of application bootstrap.
type attemptStatus string

const (
	attemptProcessing attemptStatus = "processing"
	attemptSuccess    attemptStatus = "success"
	attemptFailed     attemptStatus = "failed"
)

func (s attemptStatus) String() string {
	switch s {
	case attemptProcessing:
		return "⏳ Initializing..."
	case attemptSuccess:
		return "✅ Ready"
	case attemptFailed:
		return "🔥 Failed"
	default:
		return "❓ Unknown"
	}
}

// InitAttempt is a snapshot of the bootstrap status. The store owns it; the
// shell only reads it.
type InitAttempt struct {
	Status  attemptStatus
	Message string
}

func (a InitAttempt) IsProcessing() bool { return a.Status == attemptProcessing }
func (a InitAttempt) IsSuccess() bool    { return a.Status == attemptSuccess }
func (a InitAttempt) IsFailed() bool     { return a.Status == attemptFailed }

func processingAttempt() InitAttempt { return InitAttempt{Status: attemptProcessing} }
func successAttempt() InitAttempt    { return InitAttempt{Status: attemptSuccess} }

func failedAttempt(message string) InitAttempt {
	return InitAttempt{Status: attemptFailed, Message: message}
}

// notificationLevel controls how a notification is styled.
type notificationLevel int

const (
	levelInfo notificationLevel = iota
	levelWarning
	levelError
)

func (l notificationLevel) String() string {
	return [...]string{"ℹ️ Info", "⚠️ Warning", "🔥 Error"}[l]
}
