package tui

// errMsg carries an operation error into the update loop.
type errMsg struct {
	err error
}

// statusMsg carries a one-line status notice.
type statusMsg string

// refreshMsg asks the model to reload the incident list.
type refreshMsg struct{}
