package tui

// Mode represents the interaction mode of the console.
type Mode int

const (
	// ModeNormal is the incident list with action keys.
	ModeNormal Mode = iota
	// ModeCreate is the new-incident form.
	ModeCreate
	// ModeAssign prompts for an operator id.
	ModeAssign
	// ModeDetail shows a single incident with its history.
	ModeDetail
	// ModeStats shows the aggregate counters.
	ModeStats
)

// createField is the focused field of the create form.
type createField int

const (
	fieldType createField = iota
	fieldPriority
	fieldDescription
)
