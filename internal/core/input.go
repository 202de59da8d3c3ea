package core

// Action is a semantic viewer intent, abstracted from physical keys.
type Action int

const (
	ActionNone        Action = iota
	ActionCursorUp           // move the board cursor
	ActionCursorDown
	ActionCursorLeft
	ActionCursorRight
	ActionNextOperator // cycle the roster selection
	ActionPrevOperator
	ActionPlace   // start a deployment on the cursor tile
	ActionConfirm // commit the aimed deployment
	ActionCancel  // drop the pending deployment
	ActionSkill   // activate the skill of the operator under the cursor
	ActionRetreat // withdraw the operator under the cursor
	ActionPause
	ActionSpeed // toggle 1x/2x
	ActionRestart
	ActionBack
	ActionQuit
)

var actionNames = [...]string{
	ActionNone:         "None",
	ActionCursorUp:     "CursorUp",
	ActionCursorDown:   "CursorDown",
	ActionCursorLeft:   "CursorLeft",
	ActionCursorRight:  "CursorRight",
	ActionNextOperator: "NextOperator",
	ActionPrevOperator: "PrevOperator",
	ActionPlace:        "Place",
	ActionConfirm:      "Confirm",
	ActionCancel:       "Cancel",
	ActionSkill:        "Skill",
	ActionRetreat:      "Retreat",
	ActionPause:        "Pause",
	ActionSpeed:        "Speed",
	ActionRestart:      "Restart",
	ActionBack:         "Back",
	ActionQuit:         "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// CursorDelta returns the tile step of a cursor action.
func (a Action) CursorDelta() (dx, dy int, ok bool) {
	switch a {
	case ActionCursorUp:
		return 0, -1, true
	case ActionCursorDown:
		return 0, 1, true
	case ActionCursorLeft:
		return -1, 0, true
	case ActionCursorRight:
		return 1, 0, true
	}
	return 0, 0, false
}
