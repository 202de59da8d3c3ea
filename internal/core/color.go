package core

// Color is the role of a screen cell. The platform maps roles to terminal
// colours, so board drawing never deals with ANSI codes.
type Color uint8

const (
	ColorDefault Color = iota
	ColorGround
	ColorElevated
	ColorEntry
	ColorExit
	ColorEnemy
	ColorEnemyWounded
	ColorEnemyFrozen
	ColorOperator
	ColorOperatorSkill
	ColorProjectile
	ColorBurning
	ColorCursor
	ColorPlacementOK
	ColorPlacementDenied
	ColorHUD
	ColorMuted
)
