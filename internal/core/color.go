package core

// Color is the foreground color of a screen cell.
type Color uint8

// Court colors. ColorDefault is the terminal's own foreground.
const (
	ColorDefault Color = iota
	ColorGray          // net, timer
	ColorGreen         // tracked hands
	ColorYellow        // ball trail
	ColorBrightYellow  // ball, round-end banner
	ColorBrightCyan    // left side
	ColorBrightMagenta // right side
	ColorBrightWhite   // score, pause banner
)
