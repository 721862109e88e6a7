package tui

// AnimState selects which sprite animation an agent character plays.
type AnimState int

const (
	AnimIdle AnimState = iota
	AnimTyping
	AnimReading
	AnimWalking
)

// Character sprites are 3 lines tall and drawn below a 2-line desk.
var idleFrames = [][3]string{
	{" ◉ ", "╔║╗", "╚╩╝"},
	{" ◉ ", "╔║╗", " ║ "},
}

var typingFrames = [][3]string{
	{" ◉ ", "╔║╗", "╚╩╝"},
	{" ◉ ", "╔║~", "╚╩╝"},
	{" ◉ ", "~║╗", "╚╩╝"},
}

var readingFrames = [][3]string{
	{" ◉ ", "╔║▐", "╚╩╝"},
	{" ◉ ", "╔║▐", "╚╩╝"},
}

var walkingFrames = [][3]string{
	{" ◉ ", "╔║╗", "╝ ╚"},
	{" ◉ ", "╔║╗", "╚ ╝"},
}

var desk = [2]string{"╔═══╗", "╚═══╝"}

// spriteFrame returns the 3-line sprite for an animation state at the
// given frame index. Indices wrap, so callers can feed a raw tick count.
func spriteFrame(state AnimState, frame int) [3]string {
	var frames [][3]string
	switch state {
	case AnimTyping:
		frames = typingFrames
	case AnimReading:
		frames = readingFrames
	case AnimWalking:
		frames = walkingFrames
	default:
		frames = idleFrames
	}
	return frames[frame%len(frames)]
}
