package layout

// Keysym values for the named keys the host forwards across the ABI
// boundary, numbered the way the teacher's engine.KeyBackspace/KeyReturn/
// KeySpace block is (X11 keysym values), extended to the full named-key
// set this module's editor dispatches on.
const (
	KeysymBackspace  uint32 = 0xff08
	KeysymTab        uint32 = 0xff09
	KeysymReturn     uint32 = 0xff0d
	KeysymEscape     uint32 = 0xff1b
	KeysymSpace      uint32 = 0x0020
	KeysymDelete     uint32 = 0xffff
	KeysymHome       uint32 = 0xff50
	KeysymLeft       uint32 = 0xff51
	KeysymUp         uint32 = 0xff52
	KeysymRight      uint32 = 0xff53
	KeysymDown       uint32 = 0xff54
	KeysymPageUp     uint32 = 0xff55
	KeysymPageDown   uint32 = 0xff56
	KeysymEnd        uint32 = 0xff57
	KeysymCapsLock   uint32 = 0xffe5
	KeysymShiftLeft  uint32 = 0xffe1
	KeysymShiftRight uint32 = 0xffe2
	KeysymNumLock    uint32 = 0xff7f
)

// Modifier flags, numbered the way engine.ModShift/ModControl/ModMod1 are.
const (
	ModNone    uint32 = 0
	ModShift   uint32 = 1 << 0
	ModLock    uint32 = 1 << 1
	ModControl uint32 = 1 << 2
	ModMod1    uint32 = 1 << 3
)

// RuneForKeysym returns the printable rune a plain (unmodified) keysym in
// the ASCII range represents, and false for keysyms with no direct rune
// (arrows, Tab, function keys).
func RuneForKeysym(keysym uint32) (rune, bool) {
	if keysym >= 0x20 && keysym <= 0x7e {
		return rune(keysym), true
	}
	return 0, false
}
