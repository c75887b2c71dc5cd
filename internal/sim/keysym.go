package sim

import "github.com/bnema/gowlc/wlc"

// Keysyms for a US layout, keyed by evdev key code.
var keymap = map[uint32]uint32{
	1:  0xff1b, // Escape
	14: 0xff08, // BackSpace
	15: 0xff09, // Tab
	28: 0xff0d, // Return
	29: 0xffe3, // Control_L
	42: 0xffe1, // Shift_L
	56: 0xffe9, // Alt_L
	57: 0x0020, // space

	103: 0xff52, // Up
	105: 0xff51, // Left
	106: 0xff53, // Right
	108: 0xff54, // Down
	125: 0xffeb, // Super_L
}

var letterRows = []struct {
	first uint32
	keys  string
}{
	{16, "qwertyuiop"},
	{30, "asdfghjkl"},
	{44, "zxcvbnm"},
}

func init() {
	for i, c := range "1234567890" {
		keymap[uint32(2+i)] = uint32(c)
	}
	for _, row := range letterRows {
		for i, c := range row.keys {
			keymap[row.first+uint32(i)] = uint32(c)
		}
	}
	for i := uint32(0); i < 10; i++ {
		keymap[59+i] = 0xffbe + i // F1..F10
	}
}

// keysym resolves key under mods. Unknown keys map to NoSymbol (0).
func keysym(key uint32, mods wlc.Modifiers) uint32 {
	sym, ok := keymap[key]
	if !ok {
		return 0
	}
	upper := mods.Mods&wlc.ModShift != 0
	if mods.Mods&wlc.ModCaps != 0 {
		upper = !upper
	}
	if upper && sym >= 'a' && sym <= 'z' {
		sym -= 'a' - 'A'
	}
	return sym
}
