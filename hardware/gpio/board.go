package gpio

import "fmt"

// boardToBCM maps physical positions on the Raspberry Pi J8 40-pin header to
// BCM GPIO numbers. Positions that carry power, ground or the ID EEPROM pins
// are absent.
var boardToBCM = map[int]int{
	3:  2,
	5:  3,
	7:  4,
	8:  14,
	10: 15,
	11: 17,
	12: 18,
	13: 27,
	15: 22,
	16: 23,
	18: 24,
	19: 10,
	21: 9,
	22: 25,
	23: 11,
	24: 8,
	26: 7,
	29: 5,
	31: 6,
	32: 12,
	33: 13,
	35: 19,
	36: 16,
	37: 26,
	38: 20,
	40: 21,
}

// BoardPin translates a physical header position (board numbering) to the
// BCM GPIO number the GPIO implementations address pins by. It returns an
// error for positions that don't route to a GPIO.
func BoardPin(physical int) (int, error) {
	bcm, ok := boardToBCM[physical]
	if !ok {
		return 0, fmt.Errorf("board pin %d doesn't route to a GPIO", physical)
	}

	return bcm, nil
}
