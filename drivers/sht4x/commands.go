package sht4x

// Single-byte commands; every response is two CRC-protected 16-bit words.
const (
	// Activate heater at 200mw
	commandHeaterHigh1s    = 0x39
	commandHeaterHigh100ms = 0x32
	// Activate heater at 110mw
	commandHeaterMedium1s    = 0x2F
	commandHeaterMedium100ms = 0x24
	// Activate heater at 20mw
	commandHeaterLow1s    = 0x1E
	commandHeaterLow100ms = 0x15

	commandMeasureHighPrecision   = 0xFD
	commandMeasureMediumPrecision = 0xF6
	commandMeasureLowPrecision    = 0xE0
	commandReadSerialNumber       = 0x89
	commandSoftReset              = 0x94
)

// Heater selects power and pulse length for ActivateHeater.
type Heater uint8

const (
	HeaterLow Heater = iota
	HeaterLowLong
	HeaterMedium
	HeaterMediumLong
	HeaterHigh
	HeaterHighLong
)

func (h Heater) command() (byte, bool) {
	switch h {
	case HeaterLow:
		return commandHeaterLow100ms, false
	case HeaterLowLong:
		return commandHeaterLow1s, true
	case HeaterMedium:
		return commandHeaterMedium100ms, false
	case HeaterMediumLong:
		return commandHeaterMedium1s, true
	case HeaterHigh:
		return commandHeaterHigh100ms, false
	case HeaterHighLong:
		return commandHeaterHigh1s, true
	default:
		return 0, false
	}
}
