// Package platform supplies configured I²C buses for the current build
// target: periph.io host drivers on standard Go builds, machine.I2Cx on
// RP2040/RP2350 TinyGo builds.
package platform

import "tinygo.org/x/drivers"

// I2CBusFactory injects configured I²C instances by id.
// Uses the TinyGo drivers.I2C interface to remain compatible on MCU builds.
type I2CBusFactory interface {
	ByID(id string) (drivers.I2C, error)
	Close() error
}
