// Package sht4x provides a driver for the Sensirion SHT40/SHT41/SHT45
// temperature/humidity sensors.
//
// Measurements are returned as raw ticks; SignalTemperature and
// SignalHumidity apply the datasheet linearisation:
//
//	T  = -45 + 175 * ticks / 65535  [°C]
//	RH =  -6 + 125 * ticks / 65535  [%RH]
//
// Every call blocks for the command's conversion time and returns the
// bus error or ErrCRC as-is. No retries are performed.
package sht4x

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// I2C addresses (part-number dependent).
const (
	Address  = 0x44
	AddressB = 0x45
	AddressC = 0x46
)

// Conversion times (max, per datasheet) rounded up.
const (
	delayHighPrecision   = 10 * time.Millisecond
	delayMediumPrecision = 5 * time.Millisecond
	delayLowPrecision    = 2 * time.Millisecond
	delaySerialNumber    = 1 * time.Millisecond
	delaySoftReset       = 1 * time.Millisecond
	delayHeaterShort     = 110 * time.Millisecond
	delayHeaterLong      = 1100 * time.Millisecond
)

// Errors returned by the driver.
var (
	ErrCRC    = errors.New("sht4x: crc mismatch")
	ErrHeater = errors.New("sht4x: unknown heater setting")
)

// Config controls non-hardware behaviour. All fields are optional.
type Config struct {
	// Address defaults to 0x44 if zero.
	Address uint16
}

// Device wraps an I2C connection to an SHT4x device.
type Device struct {
	bus     drivers.I2C
	Address uint16

	cmd [1]byte
	buf [6]byte // reuse buffer to avoid allocations
}

// New creates a new SHT4x connection. The I2C bus must already be configured.
// This function only creates the Device object; it does not touch the device.
func New(bus drivers.I2C) Device {
	return Device{
		bus:     bus,
		Address: Address,
	}
}

// Configure applies optional config. It does not touch the bus.
func (d *Device) Configure(cfgs ...Config) {
	if len(cfgs) > 0 && cfgs[0].Address != 0 {
		d.Address = cfgs[0].Address
	}
}

// SoftReset reloads calibration data and returns the sensor to idle.
func (d *Device) SoftReset() error {
	d.cmd[0] = commandSoftReset
	if err := d.bus.Tx(d.Address, d.cmd[:], nil); err != nil {
		return err
	}
	time.Sleep(delaySoftReset)
	return nil
}

// SerialNumber reads the 32-bit factory serial number.
func (d *Device) SerialNumber() (uint32, error) {
	hi, lo, err := d.command(commandReadSerialNumber, delaySerialNumber)
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(lo), nil
}

// MeasureHighPrecisionTicks runs a high repeatability measurement (~8.3 ms).
func (d *Device) MeasureHighPrecisionTicks() (tempTicks, humTicks uint16, err error) {
	return d.command(commandMeasureHighPrecision, delayHighPrecision)
}

// MeasureMediumPrecisionTicks runs a medium repeatability measurement (~4.5 ms).
func (d *Device) MeasureMediumPrecisionTicks() (tempTicks, humTicks uint16, err error) {
	return d.command(commandMeasureMediumPrecision, delayMediumPrecision)
}

// MeasureLowestPrecisionTicks runs a low repeatability measurement (~1.6 ms).
func (d *Device) MeasureLowestPrecisionTicks() (tempTicks, humTicks uint16, err error) {
	return d.command(commandMeasureLowPrecision, delayLowPrecision)
}

// ActivateHeater pulses the on-chip heater and returns the high precision
// measurement the sensor takes at the end of the pulse. Keep the duty cycle
// below 10%.
func (d *Device) ActivateHeater(h Heater) (tempTicks, humTicks uint16, err error) {
	cmd, long := h.command()
	if cmd == 0 {
		return 0, 0, ErrHeater
	}
	delay := delayHeaterShort
	if long {
		delay = delayHeaterLong
	}
	return d.command(cmd, delay)
}

// SignalTemperature converts temperature ticks to °C.
func (d *Device) SignalTemperature(ticks uint16) float32 { return SignalTemperature(ticks) }

// SignalHumidity converts humidity ticks to %RH (not clamped).
func (d *Device) SignalHumidity(ticks uint16) float32 { return SignalHumidity(ticks) }

func SignalTemperature(ticks uint16) float32 {
	return -45 + 175*float32(ticks)/65535
}

func SignalHumidity(ticks uint16) float32 {
	return -6 + 125*float32(ticks)/65535
}

// DeciCelsius returns tenths of °C without floating point.
func DeciCelsius(ticks uint16) int32 {
	return -450 + int32(1750*int64(ticks)/65535)
}

// command writes cmd, waits, and reads back two CRC-checked words.
func (d *Device) command(cmd byte, wait time.Duration) (uint16, uint16, error) {
	d.cmd[0] = cmd
	if err := d.bus.Tx(d.Address, d.cmd[:], nil); err != nil {
		return 0, 0, err
	}
	time.Sleep(wait)

	data := d.buf[:]
	if err := d.bus.Tx(d.Address, nil, data); err != nil {
		return 0, 0, err
	}
	if crc8(data[0:2]) != data[2] || crc8(data[3:5]) != data[5] {
		return 0, 0, ErrCRC
	}
	return uint16(data[0])<<8 | uint16(data[1]), uint16(data[3])<<8 | uint16(data[4]), nil
}

// crc8 is the Sensirion CRC: polynomial 0x31, init 0xFF, no reflection.
func crc8(b []byte) byte {
	crc := byte(0xFF)
	for _, v := range b {
		crc ^= v
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ 0x31
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
