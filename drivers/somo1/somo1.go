// Package somo1 composes the two chips of the ELV SoMo1 soil probe into one
// device:
//
//	soil humidity    FDC2x1x capacitance-to-digital converter, channel 0
//	soil temperature SHT4x digital temperature/humidity sensor
//
// Both chips share one I²C bus. Begin probes them once and records which
// responded; measurements on a sensor that was not detected fail with
// errcode.*SensorNotAvailable without touching the bus, measurements that
// reach the bus and fail report errcode.*MeasurementFailed.
//
// The Device performs no locking. Every call blocks until its bus
// transactions complete; a hung bus blocks the caller indefinitely.
package somo1

import (
	"somo1-go/drivers/fdc2x1x"
	"somo1-go/drivers/sht4x"

	"tinygo.org/x/drivers"
)

// Bus addresses on the SoMo1 board.
const (
	HumidityAddress    = fdc2x1x.AddressHigh
	TemperatureAddress = sht4x.Address
)

// Factory tuning of the capacitive front end.
const (
	humidityChannel  = 0
	humidityChanMask = 1 << humidityChannel
	humidityDeglitch = fdc2x1x.Deglitch10MHz
	humidityDivider  = 23
	humidityOffset   = 24576
)

// InvalidHumidityRaw is reported as the raw humidity when no valid reading
// exists.
const InvalidHumidityRaw = fdc2x1x.InvalidReading

// Precision selects the SHT4x measurement tier. The zero value is
// PrecisionHigh.
type Precision uint8

const (
	PrecisionHigh Precision = iota
	PrecisionMedium
	PrecisionLow
)

func (p Precision) String() string {
	switch p {
	case PrecisionHigh:
		return "high"
	case PrecisionMedium:
		return "medium"
	case PrecisionLow:
		return "low"
	default:
		return "unknown"
	}
}

// HumidityDriver is the capacitive front end used for soil humidity.
type HumidityDriver interface {
	Begin(chanMask uint8, singleChannel bool, deglitch fdc2x1x.Deglitch) fdc2x1x.Model
	SetFrequencyDivider(ch uint8, div uint16) error
	SetOffset(ch uint8, offset uint16) error
	EnableSleepMode() int
	DisableSleepMode() int
	Reading(ch uint8) uint32
}

// TemperatureDriver is the digital sensor used for soil temperature.
type TemperatureDriver interface {
	Configure(cfgs ...sht4x.Config)
	SerialNumber() (uint32, error)
	MeasureHighPrecisionTicks() (tempTicks, humTicks uint16, err error)
	MeasureMediumPrecisionTicks() (tempTicks, humTicks uint16, err error)
	MeasureLowestPrecisionTicks() (tempTicks, humTicks uint16, err error)
	SignalTemperature(ticks uint16) float32
}

// Compile-time checks.
var (
	_ HumidityDriver    = (*fdc2x1x.Device)(nil)
	_ TemperatureDriver = (*sht4x.Device)(nil)
)

// Device is one SoMo1 probe.
type Device struct {
	hum  HumidityDriver
	temp TemperatureDriver

	cal          Calibration
	humAvailable bool
	serial       uint32
	precision    Precision
}

// New creates a Device with both chip drivers on bus. The bus is borrowed and
// must already be configured; nothing is sent until Begin.
func New(bus drivers.I2C) *Device {
	sht := sht4x.New(bus)
	return NewWithDrivers(fdc2x1x.New(bus, fdc2x1x.Config{Address: HumidityAddress}), &sht)
}

// NewWithDrivers creates a Device around caller-supplied chip drivers.
func NewWithDrivers(hum HumidityDriver, temp TemperatureDriver) *Device {
	return &Device{
		hum:       hum,
		temp:      temp,
		cal:       DefaultCalibration(),
		precision: PrecisionHigh,
	}
}

// Begin probes and configures both chips. It never fails: a chip that does
// not respond is recorded as unavailable and later measurements on it return
// the matching NotAvailable code. Calling Begin again re-probes from scratch.
func (d *Device) Begin(precision Precision) {
	d.humAvailable = false
	d.serial = 0

	model := d.hum.Begin(humidityChanMask, true, humidityDeglitch)
	d.humAvailable = model != fdc2x1x.ModelInvalid

	// Applied even when the probe failed; the driver tolerates an absent chip.
	_ = d.hum.SetFrequencyDivider(humidityChannel, humidityDivider)
	_ = d.hum.SetOffset(humidityChannel, humidityOffset)
	d.hum.DisableSleepMode()

	d.precision = precision
	d.temp.Configure(sht4x.Config{Address: TemperatureAddress})

	if sn, err := d.temp.SerialNumber(); err == nil {
		d.serial = sn
	}
}

// IsHumiditySensorAvailable reports whether the FDC2x1x identified itself
// during Begin.
func (d *Device) IsHumiditySensorAvailable() bool { return d.humAvailable }

// IsTemperatureSensorAvailable reports whether Begin read a non-zero SHT4x
// serial number. A sensor whose serial is genuinely zero reads as absent.
func (d *Device) IsTemperatureSensorAvailable() bool { return d.serial != 0 }

// SerialNumber returns the SHT4x factory serial number, 0 if never read.
func (d *Device) SerialNumber() uint32 { return d.serial }

// Precision returns the tier stored by the last Begin.
func (d *Device) Precision() Precision { return d.precision }

// EnableSleepMode stops FDC2x1x conversions. It returns the previous sleep
// state (1 asleep, 0 converting) or -1 on a bus read failure.
func (d *Device) EnableSleepMode() int { return d.hum.EnableSleepMode() }

// DisableSleepMode resumes FDC2x1x conversions. Return value as EnableSleepMode.
func (d *Device) DisableSleepMode() int { return d.hum.DisableSleepMode() }
