package somo1

import (
	"somo1-go/drivers/fdc2x1x"
	"somo1-go/errcode"
	"somo1-go/x/mathx"
)

// MeasureSoilHumidityRaw reads the 12-bit capacitance code of the humidity
// channel. The raw value is InvalidHumidityRaw whenever err != nil.
func (d *Device) MeasureSoilHumidityRaw() (uint32, error) {
	if !d.humAvailable {
		return InvalidHumidityRaw, errcode.HumiditySensorNotAvailable
	}
	reading := d.hum.Reading(humidityChannel)
	if reading == fdc2x1x.InvalidReading {
		return InvalidHumidityRaw, errcode.HumidityMeasurementFailed
	}
	// Only the upper half carries the capacitance-derived code.
	return reading >> 16, nil
}

// MeasureSoilHumidity returns soil humidity in percent together with the raw
// code it was derived from. The percentage is not clamped: readings outside
// the calibrated span give values below 0 or above 100. A zero calibration
// span yields 0.
func (d *Device) MeasureSoilHumidity() (percent int32, raw uint32, err error) {
	raw, err = d.MeasureSoilHumidityRaw()
	if err != nil {
		return 0, raw, err
	}
	percent = mathx.MapI32(int32(raw), int32(d.cal.RawAt0Percent), int32(d.cal.RawAt100Percent), 0, 100)
	return percent, raw, nil
}

// MeasureSoilTemperatureRaw runs one SHT4x measurement at the stored
// precision and returns the temperature ticks. The sensor's air humidity
// result is discarded.
func (d *Device) MeasureSoilTemperatureRaw() (uint16, error) {
	if !d.IsTemperatureSensorAvailable() {
		return 0, errcode.TemperatureSensorNotAvailable
	}

	var (
		ticks uint16
		err   error
	)
	switch d.precision {
	case PrecisionLow:
		ticks, _, err = d.temp.MeasureLowestPrecisionTicks()
	case PrecisionMedium:
		ticks, _, err = d.temp.MeasureMediumPrecisionTicks()
	default:
		ticks, _, err = d.temp.MeasureHighPrecisionTicks()
	}
	if err != nil {
		return 0, errcode.Wrap(errcode.TemperatureMeasurementFailed, "measure_soil_temperature", err)
	}
	return ticks, nil
}

// MeasureSoilTemperatureDegC returns soil temperature in °C. The value is 0
// whenever err != nil and must not be used.
func (d *Device) MeasureSoilTemperatureDegC() (float32, error) {
	ticks, err := d.MeasureSoilTemperatureRaw()
	if err != nil {
		return 0, err
	}
	return d.temp.SignalTemperature(ticks), nil
}

// Reading is one pass over both sensors. Each half carries its own error.
type Reading struct {
	HumidityPercent int32
	HumidityRaw     uint32
	HumidityErr     error

	TemperatureC   float32
	TemperatureErr error
}

// Read measures humidity then temperature. A failure of one sensor does not
// prevent the other from being measured.
func (d *Device) Read() Reading {
	var r Reading
	r.HumidityPercent, r.HumidityRaw, r.HumidityErr = d.MeasureSoilHumidity()
	r.TemperatureC, r.TemperatureErr = d.MeasureSoilTemperatureDegC()
	return r
}
