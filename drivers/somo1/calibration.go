package somo1

// Calibration maps raw humidity codes onto 0% and 100% soil humidity.
// RawAt0Percent may exceed RawAt100Percent (inverted polarity).
type Calibration struct {
	RawAt0Percent   int16
	RawAt100Percent int16
}

// DefaultCalibration spans the full 12-bit converter range.
func DefaultCalibration() Calibration {
	return Calibration{RawAt0Percent: 0, RawAt100Percent: 4095}
}

// Calibration returns the current endpoints, e.g. for the caller to persist.
func (d *Device) Calibration() Calibration { return d.cal }

// SetCalibration replaces both endpoints.
func (d *Device) SetCalibration(c Calibration) { d.cal = c }

// SetHumidityRawFor0Percent sets the raw code reported by dry soil.
// No validation or availability check is done.
func (d *Device) SetHumidityRawFor0Percent(raw int16) { d.cal.RawAt0Percent = raw }

// SetHumidityRawFor100Percent sets the raw code reported by saturated soil.
func (d *Device) SetHumidityRawFor100Percent(raw int16) { d.cal.RawAt100Percent = raw }

// PickHumidityRawFor0Percent takes one raw humidity measurement and stores it
// as the 0% endpoint. On any error the endpoint is left unchanged.
func (d *Device) PickHumidityRawFor0Percent() error {
	raw, err := d.pickRaw()
	if err != nil {
		return err
	}
	d.cal.RawAt0Percent = raw
	return nil
}

// PickHumidityRawFor100Percent is PickHumidityRawFor0Percent for the 100%
// endpoint.
func (d *Device) PickHumidityRawFor100Percent() error {
	raw, err := d.pickRaw()
	if err != nil {
		return err
	}
	d.cal.RawAt100Percent = raw
	return nil
}

func (d *Device) pickRaw() (int16, error) {
	raw, err := d.MeasureSoilHumidityRaw()
	if err != nil {
		return 0, err
	}
	return int16(raw), nil
}
