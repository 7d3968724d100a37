package somo1

import (
	"testing"

	"somo1-go/errcode"

	"tinygo.org/x/drivers"
)

// Compile-time check.
var _ drivers.I2C = (*probeBus)(nil)

// probeBus emulates a SoMo1 board: FDC2214 register file at 0x2B and an
// SHT4x at 0x44 that answers every command with the same two words.
type probeBus struct {
	fdcPresent bool
	shtPresent bool
	regs       map[byte]uint16
	shtWords   [2]uint16
}

func newProbeBus() *probeBus {
	return &probeBus{
		fdcPresent: true,
		shtPresent: true,
		regs: map[byte]uint16{
			0x7E: 0x5449,
			0x7F: 0x3055,
			0x1A: 0x2801,
		},
		shtWords: [2]uint16{0x1234, 0x5678},
	}
}

func (b *probeBus) Tx(addr uint16, w, r []byte) error {
	switch addr {
	case HumidityAddress:
		if !b.fdcPresent {
			return errBus
		}
		if len(w) == 1 && len(r) == 2 {
			v := b.regs[w[0]]
			r[0], r[1] = byte(v>>8), byte(v)
			return nil
		}
		if len(w) == 3 {
			b.regs[w[0]] = uint16(w[1])<<8 | uint16(w[2])
			return nil
		}
	case TemperatureAddress:
		if !b.shtPresent {
			return errBus
		}
		if len(w) == 1 {
			return nil
		}
		if len(r) == 6 {
			r[0], r[1] = byte(b.shtWords[0]>>8), byte(b.shtWords[0])
			r[2] = crc(r[0:2])
			r[3], r[4] = byte(b.shtWords[1]>>8), byte(b.shtWords[1])
			r[5] = crc(r[3:5])
			return nil
		}
	}
	return errBus
}

func crc(b []byte) byte {
	c := byte(0xFF)
	for _, v := range b {
		c ^= v
		for i := 0; i < 8; i++ {
			if c&0x80 != 0 {
				c = c<<1 ^ 0x31
			} else {
				c <<= 1
			}
		}
	}
	return c
}

func TestNew_OnSharedBus(t *testing.T) {
	bus := newProbeBus()
	d := New(bus)
	d.Begin(PrecisionHigh)

	if !d.IsHumiditySensorAvailable() || !d.IsTemperatureSensorAvailable() {
		t.Fatalf("availability hum=%v temp=%v", d.IsHumiditySensorAvailable(), d.IsTemperatureSensorAvailable())
	}
	if d.SerialNumber() != 0x12345678 {
		t.Fatalf("serial = %#08x", d.SerialNumber())
	}
	if got := bus.regs[0x14]; got != 0x1017 {
		t.Fatalf("CLOCK_DIVIDERS_CH0 = %#04x", got)
	}
	if got := bus.regs[0x0C]; got != 24576 {
		t.Fatalf("OFFSET_CH0 = %d", got)
	}
	if bus.regs[0x1A]&0x2000 != 0 {
		t.Fatalf("converter left asleep: CONFIG=%#04x", bus.regs[0x1A])
	}

	// 2400 with endpoints 512/3584 -> 61 %.
	bus.regs[0x00] = 2400
	bus.regs[0x01] = 0x1111
	d.SetCalibration(Calibration{RawAt0Percent: 512, RawAt100Percent: 3584})
	pct, raw, err := d.MeasureSoilHumidity()
	if err != nil || raw != 2400 || pct != 61 {
		t.Fatalf("pct=%d raw=%d err=%v", pct, raw, err)
	}
}

func TestNew_AbsentChips(t *testing.T) {
	bus := newProbeBus()
	bus.fdcPresent = false
	bus.shtPresent = false
	d := New(bus)
	d.Begin(PrecisionLow)

	if d.IsHumiditySensorAvailable() || d.IsTemperatureSensorAvailable() {
		t.Fatalf("absent chips reported available")
	}
	r := d.Read()
	if r.HumidityErr != errcode.HumiditySensorNotAvailable || r.HumidityRaw != InvalidHumidityRaw {
		t.Fatalf("humidity: raw=%#x err=%v", r.HumidityRaw, r.HumidityErr)
	}
	if r.TemperatureErr != errcode.TemperatureSensorNotAvailable {
		t.Fatalf("temperature err = %v", r.TemperatureErr)
	}
}
