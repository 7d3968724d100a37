package fdc2x1x

import (
	"errors"
	"testing"

	"tinygo.org/x/drivers"
)

// Compile-time check.
var _ drivers.I2C = (*fakeI2C)(nil)

var errNack = errors.New("nack")

// Register-file FDC2x1x fake.
type fakeI2C struct {
	addr    uint16
	present bool
	regs    map[byte]uint16
	writes  []byte // register addresses in write order
	resets  int
}

func newFakeFDC(deviceID uint16) *fakeI2C {
	f := &fakeI2C{addr: AddressHigh, present: true}
	f.regs = map[byte]uint16{
		regManufacturerID: manufacturerTI,
		regDeviceID:       deviceID,
		regConfig:         0x2801,
	}
	return f
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	if !f.present || addr != f.addr {
		return errNack
	}
	switch {
	case len(w) == 1 && len(r) == 2:
		v := f.regs[w[0]]
		r[0], r[1] = byte(v>>8), byte(v)
		return nil
	case len(w) == 3 && len(r) == 0:
		v := uint16(w[1])<<8 | uint16(w[2])
		f.writes = append(f.writes, w[0])
		if w[0] == regResetDev && v&resetDevBit != 0 {
			f.resets++
			f.regs[regConfig] = 0x2801
			return nil
		}
		f.regs[w[0]] = v
		return nil
	}
	return errNack
}

func TestBegin_DetectsAndConfiguresSingleChannel(t *testing.T) {
	bus := newFakeFDC(deviceIDFDC221x)
	d := New(bus, Config{Address: AddressHigh})

	if m := d.Begin(0x01, true, Deglitch10MHz); m != ModelFDC221x {
		t.Fatalf("Begin = %v, want fdc221x", m)
	}
	if bus.resets != 1 {
		t.Fatalf("resets = %d, want 1", bus.resets)
	}
	if got := bus.regs[regMuxConfig]; got != 0x020D {
		t.Fatalf("MUX_CONFIG = %#04x, want 0x020d", got)
	}
	if got := bus.regs[regConfig]; got != 0x3401 {
		t.Fatalf("CONFIG = %#04x, want 0x3401 (ch0, asleep)", got)
	}
	if got := bus.regs[regRCountCh0]; got != 0xFFFF {
		t.Fatalf("RCOUNT_CH0 = %#04x", got)
	}
	if got := bus.regs[regClockDivCh0]; got != 0x1001 {
		t.Fatalf("CLOCK_DIVIDERS_CH0 = %#04x", got)
	}
	if _, touched := bus.regs[regRCountCh0+1]; touched {
		t.Fatalf("channel 1 configured although not in mask")
	}
}

func TestBegin_AutoscanSequence(t *testing.T) {
	bus := newFakeFDC(deviceIDFDC211x)
	d := New(bus, Config{Address: AddressHigh, RefClockExternal: true})

	if m := d.Begin(0x06, false, Deglitch3_3MHz); m != ModelFDC211x {
		t.Fatalf("Begin = %v", m)
	}
	if got := bus.regs[regMuxConfig]; got != 0x8000|0x2000|0x0208|0x04 {
		t.Fatalf("MUX_CONFIG = %#04x", got)
	}
	// Active channel is the lowest in the mask.
	if got := bus.regs[regConfig]; got != 0x1401|0x2000|0x0200|1<<14 {
		t.Fatalf("CONFIG = %#04x", got)
	}
}

func TestBegin_InvalidDevices(t *testing.T) {
	cases := []struct {
		name string
		bus  *fakeI2C
	}{
		{"absent", &fakeI2C{addr: AddressHigh}},
		{"wrong manufacturer", func() *fakeI2C {
			f := newFakeFDC(deviceIDFDC221x)
			f.regs[regManufacturerID] = 0x1234
			return f
		}()},
		{"unknown device id", newFakeFDC(0x3056)},
	}
	for _, tc := range cases {
		d := New(tc.bus, Config{Address: AddressHigh})
		if m := d.Begin(0x01, true, Deglitch10MHz); m != ModelInvalid {
			t.Fatalf("%s: Begin = %v, want invalid", tc.name, m)
		}
		if len(tc.bus.writes) != 0 {
			t.Fatalf("%s: configuration written to unidentified device", tc.name)
		}
	}
}

func TestBegin_EmptyMask(t *testing.T) {
	d := New(newFakeFDC(deviceIDFDC221x), Config{Address: AddressHigh})
	if m := d.Begin(0x00, true, Deglitch10MHz); m != ModelInvalid {
		t.Fatalf("Begin(empty mask) = %v", m)
	}
}

func TestReading(t *testing.T) {
	bus := newFakeFDC(deviceIDFDC221x)
	d := New(bus, Config{Address: AddressHigh})
	d.Begin(0x01, true, Deglitch10MHz)

	bus.regs[regDataCh0] = 0x0123
	bus.regs[regDataLSBCh0] = 0x4567
	if got := d.Reading(0); got != 0x01234567 {
		t.Fatalf("Reading = %#08x", got)
	}

	bus.regs[regDataCh0] = 0x0123 | dataErrAmplitude
	if got := d.Reading(0); got != InvalidReading {
		t.Fatalf("flagged Reading = %#08x, want sentinel", got)
	}
	bus.regs[regDataCh0] = 0x0FFF | dataErrWatchdog
	if got := d.Reading(0); got != InvalidReading {
		t.Fatalf("watchdog Reading = %#08x, want sentinel", got)
	}
	if got := d.Reading(4); got != InvalidReading {
		t.Fatalf("out-of-range channel = %#08x", got)
	}

	bus.present = false
	if got := d.Reading(0); got != InvalidReading {
		t.Fatalf("absent Reading = %#08x, want sentinel", got)
	}
}

func TestReading_12Bit(t *testing.T) {
	bus := newFakeFDC(deviceIDFDC211x)
	d := New(bus, Config{Address: AddressHigh})
	d.Begin(0x01, true, Deglitch10MHz)

	bus.regs[regDataCh0] = 0x0ABC
	bus.regs[regDataLSBCh0] = 0xFFFF // not present on FDC211x; must be ignored
	if got := d.Reading(0); got != 0x0ABC0000 {
		t.Fatalf("Reading = %#08x", got)
	}
}

func TestSleepMode(t *testing.T) {
	bus := newFakeFDC(deviceIDFDC221x)
	d := New(bus, Config{Address: AddressHigh})
	d.Begin(0x01, true, Deglitch10MHz)

	if prev := d.DisableSleepMode(); prev != 1 {
		t.Fatalf("DisableSleepMode prev = %d, want 1", prev)
	}
	if bus.regs[regConfig]&cfgSleepModeEn != 0 {
		t.Fatalf("sleep bit still set")
	}
	if prev := d.EnableSleepMode(); prev != 0 {
		t.Fatalf("EnableSleepMode prev = %d, want 0", prev)
	}
	if bus.regs[regConfig]&cfgSleepModeEn == 0 {
		t.Fatalf("sleep bit not set")
	}

	bus.present = false
	if prev := d.EnableSleepMode(); prev != -1 {
		t.Fatalf("EnableSleepMode on dead bus = %d, want -1", prev)
	}
}

func TestDividerAndOffset(t *testing.T) {
	bus := newFakeFDC(deviceIDFDC221x)
	d := New(bus, Config{Address: AddressHigh})

	if err := d.SetFrequencyDivider(0, 23); err != nil {
		t.Fatal(err)
	}
	if got := bus.regs[regClockDivCh0]; got != 0x1017 {
		t.Fatalf("CLOCK_DIVIDERS_CH0 = %#04x, want 0x1017", got)
	}
	if err := d.SetFrequencyDivider(2, 0); err != nil {
		t.Fatal(err)
	}
	if got := bus.regs[regClockDivCh0+2]; got != 0x1001 {
		t.Fatalf("divider 0 not clamped: %#04x", got)
	}
	if err := d.SetOffset(0, 24576); err != nil {
		t.Fatal(err)
	}
	if got := bus.regs[regOffsetCh0]; got != 24576 {
		t.Fatalf("OFFSET_CH0 = %d", got)
	}
	if err := d.SetOffset(7, 1); !errors.Is(err, ErrChannel) {
		t.Fatalf("SetOffset(7) err = %v", err)
	}
}
