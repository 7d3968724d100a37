package fdc2x1x

import (
	"errors"

	"somo1-go/x/mathx"

	"tinygo.org/x/drivers"
)

// InvalidReading is returned by Reading when the conversion could not be
// fetched or the chip flagged it (watchdog/amplitude error). Valid readings
// never set the top nibble, so the sentinel cannot collide with data.
const InvalidReading uint32 = 0xFFFFFFFF

// Model identifies the converter family found by Begin.
type Model uint8

const (
	ModelInvalid Model = iota
	ModelFDC211x       // 12-bit result
	ModelFDC221x       // 28-bit result
)

func (m Model) String() string {
	switch m {
	case ModelFDC211x:
		return "fdc211x"
	case ModelFDC221x:
		return "fdc221x"
	default:
		return "invalid"
	}
}

// Deglitch selects the input filter bandwidth (MUX_CONFIG[2:0]). Pick the
// lowest setting above the sensor oscillation frequency.
type Deglitch uint8

const (
	Deglitch1MHz   Deglitch = 0b001
	Deglitch3_3MHz Deglitch = 0b100
	Deglitch10MHz  Deglitch = 0b101
	Deglitch33MHz  Deglitch = 0b111
)

var (
	ErrChannel = errors.New("fdc2x1x: channel out of range")
)

// Config holds conversion timing applied by Begin. Zero fields take defaults.
type Config struct {
	// Address defaults to AddressLow if zero.
	Address uint16
	// RCount is the conversion time in units of 16 reference clocks. Default 0xFFFF.
	RCount uint16
	// SettleCount is the settling time in units of 16 reference clocks. Default 0x0400.
	SettleCount uint16
	// DriveCurrent is the raw DRIVE_CURRENT_CHx word. Default 0x7800.
	DriveCurrent uint16
	// RefClockExternal selects the CLKIN pin instead of the internal oscillator.
	RefClockExternal bool
}

// Device represents one FDC2x1x on an I²C bus.
type Device struct {
	i2c  drivers.I2C
	addr uint16
	cfg  Config

	model    Model
	chanMask uint8

	// Fixed buffers to avoid per-call heap allocations.
	w [3]byte
	r [2]byte
}

// New constructs a Device. It does not touch the bus.
func New(i2c drivers.I2C, cfg Config) *Device {
	if cfg.Address == 0 {
		cfg.Address = AddressLow
	}
	if cfg.RCount == 0 {
		cfg.RCount = 0xFFFF
	}
	if cfg.SettleCount == 0 {
		cfg.SettleCount = 0x0400
	}
	if cfg.DriveCurrent == 0 {
		cfg.DriveCurrent = 0x7800
	}
	return &Device{i2c: i2c, addr: cfg.Address, cfg: cfg}
}

// Introspection.
func (d *Device) Address() uint16 { return d.addr }
func (d *Device) Model() Model     { return d.model }

// Begin resets the chip, identifies it and programs the channels in chanMask
// (bit n = channel n). With singleChannel the lowest channel in the mask is
// converted continuously; otherwise autoscan cycles from channel 0 up to the
// highest channel in the mask. The chip is left in sleep mode; call
// DisableSleepMode to start converting.
//
// ModelInvalid is returned when the chip does not identify itself or any
// configuration write fails.
func (d *Device) Begin(chanMask uint8, singleChannel bool, deglitch Deglitch) Model {
	d.model = ModelInvalid
	chanMask &= 1<<numChannels - 1
	if chanMask == 0 {
		return ModelInvalid
	}

	m, err := d.detect()
	if err != nil || m == ModelInvalid {
		return ModelInvalid
	}
	if err := d.Reset(); err != nil {
		return ModelInvalid
	}

	for ch := uint8(0); ch < numChannels; ch++ {
		if chanMask&(1<<ch) == 0 {
			continue
		}
		if err := d.configureChannel(ch); err != nil {
			return ModelInvalid
		}
	}

	mux := uint16(muxReserved) | uint16(deglitch&0x07)
	if !singleChannel {
		mux |= muxAutoscanEn | rrSequence(chanMask)<<muxRRSeqShift
	}
	cfg := uint16(cfgReserved|cfgSleepModeEn) | uint16(lowestChannel(chanMask))<<cfgActiveChanShift
	if d.cfg.RefClockExternal {
		cfg |= cfgRefClkExternal
	}

	if err := d.writeWord(regErrorConfig, errCfgDRDY2INT); err != nil {
		return ModelInvalid
	}
	if err := d.writeWord(regMuxConfig, mux); err != nil {
		return ModelInvalid
	}
	if err := d.writeWord(regConfig, cfg); err != nil {
		return ModelInvalid
	}

	d.model = m
	d.chanMask = chanMask
	return m
}

func (d *Device) detect() (Model, error) {
	mfr, err := d.readWord(regManufacturerID)
	if err != nil {
		return ModelInvalid, err
	}
	if mfr != manufacturerTI {
		return ModelInvalid, nil
	}
	id, err := d.readWord(regDeviceID)
	if err != nil {
		return ModelInvalid, err
	}
	switch id {
	case deviceIDFDC211x:
		return ModelFDC211x, nil
	case deviceIDFDC221x:
		return ModelFDC221x, nil
	default:
		return ModelInvalid, nil
	}
}

func (d *Device) configureChannel(ch uint8) error {
	if err := d.writeWord(regRCountCh0+ch, d.cfg.RCount); err != nil {
		return err
	}
	if err := d.writeWord(regSettleCountCh0+ch, d.cfg.SettleCount); err != nil {
		return err
	}
	if err := d.writeWord(regDriveCurrentCh0+ch, d.cfg.DriveCurrent); err != nil {
		return err
	}
	return d.SetFrequencyDivider(ch, 1)
}

// Reset issues a device reset; all registers return to power-on values.
func (d *Device) Reset() error {
	return d.writeWord(regResetDev, resetDevBit)
}

// Status returns the raw STATUS register.
func (d *Device) Status() (uint16, error) {
	return d.readWord(regStatus)
}

// SetFrequencyDivider programs the reference divider of ch (clamped to
// 1..1023) with the single-ended input divider.
func (d *Device) SetFrequencyDivider(ch uint8, div uint16) error {
	if ch >= numChannels {
		return ErrChannel
	}
	div = mathx.Clamp(div, 1, clkFrefDividerMask)
	return d.writeWord(regClockDivCh0+ch, clkFinSelSingleEnded<<clkFinSelShift|div)
}

// SetOffset programs the offset subtracted from ch's result.
func (d *Device) SetOffset(ch uint8, offset uint16) error {
	if ch >= numChannels {
		return ErrChannel
	}
	return d.writeWord(regOffsetCh0+ch, offset)
}

// EnableSleepMode stops conversions. It returns the sleep state before the
// call (1 asleep, 0 converting) or -1 if CONFIG could not be read.
func (d *Device) EnableSleepMode() int { return d.setSleep(true) }

// DisableSleepMode starts conversions. Return value as EnableSleepMode.
func (d *Device) DisableSleepMode() int { return d.setSleep(false) }

func (d *Device) setSleep(on bool) int {
	v, err := d.readWord(regConfig)
	if err != nil {
		return -1
	}
	prev := 0
	if v&cfgSleepModeEn != 0 {
		prev = 1
	}
	if on {
		v |= cfgSleepModeEn
	} else {
		v &^= cfgSleepModeEn
	}
	_ = d.writeWord(regConfig, v)
	return prev
}

// Reading returns the latest conversion of ch as a 32-bit word: the
// converter's top 12 result bits occupy the upper half, FDC221x fills the
// lower half with the remaining 16. InvalidReading is returned on bus
// failure or when the chip flags the result.
func (d *Device) Reading(ch uint8) uint32 {
	if ch >= numChannels {
		return InvalidReading
	}
	msb, err := d.readWord(regDataCh0 + 2*ch)
	if err != nil || msb&(dataErrWatchdog|dataErrAmplitude) != 0 {
		return InvalidReading
	}
	v := uint32(msb&dataMSBMask) << 16
	if d.model == ModelFDC221x {
		lsb, err := d.readWord(regDataLSBCh0 + 2*ch)
		if err != nil {
			return InvalidReading
		}
		v |= uint32(lsb)
	}
	return v
}

// I2C 16-bit word operations (big-endian: HIGH then LOW).

func (d *Device) readWord(reg byte) (uint16, error) {
	d.w[0] = reg
	if err := d.i2c.Tx(d.addr, d.w[:1], d.r[:2]); err != nil {
		return 0, err
	}
	return uint16(d.r[0])<<8 | uint16(d.r[1]), nil
}

func (d *Device) writeWord(reg byte, val uint16) error {
	d.w[0] = reg
	d.w[1] = byte(val >> 8) // high
	d.w[2] = byte(val)      // low
	return d.i2c.Tx(d.addr, d.w[:3], nil)
}

func lowestChannel(mask uint8) uint8 {
	for ch := uint8(0); ch < numChannels; ch++ {
		if mask&(1<<ch) != 0 {
			return ch
		}
	}
	return 0
}

// rrSequence encodes the autoscan range ending at the highest channel in mask.
// The hardware always scans at least channels 0 and 1.
func rrSequence(mask uint8) uint16 {
	switch {
	case mask&0x08 != 0:
		return 0b10
	case mask&0x04 != 0:
		return 0b01
	default:
		return 0b00
	}
}
