// Package fdc2x1x register addresses and bitfields for the TI FDC2112, FDC2114,
// FDC2212 and FDC2214 capacitance-to-digital converters.
package fdc2x1x

const (
	// 7-bit I2C addresses selected by the ADDR pin.
	AddressLow  = 0x2A
	AddressHigh = 0x2B

	// --- Register sub-addresses (16-bit, MSB first) ---

	// Conversion results; channel n lives at base + 2n.
	regDataCh0    = 0x00 // R, flags + result[27:16] (FDC221x) or result[11:0] (FDC211x)
	regDataLSBCh0 = 0x01 // R, result[15:0], FDC221x only

	// Per-channel configuration; channel n lives at base + n.
	regRCountCh0       = 0x08
	regOffsetCh0       = 0x0C
	regSettleCountCh0  = 0x10
	regClockDivCh0     = 0x14
	regDriveCurrentCh0 = 0x1E

	// Global
	regStatus         = 0x18
	regErrorConfig    = 0x19
	regConfig         = 0x1A
	regMuxConfig      = 0x1B
	regResetDev       = 0x1C
	regManufacturerID = 0x7E
	regDeviceID       = 0x7F

	manufacturerTI  = 0x5449
	deviceIDFDC211x = 0x3054
	deviceIDFDC221x = 0x3055

	// --- DATA_CHx ---
	dataErrWatchdog  = 1 << 13
	dataErrAmplitude = 1 << 12
	dataMSBMask      = 0x0FFF

	// --- CONFIG ---
	cfgActiveChanShift = 14
	cfgSleepModeEn     = 1 << 13
	cfgRefClkExternal  = 1 << 9
	cfgReserved        = 0x1401 // bits 12, 10 and 0 must be written as 1

	// --- MUX_CONFIG ---
	muxAutoscanEn = 1 << 15
	muxRRSeqShift = 13
	muxReserved   = 0x0208 // bits 12:3 must be written as 0001000001b

	// --- CLOCK_DIVIDERS_CHx ---
	clkFinSelShift       = 12
	clkFinSelSingleEnded = 0x1
	clkFrefDividerMask   = 0x03FF

	// --- ERROR_CONFIG ---
	errCfgDRDY2INT = 1 << 0

	// --- RESET_DEV ---
	resetDevBit = 1 << 15

	numChannels = 4
)
