//go:build rp2040 || rp2350

// cmd/pico-soilprobe reads a SoMo1 soil probe wired to i2c0 of a Pico and
// prints one line per interval on the USB console.
package main

import (
	"time"

	"somo1-go/drivers/somo1"
	"somo1-go/errcode"
	"somo1-go/internal/platform"
)

// ---------- Configuration ----------

const (
	busID     = "i2c0"
	precision = somo1.PrecisionHigh
	interval  = 5 * time.Second

	// Endpoints measured for the installed probe.
	rawDry = 0
	rawWet = 4095
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	bus, err := platform.DefaultI2CFactory().ByID(busID)
	if err != nil {
		println("Error:", err.Error())
		return
	}

	probe := somo1.New(bus)
	probe.SetCalibration(somo1.Calibration{RawAt0Percent: rawDry, RawAt100Percent: rawWet})
	probe.Begin(precision)
	println("Info: humidity", probe.IsHumiditySensorAvailable(),
		"temperature", probe.IsTemperatureSensorAvailable(),
		"serial", probe.SerialNumber())

	tick := time.NewTicker(interval)
	defer tick.Stop()

	for t := range tick.C {
		r := probe.Read()
		hum, temp := "ok", "ok"
		if r.HumidityErr != nil {
			hum = string(errcode.Of(r.HumidityErr))
		}
		if r.TemperatureErr != nil {
			temp = string(errcode.Of(r.TemperatureErr))
		}
		println(t.Format("15:04:05"),
			"humidity%", r.HumidityPercent, "raw", r.HumidityRaw, hum,
			"deci_c", int32(r.TemperatureC*10), temp)
	}
}
