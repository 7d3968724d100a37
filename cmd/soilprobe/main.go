// cmd/soilprobe polls a SoMo1 soil probe on a Linux I²C bus, logs each
// reading and optionally writes it to InfluxDB.
//
// Calibration: put the probe in dry soil and run with -pick0, then in
// saturated soil with -pick100; copy the printed values into SOMO1_RAW_0 and
// SOMO1_RAW_100.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"somo1-go/drivers/somo1"
	"somo1-go/internal/config"
	"somo1-go/internal/platform"
	"somo1-go/internal/telemetry"
	"somo1-go/x/mathx"

	logger "github.com/d2r2/go-logger"
)

const (
	logName      = "soilprobe"
	writeTimeout = 5 * time.Second
)

var lg = logger.NewPackageLogger(logName, logger.InfoLevel)

func main() {
	defer logger.FinalizeLogger()

	var (
		envFile string
		pick0   bool
		pick100 bool
		once    bool
	)
	flag.StringVar(&envFile, "env", ".env", "dotenv file with SOMO1_* / INFLUX_* settings")
	flag.BoolVar(&pick0, "pick0", false, "measure and print the raw code for 0% (dry soil), then exit")
	flag.BoolVar(&pick100, "pick100", false, "measure and print the raw code for 100% (saturated soil), then exit")
	flag.BoolVar(&once, "once", false, "take a single reading and exit")
	flag.Parse()

	cfg, err := config.Load(envFile)
	if err != nil {
		lg.Fatal(err)
	}
	_ = logger.ChangePackageLogLevel(logName, logLevel(cfg.LogLevel))

	buses := platform.DefaultI2CFactory()
	defer buses.Close()

	bus, err := buses.ByID(cfg.Bus)
	if err != nil {
		lg.Fatal(err)
	}

	probe := somo1.New(bus)
	probe.SetCalibration(cfg.Calibration)
	probe.Begin(cfg.Precision)

	lg.Infof("humidity sensor available=%v, temperature sensor available=%v (serial %s), precision=%v",
		probe.IsHumiditySensorAvailable(), probe.IsTemperatureSensorAvailable(),
		telemetry.SerialTag(probe.SerialNumber()), probe.Precision())

	if pick0 || pick100 {
		pickEndpoints(probe, pick0, pick100)
		return
	}

	if !probe.IsHumiditySensorAvailable() && !probe.IsTemperatureSensorAvailable() {
		lg.Fatalf("no SoMo1 sensor answered on bus %q", cfg.Bus)
	}

	var sink *telemetry.Writer
	if cfg.Influx.Enabled() {
		sink = telemetry.NewWriter(cfg.Influx.URL, cfg.Influx.Token, cfg.Influx.Org, cfg.Influx.Bucket, probe.SerialNumber())
		defer sink.Close()
		lg.Infof("writing to %s bucket %q", cfg.Influx.URL, cfg.Influx.Bucket)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poll(ctx, probe, sink)
	if once {
		return
	}

	tick := time.NewTicker(cfg.Interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			lg.Notify("stopping")
			return
		case <-tick.C:
			poll(ctx, probe, sink)
		}
	}
}

func poll(ctx context.Context, probe *somo1.Device, sink *telemetry.Writer) {
	now := time.Now()
	r := probe.Read()

	if r.HumidityErr != nil {
		lg.Errorf("soil humidity: %v", r.HumidityErr)
	} else {
		lg.Infof("soil humidity %d%% (raw %d)", r.HumidityPercent, r.HumidityRaw)
		if !mathx.Between(r.HumidityPercent, 0, 100) {
			lg.Notifyf("soil humidity outside 0..100%%, check calibration %+v", probe.Calibration())
		}
	}
	if r.TemperatureErr != nil {
		lg.Errorf("soil temperature: %v", r.TemperatureErr)
	} else {
		lg.Infof("soil temperature %.2f °C", r.TemperatureC)
	}

	if sink == nil {
		return
	}
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := sink.Write(wctx, r, now); err != nil {
		lg.Errorf("%v", err)
	}
}

func pickEndpoints(probe *somo1.Device, pick0, pick100 bool) {
	if pick0 {
		if err := probe.PickHumidityRawFor0Percent(); err != nil {
			lg.Fatalf("pick 0%%: %v", err)
		}
		lg.Notifyf("%s=%d", config.EnvRaw0, probe.Calibration().RawAt0Percent)
	}
	if pick100 {
		if err := probe.PickHumidityRawFor100Percent(); err != nil {
			lg.Fatalf("pick 100%%: %v", err)
		}
		lg.Notifyf("%s=%d", config.EnvRaw100, probe.Calibration().RawAt100Percent)
	}
}

func logLevel(s string) logger.LogLevel {
	switch s {
	case "debug":
		return logger.DebugLevel
	case "notify":
		return logger.NotifyLevel
	case "error":
		return logger.ErrorLevel
	default:
		return logger.InfoLevel
	}
}
