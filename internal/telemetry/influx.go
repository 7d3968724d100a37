// Package telemetry ships soil readings to InfluxDB.
package telemetry

import (
	"context"
	"strconv"
	"time"

	"somo1-go/drivers/somo1"
	"somo1-go/errcode"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

const measurement = "soil"

// Writer writes one point per reading with the blocking write API, so a
// failed write is reported to the caller of Write.
type Writer struct {
	client influxdb2.Client
	api    api.WriteAPIBlocking
	serial string
}

// NewWriter connects lazily; no request is made until the first Write.
// serial tags every point with the probe's SHT4x serial number.
func NewWriter(url, token, org, bucket string, serial uint32) *Writer {
	client := influxdb2.NewClient(url, token)
	return &Writer{
		client: client,
		api:    client.WriteAPIBlocking(org, bucket),
		serial: SerialTag(serial),
	}
}

// Write stores the successful halves of r. A reading with both halves failed
// writes only the error codes.
func (w *Writer) Write(ctx context.Context, r somo1.Reading, ts time.Time) error {
	if err := w.api.WritePoint(ctx, Point(r, w.serial, ts)); err != nil {
		return &errcode.E{C: errcode.Error, Op: "influx_write", Err: err}
	}
	return nil
}

func (w *Writer) Close() { w.client.Close() }

// Point renders r as a line-protocol point.
func Point(r somo1.Reading, serial string, ts time.Time) *write.Point {
	fields := map[string]interface{}{
		"humidity_status":    string(errcode.Of(r.HumidityErr)),
		"temperature_status": string(errcode.Of(r.TemperatureErr)),
	}
	if r.HumidityErr == nil {
		fields["humidity_percent"] = int64(r.HumidityPercent)
		fields["humidity_raw"] = int64(r.HumidityRaw)
	}
	if r.TemperatureErr == nil {
		fields["temperature_c"] = float64(r.TemperatureC)
	}
	return influxdb2.NewPoint(measurement, map[string]string{"sensor": serial}, fields, ts)
}

// SerialTag formats a serial number as 8 hex digits.
func SerialTag(serial uint32) string {
	s := strconv.FormatUint(uint64(serial), 16)
	for len(s) < 8 {
		s = "0" + s
	}
	return s
}
