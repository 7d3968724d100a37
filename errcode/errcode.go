package errcode

// Code is a stable, caller-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Sensor was not detected by Begin; the measurement was not attempted.
	HumiditySensorNotAvailable    Code = "humidity_sensor_not_available"
	TemperatureSensorNotAvailable Code = "temperature_sensor_not_available"

	// Sensor was detected but the bus transaction failed or returned an
	// invalid sentinel.
	HumidityMeasurementFailed    Code = "humidity_measurement_failed"
	TemperatureMeasurementFailed Code = "temperature_measurement_failed"

	InvalidParams Code = "invalid_params"
	UnknownBus    Code = "unknown_bus"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		return s + ": " + e.Msg
	}
	if e.Err != nil {
		return s + ": " + e.Err.Error()
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Is lets errors.Is match a wrapper against its bare Code.
func (e *E) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.C
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}

// Wrap attaches op and the driver cause to c. A nil cause yields the bare code.
func Wrap(c Code, op string, cause error) error {
	if cause == nil {
		return c
	}
	return &E{C: c, Op: op, Err: cause}
}
