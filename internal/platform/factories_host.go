//go:build !(rp2040 || rp2350)

package platform

import (
	"sync"

	"somo1-go/errcode"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"
)

// DefaultI2CFactory opens Linux I²C buses through periph.io on first use.
// Bus ids are periph names ("1", "/dev/i2c-1", "I2C1"); "" picks the first
// bus found.
func DefaultI2CFactory() I2CBusFactory {
	return newHostFactory(func() error {
		_, err := host.Init()
		return err
	}, i2creg.Open)
}

type hostI2CFactory struct {
	mu       sync.Mutex
	initHost func() error
	open     func(name string) (i2c.BusCloser, error)
	inited   bool
	buses    map[string]i2c.BusCloser
}

func newHostFactory(initHost func() error, open func(string) (i2c.BusCloser, error)) *hostI2CFactory {
	return &hostI2CFactory{initHost: initHost, open: open, buses: make(map[string]i2c.BusCloser)}
}

// ByID returns the bus named id, opening it once. periph's i2c.Bus already
// has the drivers.I2C Tx shape.
func (f *hostI2CFactory) ByID(id string) (drivers.I2C, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if b, ok := f.buses[id]; ok {
		return b, nil
	}
	if !f.inited {
		if err := f.initHost(); err != nil {
			return nil, &errcode.E{C: errcode.UnknownBus, Op: "host_init", Err: err}
		}
		f.inited = true
	}
	b, err := f.open(id)
	if err != nil {
		return nil, &errcode.E{C: errcode.UnknownBus, Op: "open", Msg: id, Err: err}
	}
	f.buses[id] = b
	return b, nil
}

// Close releases every opened bus and returns the first error.
func (f *hostI2CFactory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var first error
	for id, b := range f.buses {
		if err := b.Close(); err != nil && first == nil {
			first = err
		}
		delete(f.buses, id)
	}
	return first
}
