package config

import (
	"time"
)

// Strategy names the way a reassembled request body is handed to a fragment handler.
type Strategy string

const (
	// SingleShot hands the whole body to the application in one call.
	SingleShot Strategy = "single"
	// TimeSliced hands the body in Delivery.SliceSize fragments, yielding to the event
	// loop for Delivery.Delay between them.
	TimeSliced Strategy = "sliced"
)

// GrowthPolicy controls how an append-only text buffer grows once its capacity is exhausted.
type GrowthPolicy uint8

const (
	// Doubling doubles the capacity until the pending append fits.
	Doubling GrowthPolicy = iota + 1
	// Chunked grows the capacity by a whole number of Growth.Step-sized chunks.
	Chunked
)

type (
	Growth struct {
		Policy GrowthPolicy
		// Step is the chunk size for the Chunked policy. Ignored otherwise.
		Step int
	}

	Buffer struct {
		// Default is the initial capacity.
		Default int
		// Maximal is a hard limit. Appends overflowing it are rejected.
		Maximal int
		Growth  Growth
	}
)

type (
	JSON struct {
		// EntryMaxSize is the ceiling for request bodies consumed as whole documents.
		// Bodies whose declared length is greater or equal are never buffered and
		// answered with 413.
		EntryMaxSize uint64
		// FragmentMaxSize is the same ceiling for handlers consuming bodies fragment
		// by fragment.
		FragmentMaxSize uint64
		// MemoryLimit caps the memory taken by all the pending bodies at once. A body
		// that doesn't fit into what's left is treated as too large. In order to disable
		// the setting, use the math.MaxUint64 value.
		MemoryLimit uint64
	}

	Delivery struct {
		Strategy Strategy
		// SliceSize is the fragment length for the TimeSliced strategy.
		SliceSize int
		// Delay is the pause between two fragments, during which the event loop
		// is free to serve anything else.
		Delay time.Duration
	}

	Response struct {
		// Buffer describes the text buffer a JSON response is generated into.
		Buffer Buffer
	}

	NET struct {
		// ReadBufferSize is the size of every partial body delivery read from the socket.
		ReadBufferSize int
		// WriteBufferSize is the window a response is drained through.
		WriteBufferSize int
		// ReadTimeout limits the time for reading the whole request.
		ReadTimeout time.Duration
		// WriteTimeout limits the time for writing the response.
		WriteTimeout time.Duration
		// ShutdownTimeout is how long in-flight exchanges are awaited on graceful stop.
		ShutdownTimeout time.Duration
		// MaxConns limits simultaneously served connections.
		MaxConns int
		// LoopQueue is the capacity of the event loop's task queue.
		LoopQueue int
	}
)

// Config holds settings used across asyncjson, mainly limits and pre-allocations.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	JSON     JSON
	Delivery Delivery
	Response Response
	NET      NET
}

// Default returns default config. The body limits are tight on purpose, as the whole
// body is kept in memory until it's handed to the application.
func Default() *Config {
	return &Config{
		JSON: JSON{
			EntryMaxSize:    8096,
			FragmentMaxSize: 16384,
			MemoryLimit:     256 * 1024,
		},
		Delivery: Delivery{
			Strategy:  TimeSliced,
			SliceSize: 768,
			Delay:     5 * time.Millisecond,
		},
		Response: Response{
			Buffer: Buffer{
				Default: 512,
				Maximal: 64 * 1024,
				Growth: Growth{
					Policy: Doubling,
					Step:   512,
				},
			},
		},
		NET: NET{
			ReadBufferSize:  1436, // a single TCP segment's payload on a usual ethernet link
			WriteBufferSize: 1436,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			MaxConns:        16,
			LoopQueue:       64,
		},
	}
}
