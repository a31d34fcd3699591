// Stress driver for smtx: a fleet of reader and writer goroutines hammers
// one lock for a fixed duration, then the final counter is checked against
// the number of exclusive increments performed.
package main

import (
	"flag"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/llxisdsh/smtx"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

var (
	workers     = flag.Int("workers", 32, "number of worker goroutines")
	duration    = flag.Duration("duration", 10*time.Second, "test duration")
	writerRatio = flag.Float64("writers", 0.25, "fraction of workers that write")
	verbose     = flag.Bool("v", false, "log every acquisition")
)

func main() {
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	log.Info().
		Int("workers", *workers).
		Dur("duration", *duration).
		Float64("writer_ratio", *writerRatio).
		Msg("starting smtx stress test")

	var (
		mu          smtx.SMutex
		globalValue int // protected by mu
		stop        atomic.Bool
		writes      atomic.Int64
		reads       atomic.Int64
	)

	var wg sync.WaitGroup
	for id := range *workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rng := rand.New(rand.NewSource(int64(id)*7919 + 17))
			writer := rng.Float64() < *writerRatio

			for !stop.Load() {
				if writer {
					mu.Lock()
					globalValue++
					v := globalValue
					mu.Unlock()
					writes.Inc()
					log.Debug().Int("worker", id).Int("value", v).Msg("wrote")
				} else {
					mu.RLock()
					v := globalValue
					mu.RUnlock()
					reads.Inc()
					log.Debug().Int("worker", id).Int("value", v).Msg("read")
				}
				time.Sleep(time.Duration(rng.Intn(int(time.Millisecond))))
			}
		}()
	}

	time.Sleep(*duration)
	stop.Store(true)
	wg.Wait()

	mu.RLock()
	final := globalValue
	mu.RUnlock()

	log.Info().
		Int("final_value", final).
		Int64("writes", writes.Load()).
		Int64("reads", reads.Load()).
		Msg("stress test finished")

	if int64(final) != writes.Load() {
		log.Error().Msg("final value does not match write count")
		os.Exit(1)
	}
}
