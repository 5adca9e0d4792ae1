// Command internbench drives the interner with concurrent reader
// goroutines over a corpus of lines and reports throughput and final
// stats. It exists to exercise Coordinator under genuine concurrency,
// not as a production tool.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fmstephe/internstore/pkg/intern"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	path := flag.String("file", "", "file to read lines from (defaults to stdin)")
	workers := flag.Int("workers", 8, "number of concurrent reader goroutines")
	passes := flag.Int("passes", 1, "number of times each worker re-reads the corpus")
	gc := flag.Bool("gc", false, "run CollectGarbage once after all workers finish")
	flag.Parse()

	log := buildLogger()

	lines, err := readLines(*path)
	if err != nil {
		log.Fatal("reading corpus failed", zap.Error(err))
	}
	log.Info("corpus loaded", zap.Int("lines", len(lines)))

	coord := intern.New()

	start := time.Now()
	var wg sync.WaitGroup

	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			reader := coord.NewReaderLocal()
			var localHandles []intern.Handle

			for p := 0; p < *passes; p++ {
				for _, line := range lines {
					h, err := reader.InternString(line)
					if err != nil {
						log.Error("intern failed", zap.Int("worker", id), zap.Error(err))
						return
					}
					localHandles = append(localHandles, h)
				}
			}

			for _, h := range localHandles {
				h.Close()
			}
		}(w)
	}

	wg.Wait()
	elapsed := time.Since(start)

	if *gc {
		if err := coord.CollectGarbage(); err != nil {
			log.Error("collect garbage failed", zap.Error(err))
		}
	}

	stats := coord.Stats()

	total := int64(*workers) * int64(*passes) * int64(len(lines))
	log.Info("run complete",
		zap.Duration("elapsed", elapsed),
		zap.Int64("operations", total),
		zap.Float64("ops_per_sec", float64(total)/elapsed.Seconds()),
		zap.Uint64("interned", stats.Interned),
		zap.Uint64("returned", stats.Returned),
		zap.Uint64("collected", stats.Collected),
		zap.Int("live", stats.Live),
	)
}

func readLines(path string) ([]string, error) {
	f := os.Stdin
	if path != "" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning corpus: %w", err)
	}
	return lines, nil
}

func buildLogger() *zap.Logger {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.TimeKey = ""
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	logConfig.DisableCaller = true
	return zap.Must(logConfig.Build())
}
