// Command snakecore-bench drives the tick engine at full speed: an input
// producer and the tick consumer run on two pinned OS threads, connected
// only by the lock-free SPSC queue, and periodic throughput is reported
// via structured logging.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"snakecore/engine"
	"snakecore/internal/affinity"
	"snakecore/queue"
	"snakecore/worldgen"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	ticks := flag.Int("ticks", -1, "number of ticks to run (-1: use config/default)")
	snakes := flag.Int("snakes", -1, "number of snakes for the deterministic generator and range of input ids; the random generator always places SnakeCapacity (-1: use config/default)")
	queueCap := flag.Int("queueCapacity", -1, "SPSC queue capacity (-1: use config/default)")
	producerCore := flag.Int("producerCore", -1, "CPU core for the input producer (-1: use config/default)")
	consumerCore := flag.Int("consumerCore", -1, "CPU core for the tick consumer (-1: use config/default)")
	generator := flag.String("generator", "", "world generator: random or deterministic (empty: use config/default)")
	statsEvery := flag.Int("statsEveryTicks", -1, "print throughput every N ticks (-1: use config/default)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}
	if *ticks >= 0 {
		cfg.Ticks = *ticks
	}
	if *snakes >= 0 {
		cfg.Snakes = *snakes
	}
	if *queueCap >= 0 {
		cfg.QueueCapacity = *queueCap
	}
	if *producerCore >= 0 {
		cfg.ProducerCore = *producerCore
	}
	if *consumerCore >= 0 {
		cfg.ConsumerCore = *consumerCore
	}
	if *generator != "" {
		cfg.Generator = *generator
	}
	if *statsEvery >= 0 {
		cfg.StatsEveryTicks = *statsEvery
	}

	if err := affinity.RequireCores(2); err != nil {
		logger.Error("insufficient cores", "err", err)
		os.Exit(1)
	}
	if cfg.ProducerCore == cfg.ConsumerCore {
		logger.Error("producerCore and consumerCore must differ", "core", cfg.ProducerCore)
		os.Exit(1)
	}

	var gs *engine.GameState
	switch cfg.Generator {
	case "deterministic":
		gs = worldgen.Deterministic(cfg.Snakes, worldgen.DefaultConfig())
	default:
		gs = worldgen.Random()
	}

	q := queue.New[engine.Input](cfg.QueueCapacity)

	var stop atomic.Bool
	producerDone := make(chan struct{})
	go runProducer(q, &stop, cfg, logger, producerDone)

	runConsumer(gs, q, cfg, logger)

	stop.Store(true)
	<-producerDone

	logger.Info("run complete", "ticks", cfg.Ticks, "snakes", cfg.Snakes)
}

// runProducer pins itself to cfg.ProducerCore and pushes randomized
// direction inputs for randomly chosen snakes, yielding when the queue is
// full rather than blocking.
func runProducer(q *queue.SPSC[engine.Input], stop *atomic.Bool, cfg Config, logger *slog.Logger, done chan<- struct{}) {
	defer close(done)
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := affinity.Pin(cfg.ProducerCore); err != nil {
		logger.Error("producer pin failed", "err", err)
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for !stop.Load() {
		in := engine.Input{
			SnakeID:   uint32(rng.Intn(cfg.Snakes)),
			Direction: engine.Direction(rng.Intn(4)),
		}
		if !q.Produce(in) {
			runtime.Gosched()
		}
	}
}

// runConsumer pins itself to cfg.ConsumerCore and repeatedly drains
// whatever inputs are ready before advancing one tick, reporting
// throughput every cfg.StatsEveryTicks ticks.
func runConsumer(gs *engine.GameState, q *queue.SPSC[engine.Input], cfg Config, logger *slog.Logger) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := affinity.Pin(cfg.ConsumerCore); err != nil {
		logger.Error("consumer pin failed", "err", err)
		os.Exit(1)
	}

	inputBuf := make([]engine.Input, 0, cfg.Snakes)
	start := time.Now()
	windowStart := start

	for tick := 0; tick < cfg.Ticks; tick++ {
		inputBuf = q.DrainInto(inputBuf[:0])
		gs.Tick(inputBuf)

		if cfg.StatsEveryTicks > 0 && (tick+1)%cfg.StatsEveryTicks == 0 {
			elapsed := time.Since(windowStart)
			rate := float64(cfg.StatsEveryTicks) / elapsed.Seconds()
			logger.Info("throughput",
				"tick", tick+1,
				"ticksPerSec", fmt.Sprintf("%.1f", rate),
				"apples", gs.AppleCount(),
			)
			windowStart = time.Now()
		}
	}

	logger.Info("consumer finished", "totalElapsed", time.Since(start).String())
}
