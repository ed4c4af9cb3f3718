package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/dJPoida/led-night-light/internal/config"
	"github.com/dJPoida/led-night-light/internal/led"
	"github.com/dJPoida/led-night-light/internal/light"
	"github.com/dJPoida/led-night-light/internal/palette"
	"github.com/dJPoida/led-night-light/internal/store"
)

func main() {
	// ---- Flags (remain usable; config.yaml can override most) ----
	var (
		driver     = flag.String("driver", "spi", "driver: spi | sim")
		spiDev     = flag.String("spidev", "", "SPI port name (empty picks the first)")
		buttonA    = flag.String("button-a", "GPIO17", "GPIO name of button A (color)")
		buttonB    = flag.String("button-b", "GPIO27", "GPIO name of button B (mode/brightness)")
		activeLow  = flag.Bool("active-low", true, "buttons wired to ground with pull-ups")
		storePath  = flag.String("store", "nightlight.bin", "path of the settings byte store")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		simOnly    = flag.Bool("sim-only", false, "force simulation (no hardware output)")
		debug      = flag.Bool("debug", false, "debug logging")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// ---- Load config.yaml (optional) ----
	var cfg *config.Config
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
	} else {
		cfg = c
	}

	// ---- Effective params (config overrides flags where available) ----
	eDriver := *driver
	eSPIDev := *spiDev
	ePinA, ePinB := *buttonA, *buttonB
	eActiveLow := *activeLow
	eStore := *storePath

	if cfg != nil {
		if cfg.Driver != "" {
			eDriver = cfg.Driver
		}
		if cfg.SPI.Dev != "" {
			eSPIDev = cfg.SPI.Dev
		}
		// buttons section overrides as a unit
		if cfg.Buttons.APin != "" && cfg.Buttons.BPin != "" {
			ePinA = cfg.Buttons.APin
			ePinB = cfg.Buttons.BPin
			eActiveLow = cfg.Buttons.ActiveLow
		}
		if cfg.StorePath != "" {
			eStore = cfg.StorePath
		}
	}
	if *simOnly {
		eDriver = "sim"
	}

	// ---- Hardware host ----
	if _, err := host.Init(); err != nil {
		log.Warn().Err(err).Msg("periph host init failed; forcing SIM")
		eDriver = "sim"
	}

	// ---- Settings store ----
	var st store.ByteStore
	if fs, err := store.OpenFile(eStore); err != nil {
		log.Warn().Err(err).Str("path", eStore).Msg("store open failed; selections will not survive restarts")
		st = store.NewMem()
	} else {
		st = fs
	}

	// ---- Strip driver ----
	var strip led.Strip
	switch eDriver {
	case "sim":
		strip = led.NewScreen(palette.NumLeds)
	case "spi":
		s, err := led.OpenSPI(eSPIDev, palette.NumLeds)
		if err != nil {
			log.Warn().Err(err).Str("dev", eSPIDev).Msg("SPI init failed; falling back to SIM")
			strip = led.NewScreen(palette.NumLeds)
			eDriver = "sim"
		} else {
			strip = s
		}
	default:
		log.Warn().Str("driver", eDriver).Msg("unknown driver; using SIM")
		strip = led.NewScreen(palette.NumLeds)
		eDriver = "sim"
	}

	// ---- Buttons ----
	readA := pinReader(ePinA, eActiveLow)
	readB := pinReader(ePinB, eActiveLow)

	ctrl := light.NewController(st, strip)
	log.Info().Str("driver", eDriver).Str("button_a", ePinA).Str("button_b", ePinB).Msg("night light running")

	// ---- Poll loop ----
	// Non-blocking 1ms poll keeps button-to-action latency bounded by the
	// debounce delay; the graduator rate-limits itself internally.
	start := time.Now()
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			now := uint32(time.Since(start).Milliseconds())
			ctrl.Tick(readA(), readB(), now)
		case s := <-ch:
			log.Info().Str("signal", s.String()).Msg("shutting down")
			blank(strip)
			if err := strip.Close(); err != nil {
				log.Warn().Err(err).Msg("strip close failed")
			}
			return
		}
	}
}

// pinReader resolves a GPIO by name and returns a polled pressed-state
// reader. A missing pin degrades to a never-pressed reader so the light
// still runs (animating the persisted selections) on hardware without
// buttons wired up.
func pinReader(name string, activeLow bool) func() bool {
	p := gpioreg.ByName(name)
	if p == nil {
		log.Warn().Str("pin", name).Msg("gpio not found; button disabled")
		return func() bool { return false }
	}
	pull := gpio.PullDown
	if activeLow {
		pull = gpio.PullUp
	}
	if err := p.In(pull, gpio.NoEdge); err != nil {
		log.Warn().Err(err).Str("pin", name).Msg("gpio setup failed; button disabled")
		return func() bool { return false }
	}
	return func() bool {
		pressed := p.Read() == gpio.High
		if activeLow {
			pressed = !pressed
		}
		return pressed
	}
}

func blank(strip led.Strip) {
	for i := 0; i < palette.NumLeds; i++ {
		strip.SetPixel(i, 0, 0, 0)
	}
	strip.SetBrightness(0)
	if err := strip.Show(); err != nil {
		log.Warn().Err(err).Msg("blank failed")
	}
}
