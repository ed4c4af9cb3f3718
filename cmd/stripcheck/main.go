// stripcheck walks every palette color across the strip at full brightness.
// Useful for verifying wiring and color order before mounting the light.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/host/v3"

	"github.com/dJPoida/led-night-light/internal/led"
	"github.com/dJPoida/led-night-light/internal/palette"
)

func main() {
	var (
		driver = flag.String("driver", "spi", "driver: spi | sim")
		spiDev = flag.String("spidev", "", "SPI port name (empty picks the first)")
		holdMS = flag.Int("hold-ms", 400, "time to hold each color")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	if _, err := host.Init(); err != nil {
		log.Warn().Err(err).Msg("periph host init failed; forcing SIM")
		*driver = "sim"
	}

	var strip led.Strip
	if *driver == "spi" {
		s, err := led.OpenSPI(*spiDev, palette.NumLeds)
		if err != nil {
			log.Warn().Err(err).Msg("SPI init failed; falling back to SIM")
			strip = led.NewScreen(palette.NumLeds)
		} else {
			strip = s
		}
	} else {
		strip = led.NewScreen(palette.NumLeds)
	}
	defer strip.Close()

	strip.SetBrightness(255)
	for ci := 0; ci < palette.NumColors; ci++ {
		base := palette.Base[ci]
		comp := palette.Complementary[ci]
		log.Info().Int("color", ci).Msg("showing base | complementary halves")
		for i := 0; i < palette.NumLeds; i++ {
			c := base
			if i >= palette.NumLeds/2 {
				c = comp
			}
			strip.SetPixel(i, c.R, c.G, c.B)
		}
		if err := strip.Show(); err != nil {
			log.Fatal().Err(err).Msg("show failed")
		}
		time.Sleep(time.Duration(*holdMS) * time.Millisecond)
	}

	for i := 0; i < palette.NumLeds; i++ {
		strip.SetPixel(i, 0, 0, 0)
	}
	strip.SetBrightness(0)
	if err := strip.Show(); err != nil {
		log.Fatal().Err(err).Msg("blank failed")
	}
}
