// Command dmgcore is a headless diagnostic harness: it loads a cartridge
// ROM (and optionally a boot ROM), runs a fixed number of frames with no
// window, no audio sink, and no input, and logs a checksum of the final
// framebuffer. It exists to exercise the core from the command line, not
// to be a player-facing front-end.
package main

import (
	"os"
	"strconv"

	"github.com/cespare/xxhash"

	"github.com/pixelbound/dmgcore/internal/gameboy"
	"github.com/pixelbound/dmgcore/pkg/log"
)

func main() {
	logger := log.New()
	if len(os.Args) < 2 {
		logger.Errorf("usage: dmgcore <rom> [boot-rom] [frames]")
		os.Exit(1)
	}

	rom, err := os.ReadFile(os.Args[1])
	if err != nil {
		logger.Errorf("reading rom: %v", err)
		os.Exit(1)
	}

	var opts []gameboy.GameBoyOpt
	opts = append(opts, gameboy.WithLogger(logger))
	if len(os.Args) > 2 {
		bootROM, err := os.ReadFile(os.Args[2])
		if err != nil {
			logger.Errorf("reading boot rom: %v", err)
			os.Exit(1)
		}
		opts = append(opts, gameboy.WithBootROM(bootROM))
	}

	frames := 60
	if len(os.Args) > 3 {
		n, err := strconv.Atoi(os.Args[3])
		if err != nil {
			logger.Errorf("invalid frame count %q: %v", os.Args[3], err)
			os.Exit(1)
		}
		frames = n
	}

	gb := gameboy.New(rom, opts...)
	for i := 0; i < frames; i++ {
		gb.RunFrame()
	}

	fb := gb.Frame()
	flat := make([]byte, 0, len(fb)*len(fb[0]))
	for _, row := range fb {
		flat = append(flat, row[:]...)
	}
	logger.Infof("ran %d frames, framebuffer checksum %016x", frames, xxhash.Sum64(flat))
}
