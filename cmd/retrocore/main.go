// Command retrocore is the thin host runner around the core: it selects a
// system, loads ROM/program files, and either opens a pixel/glfw display
// window or drops into the bubbletea inspector. No emulation logic lives
// here — everything below this package talks only to bus.Machine.
//
// Grounded on master-g-childhood/go/chr2png/main.go's urfave/cli.v2 flag
// shape and n-ulricksen-nes's main.go's pixelgl.Run(...) entry point
// (flag-based invocation generalised to cli.v2, one ROM cartridge
// generalised to any systems/* machine).
package main

import (
	"fmt"
	"os"

	"github.com/faiface/pixel/pixelgl"
	"gopkg.in/urfave/cli.v2"

	"github.com/n-ulricksen/retrocore/bus"
	"github.com/n-ulricksen/retrocore/internal/inspector"
	"github.com/n-ulricksen/retrocore/systems/amiga"
	"github.com/n-ulricksen/retrocore/systems/c64"
	"github.com/n-ulricksen/retrocore/systems/nes"
	"github.com/n-ulricksen/retrocore/systems/spectrum"
)

func buildMachine(system string) (bus.Machine, []inspector.Component, error) {
	switch system {
	case "nes":
		m := nes.New()
		return m, m.Components(), nil
	case "c64":
		m := c64.New()
		return m, m.Components(), nil
	case "spectrum":
		m := spectrum.New()
		return m, m.Components(), nil
	case "amiga":
		m := amiga.New()
		return m, m.Components(), nil
	default:
		return nil, nil, fmt.Errorf("unknown system %q (want nes, c64, spectrum, or amiga)", system)
	}
}

func run(c *cli.Context) error {
	system := c.String("system")
	romPath := c.String("rom")
	if system == "" || romPath == "" {
		cli.ShowAppHelp(c)
		return cli.Exit("", 86)
	}

	machine, components, err := buildMachine(system)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(romPath)
	if err != nil {
		return err
	}
	if err := machine.LoadFile(romPath, data); err != nil {
		return err
	}

	if c.Bool("inspector") {
		return inspector.Run(machine, components)
	}

	pixelgl.Run(func() { runDisplay(machine, system) })
	return nil
}

func main() {
	app := &cli.App{
		Name:    "retrocore",
		Usage:   "run a cycle-accurate retro-computer emulation",
		Version: "v0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "system",
				Aliases: []string{"s"},
				Usage:   "system to emulate: nes, c64, spectrum, amiga",
			},
			&cli.StringFlag{
				Name:    "rom",
				Aliases: []string{"r"},
				Usage:   "path to the ROM/program image to load",
			},
			&cli.BoolFlag{
				Name:  "inspector",
				Usage: "open the terminal register/memory inspector instead of a display window",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "retrocore:", err)
		os.Exit(1)
	}
}
