package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"golang.org/x/sync/errgroup"

	"conway/src/config"
	"conway/src/simulation"
	"conway/src/universe"
	"conway/src/view"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		log.Fatalf("invalid configuration: %+v", err)
	}

	g := universe.NewGrid(cfg.Size)
	if cfg.Interactive {
		runInteractive(cfg, g)
		return
	}
	if err := runHeadless(cfg, g); err != nil {
		log.Fatalf("simulation failed: %+v", err)
	}
}

//seed populates the grid before any event loop is running
func seed(cfg config.Config, c *simulation.Controller) error {
	if cfg.Random {
		c.SettleRandom(cfg.Seed)
		return nil
	}
	if cfg.Template == "" {
		return nil
	}
	return c.Settle(cfg.Template)
}

func runInteractive(cfg config.Config, g *universe.Grid) {
	v := view.NewViewTerminal(cfg.Seed)
	c := simulation.NewController(g, v.Scheduler(), cfg.Options())
	if err := seed(cfg, c); err != nil {
		log.Fatalf("%+v", err)
	}
	c.RegisterViewer(v)
	v.Start()
}

//runHeadless runs the controller on its own event loop until it finishes or gets interrupted
func runHeadless(cfg config.Config, g *universe.Grid) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := simulation.NewLoop()
	c := simulation.NewController(g, loop.Scheduler(), cfg.Options())
	if err := seed(cfg, c); err != nil {
		return err
	}
	if cfg.MaxSteps == 0 && !cfg.StopWhenStable {
		log.Printf("neither maxSteps nor stopWhenStable is set, press ^C to stop")
	}

	out := view.NewConsoleOut(os.Stdout, cancel)
	c.RegisterViewer(out)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return loop.Run(ctx)
	})
	loop.Post(func() {
		out.Start()
		c.Start()
	})
	return eg.Wait()
}
