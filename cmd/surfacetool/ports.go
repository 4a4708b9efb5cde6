package main

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"go-surface/midi"
	"go-surface/protocol"
)

func listPorts() error {
	fmt.Println("(waiting up to 3 seconds...)")

	type result struct{ ins, outs []string }
	ch := make(chan result, 1)
	go func() {
		ins, outs := midi.Ports()
		ch <- result{ins, outs}
	}()

	select {
	case r := <-ch:
		fmt.Println("=== MIDI Input Ports ===")
		for i, p := range r.ins {
			fmt.Printf("  %d: %s\n", i, p)
		}
		fmt.Println("\n=== MIDI Output Ports ===")
		for i, p := range r.outs {
			fmt.Printf("  %d: %s\n", i, p)
		}
		return nil
	case <-time.After(3 * time.Second):
		return fmt.Errorf("port scan timed out; the MIDI service may be hung")
	}
}

// monitor prints every frame the host sends until interrupted.
func monitor(ctx context.Context, port string) error {
	hp, err := midi.OpenHost(port)
	if err != nil {
		return err
	}
	defer hp.Close()
	fmt.Printf("monitoring %s, ctrl+c to stop\n", hp.ID())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case f := <-hp.Frames():
				fmt.Println(describe(protocol.ToController, f.Data, f.Origin))
			}
		}
	})
	return g.Wait()
}

func describe(dir protocol.Direction, frame []byte, origin protocol.Origin) string {
	stamp := time.Now().Format("15:04:05.000")
	if len(frame) == 0 {
		return fmt.Sprintf("%s %-13s %-5s <empty>", stamp, dir, origin)
	}
	id := protocol.MessageID(frame[0])
	m, err := protocol.Decode(id, frame[1:])
	if err != nil {
		return fmt.Sprintf("%s %-13s %-5s %s: %v", stamp, dir, origin, id, err)
	}
	return fmt.Sprintf("%s %-13s %-5s %s %+v", stamp, dir, origin, id, m)
}
