package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"go-surface/capture"
	"go-surface/protocol"
	"go-surface/surface"
)

func listSessions(dbPath string) error {
	store, err := capture.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.Sessions()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no sessions")
		return nil
	}
	for _, s := range sessions {
		recs, err := store.Frames(s.ID)
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s  %-20s %d frames\n", s.ID, s.Started.Format("2006-01-02 15:04:05"), s.Port, len(recs))
	}
	return nil
}

// openSession resolves "last" or a session id.
func openSession(dbPath string, args []string) (*capture.Store, capture.Session, error) {
	if len(args) == 0 {
		return nil, capture.Session{}, fmt.Errorf("need a session id or \"last\"")
	}
	store, err := capture.Open(dbPath)
	if err != nil {
		return nil, capture.Session{}, err
	}

	var sess capture.Session
	if args[0] == "last" {
		all, err := store.Sessions()
		if err == nil && len(all) == 0 {
			err = capture.ErrSessionNotFound
		}
		if err != nil {
			store.Close()
			return nil, sess, err
		}
		sess = all[len(all)-1]
	} else {
		id, err := uuid.Parse(args[0])
		if err != nil {
			store.Close()
			return nil, sess, fmt.Errorf("session id: %w", err)
		}
		if sess, err = store.Session(id); err != nil {
			store.Close()
			return nil, sess, err
		}
	}
	return store, sess, nil
}

func exportSession(dbPath string, args []string) error {
	store, sess, err := openSession(dbPath, args)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.Frames(sess.ID)
	if err != nil {
		return err
	}
	return capture.ExportYAML(os.Stdout, sess, recs)
}

// replaySession feeds the host's side of a session through a fresh
// surface and prints what it rendered.
func replaySession(dbPath string, args []string) error {
	store, sess, err := openSession(dbPath, args)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.Frames(sess.ID)
	if err != nil {
		return err
	}

	r := &printRenderer{}
	var sent int
	d := protocol.NewDispatcher(nil, protocol.SinkFunc(func([]byte) error {
		sent++
		return nil
	}))
	s := surface.New(d, r, nil)
	d.SetHandler(s)

	for _, rec := range recs {
		if rec.Direction != protocol.ToController {
			continue
		}
		d.Receive(rec.Data, rec.Origin)
	}

	st := d.Stats()
	v := s.View()
	fmt.Printf("\nreplayed %d frames: %d dispatched, %d unknown, %d malformed, %d clipped, %d replies\n",
		st.Received, st.Dispatched, st.Unknown, st.Malformed, st.Clipped, sent)
	fmt.Printf("device %q page %q, track %q, host active %v\n", v.Device.Name, v.Device.PageName, v.Track.Name, v.HostActive)
	for i := 0; i < surface.ParameterCount; i++ {
		sl := s.Slot(i)
		if sl.Exists {
			fmt.Printf("  %d %-16s %-12s %.3f\n", i+1, sl.Name, sl.DisplayText, sl.Value)
		}
	}
	return nil
}

// printRenderer writes one line per slot and list change.
type printRenderer struct{}

func (printRenderer) SetParameter(i int, s surface.Slot) {
	if !s.Exists {
		return
	}
	fmt.Printf("slot %d  %s = %s (%s)\n", i, s.Name, s.DisplayText, s.Phase)
}

func (printRenderer) SetDeviceEnabled(i int, enabled bool) {
	fmt.Printf("device row %d enabled=%v\n", i, enabled)
}

func (printRenderer) ShowList(v surface.ListView) {
	fmt.Printf("list %s: %d of %d entries\n", v.Kind, len(v.Entries), v.Total)
}

func (printRenderer) HideList()            { fmt.Println("list closed") }
func (printRenderer) Refresh(surface.View) {}
