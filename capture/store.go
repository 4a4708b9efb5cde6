// Package capture records every frame that crosses the dispatcher into a
// bbolt file, one bucket per session, for replay and export.
package capture

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"go-surface/protocol"
)

var (
	bucketSessions = []byte("sessions")
	bucketFrames   = []byte("frames")
)

// ErrSessionNotFound is returned for an unknown session id.
var ErrSessionNotFound = errors.New("capture: session not found")

// Session is one run of the surface.
type Session struct {
	ID      uuid.UUID `json:"id"`
	Started time.Time `json:"started"`
	Port    string    `json:"port,omitempty"`
}

// Record is one captured frame.
type Record struct {
	Seq       uint64             `json:"seq"`
	Time      time.Time          `json:"time"`
	Direction protocol.Direction `json:"dir"`
	Origin    protocol.Origin    `json:"origin"`
	Data      []byte             `json:"data"`
}

// Store is the capture database.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	s := &Store{db: db}
	if err := s.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init capture: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketSessions); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketFrames)
		return err
	})
}

// Begin starts a new session.
func (s *Store) Begin(port string) (Session, error) {
	sess := Session{ID: uuid.New(), Started: time.Now(), Port: port}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(sess)
		if err != nil {
			return err
		}
		key := []byte(sess.ID.String())
		if err := tx.Bucket(bucketSessions).Put(key, data); err != nil {
			return err
		}
		_, err = tx.Bucket(bucketFrames).CreateBucket(key)
		return err
	})
	if err != nil {
		return Session{}, fmt.Errorf("begin session: %w", err)
	}
	return sess, nil
}

// Append stores records in one transaction. Sequence numbers are assigned
// here.
func (s *Store) Append(id uuid.UUID, recs []Record) error {
	if len(recs) == 0 {
		return nil
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketFrames).Bucket([]byte(id.String()))
		if b == nil {
			return ErrSessionNotFound
		}
		for i := range recs {
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			recs[i].Seq = seq
			data, err := json.Marshal(recs[i])
			if err != nil {
				return fmt.Errorf("marshal record: %w", err)
			}
			if err := b.Put(seqKey(seq), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Sessions lists every session, oldest first.
func (s *Store) Sessions() ([]Session, error) {
	var out []Session
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSessions).ForEach(func(k, v []byte) error {
			var sess Session
			if err := json.Unmarshal(v, &sess); err != nil {
				return fmt.Errorf("session %s: %w", k, err)
			}
			out = append(out, sess)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Started.Before(out[j].Started) })
	return out, nil
}

// Session looks up one session.
func (s *Store) Session(id uuid.UUID) (Session, error) {
	var sess Session
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketSessions).Get([]byte(id.String()))
		if v == nil {
			return ErrSessionNotFound
		}
		return json.Unmarshal(v, &sess)
	})
	return sess, err
}

// Frames returns a session's records in capture order.
func (s *Store) Frames(id uuid.UUID) ([]Record, error) {
	var out []Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketFrames).Bucket([]byte(id.String()))
		if b == nil {
			return ErrSessionNotFound
		}
		return b.ForEach(func(k, v []byte) error {
			var r Record
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("record %d: %w", binary.BigEndian.Uint64(k), err)
			}
			out = append(out, r)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// seqKey orders records by sequence under bbolt's byte ordering.
func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}
