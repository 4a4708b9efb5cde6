package capture

import (
	"encoding/hex"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"go-surface/protocol"
)

type exportDoc struct {
	Session string        `yaml:"session"`
	Started string        `yaml:"started"`
	Port    string        `yaml:"port,omitempty"`
	Frames  []exportFrame `yaml:"frames"`
}

type exportFrame struct {
	Seq     uint64 `yaml:"seq"`
	Offset  string `yaml:"offset"`
	Dir     string `yaml:"dir"`
	Origin  string `yaml:"origin"`
	Message string `yaml:"message"`
	Bytes   string `yaml:"bytes"`
	Decoded string `yaml:"decoded,omitempty"`
	Error   string `yaml:"error,omitempty"`
}

// ExportYAML writes a session as a YAML document, decoding every frame it
// can.
func ExportYAML(w io.Writer, sess Session, recs []Record) error {
	doc := exportDoc{
		Session: sess.ID.String(),
		Started: sess.Started.Format("2006-01-02T15:04:05.000Z07:00"),
		Port:    sess.Port,
		Frames:  make([]exportFrame, 0, len(recs)),
	}
	for _, r := range recs {
		f := exportFrame{
			Seq:    r.Seq,
			Offset: r.Time.Sub(sess.Started).String(),
			Dir:    r.Direction.String(),
			Origin: r.Origin.String(),
			Bytes:  hex.EncodeToString(r.Data),
		}
		if len(r.Data) > 0 {
			id := protocol.MessageID(r.Data[0])
			f.Message = id.String()
			if m, err := protocol.Decode(id, r.Data[1:]); err != nil {
				f.Error = err.Error()
			} else {
				f.Decoded = fmt.Sprintf("%+v", m)
			}
		}
		doc.Frames = append(doc.Frames, f)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("export yaml: %w", err)
	}
	return enc.Close()
}
