//go:build profile

package profiler

import (
	"encoding/json"
	"errors"
	"os"
)

type ssFile struct {
	Schema             string      `json:"$schema"`
	Shared             ssShared    `json:"shared"`
	Profiles           []ssProfile `json:"profiles"`
	ActiveProfileIndex int         `json:"activeProfileIndex"`
	Exporter           string      `json:"exporter,omitempty"`
	Name               string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"` // "evented"
	Name       string    `json:"name"`
	Unit       string    `json:"unit"` // "microseconds"
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"`  // "O" or "C"
	At    int64  `json:"at"`    // µs since first event
	Frame int    `json:"frame"` // frame index
}

// buildProfile turns ring entries into balanced speedscope events.
// Mismatched closes are dropped; scopes still open at the end are closed
// at the last timestamp.
func buildProfile(evs []evEntry) ssProfile {
	p := ssProfile{Type: "evented", Name: "musique frames", Unit: "microseconds"}
	if len(evs) == 0 {
		return p
	}
	base := evs[0].AtNS
	stack := make([]int, 0, 64)
	lastUS := int64(0)
	for _, e := range evs {
		atUS := (e.AtNS - base) / 1000
		if atUS < lastUS {
			atUS = lastUS // keep µs monotonic
		}
		if e.Open {
			p.Events = append(p.Events, ssEvent{Type: "O", At: atUS, Frame: e.FrameID})
			stack = append(stack, e.FrameID)
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.FrameID {
				continue
			}
			stack = stack[:len(stack)-1]
			p.Events = append(p.Events, ssEvent{Type: "C", At: atUS, Frame: e.FrameID})
		}
		lastUS = atUS
	}
	for i := len(stack) - 1; i >= 0; i-- {
		p.Events = append(p.Events, ssEvent{Type: "C", At: lastUS, Frame: stack[i]})
	}
	p.EndValue = lastUS
	return p
}

func writeSpeedscope(evs []evEntry, names []string, path string) error {
	prof := buildProfile(evs)
	if len(prof.Events) == 0 {
		return errors.New("no usable events after filtering")
	}
	fs := make([]ssFrame, len(names))
	for i, n := range names {
		fs[i] = ssFrame{Name: n}
	}
	doc := ssFile{
		Schema:   "https://www.speedscope.app/file-format-schema.json",
		Shared:   ssShared{Frames: fs},
		Profiles: []ssProfile{prof},
		Exporter: "musique-profiler",
		Name:     "musique capture",
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
