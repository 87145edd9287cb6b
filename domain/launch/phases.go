package launch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrInvalidPhaseDuration = errors.New("phase duration must be a positive number of days")
	ErrInvalidPhaseKey      = errors.New("phase key must not be empty")
	ErrDuplicatePhaseKey    = errors.New("duplicate phase key")
	ErrInvalidPhaseRange    = errors.New("phase start must not be after its end")
	ErrPhaseKeyTooLong      = errors.New("phase key is too long")
	ErrDateOutOfRange       = errors.New("phase date out of range")
)

const (
	day = 24 * time.Hour

	// MaxPhaseDays bounds a single phase to about ten years.
	MaxPhaseDays = 3650
	// MaxPhaseKeyLength matches the width of the phases.name column.
	MaxPhaseKeyLength = 64

	minYear = 1
	maxYear = 9999
)

// PhaseConfig is the nominal shape of a phase, independent of any project.
type PhaseConfig struct {
	Name string `json:"name"`
	Days int    `json:"days" binding:"max=3650"`
}

// PhaseTemplate is one entry of an ordered phase configuration.
type PhaseTemplate struct {
	Key string `json:"key"`
	PhaseConfig
}

type PhaseData struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration is the stored day count of the range: ceil((end - start) / 1 day).
func (d PhaseData) Duration() int {
	return int(math.Ceil(float64(d.End.Sub(d.Start)) / float64(day)))
}

func (d PhaseData) Validate() error {
	for _, t := range []time.Time{d.Start, d.End} {
		if t.Year() < minYear || t.Year() > maxYear {
			return fmt.Errorf("%w: %s", ErrDateOutOfRange, t.Format("2006-01-02"))
		}
	}
	if d.Start.After(d.End) {
		return ErrInvalidPhaseRange
	}
	return nil
}

type Phase struct {
	Key string
	PhaseData
}

// Phases is an ordered mapping from phase key to its date range, earliest phase first.
// Its JSON form is an object whose member order follows the mapping order.
type Phases []Phase

func (p Phases) Get(key string) (PhaseData, bool) {
	for _, phase := range p {
		if phase.Key == key {
			return phase.PhaseData, true
		}
	}
	return PhaseData{}, false
}

func (p Phases) Keys() []string {
	keys := make([]string, 0, len(p))
	for _, phase := range p {
		keys = append(keys, phase.Key)
	}
	return keys
}

func (p Phases) Clone() Phases {
	if p == nil {
		return nil
	}
	c := make(Phases, len(p))
	copy(c, p)
	return c
}

func (p Phases) Validate() error {
	seen := make(map[string]struct{}, len(p))
	for _, phase := range p {
		if phase.Key == "" {
			return ErrInvalidPhaseKey
		}
		if len(phase.Key) > MaxPhaseKeyLength {
			return fmt.Errorf("%w: '%s' exceeds %d bytes", ErrPhaseKeyTooLong, phase.Key, MaxPhaseKeyLength)
		}
		if _, ok := seen[phase.Key]; ok {
			return fmt.Errorf("%w '%s'", ErrDuplicatePhaseKey, phase.Key)
		}
		seen[phase.Key] = struct{}{}
		if err := phase.Validate(); err != nil {
			return fmt.Errorf("%w: phase '%s'", err, phase.Key)
		}
	}
	return nil
}

func (p Phases) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, phase := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(phase.Key)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(phase.PhaseData)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p *Phases) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("phases must be a JSON object")
	}

	result := Phases{}
	seen := map[string]struct{}{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return errors.New("phases: invalid key")
		}
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w '%s'", ErrDuplicatePhaseKey, key)
		}
		seen[key] = struct{}{}

		var d PhaseData
		if err := dec.Decode(&d); err != nil {
			return err
		}
		result = append(result, Phase{Key: key, PhaseData: d})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*p = result
	return nil
}
