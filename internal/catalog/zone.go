package catalog

import (
	"strings"

	"github.com/rotisserie/eris"
)

var ErrUnknownSeismicZone = eris.New("catalog: unknown seismic zone")

// Zone is the seismic hazard class, ordered I (lowest) to V (highest).
type Zone int

const (
	ZoneI Zone = iota + 1
	ZoneII
	ZoneIII
	ZoneIV
	ZoneV
)

var zoneNames = [...]string{"", "I", "II", "III", "IV", "V"}

var zoneAliases = map[string]Zone{
	"I": ZoneI, "II": ZoneII, "III": ZoneIII, "IV": ZoneIV, "V": ZoneV,
	"1": ZoneI, "2": ZoneII, "3": ZoneIII, "4": ZoneIV, "5": ZoneV,
}

// ParseZone accepts roman or arabic numerals with an optional "zone" prefix.
func ParseZone(s string) (Zone, error) {
	key := strings.ToUpper(strings.Join(strings.Fields(s), " "))
	key = strings.TrimSpace(strings.TrimPrefix(key, "ZONE"))
	if z, ok := zoneAliases[key]; ok {
		return z, nil
	}
	return 0, eris.Wrapf(ErrUnknownSeismicZone, "%q", s)
}

// Rank is the ordinal position on the I..V scale, 1-based.
func (z Zone) Rank() int { return int(z) }

func (z Zone) Valid() bool { return z >= ZoneI && z <= ZoneV }

func (z Zone) String() string {
	if !z.Valid() {
		return "unknown"
	}
	return zoneNames[z]
}

func (z Zone) MarshalText() ([]byte, error) {
	if !z.Valid() {
		return nil, eris.Wrapf(ErrUnknownSeismicZone, "%d", int(z))
	}
	return []byte(zoneNames[z]), nil
}

func (z *Zone) UnmarshalText(b []byte) error {
	v, err := ParseZone(string(b))
	if err != nil {
		return err
	}
	*z = v
	return nil
}
