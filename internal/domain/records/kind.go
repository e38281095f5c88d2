package records

import "fmt"

// Kind is the closed set of profile-record variants. Caller-supplied tags are
// parsed through ParseKind so unknown tags fail at the boundary instead of
// silently missing a lookup table entry.
type Kind int

const (
	KindAppointments Kind = iota + 1
	KindLabReports
	KindMedications
	KindInsurance
	KindMedicalRecords
	KindGlucoseTrends
	KindHealthMonitorings
)

var kindTags = map[Kind]string{
	KindAppointments:      "appointments",
	KindLabReports:        "labReports",
	KindMedications:       "medications",
	KindInsurance:         "insurance",
	KindMedicalRecords:    "medicalRecords",
	KindGlucoseTrends:     "glucoseTrends",
	KindHealthMonitorings: "healthMonitorings",
}

func (k Kind) String() string {
	if tag, ok := kindTags[k]; ok {
		return tag
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves a wire tag to its Kind.
func ParseKind(tag string) (Kind, error) {
	for k, t := range kindTags {
		if t == tag {
			return k, nil
		}
	}
	return 0, fmt.Errorf("invalid detail type %q", tag)
}

// Kinds returns every variant in a fixed order. The aggregated bundle carries
// one key per entry regardless of how many rows exist.
func Kinds() []Kind {
	return []Kind{
		KindAppointments,
		KindLabReports,
		KindMedications,
		KindInsurance,
		KindMedicalRecords,
		KindGlucoseTrends,
		KindHealthMonitorings,
	}
}
