package activity

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/unicode/norm"
)

// ErrUnknownCategory is returned when a label is not part of its closed set.
var ErrUnknownCategory = errors.New("unknown category")

// Type is the kind of campus activity.
type Type string

const (
	TypeLecture     Type = "学术讲座" // academic lecture
	TypePerformance Type = "文艺演出" // performance
	TypeSports      Type = "体育比赛" // sports match
	TypeClub        Type = "社团活动" // club activity
	TypeVolunteer   Type = "志愿活动" // volunteering
	TypeJobFair     Type = "招聘会"  // job fair
	TypeCompetition Type = "竞赛活动" // competition
)

// Location is the venue an activity takes place in.
type Location string

const (
	LocationGymnasium     Location = "体育馆"     // gymnasium
	LocationLectureHall   Location = "学术报告厅"   // lecture hall
	LocationSportsField   Location = "操场"      // sports field
	LocationStudentCentre Location = "学生活动中心"  // student activity centre
	LocationOnline        Location = "线上"      // online
)

// Organizer is the body running an activity.
type Organizer string

const (
	OrganizerStudentUnion    Organizer = "学生会"   // student union
	OrganizerYouthLeague     Organizer = "团委"    // youth league committee
	OrganizerAcademicAffairs Organizer = "教务处"   // academic affairs office
	OrganizerStudentClub     Organizer = "学生社团"  // student club
	OrganizerDepartment      Organizer = "院系"    // department
)

var (
	types = []Type{
		TypeLecture, TypePerformance, TypeSports, TypeClub,
		TypeVolunteer, TypeJobFair, TypeCompetition,
	}
	locations = []Location{
		LocationGymnasium, LocationLectureHall, LocationSportsField,
		LocationStudentCentre, LocationOnline,
	}
	organizers = []Organizer{
		OrganizerStudentUnion, OrganizerYouthLeague, OrganizerAcademicAffairs,
		OrganizerStudentClub, OrganizerDepartment,
	}
)

// Types returns the activity types in declaration order.
// The returned slice is a copy and may be modified by the caller.
func Types() []Type { return append([]Type(nil), types...) }

// Locations returns the venues in declaration order.
func Locations() []Location { return append([]Location(nil), locations...) }

// Organizers returns the organizer categories in declaration order.
func Organizers() []Organizer { return append([]Organizer(nil), organizers...) }

// ParseType maps a label to its Type. The label is NFC normalized first, so
// decomposed input read back from foreign files still matches.
func ParseType(s string) (Type, error) {
	return parse(s, "type", types)
}

// ParseLocation maps a label to its Location.
func ParseLocation(s string) (Location, error) {
	return parse(s, "location", locations)
}

// ParseOrganizer maps a label to its Organizer.
func ParseOrganizer(s string) (Organizer, error) {
	return parse(s, "organizer", organizers)
}

func parse[T ~string](s, kind string, set []T) (T, error) {
	label := norm.NFC.String(s)
	for _, v := range set {
		if string(v) == label {
			return v, nil
		}
	}
	return "", fmt.Errorf("%s %q: %w", kind, s, ErrUnknownCategory)
}

func (t Type) valid() bool { return slices.Contains(types, t) }
func (l Location) valid() bool { return slices.Contains(locations, l) }
func (o Organizer) valid() bool { return slices.Contains(organizers, o) }
