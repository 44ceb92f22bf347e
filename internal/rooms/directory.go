package rooms

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Directory holds the room and office inventory.
type Directory struct {
	Offices []Office `yaml:"offices"`
	Rooms   []Room   `yaml:"rooms"`
}

// LoadFile reads a directory from a YAML file.
func LoadFile(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rooms file: %w", err)
	}

	var dir Directory
	if err := yaml.Unmarshal(data, &dir); err != nil {
		return nil, fmt.Errorf("failed to parse rooms file %s: %w", path, err)
	}

	return &dir, nil
}

// ResolveOffice resolves an office code or short name to an office.
func (d *Directory) ResolveOffice(code string) (*Office, error) {
	for i := range d.Offices {
		o := &d.Offices[i]
		if o.ID == code || strings.EqualFold(o.ShortName, code) {
			return o, nil
		}
	}
	return nil, &NotFoundError{Kind: "office", ID: code}
}

// ResolveRoom resolves a room id or exact title (case-insensitive) to a
// room.
func (d *Directory) ResolveRoom(identifier string) (*Room, error) {
	for i := range d.Rooms {
		r := &d.Rooms[i]
		if r.ID == identifier || strings.EqualFold(r.Title, identifier) {
			return r, nil
		}
	}
	return nil, &NotFoundError{Kind: "room", ID: identifier}
}

// ResolveRooms resolves a list of room identifiers. Resolution failures
// are collected per identifier and do not abort the rest of the list.
func (d *Directory) ResolveRooms(identifiers []string) ([]Room, []error) {
	var resolved []Room
	var errs []error

	for _, id := range identifiers {
		room, err := d.ResolveRoom(id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		resolved = append(resolved, *room)
	}

	return resolved, errs
}

// Filter describes room search criteria. Zero-value fields are not
// applied. Level is a pointer because 0 is a real floor; nil means no
// level criterion.
type Filter struct {
	RoomNameContains   string
	OfficeCodeExact    string
	OfficeNameContains string
	CountryContains    string
	CityContains       string
	Level              *int
	MinimumCapacity    int
}

// Empty reports whether no criteria are set.
func (f Filter) Empty() bool {
	return f.RoomNameContains == "" && f.OfficeCodeExact == "" &&
		f.OfficeNameContains == "" && f.CountryContains == "" &&
		f.CityContains == "" && f.Level == nil && f.MinimumCapacity == 0
}

func (f Filter) hasOfficeCriteria() bool {
	return f.OfficeCodeExact != "" || f.OfficeNameContains != "" ||
		f.CountryContains != "" || f.CityContains != ""
}

func (f Filter) matchOffice(o Office) bool {
	if f.OfficeCodeExact != "" && o.ID != f.OfficeCodeExact {
		return false
	}
	if f.OfficeNameContains != "" && !containsFold(o.Name, f.OfficeNameContains) {
		return false
	}
	if f.CountryContains != "" && !containsFold(o.Country, f.CountryContains) {
		return false
	}
	if f.CityContains != "" && !containsFold(o.City, f.CityContains) {
		return false
	}
	return true
}

// Search returns the rooms matching the filter, in directory order.
func (d *Directory) Search(f Filter) []Room {
	officeIDs := make(map[string]bool)
	if f.hasOfficeCriteria() {
		for _, o := range d.Offices {
			if f.matchOffice(o) {
				officeIDs[o.ID] = true
			}
		}
		// Office criteria were given but matched nothing: no rooms can
		// qualify either.
		if len(officeIDs) == 0 {
			return nil
		}
	}

	var matched []Room
	for _, r := range d.Rooms {
		if f.RoomNameContains != "" && !containsFold(r.Title, f.RoomNameContains) {
			continue
		}
		if f.Level != nil && r.Level != *f.Level {
			continue
		}
		if f.MinimumCapacity != 0 && r.SeatingCapacity < f.MinimumCapacity {
			continue
		}
		if len(officeIDs) > 0 && !officeIDs[r.BuildingCode] {
			continue
		}
		matched = append(matched, r)
	}

	return matched
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
