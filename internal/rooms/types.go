package rooms

import "fmt"

// Room describes a bookable meeting room. ID doubles as the room's
// calendar identifier. Domain names the credential set that must be
// used to query the room's calendar.
type Room struct {
	ID              string `yaml:"id"`
	Title           string `yaml:"title"`
	SeatingCapacity int    `yaml:"seating_capacity"`
	Level           int    `yaml:"level"`
	BuildingCode    string `yaml:"building_code"`
	Domain          string `yaml:"domain"`
}

// Office describes an office location rooms belong to.
type Office struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	ShortName string `yaml:"short_name"`
	Country   string `yaml:"country"`
	City      string `yaml:"city"`
}

// NotFoundError reports an identifier that could not be resolved
// against the directory.
type NotFoundError struct {
	Kind string // "room" or "office"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not resolve %q to a %s", e.ID, e.Kind)
}
