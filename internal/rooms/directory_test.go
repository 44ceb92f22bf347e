package rooms

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDirectory() *Directory {
	return &Directory{
		Offices: []Office{
			{ID: "WXyj74Gx", Name: "Singapore HQ", ShortName: "SIN", Country: "Singapore", City: "Singapore"},
			{ID: "Bq91kPl2", Name: "Jakarta Office", ShortName: "JKT", Country: "Indonesia", City: "Jakarta"},
		},
		Rooms: []Room{
			{ID: "room-a@example.com", Title: "Room A", SeatingCapacity: 5, Level: 3, BuildingCode: "WXyj74Gx", Domain: "corp"},
			{ID: "room-b@example.com", Title: "Room B", SeatingCapacity: 8, Level: 3, BuildingCode: "WXyj74Gx", Domain: "corp"},
			{ID: "room-c@example.com", Title: "Hardjonagoro", SeatingCapacity: 12, Level: 5, BuildingCode: "Bq91kPl2", Domain: "subsidiary"},
		},
	}
}

func TestResolveRoom(t *testing.T) {
	dir := testDirectory()

	room, err := dir.ResolveRoom("room-a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Room A", room.Title)

	// Title match is case-insensitive
	room, err = dir.ResolveRoom("room b")
	require.NoError(t, err)
	assert.Equal(t, "room-b@example.com", room.ID)

	_, err = dir.ResolveRoom("Room Z")
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "room", notFound.Kind)
	assert.Equal(t, "Room Z", notFound.ID)
}

func TestResolveRoomsCollectsErrors(t *testing.T) {
	dir := testDirectory()

	resolved, errs := dir.ResolveRooms([]string{"Room A", "nope", "Hardjonagoro"})
	assert.Len(t, resolved, 2)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "nope")
}

func TestResolveOffice(t *testing.T) {
	dir := testDirectory()

	office, err := dir.ResolveOffice("WXyj74Gx")
	require.NoError(t, err)
	assert.Equal(t, "Singapore HQ", office.Name)

	office, err = dir.ResolveOffice("jkt")
	require.NoError(t, err)
	assert.Equal(t, "Jakarta Office", office.Name)

	_, err = dir.ResolveOffice("unknown")
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "office", notFound.Kind)
}

func TestSearch(t *testing.T) {
	dir := testDirectory()

	tests := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{
			name:     "partial room name",
			filter:   Filter{RoomNameContains: "hardjo"},
			expected: []string{"room-c@example.com"},
		},
		{
			name:     "office code",
			filter:   Filter{OfficeCodeExact: "WXyj74Gx"},
			expected: []string{"room-a@example.com", "room-b@example.com"},
		},
		{
			name:     "country",
			filter:   Filter{CountryContains: "indo"},
			expected: []string{"room-c@example.com"},
		},
		{
			name:     "city and minimum capacity",
			filter:   Filter{CityContains: "singapore", MinimumCapacity: 6},
			expected: []string{"room-b@example.com"},
		},
		{
			name:     "level",
			filter:   Filter{Level: levelPtr(5)},
			expected: []string{"room-c@example.com"},
		},
		{
			name:     "office criteria matching nothing returns no rooms",
			filter:   Filter{OfficeNameContains: "berlin"},
			expected: nil,
		},
		{
			name:     "capacity excludes small rooms",
			filter:   Filter{MinimumCapacity: 10},
			expected: []string{"room-c@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, r := range dir.Search(tt.filter) {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestSearchGroundFloorLevel(t *testing.T) {
	dir := &Directory{
		Rooms: []Room{
			{ID: "lobby@example.com", Title: "Lobby Pod", SeatingCapacity: 2, Level: 0, BuildingCode: "WXyj74Gx", Domain: "corp"},
			{ID: "room-a@example.com", Title: "Room A", SeatingCapacity: 5, Level: 3, BuildingCode: "WXyj74Gx", Domain: "corp"},
		},
	}

	var ids []string
	for _, r := range dir.Search(Filter{Level: levelPtr(0)}) {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"lobby@example.com"}, ids)
}

func TestFilterEmpty(t *testing.T) {
	assert.True(t, Filter{}.Empty())
	assert.False(t, Filter{RoomNameContains: "a"}.Empty())
	assert.False(t, Filter{MinimumCapacity: 2}.Empty())
	assert.False(t, Filter{Level: levelPtr(0)}.Empty())
}

func levelPtr(level int) *int {
	return &level
}

func TestLoadFile(t *testing.T) {
	content := `
offices:
  - id: WXyj74Gx
    name: Singapore HQ
    short_name: SIN
    country: Singapore
    city: Singapore
rooms:
  - id: room-a@example.com
    title: Room A
    seating_capacity: 5
    level: 3
    building_code: WXyj74Gx
    domain: corp
`
	path := filepath.Join(t.TempDir(), "rooms.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	dir, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, dir.Rooms, 1)
	assert.Equal(t, 5, dir.Rooms[0].SeatingCapacity)
	assert.Equal(t, "corp", dir.Rooms[0].Domain)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

// The example directory shipped at the repo root must stay loadable and
// internally consistent, it is what a fresh install runs against.
func TestLoadShippedDirectory(t *testing.T) {
	dir, err := LoadFile(filepath.Join("..", "..", "rooms.yaml"))
	require.NoError(t, err)

	require.NotEmpty(t, dir.Offices)
	require.NotEmpty(t, dir.Rooms)

	for _, r := range dir.Rooms {
		assert.NotEmpty(t, r.ID)
		assert.NotEmpty(t, r.Title)
		assert.Positive(t, r.SeatingCapacity)
		assert.NotEmpty(t, r.Domain)
		_, err := dir.ResolveOffice(r.BuildingCode)
		assert.NoError(t, err, "room %s references unknown office %s", r.ID, r.BuildingCode)
	}
}
