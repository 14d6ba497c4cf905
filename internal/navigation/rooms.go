// Package navigation moves the explore camera between an overview and
// individual rooms of the building.
package navigation

import (
	"errors"
	"fmt"

	"github.com/Faultbox/towerview/pkg/choreo"
	"github.com/Faultbox/towerview/pkg/math"
)

// ErrUnknownRoom is returned when a room id is not in the catalog.
var ErrUnknownRoom = errors.New("unknown room")

// RoomDescriptor is a navigable room. Anchor and Normal place the room's
// label on the building; they never affect the camera.
type RoomDescriptor struct {
	ID     string      `yaml:"id" toml:"id"`
	Label  string      `yaml:"label" toml:"label"`
	Anchor math.Vec3   `yaml:"anchor" toml:"anchor"`
	Normal math.Vec3   `yaml:"normal" toml:"normal"`
	Camera choreo.Pose `yaml:"camera" toml:"camera"`
}

// Catalog is the fixed list of rooms loaded with the scene.
type Catalog struct {
	rooms []RoomDescriptor
	byID  map[string]int
}

// NewCatalog indexes rooms, rejecting empty or duplicate ids.
func NewCatalog(rooms []RoomDescriptor) (*Catalog, error) {
	c := &Catalog{
		rooms: append([]RoomDescriptor(nil), rooms...),
		byID:  make(map[string]int, len(rooms)),
	}
	var errs []error
	for i, r := range c.rooms {
		if r.ID == "" {
			errs = append(errs, fmt.Errorf("room %d: empty id", i))
			continue
		}
		if j, dup := c.byID[r.ID]; dup {
			errs = append(errs, fmt.Errorf("room %d: id %q already used by room %d", i, r.ID, j))
			continue
		}
		c.byID[r.ID] = i
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

// Lookup returns the room with the given id.
func (c *Catalog) Lookup(id string) (RoomDescriptor, error) {
	i, ok := c.byID[id]
	if !ok {
		return RoomDescriptor{}, fmt.Errorf("%w: %q", ErrUnknownRoom, id)
	}
	return c.rooms[i], nil
}

// Rooms returns a copy of the rooms in configuration order.
func (c *Catalog) Rooms() []RoomDescriptor {
	return append([]RoomDescriptor(nil), c.rooms...)
}

// Len returns the number of rooms.
func (c *Catalog) Len() int {
	return len(c.rooms)
}

// Track returns the room track: the overview keyframe followed by one
// keyframe per room.
func (c *Catalog) Track(overview choreo.Pose) []choreo.Keyframe {
	kfs := make([]choreo.Keyframe, 0, len(c.rooms)+1)
	kfs = append(kfs, choreo.Keyframe{Index: 0, Name: "overview", Pose: overview})
	for i, r := range c.rooms {
		kfs = append(kfs, choreo.Keyframe{Index: i + 1, Name: r.ID, Pose: r.Camera})
	}
	return kfs
}
