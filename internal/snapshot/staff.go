package snapshot

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/appointment"
)

// ErrEmptyStaffFile is returned when a staff file has no entries.
var ErrEmptyStaffFile = errors.New("staff file has no entries")

// staffFile is the list form of a staff directory file:
//
//	staff:
//	  - id: s1
//	    name: Maya
type staffFile struct {
	Staff []staffEntry `yaml:"staff"`
}

type staffEntry struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// ParseStaff reads a staff directory from YAML, either the list form above
// or a flat id: name mapping.
func ParseStaff(data []byte) (appointment.StaffDirectory, error) {
	var file staffFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing staff file: %w", err)
	}

	dir := make(appointment.StaffDirectory)
	if len(file.Staff) > 0 {
		for i, e := range file.Staff {
			id, name := strings.TrimSpace(e.ID), strings.TrimSpace(e.Name)
			if id == "" || name == "" {
				return nil, fmt.Errorf("staff entry %d: id and name are required", i)
			}
			dir[id] = name
		}
		return dir, nil
	}

	var flat map[string]string
	if err := yaml.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("parsing staff file: %w", err)
	}
	for id, name := range flat {
		id, name = strings.TrimSpace(id), strings.TrimSpace(name)
		if id == "" || name == "" {
			return nil, fmt.Errorf("staff entry %q: id and name are required", id)
		}
		dir[id] = name
	}
	if len(dir) == 0 {
		return nil, ErrEmptyStaffFile
	}
	return dir, nil
}
