package studentlist

import "github.com/aanand-mishra/student-list/internal/types"

// State is everything the renderer looks at.
//
// Render checks Loading first, then Failed, then shows Students. Err is
// meaningful only when Failed is set.
type State struct {
	Students []types.Student `json:"students"        yaml:"students"`
	Loading  bool            `json:"loading"         yaml:"loading"`
	Failed   bool            `json:"failed"          yaml:"failed"`
	Err      string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// Initial is the state of a freshly mounted component.
func Initial() State {
	return State{
		Students: []types.Student{},
		Loading:  true,
	}
}

// Settle applies a fetch outcome. It only moves a loading state forward;
// a state that has already settled is returned unchanged.
func (s State) Settle(students []types.Student, err error) State {
	if !s.Loading {
		return s
	}

	if err != nil {
		return State{
			Students: []types.Student{},
			Failed:   true,
			Err:      err.Error(),
		}
	}

	if students == nil {
		students = []types.Student{}
	}
	return State{Students: students}
}

// clone copies the student slice so a snapshot cannot alias live state.
func (s State) clone() State {
	out := s
	out.Students = make([]types.Student, len(s.Students))
	copy(out.Students, s.Students)
	return out
}
