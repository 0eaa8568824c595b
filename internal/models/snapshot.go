package models

// Snapshot is the complete in-memory value of all collections at one
// instant. Collections keep insertion order. A snapshot handed out by the
// store is never mutated; every action produces a new value.
type Snapshot struct {
	Personas   []Persona         `json:"personas"`
	Blogs      []BlogPost        `json:"blogs"`
	GptExports []GptExportRecord `json:"gptExports"`
}

func NewSnapshot() Snapshot {
	return Snapshot{
		Personas:   []Persona{},
		Blogs:      []BlogPost{},
		GptExports: []GptExportRecord{},
	}
}

// FindPersona resolves a persona by id, nil when absent or id is empty.
func (s *Snapshot) FindPersona(id string) *Persona {
	if id == "" {
		return nil
	}
	for i := range s.Personas {
		if s.Personas[i].ID == id {
			return &s.Personas[i]
		}
	}
	return nil
}

// FindBlog resolves a blog post by id, nil when absent.
func (s *Snapshot) FindBlog(id string) *BlogPost {
	if id == "" {
		return nil
	}
	for i := range s.Blogs {
		if s.Blogs[i].ID == id {
			return &s.Blogs[i]
		}
	}
	return nil
}
