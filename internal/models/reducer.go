package models

import "github.com/google/uuid"

// Reducer applies actions to snapshots. Apply is pure apart from drawing
// fresh ids from the injected generator: it never performs I/O and never
// mutates its input. Unknown actions return the input snapshot unchanged.
type Reducer struct {
	newID func() string
}

func NewReducer() *Reducer {
	return &Reducer{newID: uuid.NewString}
}

// NewReducerWithIDs builds a reducer with a custom id source, used by tests
// that need deterministic ids.
func NewReducerWithIDs(newID func() string) *Reducer {
	return &Reducer{newID: newID}
}

func (r *Reducer) Apply(s Snapshot, action Action) Snapshot {
	switch a := action.(type) {
	case LoadData:
		if a.Data.Personas != nil {
			s.Personas = a.Data.Personas
		}
		if a.Data.Blogs != nil {
			s.Blogs = a.Data.Blogs
		}
		if a.Data.GptExports != nil {
			s.GptExports = a.Data.GptExports
		}
		return s

	case AddPersona:
		p := a.Persona
		p.ID = r.newID()
		s.Personas = appendCopy(s.Personas, p)
		return s

	case UpdatePersona:
		s.Personas = replaceByID(s.Personas, a.Persona, func(p Persona) string { return p.ID })
		return s

	case DeletePersona:
		s.Personas = removeByID(s.Personas, a.ID, func(p Persona) string { return p.ID })
		return s

	case AddBlog:
		b := a.Blog
		b.ID = r.newID()
		if b.Status == "" {
			b.Status = StatusIdea
		}
		s.Blogs = appendCopy(s.Blogs, b)
		return s

	case UpdateBlog:
		s.Blogs = replaceByID(s.Blogs, a.Blog, func(b BlogPost) string { return b.ID })
		return s

	case DeleteBlog:
		s.Blogs = removeByID(s.Blogs, a.ID, func(b BlogPost) string { return b.ID })
		return s

	case AddGptExport:
		e := a.Export
		e.ID = r.newID()
		s.GptExports = appendCopy(s.GptExports, e)
		return s

	default:
		return s
	}
}

// appendCopy appends onto a fresh backing array so readers holding the old
// snapshot never observe the new element through shared capacity.
func appendCopy[T any](items []T, item T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, item)
}

// replaceByID swaps the element whose id matches. When nothing matches the
// input slice is returned as-is.
func replaceByID[T any](items []T, item T, id func(T) string) []T {
	target := id(item)
	for i := range items {
		if id(items[i]) == target {
			out := make([]T, len(items))
			copy(out, items)
			out[i] = item
			return out
		}
	}
	return items
}

// removeByID filters out the element whose id matches. When nothing matches
// the input slice is returned as-is.
func removeByID[T any](items []T, target string, id func(T) string) []T {
	for i := range items {
		if id(items[i]) == target {
			out := make([]T, 0, len(items)-1)
			out = append(out, items[:i]...)
			return append(out, items[i+1:]...)
		}
	}
	return items
}
