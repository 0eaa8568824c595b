package models

// Action is a request to transition the store to a new snapshot. The set of
// actions is the sole write path into the collections.
type Action interface {
	// Name returns the stable action identifier used in logs and metrics.
	Name() string
}

// LoadData hydrates the store from persisted state, once at startup. The
// payload is a partial snapshot: a nil collection keeps the current value,
// a non-nil one (even empty) replaces it.
type LoadData struct {
	Data Snapshot
}

type AddPersona struct {
	Persona Persona
}

// UpdatePersona replaces the persona whose id matches. No match is a
// documented no-op, not an error.
type UpdatePersona struct {
	Persona Persona
}

// DeletePersona removes the matching persona. Blogs referencing it are left
// untouched and keep the now-dangling PersonaID.
type DeletePersona struct {
	ID string
}

type AddBlog struct {
	Blog BlogPost
}

type UpdateBlog struct {
	Blog BlogPost
}

type DeleteBlog struct {
	ID string
}

// AddGptExport appends to the export audit log. There is no corresponding
// update or delete action.
type AddGptExport struct {
	Export GptExportRecord
}

func (LoadData) Name() string      { return "LOAD_DATA" }
func (AddPersona) Name() string    { return "ADD_PERSONA" }
func (UpdatePersona) Name() string { return "UPDATE_PERSONA" }
func (DeletePersona) Name() string { return "DELETE_PERSONA" }
func (AddBlog) Name() string       { return "ADD_BLOG" }
func (UpdateBlog) Name() string    { return "UPDATE_BLOG" }
func (DeleteBlog) Name() string    { return "DELETE_BLOG" }
func (AddGptExport) Name() string  { return "ADD_GPT_EXPORT" }
