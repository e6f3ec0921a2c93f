package constant

const (
	DefaultNoteType   = "note"
	DefaultBlobFolder = "notes"

	// Note types stored as images use the image resource type on the blob
	// store; everything else is kept as raw binary.
	NoteTypeImage     = "image"
	ResourceTypeImage = "image"
	ResourceTypeRaw   = "raw"
)

const (
	NoteEventCreated = "note.created"
	NoteEventDeleted = "note.deleted"
)
