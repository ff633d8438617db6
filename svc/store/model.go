package store

// User is a registered account. PasswordHash is the bcrypt digest.
type User struct {
	ID           string
	Email        string
	PasswordHash string
}

// File types.
const (
	TypeFolder = "folder"
	TypeFile   = "file"
	TypeImage  = "image"
)

// File is a file or folder record. ParentID is empty for the root.
// LocalPath is the blob storage key and stays empty for folders.
type File struct {
	ID        string
	UserID    string
	Name      string
	Type      string
	ParentID  string
	IsPublic  bool
	LocalPath string
}

// IsFolder reports whether f can hold children.
func (f *File) IsFolder() bool {
	return f.Type == TypeFolder
}

// FileFilter scopes ListFiles. A nil ParentID lists across all parents;
// a pointer to "" lists the root.
type FileFilter struct {
	UserID   string
	ParentID *string
}
