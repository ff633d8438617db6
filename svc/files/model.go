package files

import (
	"io"

	"github.com/dmitrymomot/filesmanager/svc/store"
)

// File is the public view of a file record. The content location never
// leaves the service.
type File struct {
	ID       string   `json:"id"`
	UserID   string   `json:"userId"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	IsPublic bool     `json:"isPublic"`
	ParentID ParentID `json:"parentId"`
}

func project(f *store.File) File {
	return File{
		ID:       f.ID,
		UserID:   f.UserID,
		Name:     f.Name,
		Type:     f.Type,
		IsPublic: f.IsPublic,
		ParentID: ParentID(f.ParentID),
	}
}

// CreateParams describes an upload. Data is base64 and ignored for folders.
type CreateParams struct {
	Name     string
	Type     string
	ParentID ParentID
	IsPublic bool
	Data     *string
}

// Content is an open file body. The caller must close Body.
type Content struct {
	Body        io.ReadCloser
	ContentType string
	Name        string
	Size        int64
}

func validType(t string) bool {
	switch t {
	case store.TypeFolder, store.TypeFile, store.TypeImage:
		return true
	}
	return false
}
