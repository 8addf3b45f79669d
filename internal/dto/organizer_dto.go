package dto

import (
	"github.com/Valentin6743/LS/internal/models"
	"github.com/google/uuid"
)

type AddFriendRequest struct {
	Tag string `json:"tag"`
}

type FriendRequestAction struct {
	Action models.RequestAction `json:"action"`
}

// SendMessageRequest posts to a conversation. SenderID defaults to the
// acting user.
type SendMessageRequest struct {
	Content  string     `json:"content"`
	SenderID *uuid.UUID `json:"sender_id"`
}

// FileUploadRequest carries the payload base64 encoded in Data.
type FileUploadRequest struct {
	Path        string  `json:"path"`
	Name        string  `json:"name"`
	Data        []byte  `json:"data"`
	MimeType    *string `json:"mime_type"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	Uploader    *string `json:"uploader"`
}

func (r FileUploadRequest) Upload() models.FileUpload {
	return models.FileUpload{
		Path:         r.Path,
		Name:         r.Name,
		Data:         r.Data,
		MimeType:     r.MimeType,
		Category:     r.Category,
		Description:  r.Description,
		UploaderName: r.Uploader,
	}
}
