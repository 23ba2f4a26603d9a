package models

// Attachment is a file stored inline on its owning document, payload
// base64-encoded.
type Attachment struct {
	ID         string `bson:"id" json:"id"`
	Filename   string `bson:"filename" json:"filename"`
	FileType   string `bson:"file_type" json:"file_type"`
	FileSize   int64  `bson:"file_size" json:"file_size"`
	Data       string `bson:"data" json:"data"`
	UploadedAt string `bson:"uploaded_at" json:"uploaded_at"`
	UploadedBy string `bson:"uploaded_by" json:"uploaded_by"`
}

// AttachmentInfo is the listing form, without the payload.
type AttachmentInfo struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	FileType   string `json:"file_type"`
	FileSize   int64  `json:"file_size"`
	UploadedAt string `json:"uploaded_at"`
	UploadedBy string `json:"uploaded_by"`
}

func (a Attachment) Info() AttachmentInfo {
	return AttachmentInfo{
		ID:         a.ID,
		Filename:   a.Filename,
		FileType:   a.FileType,
		FileSize:   a.FileSize,
		UploadedAt: a.UploadedAt,
		UploadedBy: a.UploadedBy,
	}
}
