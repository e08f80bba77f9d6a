package transcription

import (
	"fmt"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal"
)

// MaxFileSize is the upload ceiling for transcription inputs.
const MaxFileSize = 50 * 1024 * 1024 // 50 MiB

var acceptedAudioTypes = map[string]struct{}{
	"audio/mpeg": {},
	"audio/mp3":  {},
	"audio/wav":  {},
	"audio/webm": {},
	"audio/ogg":  {},
	"audio/m4a":  {},
}

var acceptedDocumentTypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"text/plain": {},
}

// ValidateUpload enforces the size limit and mime allow-list and resolves
// the file kind. Every file handed to a Transcriber must pass here first.
func ValidateUpload(declaredMimeType string, sizeBytes int64) (FileKind, error) {
	if sizeBytes <= 0 {
		return "", internal.NewValidationError("file is empty", internal.ErrCodeInvalidFile)
	}
	if sizeBytes > MaxFileSize {
		return "", internal.NewValidationError(
			fmt.Sprintf("file exceeds the %d MiB limit", MaxFileSize/(1024*1024)),
			internal.ErrCodeFileTooLarge)
	}

	if _, ok := acceptedAudioTypes[declaredMimeType]; ok {
		return FileKindAudio, nil
	}
	if _, ok := acceptedDocumentTypes[declaredMimeType]; ok {
		return FileKindDocument, nil
	}

	return "", internal.NewValidationError(
		fmt.Sprintf("unsupported file type %q", declaredMimeType),
		internal.ErrCodeInvalidFile)
}
