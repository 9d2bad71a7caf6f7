package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNoSheet             = errors.New("workbook has no sheet")
	ErrEmptySheet          = errors.New("sheet has no data rows")
	ErrFileTooLarge        = errors.New("file exceeds size limit")
	ErrFileType            = errors.New("file type not allowed")
	ErrImportFileNotFound  = errors.New("import file not found")
	ErrUnknownImportTarget = errors.New("unknown import target")
)

// UploadKind classifies which phase of a certificate upload failed.
type UploadKind string

const (
	UploadKindStorage      UploadKind = "storage"
	UploadKindMetadata     UploadKind = "metadata"
	UploadKindCompensation UploadKind = "compensation"
)

// UploadState is the saga state an upload terminated in.
type UploadState string

const (
	StateUploading         UploadState = "UPLOADING"
	StateBlobStored        UploadState = "BLOB_STORED"
	StateMetadataCommitted UploadState = "METADATA_COMMITTED"
	StateRolledBack        UploadState = "ROLLED_BACK"
	StateOrphaned          UploadState = "ORPHANED"
)

// UploadError reports a failed certificate upload. Key is the storage key
// involved; in StateOrphaned it names a blob that needs external cleanup.
type UploadError struct {
	Kind  UploadKind
	State UploadState
	Key   string
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed (%s, state %s, key %q): %v", e.Kind, e.State, e.Key, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
