package model

// ImportJob is the queue message handed to the import worker.
type ImportJob struct {
	FileID int64        `json:"file_id"`
	Target ImportTarget `json:"target"`
	S3Path string       `json:"s3_path"`
}

// FileError pairs a failed upload with the file it came from.
type FileError struct {
	FileName string `json:"file_name"`
	Error    string `json:"error"`
}

// BatchResult is the outcome of a multi-file certificate upload. A file's
// failure never aborts the batch; Uploaded preserves input order.
type BatchResult struct {
	Uploaded []CertificateView `json:"uploaded"`
	Errors   []FileError       `json:"errors"`
}

// ImportReport summarizes one import run.
type ImportReport struct {
	Target   ImportTarget `json:"target"`
	Parsed   int          `json:"parsed"`
	Dropped  int          `json:"dropped"`
	Inserted int          `json:"inserted"`
	Skipped  int          `json:"skipped"`
	Warnings []string     `json:"warnings,omitempty"`
	Status   string       `json:"status"`
}
