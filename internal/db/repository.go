package db

import (
	"context"
	"database/sql"

	"student-portal/internal/model"
)

// Repository is the Metadata Store client: table-oriented CRUD over
// certificates, the three import targets, and import files. Batch inserts
// are all-or-nothing (single transaction).
type Repository interface {
	InsertCertificate(ctx context.Context, cert model.Certificate) (int64, error)
	CertificatesByOwner(ctx context.Context, ownerID string) ([]model.Certificate, error)
	VerifiedCertificatesByOwner(ctx context.Context, ownerID string) ([]model.Certificate, error)
	DeleteCertificate(ctx context.Context, certificateID int64) error

	TeacherIDs(ctx context.Context) ([]string, error)
	InsertTeachers(ctx context.Context, teachers []model.Teacher) error
	StudentIDs(ctx context.Context) ([]string, error)
	InsertStudents(ctx context.Context, students []model.Student) error
	ScholarshipIDs(ctx context.Context) ([]int64, error)
	InsertScholarships(ctx context.Context, scholarships []model.Scholarship) error

	InsertImportFile(ctx context.Context, file model.ImportFile) (int64, error)
	GetImportFile(ctx context.Context, fileID int64) (*model.ImportFile, error)
	UpdateImportFile(ctx context.Context, fileID int64, status model.ImportStatus, inserted, skipped int, errorMessage *string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) InsertCertificate(ctx context.Context, cert model.Certificate) (int64, error) {
	query := `INSERT INTO certificates (owner_id, storage_path, status, activity_point, uploaded_at)
			  VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, cert.OwnerID, cert.StoragePath,
		cert.Status, cert.ActivityPoint, cert.UploadedAt)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (r *repository) CertificatesByOwner(ctx context.Context, ownerID string) ([]model.Certificate, error) {
	query := `SELECT certificate_id, owner_id, storage_path, status, activity_point, uploaded_at
			  FROM certificates WHERE owner_id = ? ORDER BY uploaded_at DESC`
	return r.queryCertificates(ctx, query, ownerID)
}

func (r *repository) VerifiedCertificatesByOwner(ctx context.Context, ownerID string) ([]model.Certificate, error) {
	query := `SELECT certificate_id, owner_id, storage_path, status, activity_point, uploaded_at
			  FROM certificates WHERE owner_id = ? AND status = 'Verified' ORDER BY uploaded_at DESC`
	return r.queryCertificates(ctx, query, ownerID)
}

func (r *repository) queryCertificates(ctx context.Context, query string, args ...interface{}) ([]model.Certificate, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var certs []model.Certificate
	for rows.Next() {
		var cert model.Certificate
		err := rows.Scan(&cert.CertificateID, &cert.OwnerID, &cert.StoragePath,
			&cert.Status, &cert.ActivityPoint, &cert.UploadedAt)
		if err != nil {
			return nil, err
		}
		certs = append(certs, cert)
	}

	return certs, rows.Err()
}

func (r *repository) DeleteCertificate(ctx context.Context, certificateID int64) error {
	query := `DELETE FROM certificates WHERE certificate_id = ?`
	_, err := r.db.ExecContext(ctx, query, certificateID)
	return err
}

func (r *repository) TeacherIDs(ctx context.Context) ([]string, error) {
	return r.stringIDs(ctx, `SELECT id FROM teacher`)
}

func (r *repository) StudentIDs(ctx context.Context) ([]string, error) {
	return r.stringIDs(ctx, `SELECT id FROM student`)
}

func (r *repository) stringIDs(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *repository) ScholarshipIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM scholarships`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *repository) InsertTeachers(ctx context.Context, teachers []model.Teacher) error {
	if len(teachers) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO teacher (id, name, dept, position, dob, password)
			  VALUES (?, ?, ?, ?, ?, ?)`

	for _, t := range teachers {
		_, err := tx.ExecContext(ctx, query, t.ID, t.Name, t.Dept, t.Position, t.DOB, t.Password)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) InsertStudents(ctx context.Context, students []model.Student) error {
	if len(students) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO student (id, name, class, total_activity_point, dob, password, gender, income)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	for _, s := range students {
		_, err := tx.ExecContext(ctx, query, s.ID, s.Name, s.Class, s.TotalActivityPoint,
			s.DOB, s.Password, s.Gender, s.Income)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) InsertScholarships(ctx context.Context, scholarships []model.Scholarship) error {
	if len(scholarships) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO scholarships (id, name, provider, amount, deadline, eligibility, description, applied)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	for _, s := range scholarships {
		_, err := tx.ExecContext(ctx, query, s.ID, s.Name, s.Provider, s.Amount,
			s.Deadline, s.Eligibility, s.Description, s.Applied)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) InsertImportFile(ctx context.Context, file model.ImportFile) (int64, error) {
	query := `INSERT INTO import_files (s3_path, target, status, created_at, updated_at)
			  VALUES (?, ?, ?, NOW(), NOW())`

	result, err := r.db.ExecContext(ctx, query, file.S3Path, file.Target, file.Status)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (r *repository) GetImportFile(ctx context.Context, fileID int64) (*model.ImportFile, error) {
	query := `SELECT id, s3_path, target, status, inserted_count, skipped_count, error_message, created_at, updated_at
			  FROM import_files WHERE id = ?`

	var file model.ImportFile
	err := r.db.QueryRowContext(ctx, query, fileID).Scan(
		&file.ID, &file.S3Path, &file.Target, &file.Status,
		&file.InsertedCount, &file.SkippedCount, &file.ErrorMessage,
		&file.CreatedAt, &file.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &file, nil
}

func (r *repository) UpdateImportFile(ctx context.Context, fileID int64, status model.ImportStatus, inserted, skipped int, errorMessage *string) error {
	query := `UPDATE import_files SET status = ?, inserted_count = ?, skipped_count = ?,
			  error_message = ?, updated_at = NOW() WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, status, inserted, skipped, errorMessage, fileID)
	return err
}
