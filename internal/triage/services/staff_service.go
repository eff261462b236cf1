package services

import (
	"context"
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/c14220110/igd-backend/internal/triage/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleNotAllowed     = errors.New("user is not a Suster or Dokter")
)

// Role yang boleh mengakses layanan triase.
var allowedRoles = map[string]bool{
	"Suster": true,
	"Dokter": true,
}

// StaffService menangani login petugas IGD.
type StaffService struct {
	DB *sql.DB
}

func NewStaffService(db *sql.DB) *StaffService {
	return &StaffService{DB: db}
}

// Authenticate memvalidasi login petugas dari tabel Karyawan.
func (s *StaffService) Authenticate(ctx context.Context, username, password string) (*models.Petugas, error) {
	query := `
		SELECT k.ID_Karyawan, k.Nama, k.Username, k.Password, r.ID_Role, r.Nama_Role
		FROM Karyawan k
		JOIN Detail_Role_Karyawan drk ON drk.ID_Karyawan = k.ID_Karyawan
		JOIN Role r ON drk.ID_Role = r.ID_Role
		WHERE k.Username = ? AND k.Deleted_At IS NULL
		LIMIT 1
	`
	var p models.Petugas
	err := s.DB.QueryRowContext(ctx, query, username).Scan(
		&p.ID_Karyawan, &p.Nama, &p.Username, &p.Password, &p.ID_Role, &p.Role,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !allowedRoles[p.Role] {
		return nil, ErrRoleNotAllowed
	}
	return &p, nil
}
