package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/c14220110/igd-backend/internal/audit"
	"github.com/c14220110/igd-backend/internal/triage/models"
)

func setupMockTriaseDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *TriaseService, *audit.Store) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	store := audit.NewStore(10)
	return db, mock, NewTriaseService(db, zap.NewNop(), store), store
}

func criticalVitals() models.VitalsSnapshot {
	return models.VitalsSnapshot{
		Systolic:         70,
		Diastolic:        40,
		HeartRate:        130,
		RespiratoryRate:  28,
		OxygenSaturation: 85,
		Temperature:      36.5,
	}
}

const expectedFindingsJSON = `["Hipotensi berat (TD: 70/40 mmHg)","Takikardia berat (HR: 130 x/menit)","Takipnea berat (RR: 28 x/menit)","Hipoksemia berat (SpO2: 85%)"]`

func TestInputTriase_WithAntrian(t *testing.T) {
	db, mock, svc, store := setupMockTriaseDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO Triase`).
		WithArgs(1, 7, 12, 70, 40, 130, 28, 85, 36.5, nil, nil, 10, "merah", 1, expectedFindingsJSON, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec(`UPDATE Antrian SET Priority`).
		WithArgs(1, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	triase, err := svc.InputTriase(context.Background(), TriaseInput{
		ID_Pasien:   1,
		ID_Antrian:  7,
		ID_Karyawan: 12,
		Vitals:      criticalVitals(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), triase.ID_Triase)
	assert.Equal(t, models.LevelMerah, triase.Level)
	assert.Equal(t, 10, triase.Score)
	assert.Equal(t, 1, triase.Priority)
	assert.Len(t, triase.Findings, 4)
	require.NoError(t, mock.ExpectationsWereMet())

	entries := store.Recent(0)
	require.Len(t, entries, 1)
	assert.Equal(t, "triase.create", entries[0].Action)
	assert.Equal(t, "12", entries[0].Actor)
	assert.Equal(t, "pasien:1", entries[0].Subject)
}

func TestInputTriase_WithoutAntrian(t *testing.T) {
	db, mock, svc, _ := setupMockTriaseDB(t)
	defer db.Close()

	gcs, pain := 15, 2
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO Triase`).
		WithArgs(3, nil, 12, 120, 80, 90, 18, 96, 37.0, 15, 2, 0, "hijau", 3, "[]", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectCommit()

	triase, err := svc.InputTriase(context.Background(), TriaseInput{
		ID_Pasien:   3,
		ID_Karyawan: 12,
		Vitals: models.VitalsSnapshot{
			Systolic: 120, Diastolic: 80, HeartRate: 90, RespiratoryRate: 18,
			OxygenSaturation: 96, Temperature: 37.0, GCS: &gcs, PainScore: &pain,
		},
	})

	require.NoError(t, err)
	assert.Equal(t, models.LevelHijau, triase.Level)
	assert.Empty(t, triase.Findings)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInputTriase_AntrianNotFound(t *testing.T) {
	db, mock, svc, store := setupMockTriaseDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO Triase`).WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec(`UPDATE Antrian SET Priority`).
		WithArgs(1, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.InputTriase(context.Background(), TriaseInput{ID_Pasien: 1, ID_Antrian: 99, ID_Karyawan: 12, Vitals: criticalVitals()})

	assert.ErrorIs(t, err, ErrAntrianNotFound)
	assert.Equal(t, 0, store.Len())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInputTriase_InsertError(t *testing.T) {
	db, mock, svc, _ := setupMockTriaseDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO Triase`).WillReturnError(errors.New("koneksi putus"))
	mock.ExpectRollback()

	_, err := svc.InputTriase(context.Background(), TriaseInput{ID_Pasien: 1, Vitals: criticalVitals()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "koneksi putus")
	require.NoError(t, mock.ExpectationsWereMet())
}

var triaseColumns = []string{
	"ID_Triase", "ID_Pasien", "ID_Antrian", "ID_Karyawan", "Systolic", "Diastolic", "Detak_Nadi", "Laju_Respirasi",
	"Saturasi_Oksigen", "Suhu_Tubuh", "GCS", "Skala_Nyeri", "Skor", "Level", "Prioritas", "Temuan", "Created_At",
}

func TestGetTriaseByPasien(t *testing.T) {
	db, mock, svc, _ := setupMockTriaseDB(t)
	defer db.Close()

	createdAt := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows(triaseColumns).
		AddRow(2, 1, 7, 12, 70, 40, 130, 28, 85, 36.5, nil, nil, 10, "merah", 1, expectedFindingsJSON, createdAt).
		AddRow(1, 1, nil, 12, 120, 80, 90, 18, 96, 37.0, 15, 9, 1, "hijau", 3, `["Nyeri berat (skala: 9/10)"]`, createdAt.Add(-time.Hour))

	mock.ExpectQuery(`SELECT (.+) FROM Triase`).WithArgs(1).WillReturnRows(rows)

	list, err := svc.GetTriaseByPasien(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID_Triase)
	assert.Equal(t, 7, list[0].ID_Antrian)
	assert.Equal(t, models.LevelMerah, list[0].Level)
	assert.Nil(t, list[0].Vitals.GCS)
	assert.Len(t, list[0].Findings, 4)
	assert.Equal(t, createdAt, list[0].Created_At)

	assert.Equal(t, 0, list[1].ID_Antrian)
	require.NotNil(t, list[1].Vitals.GCS)
	assert.Equal(t, 15, *list[1].Vitals.GCS)
	assert.Equal(t, 9, *list[1].Vitals.PainScore)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTriaseByPasien_Empty(t *testing.T) {
	db, mock, svc, _ := setupMockTriaseDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM Triase`).WithArgs(5).WillReturnRows(sqlmock.NewRows(triaseColumns))

	list, err := svc.GetTriaseByPasien(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestGetTriaseByPasien_BadTemuan(t *testing.T) {
	db, mock, svc, _ := setupMockTriaseDB(t)
	defer db.Close()

	rows := sqlmock.NewRows(triaseColumns).
		AddRow(2, 1, nil, 12, 70, 40, 130, 28, 85, 36.5, nil, nil, 10, "merah", 1, `bukan json`, time.Now())
	mock.ExpectQuery(`SELECT (.+) FROM Triase`).WithArgs(1).WillReturnRows(rows)

	_, err := svc.GetTriaseByPasien(context.Background(), 1)
	assert.Error(t, err)
}
