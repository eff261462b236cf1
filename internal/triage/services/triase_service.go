package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/c14220110/igd-backend/internal/audit"
	"github.com/c14220110/igd-backend/internal/triage/models"
	"github.com/c14220110/igd-backend/internal/triage/scoring"
)

var ErrAntrianNotFound = errors.New("antrian tidak ditemukan")

// TriaseInput adalah data yang dibutuhkan untuk menyimpan satu triase.
type TriaseInput struct {
	ID_Pasien   int
	ID_Antrian  int // 0 bila pasien belum masuk antrian
	ID_Karyawan int
	Vitals      models.VitalsSnapshot
}

type TriaseService struct {
	DB    *sql.DB
	Log   *zap.Logger
	Audit *audit.Store
}

func NewTriaseService(db *sql.DB, log *zap.Logger, store *audit.Store) *TriaseService {
	return &TriaseService{DB: db, Log: log, Audit: store}
}

// InputTriase menilai tanda vital, menyimpan hasilnya ke tabel Triase dan,
// bila ID_Antrian diisi, memperbarui prioritas antrian dalam transaksi yang sama.
func (s *TriaseService) InputTriase(ctx context.Context, in TriaseInput) (*models.Triase, error) {
	result := scoring.Score(in.Vitals)

	findings, err := json.Marshal(result.CriticalFindings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal findings: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO Triase (ID_Pasien, ID_Antrian, ID_Karyawan, Systolic, Diastolic, Detak_Nadi, Laju_Respirasi,
			Saturasi_Oksigen, Suhu_Tubuh, GCS, Skala_Nyeri, Skor, Level, Prioritas, Temuan, Created_At)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	res, err := tx.ExecContext(ctx, query,
		in.ID_Pasien,
		nullInt(in.ID_Antrian, in.ID_Antrian > 0),
		in.ID_Karyawan,
		in.Vitals.Systolic,
		in.Vitals.Diastolic,
		in.Vitals.HeartRate,
		in.Vitals.RespiratoryRate,
		in.Vitals.OxygenSaturation,
		in.Vitals.Temperature,
		nullIntPtr(in.Vitals.GCS),
		nullIntPtr(in.Vitals.PainScore),
		result.Score,
		string(result.Level),
		result.Priority,
		string(findings),
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert triase: %w", err)
	}
	idTriase, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if in.ID_Antrian > 0 {
		res, err := tx.ExecContext(ctx, `UPDATE Antrian SET Priority = ? WHERE ID_Antrian = ?`, result.Priority, in.ID_Antrian)
		if err != nil {
			return nil, fmt.Errorf("failed to update antrian priority: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, fmt.Errorf("%w: id_antrian %d", ErrAntrianNotFound, in.ID_Antrian)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.Log.Info("Triase recorded",
		zap.Int64("id_triase", idTriase),
		zap.Int("id_pasien", in.ID_Pasien),
		zap.String("level", string(result.Level)),
		zap.Int("score", result.Score))
	s.Audit.Record(strconv.Itoa(in.ID_Karyawan), "triase.create", "pasien:"+strconv.Itoa(in.ID_Pasien), map[string]interface{}{
		"id_triase": idTriase,
		"level":     result.Level,
		"score":     result.Score,
	})

	return &models.Triase{
		ID_Triase:   idTriase,
		ID_Pasien:   in.ID_Pasien,
		ID_Antrian:  in.ID_Antrian,
		ID_Karyawan: in.ID_Karyawan,
		Vitals:      in.Vitals,
		Score:       result.Score,
		Level:       result.Level,
		Priority:    result.Priority,
		Findings:    result.CriticalFindings,
		Created_At:  now,
	}, nil
}

// GetTriaseByPasien mengembalikan riwayat triase pasien, terbaru lebih dulu.
func (s *TriaseService) GetTriaseByPasien(ctx context.Context, idPasien int) ([]models.Triase, error) {
	query := `
		SELECT ID_Triase, ID_Pasien, ID_Antrian, ID_Karyawan, Systolic, Diastolic, Detak_Nadi, Laju_Respirasi,
			Saturasi_Oksigen, Suhu_Tubuh, GCS, Skala_Nyeri, Skor, Level, Prioritas, Temuan, Created_At
		FROM Triase
		WHERE ID_Pasien = ?
		ORDER BY Created_At DESC
	`
	rows, err := s.DB.QueryContext(ctx, query, idPasien)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Triase{}
	for rows.Next() {
		var t models.Triase
		var idAntrian, gcs, pain sql.NullInt64
		var level, temuan string
		if err := rows.Scan(
			&t.ID_Triase, &t.ID_Pasien, &idAntrian, &t.ID_Karyawan,
			&t.Vitals.Systolic, &t.Vitals.Diastolic, &t.Vitals.HeartRate, &t.Vitals.RespiratoryRate,
			&t.Vitals.OxygenSaturation, &t.Vitals.Temperature, &gcs, &pain,
			&t.Score, &level, &t.Priority, &temuan, &t.Created_At,
		); err != nil {
			return nil, err
		}
		t.ID_Antrian = int(idAntrian.Int64)
		t.Vitals.GCS = intPtrFromNull(gcs)
		t.Vitals.PainScore = intPtrFromNull(pain)
		t.Level = models.Level(level)
		if err := json.Unmarshal([]byte(temuan), &t.Findings); err != nil {
			return nil, fmt.Errorf("failed to parse temuan for triase %d: %w", t.ID_Triase, err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func nullInt(v int, valid bool) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: valid}
}

func nullIntPtr(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return nullInt(*v, true)
}

func intPtrFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
