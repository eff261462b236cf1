package models

import "time"

// Level adalah tingkat kegawatan triase IGD.
type Level string

const (
	LevelMerah  Level = "merah"
	LevelKuning Level = "kuning"
	LevelHijau  Level = "hijau"
)

// VitalsSnapshot berisi tanda vital pasien pada satu kali pemeriksaan triase.
type VitalsSnapshot struct {
	Systolic         int     `json:"systolic"`
	Diastolic        int     `json:"diastolic"`
	HeartRate        int     `json:"heart_rate"`
	RespiratoryRate  int     `json:"respiratory_rate"`
	OxygenSaturation int     `json:"oxygen_saturation"`
	Temperature      float64 `json:"temperature"`
	GCS              *int    `json:"gcs,omitempty"`
	PainScore        *int    `json:"pain_score,omitempty"`
}

// TriageClassification adalah hasil penilaian triase.
type TriageClassification struct {
	Level            Level    `json:"level"`
	Score            int      `json:"score"`
	CriticalFindings []string `json:"critical_findings"`
	Recommendations  []string `json:"recommendations"`
	Priority         int      `json:"priority"`
}

// LevelMeta adalah metadata tampilan untuk setiap level.
type LevelMeta struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	TextColor   string `json:"text_color"`
	BgColor     string `json:"bg_color"`
}

var levelMeta = map[Level]LevelMeta{
	LevelMerah: {
		Label:       "MERAH - Gawat Darurat",
		Description: "Kondisi mengancam nyawa, membutuhkan penanganan segera",
		TextColor:   "danger",
		BgColor:     "danger-subtle",
	},
	LevelKuning: {
		Label:       "KUNING - Gawat Tidak Darurat",
		Description: "Kondisi serius, membutuhkan penanganan dalam waktu singkat",
		TextColor:   "warning",
		BgColor:     "warning-subtle",
	},
	LevelHijau: {
		Label:       "HIJAU - Tidak Gawat",
		Description: "Kondisi stabil, dapat menunggu sesuai antrian",
		TextColor:   "success",
		BgColor:     "success-subtle",
	},
}

// LevelInfo mengembalikan metadata tampilan untuk level triase.
func LevelInfo(level Level) (LevelMeta, bool) {
	meta, ok := levelMeta[level]
	return meta, ok
}

// Triase mewakili record di tabel Triase.
type Triase struct {
	ID_Triase   int64          `json:"id_triase"`
	ID_Pasien   int            `json:"id_pasien"`
	ID_Antrian  int            `json:"id_antrian,omitempty"`
	ID_Karyawan int            `json:"id_karyawan"` // petugas yang melakukan triase
	Vitals      VitalsSnapshot `json:"vitals"`
	Score       int            `json:"score"`
	Level       Level          `json:"level"`
	Priority    int            `json:"priority"`
	Findings    []string       `json:"findings"`
	Created_At  time.Time      `json:"created_at"`
}
