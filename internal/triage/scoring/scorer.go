// Package scoring menghitung skor triase IGD dari tanda vital pasien.
package scoring

import (
	"fmt"

	"github.com/c14220110/igd-backend/internal/triage/models"
)

const (
	merahMinScore  = 5
	kuningMinScore = 3
)

// rule adalah satu baris tabel keputusan. Rule dalam satu grup saling
// eksklusif: rule pertama yang cocok menang.
type rule struct {
	match   func(v models.VitalsSnapshot) bool
	points  int
	finding func(v models.VitalsSnapshot) string
}

type ruleGroup struct {
	applies func(v models.VitalsSnapshot) bool
	rules   []rule
}

func always(models.VitalsSnapshot) bool { return true }

// Urutan grup menentukan urutan CriticalFindings.
var ruleGroups = []ruleGroup{
	{
		applies: always,
		rules: []rule{
			{
				match:   func(v models.VitalsSnapshot) bool { return v.Systolic < 90 || v.Diastolic < 60 },
				points:  3,
				finding: func(v models.VitalsSnapshot) string { return fmt.Sprintf("Hipotensi berat (TD: %d/%d mmHg)", v.Systolic, v.Diastolic) },
			},
			{
				match:   func(v models.VitalsSnapshot) bool { return v.Systolic > 180 || v.Diastolic > 110 },
				points:  1,
				finding: func(v models.VitalsSnapshot) string { return fmt.Sprintf("Hipertensi berat (TD: %d/%d mmHg)", v.Systolic, v.Diastolic) },
			},
		},
	},
	{
		applies: always,
		rules: []rule{
			{
				match:   func(v models.VitalsSnapshot) bool { return v.HeartRate > 120 },
				points:  2,
				finding: func(v models.VitalsSnapshot) string { return fmt.Sprintf("Takikardia berat (HR: %d x/menit)", v.HeartRate) },
			},
			{
				match:   func(v models.VitalsSnapshot) bool { return v.HeartRate < 50 },
				points:  2,
				finding: func(v models.VitalsSnapshot) string { return fmt.Sprintf("Bradikardia (HR: %d x/menit)", v.HeartRate) },
			},
		},
	},
	{
		applies: always,
		rules: []rule{
			{
				match:   func(v models.VitalsSnapshot) bool { return v.RespiratoryRate > 24 },
				points:  2,
				finding: func(v models.VitalsSnapshot) string { return fmt.Sprintf("Takipnea berat (RR: %d x/menit)", v.RespiratoryRate) },
			},
			{
				match:   func(v models.VitalsSnapshot) bool { return v.RespiratoryRate < 10 },
				points:  2,
				finding: func(v models.VitalsSnapshot) string { return fmt.Sprintf("Bradipnea (RR: %d x/menit)", v.RespiratoryRate) },
			},
		},
	},
	{
		applies: always,
		rules: []rule{
			{
				match:   func(v models.VitalsSnapshot) bool { return v.OxygenSaturation < 90 },
				points:  3,
				finding: func(v models.VitalsSnapshot) string { return fmt.Sprintf("Hipoksemia berat (SpO2: %d%%)", v.OxygenSaturation) },
			},
			{
				match:   func(v models.VitalsSnapshot) bool { return v.OxygenSaturation < 94 },
				points:  1,
				finding: func(v models.VitalsSnapshot) string { return fmt.Sprintf("Hipoksemia ringan (SpO2: %d%%)", v.OxygenSaturation) },
			},
		},
	},
	{
		applies: always,
		rules: []rule{
			{
				match:   func(v models.VitalsSnapshot) bool { return v.Temperature < 35 },
				points:  2,
				finding: func(v models.VitalsSnapshot) string { return fmt.Sprintf("Hipotermia (Suhu: %.1f°C)", v.Temperature) },
			},
			{
				match:   func(v models.VitalsSnapshot) bool { return v.Temperature > 40 },
				points:  2,
				finding: func(v models.VitalsSnapshot) string { return fmt.Sprintf("Hiperpireksia (Suhu: %.1f°C)", v.Temperature) },
			},
		},
	},
	{
		applies: func(v models.VitalsSnapshot) bool { return v.GCS != nil },
		rules: []rule{
			{
				match:   func(v models.VitalsSnapshot) bool { return *v.GCS < 9 },
				points:  3,
				finding: func(v models.VitalsSnapshot) string { return fmt.Sprintf("Penurunan kesadaran berat / koma (GCS: %d)", *v.GCS) },
			},
			{
				match:   func(v models.VitalsSnapshot) bool { return *v.GCS < 14 },
				points:  2,
				finding: func(v models.VitalsSnapshot) string { return fmt.Sprintf("Penurunan kesadaran (GCS: %d)", *v.GCS) },
			},
		},
	},
	{
		applies: func(v models.VitalsSnapshot) bool { return v.PainScore != nil },
		rules: []rule{
			{
				match:   func(v models.VitalsSnapshot) bool { return *v.PainScore >= 8 },
				points:  1,
				finding: func(v models.VitalsSnapshot) string { return fmt.Sprintf("Nyeri berat (skala: %d/10)", *v.PainScore) },
			},
		},
	},
}

var recommendations = map[models.Level][]string{
	models.LevelMerah: {
		"Panggil tim resusitasi segera",
		"Pasang akses IV dan berikan oksigen segera",
		"Monitor EKG kontinu",
		"Siapkan peralatan resusitasi",
		"Evaluasi dokter segera",
	},
	models.LevelKuning: {
		"Prioritaskan pemeriksaan",
		"Monitor tanda vital setiap 15 menit",
		"Evaluasi dokter dalam 30 menit",
		"Siapkan eskalasi bila kondisi memburuk",
	},
	models.LevelHijau: {
		"Pasien dapat menunggu sesuai antrian",
		"Instruksikan pasien melapor bila ada perubahan kondisi",
		"Observasi standar",
	},
}

// Score menghitung klasifikasi triase dari tanda vital. Fungsi ini total dan
// deterministik; nilai di luar rentang fisiologis tetap dinilai dengan aturan
// yang sama.
func Score(v models.VitalsSnapshot) models.TriageClassification {
	score := 0
	findings := []string{}

	for _, group := range ruleGroups {
		if !group.applies(v) {
			continue
		}
		for _, r := range group.rules {
			if r.match(v) {
				score += r.points
				findings = append(findings, r.finding(v))
				break
			}
		}
	}

	level, priority := Classify(score)

	return models.TriageClassification{
		Level:            level,
		Score:            score,
		CriticalFindings: findings,
		Recommendations:  Recommendations(level),
		Priority:         priority,
	}
}

// Classify memetakan skor ke level dan prioritas.
func Classify(score int) (models.Level, int) {
	switch {
	case score >= merahMinScore:
		return models.LevelMerah, 1
	case score >= kuningMinScore:
		return models.LevelKuning, 2
	default:
		return models.LevelHijau, 3
	}
}

// Recommendations mengembalikan salinan rekomendasi untuk level.
func Recommendations(level models.Level) []string {
	return append([]string(nil), recommendations[level]...)
}
