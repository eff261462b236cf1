package scoring

import "github.com/c14220110/igd-backend/internal/triage/models"

// Nama tanda vital pada tabel rentang normal.
const (
	VitalSystolic         = "systolic"
	VitalDiastolic        = "diastolic"
	VitalHeartRate        = "heart_rate"
	VitalRespiratoryRate  = "respiratory_rate"
	VitalOxygenSaturation = "oxygen_saturation"
	VitalTemperature      = "temperature"
)

const (
	SeverityNormal   = "normal"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// critical bila deviasi dari batas terdekat lebih dari 30%.
const criticalDeviationPercent = 30.0

// Range adalah rentang normal inklusif [Min, Max].
type Range struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Unit string  `json:"unit"`
}

var normalRanges = map[string]Range{
	VitalSystolic:         {Min: 90, Max: 140, Unit: "mmHg"},
	VitalDiastolic:        {Min: 60, Max: 90, Unit: "mmHg"},
	VitalHeartRate:        {Min: 60, Max: 100, Unit: "x/menit"},
	VitalRespiratoryRate:  {Min: 12, Max: 20, Unit: "x/menit"},
	VitalOxygenSaturation: {Min: 95, Max: 100, Unit: "%"},
	VitalTemperature:      {Min: 36.5, Max: 37.5, Unit: "°C"},
}

// Deviation adalah hasil pengecekan satu tanda vital.
type Deviation struct {
	IsAbnormal bool   `json:"is_abnormal"`
	Severity   string `json:"severity"`
}

// VitalFlag adalah Deviation untuk satu field dari VitalsSnapshot.
type VitalFlag struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Deviation
}

// NormalRange mengembalikan rentang normal untuk nama tanda vital.
func NormalRange(name string) (Range, bool) {
	r, ok := normalRanges[name]
	return r, ok
}

// ClassifyVitalSignDeviation mengecek apakah nilai berada di luar rentang
// normal. Nama yang tidak dikenal dianggap normal.
func ClassifyVitalSignDeviation(name string, value float64) Deviation {
	r, ok := normalRanges[name]
	if !ok || (value >= r.Min && value <= r.Max) {
		return Deviation{IsAbnormal: false, Severity: SeverityNormal}
	}

	var percent float64
	if value < r.Min {
		percent = (r.Min - value) / r.Min * 100
	} else {
		percent = (value - r.Max) / r.Max * 100
	}

	severity := SeverityWarning
	if percent > criticalDeviationPercent {
		severity = SeverityCritical
	}
	return Deviation{IsAbnormal: true, Severity: severity}
}

// FlagVitals menjalankan ClassifyVitalSignDeviation untuk setiap field yang
// memiliki rentang normal, dalam urutan yang tetap.
func FlagVitals(v models.VitalsSnapshot) []VitalFlag {
	values := []struct {
		name  string
		value float64
	}{
		{VitalSystolic, float64(v.Systolic)},
		{VitalDiastolic, float64(v.Diastolic)},
		{VitalHeartRate, float64(v.HeartRate)},
		{VitalRespiratoryRate, float64(v.RespiratoryRate)},
		{VitalOxygenSaturation, float64(v.OxygenSaturation)},
		{VitalTemperature, v.Temperature},
	}

	flags := make([]VitalFlag, 0, len(values))
	for _, item := range values {
		flags = append(flags, VitalFlag{
			Name:      item.name,
			Value:     item.value,
			Deviation: ClassifyVitalSignDeviation(item.name, item.value),
		})
	}
	return flags
}
