package pipeline

import (
	"strings"

	"psikotes/internal"
)

// columnSpec binds one canonical field to the single header label the vendor
// export uses for it. Matching is exact after trim, case-sensitive: this
// targets one fixed export format, not general CSV ingestion.
type columnSpec struct {
	Field    string
	Label    string
	Required bool
}

var columnSpecs = []columnSpec{
	{Field: "nik", Label: "NIK", Required: true},
	{Field: "name", Label: "Nama Lengkap", Required: true},
	{Field: "email", Label: "Email", Required: true},
	{Field: "gender", Label: "Jenis Kelamin", Required: true},
	{Field: "phone", Label: "No HP", Required: true},
	{Field: "birth_place", Label: "Tempat Lahir"},
	{Field: "birth_date", Label: "Tanggal Lahir"},
	{Field: "religion", Label: "Agama"},
	{Field: "education", Label: "Pendidikan Terakhir"},
	{Field: "address", Label: "Alamat"},
}

// MarkerLabels are the required-column labels used to recognize the header row.
func MarkerLabels() []string {
	out := make([]string, 0, len(columnSpecs))
	for _, spec := range columnSpecs {
		if spec.Required {
			out = append(out, spec.Label)
		}
	}
	return out
}

func MapColumns(headers []string) internal.ColumnMapping {
	present := map[string]string{}
	for _, h := range headers {
		h = strings.TrimSpace(h)
		if h != "" {
			present[h] = h
		}
	}

	mapping := internal.ColumnMapping{Columns: map[string]string{}}
	requiredTotal, requiredMatched := 0, 0
	for _, spec := range columnSpecs {
		if spec.Required {
			requiredTotal++
		}
		label, ok := present[spec.Label]
		if ok {
			mapping.Columns[spec.Field] = label
			if spec.Required {
				requiredMatched++
			}
			continue
		}
		if spec.Required {
			mapping.MissingRequired = append(mapping.MissingRequired, spec.Field)
		}
	}

	if requiredTotal > 0 {
		mapping.Confidence = float64(requiredMatched) / float64(requiredTotal)
	}
	return mapping
}
