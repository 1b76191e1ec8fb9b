package pipeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"psikotes/internal"
	"psikotes/internal/util"
)

// FieldState keeps "not provided" distinct from "provided but unmapped".
type FieldState int

const (
	FieldAbsent FieldState = iota
	FieldRecognized
	FieldUnrecognized
)

var genderTokens = map[string]internal.Gender{
	"l":         internal.GenderMale,
	"laki":      internal.GenderMale,
	"laki-laki": internal.GenderMale,
	"male":      internal.GenderMale,
	"m":         internal.GenderMale,
	"p":         internal.GenderFemale,
	"perempuan": internal.GenderFemale,
	"female":    internal.GenderFemale,
	"f":         internal.GenderFemale,
}

var religionTokens = map[string]internal.Religion{
	"islam":      internal.ReligionIslam,
	"muslim":     internal.ReligionIslam,
	"moslem":     internal.ReligionIslam,
	"kristen":    internal.ReligionChristian,
	"katolik":    internal.ReligionChristian,
	"katholik":   internal.ReligionChristian,
	"protestan":  internal.ReligionChristian,
	"christian":  internal.ReligionChristian,
	"catholic":   internal.ReligionChristian,
	"buddha":     internal.ReligionBuddhist,
	"budha":      internal.ReligionBuddhist,
	"buddhist":   internal.ReligionBuddhist,
	"hindu":      internal.ReligionHindu,
	"konghucu":   internal.ReligionConfucian,
	"khonghucu":  internal.ReligionConfucian,
	"kong hu cu": internal.ReligionConfucian,
	"confucian":  internal.ReligionConfucian,
}

var educationTokens = map[string]internal.Education{
	"sd":            internal.EducationSD,
	"sekolah dasar": internal.EducationSD,
	"mi":            internal.EducationSD,
	"smp":           internal.EducationSMP,
	"sltp":          internal.EducationSMP,
	"mts":           internal.EducationSMP,
	"sma":           internal.EducationSMA,
	"slta":          internal.EducationSMA,
	"ma":            internal.EducationSMA,
	"smk":           internal.EducationSMA,
	"d1":            internal.EducationD1,
	"diploma 1":     internal.EducationD1,
	"d2":            internal.EducationD2,
	"diploma 2":     internal.EducationD2,
	"d3":            internal.EducationD3,
	"diploma 3":     internal.EducationD3,
	"s1":            internal.EducationS1,
	"sarjana":       internal.EducationS1,
	"strata 1":      internal.EducationS1,
	"s2":            internal.EducationS2,
	"magister":      internal.EducationS2,
	"strata 2":      internal.EducationS2,
	"s3":            internal.EducationS3,
	"doktor":        internal.EducationS3,
	"strata 3":      internal.EducationS3,
}

func NormalizeGender(raw string) (internal.Gender, FieldState) {
	token := util.FoldToken(raw)
	if token == "" {
		return internal.GenderUndefined, FieldAbsent
	}
	if g, ok := genderTokens[token]; ok {
		return g, FieldRecognized
	}
	return internal.GenderUndefined, FieldUnrecognized
}

// NormalizePhone rewrites local Indonesian numbers to +62 form. Numbers
// already carrying another country code get +62 prepended too; known
// limitation of the vendor format, kept as-is.
func NormalizePhone(raw string) string {
	repl := strings.NewReplacer("-", "", " ", "", "(", "", ")", "", "\t", "")
	s := repl.Replace(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}
	switch {
	case strings.HasPrefix(s, "0"):
		return "+62" + s[1:]
	case strings.HasPrefix(s, "62"):
		return "+" + s
	case !strings.HasPrefix(s, "+"):
		return "+62" + s
	}
	return s
}

var genericDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02-01-2006",
}

// NormalizeDate returns a UTC ISO-8601 instant. A value containing "/" is read
// as DD/MM/YYYY; anything else goes through the generic layouts.
func NormalizeDate(raw string) (string, FieldState) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", FieldAbsent
	}

	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) != 3 {
			return "", FieldUnrecognized
		}
		day, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		month, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err1 != nil || err2 != nil || err3 != nil {
			return "", FieldUnrecognized
		}
		padded := fmt.Sprintf("%02d/%02d/%04d", day, month, year)
		t, err := time.Parse("02/01/2006", padded)
		if err != nil {
			return "", FieldUnrecognized
		}
		return t.UTC().Format(time.RFC3339), FieldRecognized
	}

	for _, layout := range genericDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.RFC3339), FieldRecognized
		}
	}
	return "", FieldUnrecognized
}

func NormalizeReligion(raw string) (internal.Religion, FieldState) {
	token := util.FoldToken(raw)
	if token == "" {
		return "", FieldAbsent
	}
	if r, ok := religionTokens[token]; ok {
		return r, FieldRecognized
	}
	return internal.ReligionOther, FieldUnrecognized
}

func NormalizeEducation(raw string) (internal.Education, FieldState) {
	token := util.FoldToken(raw)
	if token == "" {
		return "", FieldAbsent
	}
	if e, ok := educationTokens[token]; ok {
		return e, FieldRecognized
	}
	return internal.EducationOther, FieldUnrecognized
}

// BuildUsers turns raw records into normalized users using the column mapping.
// Normalization is total: unmapped optional values fall back to other/absent,
// hard rejection is left to schema validation.
func BuildUsers(records []internal.RawRecord, mapping internal.ColumnMapping) []internal.NormalizedUser {
	out := make([]internal.NormalizedUser, 0, len(records))
	for _, rec := range records {
		cell := func(field string) string {
			label, ok := mapping.Columns[field]
			if !ok {
				return ""
			}
			return strings.TrimSpace(rec.Values[label])
		}

		gender, _ := NormalizeGender(cell("gender"))
		user := internal.NormalizedUser{
			RowNumber: rec.RowNumber,
			NIK:       cell("nik"),
			Name:      cell("name"),
			Email:     cell("email"),
			Gender:    gender,
			Phone:     NormalizePhone(cell("phone")),
		}

		if v := cell("birth_place"); v != "" {
			user.BirthPlace = util.StringPtr(v)
		}
		if iso, state := NormalizeDate(cell("birth_date")); state == FieldRecognized {
			user.BirthDate = util.StringPtr(iso)
		}
		if religion, state := NormalizeReligion(cell("religion")); state != FieldAbsent {
			user.Religion = &religion
		}
		if education, state := NormalizeEducation(cell("education")); state != FieldAbsent {
			user.Education = &education
		}
		if v := cell("address"); v != "" {
			user.Address = util.StringPtr(v)
		}

		out = append(out, user)
	}
	return out
}
