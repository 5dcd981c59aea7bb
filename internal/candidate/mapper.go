package candidate

import (
	"fmt"
	"strings"

	"candidate-gateway/internal/common/airtable"
)

// MapRecord translates one raw store record into a Candidate. It is
// total: absent or malformed fields degrade to their defaults, never to
// an error.
func MapRecord(rec airtable.Record) Candidate {
	fields := rec.Fields

	imcStatus := strings.ToLower(getString(fields, fieldIMCStatus))
	imcRegistered := imcStatus == "yes" || imcStatus == "active"

	division := DivisionGeneral
	if strings.ToLower(getString(fields, fieldDivision)) == DivisionSpecialist {
		division = DivisionSpecialist
	}

	sessionsMin := getNumber(fields, fieldSessionsMin)
	sessionsMax, ok := lookupNumber(fields, fieldSessionsMax)
	if !ok {
		sessionsMax = sessionsMin
	}

	salaryMin := getNumber(fields, fieldSalaryMin)
	salaryMax, ok := lookupNumber(fields, fieldSalaryMax)
	if !ok {
		salaryMax = salaryMin
	}

	availability := getString(fields, fieldAvailability)
	startDate := availability
	if startDate == "" {
		startDate = "Immediate"
	}

	currency := getString(fields, fieldCurrency)
	if currency == "" {
		currency = "EUR"
	}
	period := getString(fields, fieldSalaryPeriod)
	if period == "" {
		period = "session"
	}

	return Candidate{
		ID:                 rec.ID,
		GPCustomID:         getString(fields, fieldGPRecordID),
		ProfileSummary:     getString(fields, fieldProfileSummary),
		IMCRegistration:    imcRegistered,
		Division:           division,
		ExperienceSummary:  getString(fields, fieldExperience),
		ExperienceYears:    getNumber(fields, fieldExperienceYears),
		DetailedExperience: getString(fields, fieldDetailedExp),
		AreaOfInterest:     getArrayField(fields, fieldAreasOfInterest),
		Languages:          getArrayField(fields, fieldLanguages),
		Availability: Availability{
			SessionsPerWeek: SessionsPerWeek{
				Min: sessionsMin,
				Max: sessionsMax,
			},
			StartDate: startDate,
			Details:   availability,
		},
		SalaryExpectations: SalaryExpectations{
			Min:      salaryMin,
			Max:      salaryMax,
			Currency: currency,
			Period:   period,
		},
		GMSInterest: getString(fields, fieldGMSInterest),
	}
}

func getString(fields map[string]interface{}, name string) string {
	if s, ok := fields[name].(string); ok {
		return s
	}
	return ""
}

// lookupNumber reports whether the field holds a number alongside its
// value, so callers can distinguish absent from zero.
func lookupNumber(fields map[string]interface{}, name string) (float64, bool) {
	switch v := fields[name].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

func getNumber(fields map[string]interface{}, name string) float64 {
	n, _ := lookupNumber(fields, name)
	return n
}

// getArrayField coerces a raw value to a string slice: sequences pass
// through element-wise, comma-separated strings are split and trimmed,
// anything else yields an empty slice.
func getArrayField(fields map[string]interface{}, name string) []string {
	switch v := fields[name].(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			} else {
				out = append(out, fmt.Sprintf("%v", item))
			}
		}
		return out
	case []string:
		return v
	case string:
		if strings.TrimSpace(v) == "" {
			return []string{}
		}
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			out = append(out, strings.TrimSpace(p))
		}
		return out
	default:
		return []string{}
	}
}
