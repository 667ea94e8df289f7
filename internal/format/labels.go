package format

import "github.com/sells-group/bizhealth/internal/model"

var statusLabels = map[model.Language]map[model.ScoreStatus]string{
	model.LanguageDE: {
		model.StatusCritical:         "Kritisch",
		model.StatusNeedsImprovement: "Verbesserungsbedarf",
		model.StatusGood:             "Gut",
		model.StatusExcellent:        "Exzellent",
	},
	model.LanguageEN: {
		model.StatusCritical:         "Critical",
		model.StatusNeedsImprovement: "Needs improvement",
		model.StatusGood:             "Good",
		model.StatusExcellent:        "Excellent",
	},
}

var statusHeadlines = map[model.Language]map[model.ScoreStatus]string{
	model.LanguageDE: {
		model.StatusCritical:         "Kritisch - Sofortiger Handlungsbedarf",
		model.StatusNeedsImprovement: "Optimierungsbedarf",
		model.StatusGood:             "Gut - Weiter so!",
		model.StatusExcellent:        "Exzellent - Benchmark erreicht",
	},
	model.LanguageEN: {
		model.StatusCritical:         "Critical - act now",
		model.StatusNeedsImprovement: "Room for improvement",
		model.StatusGood:             "Good - keep going!",
		model.StatusExcellent:        "Excellent - benchmark reached",
	},
}

var pillarLabels = map[model.Language]map[model.PillarName]string{
	model.LanguageDE: {
		model.PillarDatabase:    "Datenbank",
		model.PillarReputation:  "Reputation",
		model.PillarLeadCapture: "Lead Capture",
		model.PillarOmnichannel: "Omnichannel",
		model.PillarWebsite:     "Website",
	},
	model.LanguageEN: {
		model.PillarDatabase:    "Customer database",
		model.PillarReputation:  "Reputation",
		model.PillarLeadCapture: "Lead capture",
		model.PillarOmnichannel: "Omnichannel",
		model.PillarWebsite:     "Website",
	},
}

func lookup[K comparable](tables map[model.Language]map[K]string, lang model.Language, key K, fallback string) string {
	t, ok := tables[lang]
	if !ok {
		t = tables[model.LanguageDE]
	}
	if s, ok := t[key]; ok {
		return s
	}
	return fallback
}

// StatusLabel returns the short label for a status band.
func StatusLabel(s model.ScoreStatus, lang model.Language) string {
	return lookup(statusLabels, lang, s, string(s))
}

// StatusHeadline returns the long-form label shown on result screens.
func StatusHeadline(s model.ScoreStatus, lang model.Language) string {
	return lookup(statusHeadlines, lang, s, string(s))
}

// PillarLabel returns the display name of a pillar.
func PillarLabel(p model.PillarName, lang model.Language) string {
	return lookup(pillarLabels, lang, p, string(p))
}
