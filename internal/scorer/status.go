package scorer

import "github.com/sells-group/bizhealth/internal/model"

// Status band lower bounds, in percent. Each bound belongs to the higher band.
const (
	needsImprovementFrom = 50.0
	goodFrom             = 80.0
	excellentFrom        = 90.0
)

// ClassifyStatus maps an overall percentage to its status band.
func ClassifyStatus(percentage float64) model.ScoreStatus {
	switch {
	case percentage >= excellentFrom:
		return model.StatusExcellent
	case percentage >= goodFrom:
		return model.StatusGood
	case percentage >= needsImprovementFrom:
		return model.StatusNeedsImprovement
	default:
		return model.StatusCritical
	}
}
