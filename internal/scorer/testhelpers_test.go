package scorer

import "github.com/sells-group/bizhealth/internal/model"

// scenarioInput is a mid-sized service business with weak phone and website
// performance.
func scenarioInput() model.BusinessInputData {
	return model.BusinessInputData{
		TotalCustomers:             3200,
		AverageProjectValue:        4500,
		ContactFrequencyPerYear:    1,
		HasReactivationProcess:     false,
		GoogleStarRating:           4.2,
		ReviewResponseRate:         22,
		SharesReviewsOnSocialMedia: false,
		DailyCalls:                 50,
		CallAnswerRate:             68,
		HasAfterHoursHandling:      false,
		AvailableChannels:          []model.Channel{model.ChannelPhone, model.ChannelEmail},
		AverageResponseTimeHours:   4,
		MonthlyWebsiteVisitors:     5000,
		ConversionRate:             2.8,
		IsMobileOptimized:          false,
		HasAutomatedFollowUp:       false,
	}
}

func minimalInput() model.BusinessInputData {
	return model.BusinessInputData{
		GoogleStarRating:         1,
		AvailableChannels:        []model.Channel{model.ChannelPhone},
		AverageResponseTimeHours: 168,
	}
}

func maximalInput() model.BusinessInputData {
	return model.BusinessInputData{
		TotalCustomers:             500,
		AverageProjectValue:        2000,
		ContactFrequencyPerYear:    12,
		HasReactivationProcess:     true,
		GoogleStarRating:           5,
		ReviewResponseRate:         100,
		SharesReviewsOnSocialMedia: true,
		DailyCalls:                 20,
		CallAnswerRate:             100,
		HasAfterHoursHandling:      true,
		AvailableChannels:          model.AllChannels(),
		AverageResponseTimeHours:   0.5,
		MonthlyWebsiteVisitors:     10000,
		ConversionRate:             6,
		IsMobileOptimized:          true,
		HasAutomatedFollowUp:       true,
	}
}

func ptrFloat64(v float64) *float64 { return &v }
