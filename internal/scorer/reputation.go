package scorer

import (
	"math"

	"github.com/sells-group/bizhealth/internal/model"
)

// ScoreReputation scores online reputation.
//
// Up to 40 points come from the star rating (linear over 1-5), up to 40 from
// the review response rate, and 20 from sharing reviews on social media.
// Revenue impact is the rating gap to the target times the revenue uplift per
// star, applied to annualRevenue (DefaultAnnualRevenue when nil).
func ScoreReputation(in *model.BusinessInputData, bm *model.Benchmarks, annualRevenue *float64) model.PillarScore {
	revenue := DefaultAnnualRevenue
	if annualRevenue != nil {
		revenue = *annualRevenue
	}

	rating := in.GoogleStarRating
	ratingPoints := ((rating - 1) / 4) * 40
	responsePoints := (in.ReviewResponseRate / 100) * 40
	raw := ratingPoints + responsePoints + bonus(in.SharesReviewsOnSocialMedia, 20)

	target := bm.Reputation.TargetRating
	gap := math.Max(0, target-rating)
	impact := gap * bm.Reputation.RevenueIncreasePerStar * revenue

	metrics := model.ReputationMetrics{
		CurrentRating: rating,
		TargetRating:  target,
		ResponseRate:  in.ReviewResponseRate,
		RatingGap:     gap,
	}
	return newPillarScore(model.PillarReputation, raw, impact, metrics,
		reputationRecommendations(rating, in.ReviewResponseRate))
}

func reputationRecommendations(rating, responseRate float64) []string {
	var recs []string
	if rating < 4.0 {
		recs = append(recs,
			"Analyse negative reviews and fix the main complaints",
			"Put a quality assurance process in place",
		)
	}
	if responseRate < 50 {
		recs = append(recs,
			"Set up notifications for new reviews",
			"Reply to every review within 24 hours",
		)
	}
	if rating >= 4.0 && rating < 4.5 {
		recs = append(recs,
			"Actively ask satisfied customers for reviews",
			"Make leaving a review easier (QR code, direct link)",
		)
	}
	if len(recs) == 0 {
		recs = append(recs,
			"Keep replying to reviews promptly to protect your rating",
			"Feature top reviews on your website and in proposals",
		)
	}
	return recs
}
