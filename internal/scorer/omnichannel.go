package scorer

import (
	"math"

	"github.com/sells-group/bizhealth/internal/model"
)

const (
	pointsPerChannel  = 14
	maxChannelPoints  = 70
	leadShareOfVisits = 0.1 // share of website visitors that become leads
)

// ScoreOmnichannel scores channel breadth and responsiveness.
//
// Each channel earns 14 points (capped at 70) and the average response time
// adds a step bonus: 30 under one hour, 20 up to 4h, 10 up to 24h.
//
// Revenue impact compares the omnichannel conversion benchmark with the
// business's current rate. A business with exactly one channel converts at the
// single-channel benchmark; with two or more it is treated as converting at the
// omnichannel benchmark, so its gap is zero.
func ScoreOmnichannel(in *model.BusinessInputData, bm *model.Benchmarks) model.PillarScore {
	count := in.ChannelCount()
	channelPoints := math.Min(float64(count*pointsPerChannel), maxChannelPoints)
	raw := math.Min(channelPoints+responseTimePoints(in.AverageResponseTimeHours), 100)

	target := bm.Omnichannel.OmnichannelConversionRate
	current := target
	if count == 1 {
		current = bm.Omnichannel.SingleChannelConversionRate
	}
	monthlyLeads := float64(in.MonthlyWebsiteVisitors) * leadShareOfVisits
	impact := monthlyLeads * 12 * (target - current) * in.AverageProjectValue

	channels := make([]model.Channel, len(in.AvailableChannels))
	copy(channels, in.AvailableChannels)

	metrics := model.OmnichannelMetrics{
		AvailableChannels:     channels,
		ChannelCount:          count,
		CurrentConversionRate: current,
		TargetConversionRate:  target,
	}
	return newPillarScore(model.PillarOmnichannel, raw, impact, metrics, omnichannelRecommendations(count))
}

func responseTimePoints(hours float64) float64 {
	switch {
	case hours < 1:
		return 30
	case hours <= 4:
		return 20
	case hours <= 24:
		return 10
	default:
		return 0
	}
}

func omnichannelRecommendations(channelCount int) []string {
	switch {
	case channelCount < 3:
		return []string{
			"Add live chat to your website",
			"Expand your presence on social media",
			"Introduce SMS notifications",
		}
	case channelCount < 5:
		return []string{
			"Integrate all channels into one central inbox",
			"Offer a consistent experience across every channel",
		}
	default:
		return []string{
			"Tune channel usage to customer preferences",
			"Route conversations to the right channel automatically",
		}
	}
}
