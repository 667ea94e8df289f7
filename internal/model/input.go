package model

// Channel is a customer communication channel a business offers.
type Channel string

const (
	ChannelPhone       Channel = "phone"
	ChannelEmail       Channel = "email"
	ChannelLiveChat    Channel = "live_chat"
	ChannelSocialMedia Channel = "social_media"
	ChannelSMS         Channel = "sms"
)

// AllChannels lists every supported channel in canonical order.
func AllChannels() []Channel {
	return []Channel{ChannelPhone, ChannelEmail, ChannelLiveChat, ChannelSocialMedia, ChannelSMS}
}

// Valid reports whether c is one of the supported channels.
func (c Channel) Valid() bool {
	switch c {
	case ChannelPhone, ChannelEmail, ChannelLiveChat, ChannelSocialMedia, ChannelSMS:
		return true
	}
	return false
}

// BusinessInputData holds the self-reported metrics for one analysis.
// Fields are grouped by pillar. Values are expected to have passed
// validation before they reach the scorer.
type BusinessInputData struct {
	// Database
	TotalCustomers          int     `json:"totalCustomers" yaml:"totalCustomers" validate:"gte=0,lte=1000000"`
	AverageProjectValue     float64 `json:"averageProjectValue" yaml:"averageProjectValue" validate:"gte=0,lte=10000000"`
	ContactFrequencyPerYear float64 `json:"contactFrequencyPerYear" yaml:"contactFrequencyPerYear" validate:"gte=0,lte=365"`
	HasReactivationProcess  bool    `json:"hasReactivationProcess" yaml:"hasReactivationProcess"`

	// Reputation
	GoogleStarRating           float64 `json:"googleStarRating" yaml:"googleStarRating" validate:"gte=1,lte=5"`
	ReviewResponseRate         float64 `json:"reviewResponseRate" yaml:"reviewResponseRate" validate:"gte=0,lte=100"`
	SharesReviewsOnSocialMedia bool    `json:"sharesReviewsOnSocialMedia" yaml:"sharesReviewsOnSocialMedia"`

	// Lead capture
	DailyCalls            int     `json:"dailyCalls" yaml:"dailyCalls" validate:"gte=0,lte=10000"`
	CallAnswerRate        float64 `json:"callAnswerRate" yaml:"callAnswerRate" validate:"gte=0,lte=100"`
	HasAfterHoursHandling bool    `json:"hasAfterHoursHandling" yaml:"hasAfterHoursHandling"`

	// Omnichannel
	AvailableChannels        []Channel `json:"availableChannels" yaml:"availableChannels" validate:"min=1,max=5,unique,dive,oneof=phone email live_chat social_media sms"`
	AverageResponseTimeHours float64   `json:"averageResponseTimeHours" yaml:"averageResponseTimeHours" validate:"gte=0,lte=168"`

	// Website
	MonthlyWebsiteVisitors int      `json:"monthlyWebsiteVisitors" yaml:"monthlyWebsiteVisitors" validate:"gte=0,lte=100000000"`
	ConversionRate         float64  `json:"conversionRate" yaml:"conversionRate" validate:"gte=0,lte=100"`
	IsMobileOptimized      bool     `json:"isMobileOptimized" yaml:"isMobileOptimized"`
	HasAutomatedFollowUp   bool     `json:"hasAutomatedFollowUp" yaml:"hasAutomatedFollowUp"`
	WebsiteLoadTime        *float64 `json:"websiteLoadTime,omitempty" yaml:"websiteLoadTime,omitempty" validate:"omitempty,gte=0,lte=60"`
}

// ChannelCount returns the number of available channels.
func (in *BusinessInputData) ChannelCount() int {
	return len(in.AvailableChannels)
}
