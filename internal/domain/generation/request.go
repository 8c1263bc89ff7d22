package generation

// ListingRequest carries the property listing form fields.
type ListingRequest struct {
	PropertyType  string `json:"propertyType" binding:"required"`
	Address       string `json:"address"`
	Bedrooms      string `json:"bedrooms"`
	Bathrooms     string `json:"bathrooms"`
	SquareFeet    string `json:"squareFeet"`
	Features      string `json:"features"`
	SellingPoints string `json:"sellingPoints"`
	TargetBuyer   string `json:"targetBuyer"`
	Tone          string `json:"tone" binding:"required"`
	AskingPrice   string `json:"askingPrice"`
	HOAFees       string `json:"hoaFees"`
	ProjectID     string `json:"projectId"`
}

// EmailType selects the top-level email template.
type EmailType string

const (
	EmailBroadcast     EmailType = "broadcast"
	EmailFollowUp      EmailType = "follow-up"
	EmailTransactional EmailType = "transactional"
)

// BroadcastPurpose selects the purpose block inside a broadcast email.
type BroadcastPurpose string

const (
	PurposeNewListing     BroadcastPurpose = "new-listing"
	PurposeOpenHouse      BroadcastPurpose = "open-house"
	PurposeJustSold       BroadcastPurpose = "just-sold"
	PurposePriceReduction BroadcastPurpose = "price-reduction"
	PurposeMarketUpdate   BroadcastPurpose = "market-update"
	PurposeNeighborhood   BroadcastPurpose = "neighborhood"
	PurposeHomeTips       BroadcastPurpose = "home-tips"
	PurposeClientEvent    BroadcastPurpose = "client-event"
	PurposeHoliday        BroadcastPurpose = "holiday"

	// Legacy values still sent by older saved forms.
	PurposeNewsletter BroadcastPurpose = "newsletter"
	PurposePromotion  BroadcastPurpose = "promotion"
)

// EmailRequest carries the full email form: kind selectors, per-purpose fields,
// follow-up and transactional fields, and the common customization fields.
type EmailRequest struct {
	EmailType        EmailType        `json:"emailType" binding:"required,oneof=broadcast follow-up transactional"`
	BroadcastPurpose BroadcastPurpose `json:"broadcastPurpose"`

	// Broadcast purpose fields.
	PropertyAddress        string `json:"propertyAddress"`
	ListingPrice           string `json:"listingPrice"`
	PropertyHighlights     string `json:"propertyHighlights"`
	OpenHouseDate          string `json:"openHouseDate"`
	OpenHouseTime          string `json:"openHouseTime"`
	SoldPrice              string `json:"soldPrice"`
	DaysOnMarket           string `json:"daysOnMarket"`
	OriginalPrice          string `json:"originalPrice"`
	NewPrice               string `json:"newPrice"`
	MarketArea             string `json:"marketArea"`
	MarketStats            string `json:"marketStats"`
	NeighborhoodName       string `json:"neighborhoodName"`
	NeighborhoodHighlights string `json:"neighborhoodHighlights"`
	TipsTopic              string `json:"tipsTopic"`
	EventName              string `json:"eventName"`
	EventDate              string `json:"eventDate"`
	EventLocation          string `json:"eventLocation"`
	HolidayName            string `json:"holidayName"`
	NewsletterTopics       string `json:"newsletterTopics"`
	PromotionDetails       string `json:"promotionDetails"`

	// Follow-up fields.
	FollowUpReason  string `json:"followUpReason"`
	RecipientName   string `json:"recipientName"`
	LastInteraction string `json:"lastInteraction"`

	// Transactional fields.
	TransactionStage string `json:"transactionStage"`
	KeyDates         string `json:"keyDates"`
	NextSteps        string `json:"nextSteps"`

	// Common customization.
	Subject             string `json:"subject"`
	Tone                string `json:"tone" binding:"required"`
	TargetAudience      string `json:"targetAudience"`
	AgentName           string `json:"agentName"`
	AgentPhone          string `json:"agentPhone"`
	Brokerage           string `json:"brokerage"`
	CallToAction        string `json:"callToAction"`
	EmailLength         string `json:"emailLength"`
	IncludeSignature    bool   `json:"includeSignature"`
	SpecialInstructions string `json:"specialInstructions"`

	ProjectID string `json:"projectId"`
}

// SocialPostRequest carries the social post form fields.
type SocialPostRequest struct {
	Platform        string `json:"platform" binding:"required"`
	PostType        string `json:"postType"`
	PropertyType    string `json:"propertyType"`
	Address         string `json:"address"`
	Bedrooms        string `json:"bedrooms"`
	Bathrooms       string `json:"bathrooms"`
	Price           string `json:"price"`
	Features        string `json:"features"`
	Tone            string `json:"tone" binding:"required"`
	CallToAction    string `json:"callToAction"`
	IncludeHashtags bool   `json:"includeHashtags"`
	IncludeEmojis   bool   `json:"includeEmojis"`
	ProjectID       string `json:"projectId"`
}
