package prompt

import (
	"strings"

	"github.com/alanyang/listingcraft/internal/domain/generation"
)

const emailSystemPrompt = "You are an expert real estate email marketer. You write emails that agents " +
	"send to their clients and sphere of influence: warm, professional, skimmable, and focused on a " +
	"single call to action. Respond with a subject line on the first line, prefixed with \"Subject:\", " +
	"followed by the email body."

type emailKind struct {
	label string
	goal  string
	block func(req generation.EmailRequest) string
}

// emailKinds maps the email type selector to its template.
var emailKinds = map[generation.EmailType]emailKind{
	generation.EmailBroadcast: {
		label: "Broadcast",
		goal:  "a broadcast email sent to the agent's whole mailing list",
		block: PurposeBlock,
	},
	generation.EmailFollowUp: {
		label: "Follow-Up",
		goal:  "a personal follow-up email to a single contact",
		block: followUpBlock,
	},
	generation.EmailTransactional: {
		label: "Transactional",
		goal:  "a transactional email that keeps a client informed during their transaction",
		block: transactionalBlock,
	},
}

type purposeTemplate struct {
	label string
	block func(req generation.EmailRequest) string
}

// broadcastPurposes maps the broadcast purpose selector to its content block.
var broadcastPurposes = map[generation.BroadcastPurpose]purposeTemplate{
	generation.PurposeNewListing: {"New Listing", func(req generation.EmailRequest) string {
		return render(func(w *writer) {
			w.line("New Listing Details:")
			w.item("Address", req.PropertyAddress, "[Address not provided]")
			w.item("Listing Price", req.ListingPrice, "[Listing price not provided]")
			w.item("Highlights", req.PropertyHighlights, "[Property highlights not provided]")
			w.line("Announce the listing and create urgency to book a private showing.")
		})
	}},
	generation.PurposeOpenHouse: {"Open House", func(req generation.EmailRequest) string {
		return render(func(w *writer) {
			w.line("Open House Details:")
			w.item("Address", req.PropertyAddress, "[Address not provided]")
			w.item("Date", req.OpenHouseDate, "[Open house date not provided]")
			w.item("Time", req.OpenHouseTime, "[Open house time not provided]")
			w.item("Highlights", req.PropertyHighlights, "[Property highlights not provided]")
			w.line("Invite readers to the open house and make the date and time impossible to miss.")
		})
	}},
	generation.PurposeJustSold: {"Just Sold", func(req generation.EmailRequest) string {
		return render(func(w *writer) {
			w.line("Sale Details:")
			w.item("Address", req.PropertyAddress, "[Address not provided]")
			w.item("Sold Price", req.SoldPrice, "[Sold price not provided]")
			w.item("Days on Market", req.DaysOnMarket, "[Days on market not provided]")
			w.line("Celebrate the sale and position the agent as the go-to expert for sellers in the area.")
		})
	}},
	generation.PurposePriceReduction: {"Price Reduction", func(req generation.EmailRequest) string {
		return render(func(w *writer) {
			w.line("Price Reduction Details:")
			w.item("Address", req.PropertyAddress, "[Address not provided]")
			w.item("Original Price", req.OriginalPrice, "[Original price not provided]")
			w.item("New Price", req.NewPrice, "[New price not provided]")
			w.item("Highlights", req.PropertyHighlights, "[Property highlights not provided]")
			w.line("Frame the new price as an opportunity and encourage a quick showing request.")
		})
	}},
	generation.PurposeMarketUpdate: {"Market Update", func(req generation.EmailRequest) string {
		return render(func(w *writer) {
			w.line("Market Update Details:")
			w.item("Market Area", req.MarketArea, "[Market area not provided]")
			w.item("Key Statistics", req.MarketStats, "[Market statistics not provided]")
			w.line("Explain what the numbers mean for buyers and sellers in plain language.")
		})
	}},
	generation.PurposeNeighborhood: {"Neighborhood Spotlight", func(req generation.EmailRequest) string {
		return render(func(w *writer) {
			w.line("Neighborhood Spotlight Details:")
			w.item("Neighborhood", req.NeighborhoodName, "[Neighborhood not provided]")
			w.item("Highlights", req.NeighborhoodHighlights, "[Neighborhood highlights not provided]")
			w.line("Paint a picture of daily life in the neighborhood: dining, parks, schools, and community.")
		})
	}},
	generation.PurposeHomeTips: {"Home Tips", func(req generation.EmailRequest) string {
		return render(func(w *writer) {
			w.line("Home Tips Details:")
			w.item("Topic", req.TipsTopic, "[Tips topic not provided]")
			w.line("Share 3-5 practical, actionable tips homeowners can use this season.")
		})
	}},
	generation.PurposeClientEvent: {"Client Event", func(req generation.EmailRequest) string {
		return render(func(w *writer) {
			w.line("Client Event Details:")
			w.item("Event", req.EventName, "[Event name not provided]")
			w.item("Date", req.EventDate, "[Event date not provided]")
			w.item("Location", req.EventLocation, "[Event location not provided]")
			w.line("Invite clients warmly and ask them to RSVP.")
		})
	}},
	generation.PurposeHoliday: {"Holiday Greeting", func(req generation.EmailRequest) string {
		return render(func(w *writer) {
			w.line("Holiday Details:")
			w.item("Holiday", req.HolidayName, "[Holiday not provided]")
			w.line("Send a sincere seasonal greeting; keep any business mention light.")
		})
	}},
	generation.PurposeNewsletter: {"Newsletter", func(req generation.EmailRequest) string {
		return render(func(w *writer) {
			w.line("Newsletter Details:")
			w.item("Topics", req.NewsletterTopics, "[Newsletter topics not provided]")
			w.line("Organize the topics into short sections with clear headings.")
		})
	}},
	generation.PurposePromotion: {"Promotion", func(req generation.EmailRequest) string {
		return render(func(w *writer) {
			w.line("Promotion Details:")
			w.item("Offer", req.PromotionDetails, "[Promotion details not provided]")
			w.line("Present the offer clearly, including any deadline.")
		})
	}},
}

// PurposeBlock returns the broadcast purpose block for req, or "" when the purpose is
// unknown or empty.
func PurposeBlock(req generation.EmailRequest) string {
	tmpl, ok := broadcastPurposes[req.BroadcastPurpose]
	if !ok {
		return ""
	}
	return tmpl.block(req)
}

// transactionStages gives stage-specific guidance for transactional emails.
var transactionStages = map[string]string{
	"offer-accepted":   "Congratulate the client on the accepted offer and outline the steps to closing.",
	"inspection":       "Explain the inspection process, what to expect, and how findings are handled.",
	"appraisal":        "Explain the appraisal, why it matters to the lender, and possible outcomes.",
	"closing-reminder": "Remind the client what to bring and prepare for closing day.",
	"closed":           "Congratulate the client on closing and thank them for their trust; ask for a review.",
}

func followUpBlock(req generation.EmailRequest) string {
	return render(func(w *writer) {
		w.line("Follow-Up Details:")
		w.item("Recipient", req.RecipientName, "[Recipient name not provided]")
		w.item("Reason", req.FollowUpReason, "[Follow-up reason not provided]")
		w.item("Last Interaction", req.LastInteraction, "[Last interaction not provided]")
		w.line("Keep it personal and brief; reference the last interaction naturally.")
	})
}

func transactionalBlock(req generation.EmailRequest) string {
	return render(func(w *writer) {
		w.line("Transaction Details:")
		w.item("Stage", req.TransactionStage, "[Transaction stage not provided]")
		w.item("Property Address", req.PropertyAddress, "[Address not provided]")
		w.item("Key Dates", req.KeyDates, "[Key dates not provided]")
		w.item("Next Steps", req.NextSteps, "[Next steps not provided]")
		if guidance, ok := transactionStages[strings.TrimSpace(req.TransactionStage)]; ok {
			w.line(guidance)
		}
	})
}

var emailLengths = map[string]string{
	"short":  "Keep the body under 120 words.",
	"medium": "Keep the body between 150 and 250 words.",
	"long":   "Keep the body between 300 and 450 words.",
}

// BuildEmail assembles the prompt for an email campaign.
func BuildEmail(req generation.EmailRequest) generation.PromptPair {
	kind, ok := emailKinds[req.EmailType]
	if !ok {
		kind = emailKind{label: string(req.EmailType), goal: "an email"}
	}

	var w writer
	w.line("Write " + kind.goal + " for a real estate agent.")
	w.blank()
	w.line("Email Type: " + kind.label)
	if req.EmailType == generation.EmailBroadcast && req.BroadcastPurpose != "" {
		label := string(req.BroadcastPurpose)
		if tmpl, ok := broadcastPurposes[req.BroadcastPurpose]; ok {
			label = tmpl.label
		}
		w.line("Purpose: " + label)
	}
	w.field("Subject Line", req.Subject, "[Subject not provided - write one]")
	w.field("Target Audience", req.TargetAudience, "[Target audience not provided]")
	w.field("Tone", req.Tone, "[Tone not provided]")
	w.blank()

	if kind.block != nil {
		w.block(kind.block(req))
	}

	w.line("Sender:")
	w.item("Agent Name", req.AgentName, "[Agent name not provided]")
	w.item("Phone", req.AgentPhone, "[Agent phone not provided]")
	w.item("Brokerage", req.Brokerage, "[Brokerage not provided]")
	w.field("Call to Action", req.CallToAction, "[Call to action not provided]")
	w.optional("Special Instructions", req.SpecialInstructions)
	w.blank()

	w.line("Requirements:")
	if length, ok := emailLengths[strings.ToLower(strings.TrimSpace(req.EmailLength))]; ok {
		w.line("- " + length)
	} else {
		w.line("- " + emailLengths["medium"])
	}
	w.line("- Use short paragraphs that read well on a phone.")
	if req.IncludeSignature {
		w.line("- End with a signature block using the sender details above.")
	} else {
		w.line("- Do not include a signature block.")
	}
	w.line("- Skip any detail marked as not provided instead of guessing it.")

	return generation.PromptPair{
		SystemPrompt: emailSystemPrompt,
		UserPrompt:   w.String(),
	}
}
