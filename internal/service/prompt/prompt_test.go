package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyang/listingcraft/internal/domain/generation"
	"github.com/alanyang/listingcraft/internal/service/prompt"
)

func condoListing() generation.ListingRequest {
	return generation.ListingRequest{
		PropertyType:  "Condo",
		Bedrooms:      "2",
		Bathrooms:     "2",
		Features:      "pool, gym",
		SellingPoints: "near transit",
		TargetBuyer:   "young professionals",
		Tone:          "friendly",
	}
}

func openHouseEmail() generation.EmailRequest {
	return generation.EmailRequest{
		EmailType:        generation.EmailBroadcast,
		BroadcastPurpose: generation.PurposeOpenHouse,
		PropertyAddress:  "12 Elm St",
		OpenHouseDate:    "Saturday, June 14",
		OpenHouseTime:    "1-4 PM",
		Tone:             "warm",
		TargetAudience:   "local buyers",
	}
}

// ── Determinism ───────────────────────────────────────────────────────────────

func TestBuilders_Deterministic(t *testing.T) {
	assert.Equal(t, prompt.BuildListing(condoListing()), prompt.BuildListing(condoListing()))
	assert.Equal(t, prompt.BuildEmail(openHouseEmail()), prompt.BuildEmail(openHouseEmail()))

	social := generation.SocialPostRequest{Platform: "instagram", Tone: "upbeat", IncludeHashtags: true}
	assert.Equal(t, prompt.BuildSocialPost(social), prompt.BuildSocialPost(social))
}

// ── Listing ───────────────────────────────────────────────────────────────────

func TestBuildListing_InterpolatesFields(t *testing.T) {
	pair := prompt.BuildListing(condoListing())

	assert.NotEmpty(t, pair.SystemPrompt)
	assert.Contains(t, pair.UserPrompt, "- Property Type: Condo")
	assert.Contains(t, pair.UserPrompt, "- Bedrooms: 2")
	assert.Contains(t, pair.UserPrompt, "Key Features: pool, gym")
	assert.Contains(t, pair.UserPrompt, "Unique Selling Points: near transit")
	assert.Contains(t, pair.UserPrompt, "Target Buyer: young professionals")
	assert.Contains(t, pair.UserPrompt, "Tone: friendly")
}

func TestBuildListing_PlaceholdersAppearOnceInPosition(t *testing.T) {
	tests := []struct {
		line        string
		placeholder string
	}{
		{"- Address: ", "[Address not provided]"},
		{"- Square Feet: ", "[Square footage not provided]"},
		{"- Asking Price: ", "[Asking price not provided]"},
		{"- HOA Fees: ", "[HOA fees not provided]"},
	}

	pair := prompt.BuildListing(condoListing())
	for _, tt := range tests {
		t.Run(tt.placeholder, func(t *testing.T) {
			assert.Equal(t, 1, strings.Count(pair.UserPrompt, tt.placeholder))
			assert.Contains(t, pair.UserPrompt, tt.line+tt.placeholder+"\n")
		})
	}
}

func TestBuildListing_EmptyRequestUsesEveryPlaceholderOnce(t *testing.T) {
	pair := prompt.BuildListing(generation.ListingRequest{})
	for _, ph := range []string{
		"[Property type not provided]",
		"[Address not provided]",
		"[Bedrooms not provided]",
		"[Bathrooms not provided]",
		"[Square footage not provided]",
		"[Asking price not provided]",
		"[HOA fees not provided]",
		"[Features not provided]",
		"[Selling points not provided]",
		"[Target buyer not provided]",
		"[Tone not provided]",
	} {
		assert.Equal(t, 1, strings.Count(pair.UserPrompt, ph), ph)
	}
}

func TestBuildListing_WhitespaceIsNotAValue(t *testing.T) {
	req := condoListing()
	req.Address = "   "
	pair := prompt.BuildListing(req)
	assert.Contains(t, pair.UserPrompt, "- Address: [Address not provided]")
}

// ── Email ─────────────────────────────────────────────────────────────────────

func TestBuildEmail_OpenHouseWithoutSpecialInstructions(t *testing.T) {
	pair := prompt.BuildEmail(openHouseEmail())

	assert.NotContains(t, pair.UserPrompt, "Special Instructions:")
	assert.Contains(t, pair.UserPrompt, "Open House Details:")
	assert.Contains(t, pair.UserPrompt, "- Date: Saturday, June 14")
	assert.Contains(t, pair.UserPrompt, "- Time: 1-4 PM")
	assert.Contains(t, pair.UserPrompt, "Purpose: Open House")
}

func TestBuildEmail_SpecialInstructionsLine(t *testing.T) {
	req := openHouseEmail()
	req.SpecialInstructions = "Mention free parking"
	pair := prompt.BuildEmail(req)
	assert.Contains(t, pair.UserPrompt, "Special Instructions: Mention free parking\n")
}

func TestBuildEmail_UnknownPurposeHasEmptyBlock(t *testing.T) {
	req := openHouseEmail()
	req.BroadcastPurpose = "unknown-value"

	assert.Equal(t, "", prompt.PurposeBlock(req))

	pair := prompt.BuildEmail(req)
	assert.Contains(t, pair.UserPrompt, "Purpose: unknown-value")
	assert.NotContains(t, pair.UserPrompt, "Open House Details:")
	assert.NotContains(t, pair.UserPrompt, "Details:\n- Address")
}

func TestPurposeBlock_EveryPurposeIsDisjoint(t *testing.T) {
	purposes := map[generation.BroadcastPurpose]string{
		generation.PurposeNewListing:     "New Listing Details:",
		generation.PurposeOpenHouse:      "Open House Details:",
		generation.PurposeJustSold:       "Sale Details:",
		generation.PurposePriceReduction: "Price Reduction Details:",
		generation.PurposeMarketUpdate:   "Market Update Details:",
		generation.PurposeNeighborhood:   "Neighborhood Spotlight Details:",
		generation.PurposeHomeTips:       "Home Tips Details:",
		generation.PurposeClientEvent:    "Client Event Details:",
		generation.PurposeHoliday:        "Holiday Details:",
		generation.PurposeNewsletter:     "Newsletter Details:",
		generation.PurposePromotion:      "Promotion Details:",
	}

	for purpose, heading := range purposes {
		t.Run(string(purpose), func(t *testing.T) {
			block := prompt.PurposeBlock(generation.EmailRequest{BroadcastPurpose: purpose})
			require.NotEmpty(t, block)
			assert.True(t, strings.HasPrefix(block, heading))
			for other, otherHeading := range purposes {
				if other != purpose {
					assert.NotContains(t, block, otherHeading)
				}
			}
		})
	}
}

func TestBuildEmail_KindSelectsBlock(t *testing.T) {
	tests := []struct {
		name    string
		req     generation.EmailRequest
		want    string
		notWant string
	}{
		{
			name:    "follow-up",
			req:     generation.EmailRequest{EmailType: generation.EmailFollowUp, BroadcastPurpose: generation.PurposeOpenHouse, RecipientName: "Dana", Tone: "warm"},
			want:    "- Recipient: Dana",
			notWant: "Open House Details:",
		},
		{
			name:    "transactional with known stage",
			req:     generation.EmailRequest{EmailType: generation.EmailTransactional, TransactionStage: "inspection", Tone: "calm"},
			want:    "Explain the inspection process",
			notWant: "Purpose:",
		},
		{
			name:    "transactional with unknown stage",
			req:     generation.EmailRequest{EmailType: generation.EmailTransactional, TransactionStage: "escrow-party", Tone: "calm"},
			want:    "- Stage: escrow-party",
			notWant: "Congratulate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair := prompt.BuildEmail(tt.req)
			assert.Contains(t, pair.UserPrompt, tt.want)
			assert.NotContains(t, pair.UserPrompt, tt.notWant)
		})
	}
}

func TestBuildEmail_SignatureAndLength(t *testing.T) {
	req := openHouseEmail()
	req.IncludeSignature = true
	req.EmailLength = "short"
	pair := prompt.BuildEmail(req)
	assert.Contains(t, pair.UserPrompt, "signature block using the sender details")
	assert.Contains(t, pair.UserPrompt, "under 120 words")

	req.IncludeSignature = false
	req.EmailLength = ""
	pair = prompt.BuildEmail(req)
	assert.Contains(t, pair.UserPrompt, "Do not include a signature block.")
	assert.Contains(t, pair.UserPrompt, "between 150 and 250 words")
}

func TestBuildEmail_AddressPlaceholderOnce(t *testing.T) {
	req := openHouseEmail()
	req.PropertyAddress = ""
	pair := prompt.BuildEmail(req)
	assert.Equal(t, 1, strings.Count(pair.UserPrompt, "[Address not provided]"))
}

// ── Social ────────────────────────────────────────────────────────────────────

func TestBuildSocialPost(t *testing.T) {
	tests := []struct {
		name    string
		req     generation.SocialPostRequest
		want    []string
		notWant []string
	}{
		{
			name: "instagram with hashtags and emojis",
			req:  generation.SocialPostRequest{Platform: "Instagram", PostType: "just-listed", Tone: "upbeat", IncludeHashtags: true, IncludeEmojis: true},
			want: []string{"Platform: Instagram", "Post Goal: Announce a brand-new listing.", "hashtags.", "tasteful emojis"},
		},
		{
			name:    "linkedin without extras",
			req:     generation.SocialPostRequest{Platform: "linkedin", Tone: "professional"},
			want:    []string{"Platform: LinkedIn", "Do not use hashtags.", "Do not use emojis."},
			notWant: []string{"Post Goal:"},
		},
		{
			name: "unknown platform keeps its name",
			req:  generation.SocialPostRequest{Platform: "Threads", Tone: "casual"},
			want: []string{"Platform: Threads", "usual length and style conventions"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair := prompt.BuildSocialPost(tt.req)
			for _, s := range tt.want {
				assert.Contains(t, pair.UserPrompt, s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, pair.UserPrompt, s)
			}
		})
	}
}
