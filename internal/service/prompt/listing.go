package prompt

import (
	"github.com/alanyang/listingcraft/internal/domain/generation"
)

const listingSystemPrompt = "You are an expert real estate copywriter. You write compelling, accurate " +
	"property listing descriptions that highlight what makes a home special, follow Fair Housing " +
	"guidelines, and never invent facts that were not provided. Respond with the listing text only."

// BuildListing assembles the prompt for a property listing description.
func BuildListing(req generation.ListingRequest) generation.PromptPair {
	var w writer
	w.line("Write a property listing description for the following property.")
	w.blank()
	w.line("Property Details:")
	w.item("Property Type", req.PropertyType, "[Property type not provided]")
	w.item("Address", req.Address, "[Address not provided]")
	w.item("Bedrooms", req.Bedrooms, "[Bedrooms not provided]")
	w.item("Bathrooms", req.Bathrooms, "[Bathrooms not provided]")
	w.item("Square Feet", req.SquareFeet, "[Square footage not provided]")
	w.item("Asking Price", req.AskingPrice, "[Asking price not provided]")
	w.item("HOA Fees", req.HOAFees, "[HOA fees not provided]")
	w.blank()
	w.field("Key Features", req.Features, "[Features not provided]")
	w.field("Unique Selling Points", req.SellingPoints, "[Selling points not provided]")
	w.field("Target Buyer", req.TargetBuyer, "[Target buyer not provided]")
	w.field("Tone", req.Tone, "[Tone not provided]")
	w.blank()
	w.line("Requirements:")
	w.line("- Open with an attention-grabbing headline.")
	w.line("- Write 150-250 words in flowing paragraphs.")
	w.line("- Speak directly to the target buyer and the lifestyle the home offers.")
	w.line("- Skip any detail marked as not provided instead of guessing it.")
	w.line("- End with a clear invitation to schedule a showing.")

	return generation.PromptPair{
		SystemPrompt: listingSystemPrompt,
		UserPrompt:   w.String(),
	}
}
