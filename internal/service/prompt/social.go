package prompt

import (
	"strings"

	"github.com/alanyang/listingcraft/internal/domain/generation"
)

const socialSystemPrompt = "You are a social media strategist for real estate agents. You write " +
	"scroll-stopping posts tailored to each platform's audience and conventions, and you never " +
	"invent property facts. Respond with the post text only."

type platformGuide struct {
	label    string
	guidance string
}

var platforms = map[string]platformGuide{
	"instagram": {"Instagram", "Lead with a strong hook in the first line, keep paragraphs short, and aim for 100-150 words."},
	"facebook":  {"Facebook", "Write conversationally, invite comments, and aim for 80-120 words."},
	"linkedin":  {"LinkedIn", "Keep a professional voice that showcases market expertise; aim for 100-200 words."},
	"twitter":   {"X (Twitter)", "Stay under 270 characters including hashtags."},
	"x":         {"X (Twitter)", "Stay under 270 characters including hashtags."},
	"tiktok":    {"TikTok", "Write a short caption plus a 3-beat video script outline: hook, tour, call to action."},
}

var postTypes = map[string]string{
	"just-listed":  "Announce a brand-new listing.",
	"open-house":   "Promote an upcoming open house.",
	"just-sold":    "Celebrate a sale and attract new sellers.",
	"price-drop":   "Announce a price improvement.",
	"coming-soon":  "Tease a listing that hits the market soon.",
	"market-stats": "Share a quick local market insight.",
}

// BuildSocialPost assembles the prompt for a social media post.
func BuildSocialPost(req generation.SocialPostRequest) generation.PromptPair {
	key := strings.ToLower(strings.TrimSpace(req.Platform))
	guide, ok := platforms[key]
	if !ok {
		guide = platformGuide{label: strings.TrimSpace(req.Platform), guidance: "Follow the platform's usual length and style conventions."}
	}

	var w writer
	w.line("Write a " + guide.label + " post for a real estate agent.")
	w.blank()
	w.line("Platform: " + guide.label)
	if goal, ok := postTypes[strings.ToLower(strings.TrimSpace(req.PostType))]; ok {
		w.line("Post Goal: " + goal)
	}
	w.field("Tone", req.Tone, "[Tone not provided]")
	w.blank()
	w.line("Property Details:")
	w.item("Property Type", req.PropertyType, "[Property type not provided]")
	w.item("Address", req.Address, "[Address not provided]")
	w.item("Bedrooms", req.Bedrooms, "[Bedrooms not provided]")
	w.item("Bathrooms", req.Bathrooms, "[Bathrooms not provided]")
	w.item("Price", req.Price, "[Price not provided]")
	w.item("Features", req.Features, "[Features not provided]")
	w.blank()
	w.field("Call to Action", req.CallToAction, "[Call to action not provided]")
	w.blank()
	w.line("Requirements:")
	w.line("- " + guide.guidance)
	if req.IncludeHashtags {
		w.line("- Finish with 5-10 relevant local and real estate hashtags.")
	} else {
		w.line("- Do not use hashtags.")
	}
	if req.IncludeEmojis {
		w.line("- Use a few tasteful emojis to add energy.")
	} else {
		w.line("- Do not use emojis.")
	}
	w.line("- Skip any detail marked as not provided instead of guessing it.")

	return generation.PromptPair{
		SystemPrompt: socialSystemPrompt,
		UserPrompt:   w.String(),
	}
}
