package composer

import (
	"fmt"
	"strings"

	"feedback-dashboard/internal/models"
)

const resortFacts = `- Premium luxury experience with African-inspired design and architecture
- Multiple locations: Bishoftu (flagship), Lake Tana, and Entoto
- Features: water park, spa, summit restaurant, kayaking, cinema, wedding venue
- Room types themed after African countries (Egypt-Guinea, Guinea Bissau-Mauritius, etc.)
- Natural stone architecture with large windows offering views
- Family-friendly with activities for children`

func ratingText(f *models.Feedback) string {
	if !f.HasRating() {
		return "unrated"
	}
	return fmt.Sprintf("%d/5", *f.Rating)
}

func responsePrompt(resort string, f *models.Feedback, history []models.Feedback) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an AI assistant for %s, a luxury resort in Ethiopia.\n\n", resort)
	fmt.Fprintf(&b, "RESORT DETAILS:\n%s\n\n", resortFacts)
	b.WriteString("FEEDBACK FROM GUEST:\n")
	fmt.Fprintf(&b, "Rating: %s\n", ratingText(f))
	fmt.Fprintf(&b, "Category: %s\n", f.Category)
	fmt.Fprintf(&b, "Comment: %q\n\n", f.Comment)

	if len(history) > 0 {
		b.WriteString("Previous feedback from this guest:\n")
		for i := range history {
			h := &history[i]
			fmt.Fprintf(&b, "Previous feedback (%s): Rating %s - %q\n",
				h.CreatedAt.Format("2006-01-02"), ratingText(h), h.Comment)
		}
		b.WriteString("\n")
	}

	b.WriteString(`TASK:
1. Analyze the sentiment (positive, negative, or mixed)
2. Identify specific aspects of their experience (room, food, staff, facilities)
3. Create a personalized response that addresses their specific comments, references relevant resort features,
   offers solutions to any issues raised, is warm, professional and authentic, thanks them and invites them to return
4. Suggest 1-2 actionable steps for staff to address any concerns
5. Identify top issues mentioned (if any)

Reply with a single JSON object and nothing else:
{
  "response": "The complete response to send to the guest",
  "sentimentScore": <number from -10 (very negative) to 10 (very positive)>,
  "topIssues": ["main issues mentioned"],
  "recommendedActions": ["actions for staff to take"]
}
`)
	return b.String()
}

func summaryPrompt(resort string, records []models.Feedback) string {
	entries := make([]string, 0, len(records))
	for i := range records {
		f := &records[i]
		entries = append(entries, fmt.Sprintf("Rating: %s, Category: %s, Comment: %q", ratingText(f), f.Category, f.Comment))
	}

	return fmt.Sprintf(`Summarize the following guest feedback for %s management in one medium-length paragraph.
Focus on recurring themes, highest praised aspects, and most common complaints.
Highlight areas for improvement and maintenance priorities.

%s
`, resort, strings.Join(entries, "\n\n"))
}

func translatePrompt(resort, text string, lang models.Language) string {
	return fmt.Sprintf(`Translate the following hotel guest response from English to %s.
Maintain the professional, warm tone and all specific details about %s.
Reply with the translation only.

Text to translate:
%q`, lang, resort, text)
}
