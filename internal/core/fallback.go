package core

// Business contact details embedded in every canned response.
const (
	ContactPhone   = "+91 8910489578"
	ContactEmail   = "contact@redcatpictures.com"
	ContactWebsite = "https://redcatpictures.com"
	ContactAddress = "17, Netaji Subhash Road, Beltala, Harinavi"
	ContactHours   = "Mon-Fri: 9AM-10PM | Sat-Sun: 9AM-8PM"
)

// notionFallbackSuffix is appended to a low-confidence knowledge-base answer
// returned as a last resort.
const notionFallbackSuffix = `<br><br>Need more info? Call <strong>` + ContactPhone +
	`</strong> or <a href="` + ContactWebsite + `" target="_blank" style="color: #60a5fa;">visit our website</a>`

// fallbackTemplates maps each intent to a canned HTML response. Initialized
// once; never mutated. Only <br>, <strong> and <a> tags appear, and no user
// input is ever interpolated into these strings.
var fallbackTemplates = map[Intent]string{
	IntentPricing: `Our photography packages are customized for your needs! 💰<br><br>📞 Call <strong>` + ContactPhone +
		`</strong> for a detailed quote<br>🌐 <a href="` + ContactWebsite + `/#pricing" target="_blank" style="color: #60a5fa;">View pricing page</a>`,

	IntentBooking: `We'd love to capture your moments! 📸<br><br>To book or check availability:<br>📞 <strong>` + ContactPhone +
		`</strong><br>📧 <strong>` + ContactEmail + `</strong><br>🌐 <a href="` + ContactWebsite + `" target="_blank" style="color: #60a5fa;">Book online</a>`,

	IntentService: `RED CAT PICTURES specializes in:<br>• Wedding & Event Photography<br>• Food Photography<br>• Commercial Shoots<br>• Video Production<br><br><a href="` +
		ContactWebsite + `/#services" target="_blank" style="color: #60a5fa;">View all services</a>`,

	IntentContact: `📞 <strong>` + ContactPhone + `</strong><br>📧 <strong>` + ContactEmail +
		`</strong><br>🌐 <a href="` + ContactWebsite + `" target="_blank" style="color: #60a5fa;">redcatpictures.com</a><br>📍 ` +
		ContactAddress + `<br><br>⏰ ` + ContactHours,

	IntentAbout: `RED CAT PICTURES is a creative photo studio delivering professional, memorable photography for every client! 📸<br><br><a href="` +
		ContactWebsite + `/about" target="_blank" style="color: #60a5fa;">Meet our team</a>`,

	IntentPortfolio: `Check out our stunning work! 🎨<br><br>📸 <a href="` + ContactWebsite +
		`/#featuredphotos" target="_blank" style="color: #60a5fa;">Featured Photos</a><br>🍽️ <a href="` + ContactWebsite +
		`/photo" target="_blank" style="color: #60a5fa;">Food Gallery</a><br>🎥 <a href="` + ContactWebsite +
		`/#video-gallery" target="_blank" style="color: #60a5fa;">Video Portfolio</a>`,

	IntentGeneral: `Hi! I'm here to help with RED CAT PICTURES! 👋<br><br>I can assist with:<br>• Services & Pricing<br>• Booking & Availability<br>• Portfolio & Samples<br>• Contact Info<br><br>What would you like to know?`,
}

const errorFallbackText = `I'm having technical difficulties right now. 🔧<br><br>Please contact us directly:<br>📞 <strong>` +
	ContactPhone + `</strong><br>📧 <strong>` + ContactEmail + `</strong><br>🌐 <a href="` + ContactWebsite +
	`" target="_blank" style="color: #60a5fa;">Visit website</a><br><br>We respond within minutes during business hours!`

// FallbackConfidence is the fixed confidence of a static template response.
const FallbackConfidence = 0.5

// FallbackResponse returns the canned per-intent response for a classified
// message. Unknown intents get the general template.
func FallbackResponse(ir IntentResult) BotResponse {
	template, ok := fallbackTemplates[ir.Intent]
	if !ok {
		template = fallbackTemplates[IntentGeneral]
	}
	return BotResponse{
		Response:   template,
		Confidence: FallbackConfidence,
		Source:     SourceFallback,
		Metadata: ResponseMetadata{
			Intent:    string(ir.Intent),
			Entities:  ir.Entities,
			Sentiment: string(ir.Sentiment),
		},
	}
}

// ErrorFallback is the terminal catch-all response. The triggering error text
// is kept in metadata for diagnostics only and never rendered to the user.
func ErrorFallback(details string) BotResponse {
	return BotResponse{
		Response:   errorFallbackText,
		Confidence: 0,
		Source:     SourceError,
		Metadata: ResponseMetadata{
			Intent:       "error",
			Entities:     []string{},
			Sentiment:    string(SentimentNeutral),
			ErrorDetails: details,
		},
	}
}
