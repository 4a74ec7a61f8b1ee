package content

// template holds the prompt sent to the generation service and the post
// used when generation fails.
type template struct {
	Prompt   string
	Fallback string
}

var templates = map[Category]template{
	CodingTip: {
		Prompt: "Generate a concise and insightful coding tip for software developers that is tweetable (under 280 characters). " +
			"The tip should be practical, teach something specific, and include relevant hashtags. " +
			"Format it professionally and make it engaging. Focus on principles, best practices, or productivity hacks.",
		Fallback: "💡 Code Tip: Write tests first, code second. It clarifies your thinking and prevents bugs! " +
			"#TDD #CodeTip #Testing #Programming",
	},
	MotivationalQuote: {
		Prompt: "Create an inspiring and motivational quote for programmers and developers that is tweetable (under 280 characters). " +
			"Make it empowering, thoughtful, and relevant to coding, technology, or professional growth. " +
			"Include relevant hashtags. The quote should be concise yet impactful.",
		Fallback: "🚀 'The best error message is the one that never shows up to the user.' - Thomas Fuchs " +
			"#Coding #Programming #DevLife",
	},
	TechFact: {
		Prompt: "Share one surprising, verifiable fact about computing history or how software works under the hood, " +
			"written for developers and tweetable (under 280 characters). Keep it accurate and include relevant hashtags.",
		Fallback: "🧠 Tech Fact: The first computer bug was a real moth, found in the Harvard Mark II relay in 1947. " +
			"#TechHistory #Programming #DevLife",
	},
	CareerAdvice: {
		Prompt: "Write one actionable piece of career advice for software developers that is tweetable (under 280 characters). " +
			"Be specific and encouraging, avoid clichés, and include relevant hashtags.",
		Fallback: "📈 Career Tip: Write down what you shipped every week. Future you will thank you at review time. " +
			"#CareerGrowth #DevLife #Programming",
	},
}

// Prompt returns the prompt for c, or the default category's prompt when
// c is empty or unknown.
func Prompt(c Category) string {
	return templates[c.OrDefault()].Prompt
}

// Fallback returns the static post for c, or the default category's
// fallback when c is empty or unknown.
func Fallback(c Category) string {
	return templates[c.OrDefault()].Fallback
}
