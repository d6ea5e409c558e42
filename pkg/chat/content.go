package chat

// Copy shown by the front ends.
const (
	HeroTitle    = "ChemBot"
	HeroSubtitle = "AI Chemistry Assistant"
	HeroText     = "Your intelligent companion for mastering chemistry. Get instant help with reactions, calculations, past papers, and complex chemical concepts."

	AssistantName    = "Chemistry Assistant"
	AssistantStatus  = "AI Tutor • Online"
	AssistantTagline = "Ready to help with chemistry problems"

	EmptyChatTitle = "Ask me anything about chemistry!"
	EmptyChatHint  = "I can help with reactions, calculations, concepts, and more."

	InputPlaceholder = "Ask me anything about chemistry..."

	// DefaultGreeting opens an Ask Questions conversation.
	DefaultGreeting = "Hi! I'm ready to help you with chemistry questions. What would you like to know?"

	// ImagePrompt is sent in place of empty text when an image is attached.
	ImagePrompt = "Analyze this image"
	// FilePrompt is sent in place of empty text when only files are attached.
	FilePrompt = "Take a look at this file"
)

// Card is an entry point offered on the welcome screen.
type Card struct {
	Title       string
	Description string
	Action      string
}

// Welcome cards, in menu order.
var (
	CardSolvePastPapers = Card{
		Title:       "Solve Past Papers",
		Description: "Access and solve chemistry past papers with step-by-step solutions and detailed explanations.",
		Action:      "Get Started",
	}
	CardAskQuestions = Card{
		Title:       "Ask Questions",
		Description: "Get instant answers to your chemistry questions with explanations and chemical equations.",
		Action:      "Start Chatting",
	}

	Cards = []Card{CardSolvePastPapers, CardAskQuestions}
)

// Features are the topics advertised under the welcome cards.
var Features = []string{"Calculations", "Reactions", "Concepts"}

// DefaultReplies are the canned answers given in Ask Questions mode, in rotation.
var DefaultReplies = []string{
	"Thanks for your question! I can't work through new problems yet, but worked solutions are available under Solve Past Papers.",
	"Good question. Try breaking it into the given data, the balanced equation and the quantity you need; the past-paper solutions show this pattern step by step.",
}
