// Package advisor implements the scripted investment advisor chat
package advisor

import (
	"math/rand"
	"strings"
	"sync"
)

// Intent identifies which canned reply a message selected
type Intent string

const (
	IntentExplain         Intent = "explain"
	IntentExample         Intent = "example"
	IntentQuiz            Intent = "quiz"
	IntentImportance      Intent = "importance"
	IntentStock           Intent = "stock"
	IntentCrypto          Intent = "crypto"
	IntentRisk            Intent = "risk"
	IntentDiversification Intent = "diversification"
	IntentQuizCorrect     Intent = "quiz-correct"
	IntentQuizIncorrect   Intent = "quiz-incorrect"
	IntentDefault         Intent = "default"
)

// QuizAnswer is the expected option for the scripted quiz question
const QuizAnswer = "b"

// Reply is the classifier output
type Reply struct {
	Intent  Intent
	Content string
}

const (
	explainReply = "Let me put it more simply: when you buy a stock, you own a tiny slice of a company. " +
		"If the company does well and grows, your slice becomes worth more. If it struggles, your slice can lose value."

	exampleReply = "Here's a real-world example: imagine you bought 10 shares of a coffee chain at $50 each, spending $500. " +
		"A year later the company opens new stores, profits rise and the share price climbs to $60. " +
		"Your shares are now worth $600, a $100 gain, even though you never sold a single coffee."

	quizReply = "Quiz time! What does diversification mean?\n" +
		"a) Putting all your money into one promising stock\n" +
		"b) Spreading your money across different investments to reduce risk\n" +
		"c) Only investing in cryptocurrency\n" +
		"d) Selling everything when the market drops\n" +
		"Reply with a, b, c or d."

	importanceReply = "This matters because small decisions compound over time. Understanding how investments work " +
		"helps you avoid costly mistakes, set realistic expectations and stay calm when markets move."

	stockReply = "A stock is a share of ownership in a company. Stock prices move with the company's results and " +
		"with what investors expect about its future. Some companies also pay part of their profits to shareholders as dividends."

	cryptoReply = "Cryptocurrencies like Bitcoin are digital assets recorded on a blockchain. They trade around the clock " +
		"and their prices can swing dramatically, so many investors keep them to a small part of their portfolio."

	riskReply = "Risk is the chance that an investment loses value or doesn't perform as expected. Higher potential " +
		"returns usually come with higher risk, so it's important to match your investments to how much uncertainty you can handle."

	diversificationReply = "Diversification means spreading your money across different investments, such as several " +
		"companies, industries and asset types, so that a loss in one doesn't sink your whole portfolio."

	quizCorrectReply = "Correct! Diversification means spreading your money across different investments to reduce risk. Great job!"

	quizIncorrectReply = "Not quite. The correct answer is b) Spreading your money across different investments to reduce risk. " +
		"Diversification helps protect you when any single investment performs poorly."
)

// DefaultReplies are the encouragement replies used when nothing else matches
var DefaultReplies = []string{
	"That's a great question! Investing is all about learning step by step. Could you tell me a bit more about what you'd like to know?",
	"I'm here to help you learn. Try asking me to explain a concept, give an example or quiz you on what you've learned.",
	"Keep the questions coming! Every question you ask builds your investing knowledge. What topic would you like to explore next?",
}

type keywordRule struct {
	keywords []string
	intent   Intent
	content  string
}

// keywordRules is scanned in order; the first rule with a matching keyword wins.
var keywordRules = []keywordRule{
	{[]string{"explain", "simpler"}, IntentExplain, explainReply},
	{[]string{"example", "real-world"}, IntentExample, exampleReply},
	{[]string{"quiz"}, IntentQuiz, quizReply},
	{[]string{"important", "why"}, IntentImportance, importanceReply},
	{[]string{"stock"}, IntentStock, stockReply},
	{[]string{"crypto", "bitcoin"}, IntentCrypto, cryptoReply},
	{[]string{"risk"}, IntentRisk, riskReply},
	{[]string{"diversif"}, IntentDiversification, diversificationReply},
}

// Classifier maps a free-text message to one canned reply. The only state is the
// random source used to pick a default reply.
type Classifier struct {
	pick func(n int) int
}

// NewClassifier creates a classifier choosing default replies with rng.
// A nil rng uses the global math/rand source. rng may be shared; access is serialized.
func NewClassifier(rng *rand.Rand) *Classifier {
	if rng == nil {
		return &Classifier{pick: rand.Intn}
	}
	var mu sync.Mutex
	return &Classifier{pick: func(n int) int {
		mu.Lock()
		defer mu.Unlock()
		return rng.Intn(n)
	}}
}

// Classify returns the reply for input
func (c *Classifier) Classify(input string) Reply {
	lower := strings.ToLower(input)

	for _, r := range keywordRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return Reply{Intent: r.intent, Content: r.content}
			}
		}
	}

	switch answer := strings.TrimSpace(lower); answer {
	case "a", "b", "c", "d":
		if answer == QuizAnswer {
			return Reply{Intent: IntentQuizCorrect, Content: quizCorrectReply}
		}
		return Reply{Intent: IntentQuizIncorrect, Content: quizIncorrectReply}
	}

	return Reply{Intent: IntentDefault, Content: DefaultReplies[c.pick(len(DefaultReplies))]}
}

var defaultClassifier = NewClassifier(nil)

// Classify uses a shared classifier with the global random source
func Classify(input string) Reply {
	return defaultClassifier.Classify(input)
}
