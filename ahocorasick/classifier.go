// Package ahocorasick classifies pages into content types with an ordered
// rule list. Plain vocabulary is matched in one pass with an Aho-Corasick
// automaton; patterns with structure use regular expressions.
package ahocorasick

import (
	"regexp"
	"strings"
	"sync"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"github.com/fwojciec/kbscrape"
)

var _ kbscrape.Classifier = (*Classifier)(nil)

// vocabulary lists every plain term the rules look up with Signals.Has.
var vocabulary = []string{
	"transcript",
	"podcast",
	"episode",
	"show notes",
	"audio transcript",
	"listen to this episode",
	"call",
	"meeting",
	"conference",
	"operator instructions",
}

// Signals is the view of a page that rules inspect.
type Signals struct {
	// URL is the lowercased page URL.
	URL string

	// Content is the page content as extracted.
	Content string

	terms map[string]bool
}

// Has reports whether the lowercased content contains a vocabulary term.
func (s *Signals) Has(term string) bool {
	return s.terms[term]
}

// Rule assigns Label when Match holds.
type Rule struct {
	Name  string
	Label kbscrape.ContentType
	Match func(s *Signals) bool
}

// Classifier evaluates Rules in order; the first match wins. Pages no rule
// matches are labeled blog.
type Classifier struct {
	Rules []Rule

	mu      sync.Mutex // the automaton keeps match state between calls
	matcher *ahocorasick.Matcher
}

// NewClassifier returns a Classifier with the default rule set.
func NewClassifier() *Classifier {
	return &Classifier{
		Rules:   DefaultRules(),
		matcher: ahocorasick.NewStringMatcher(vocabulary),
	}
}

// Classify returns the content type for a page.
func (c *Classifier) Classify(url, content string) kbscrape.ContentType {
	s := c.signals(url, content)
	for _, r := range c.Rules {
		if r.Match(s) {
			return r.Label
		}
	}
	return kbscrape.ContentTypeBlog
}

func (c *Classifier) signals(url, content string) *Signals {
	c.mu.Lock()
	hits := c.matcher.Match([]byte(strings.ToLower(content)))
	c.mu.Unlock()

	terms := make(map[string]bool, len(hits))
	for _, i := range hits {
		terms[vocabulary[i]] = true
	}
	return &Signals{
		URL:     strings.ToLower(url),
		Content: content,
		terms:   terms,
	}
}

// NewSignals builds Signals without a Classifier, for testing rules in
// isolation.
func NewSignals(url, content string) *Signals {
	return NewClassifier().signals(url, content)
}

// DefaultRules returns the rule set in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "linkedin", Label: kbscrape.ContentTypeLinkedInPost, Match: isLinkedIn},
		{Name: "reddit", Label: kbscrape.ContentTypeRedditComment, Match: isReddit},
		{Name: "book", Label: kbscrape.ContentTypeBook, Match: isBook},
		{Name: "podcast", Label: kbscrape.ContentTypePodcastTranscript, Match: isPodcast},
		{Name: "call", Label: kbscrape.ContentTypeCallTranscript, Match: isCall},
		{Name: "docs", Label: kbscrape.ContentTypeOther, Match: isDocs},
		{Name: "blog", Label: kbscrape.ContentTypeBlog, Match: isBlog},
		{Name: "tutorial", Label: kbscrape.ContentTypeBlog, Match: isTutorial},
	}
}

func isLinkedIn(s *Signals) bool { return strings.Contains(s.URL, "linkedin") }

func isReddit(s *Signals) bool { return strings.Contains(s.URL, "reddit") }

var (
	bookURL        = regexp.MustCompile(`/(book|chapter|excerpt|manuscript)`)
	bookConfirmURL = regexp.MustCompile(`/(book|chapter)`)

	bookTriggers = []*regexp.Regexp{
		regexp.MustCompile(`(?i)chapter[\s-]?\d+`),
		regexp.MustCompile(`(?i)table\s+of\s+contents`),
		regexp.MustCompile(`(?i)copyright\s+©\s+\d{4}`),
		regexp.MustCompile(`(?i)isbn[\s:-]?\d+`),
		regexp.MustCompile(`(?i)(preface|foreword|epilogue|appendix)`),
	}

	bookIndicators = []*regexp.Regexp{
		regexp.MustCompile(`(?i)chapter\s+\d+:?\s+`),
		regexp.MustCompile(`(?i)part\s+(one|two|three|i+|[0-9]+)`),
		regexp.MustCompile(`(?i)section\s+\d+\.\d+`),
		regexp.MustCompile(`(?i)©\s*\d{4}\s*(by|,)`),
		regexp.MustCompile(`(?i)all\s+rights\s+reserved`),
		regexp.MustCompile(`(?i)first\s+(published|edition|printing)`),
	}
)

// isBook needs a trigger and then confirmation: two indicators or a
// book/chapter URL. A single weak signal is not enough.
func isBook(s *Signals) bool {
	if !bookURL.MatchString(s.URL) && !anyMatch(bookTriggers, s.Content) {
		return false
	}
	if bookConfirmURL.MatchString(s.URL) {
		return true
	}
	score := 0
	for _, re := range bookIndicators {
		if re.MatchString(s.Content) {
			score++
		}
	}
	return score >= 2
}

var podcastPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\[(\d{1,2}:\d{2}(:\d{2})?)\]`),
	regexp.MustCompile(`(?i)(host|guest|interviewer|interviewee):`),
	regexp.MustCompile(`(?i)welcome\s+to\s+(the\s+)?\w+\s+(podcast|show)`),
}

func isPodcast(s *Signals) bool {
	if s.Has("transcript") && (s.Has("podcast") || s.Has("episode") || s.Has("show notes")) {
		return true
	}
	if s.Has("audio transcript") || s.Has("listen to this episode") {
		return true
	}
	return anyMatch(podcastPatterns, s.Content)
}

var callPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^(speaker|participant|moderator)\s*\d*:`),
	regexp.MustCompile(`(?i)(operator|analyst|ceo|cfo|executive):`),
	regexp.MustCompile(`(?i)earnings\s+call`),
	regexp.MustCompile(`(?i)q\d\s+\d{4}\s+(earnings|results)`),
}

func isCall(s *Signals) bool {
	if s.Has("transcript") && (s.Has("call") || s.Has("meeting") || s.Has("conference")) {
		return true
	}
	if s.Has("operator instructions") {
		return true
	}
	return anyMatch(callPatterns, s.Content)
}

var (
	docsURL      = regexp.MustCompile(`/(docs|documentation|api|reference|manual|spec)`)
	docsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)api\s+(reference|documentation|guide)`),
		regexp.MustCompile(`(?i)installation\s+(guide|instructions)`),
		regexp.MustCompile(`(?im)^#+\s*(parameters|returns|syntax|examples?):`),
	}
)

func isDocs(s *Signals) bool {
	return docsURL.MatchString(s.URL) || anyMatch(docsPatterns, s.Content)
}

var (
	blogURL      = regexp.MustCompile(`/(blog|post|article|news|story|insight)`)
	blogPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)posted\s+(on|by)|published\s+(on|by)`),
		regexp.MustCompile(`(?i)by\s+\w+\s+on\s+\w+\s+\d{1,2},?\s+\d{4}`),
		regexp.MustCompile(`(?i)(tags?|categories?|filed under):`),
	}
)

func isBlog(s *Signals) bool {
	return blogURL.MatchString(s.URL) || anyMatch(blogPatterns, s.Content)
}

var (
	tutorialURL      = regexp.MustCompile(`/(guide|tutorial|learn|how-to|lesson|course)`)
	tutorialPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^(step|lesson)\s+\d+:?`),
		regexp.MustCompile(`(?i)how\s+to\s+\w+`),
		regexp.MustCompile(`(?i)in\s+this\s+(tutorial|guide|article)`),
	}
)

func isTutorial(s *Signals) bool {
	return tutorialURL.MatchString(s.URL) || anyMatch(tutorialPatterns, s.Content)
}

func anyMatch(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
