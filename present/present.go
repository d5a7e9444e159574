// Package present renders decoded items as one-line summaries.
package present

import (
	"fmt"
	"strings"

	"github.com/tluyben/hn-top/types"
)

// ExcerptLength is the number of characters of comment text kept in a summary
const ExcerptLength = 60

type summarizer struct{}

var _ types.Visitor[string] = summarizer{}

func (summarizer) VisitStory(s types.Story) string {
	return fmt.Sprintf(`"%s" submitted by %s`, s.Title, s.By)
}

func (summarizer) VisitJob(j types.Job) string {
	return "job posting: " + j.Title
}

func (summarizer) VisitPoll(p types.Poll) string {
	return fmt.Sprintf(`poll: "%s" - choose one of %d options`, p.Title, len(p.Parts))
}

func (summarizer) VisitPollOpt(o types.PollOpt) string {
	return "poll option: " + o.Text
}

func (summarizer) VisitComment(c types.Comment) string {
	return fmt.Sprintf("%s commented: %s", c.By, Excerpt(c.Text, ExcerptLength))
}

// Summary returns a single line describing item
func Summary(item types.Item) string {
	return types.Visit[string](item, summarizer{})
}

// Lines returns the summaries of items separated by blank lines
func Lines(items []types.Item) string {
	summaries := make([]string, len(items))
	for i, it := range items {
		summaries[i] = Summary(it)
	}
	return strings.Join(summaries, "\n\n")
}

// Excerpt shortens text to n characters, appending "..." when it cut anything
func Excerpt(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
