package types

import (
	"fmt"
	"net/url"
	"time"

	"github.com/tluyben/hn-top/decode"
)

// Kind is the value of an item's "type" field
type Kind string

const (
	KindStory   Kind = "story"
	KindJob     Kind = "job"
	KindPoll    Kind = "poll"
	KindPollOpt Kind = "pollopt"
	KindComment Kind = "comment"
)

// Item is a Hacker News item. It is exactly one of Story, Job, Poll,
// PollOpt or Comment, held by value or by pointer; no other package can
// add a kind.
type Item interface {
	Kind() Kind
	item()
}

// Common holds the fields shared by stories, jobs, polls and comments
type Common struct {
	By      string
	ID      int
	Time    int64 // Unix seconds
	Dead    decode.Option[bool]
	Deleted decode.Option[bool]
	Kids    decode.Option[[]int]
}

// Posted returns the creation time
func (c Common) Posted() time.Time {
	return time.Unix(c.Time, 0)
}

// Headline holds the fields of items that appear on the front page
type Headline struct {
	Common
	Score int
	Title string
}

// Story is a link or text submission
type Story struct {
	Headline
	Descendants int
	Text        decode.Option[string] // HTML
	URL         decode.Option[string]
}

// Site returns the host of the story URL, if it has one
func (s Story) Site() (string, bool) {
	raw, ok := s.URL.Get()
	if !ok {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}
	return u.Hostname(), true
}

// Job is a job posting
type Job struct {
	Headline
	Text decode.Option[string]
	URL  decode.Option[string]
}

// Poll is a poll; Parts lists its options in display order
type Poll struct {
	Headline
	Descendants int
	Parts       []int
}

// PollOpt is one option of a poll
type PollOpt struct {
	Poll  int
	Score int
	Text  string
}

// Comment is a reply to a story, poll or another comment
type Comment struct {
	Common
	Parent int
	Text   string
}

func (Story) Kind() Kind   { return KindStory }
func (Job) Kind() Kind     { return KindJob }
func (Poll) Kind() Kind    { return KindPoll }
func (PollOpt) Kind() Kind { return KindPollOpt }
func (Comment) Kind() Kind { return KindComment }

func (Story) item()   {}
func (Job) item()     {}
func (Poll) item()    {}
func (PollOpt) item() {}
func (Comment) item() {}

// Visitor has one method per item kind. Implementations must handle every
// kind, so adding one is a compile error until each visitor is updated.
type Visitor[R any] interface {
	VisitStory(Story) R
	VisitJob(Job) R
	VisitPoll(Poll) R
	VisitPollOpt(PollOpt) R
	VisitComment(Comment) R
}

// Visit calls the method of v matching the kind of it. Pointers to a
// variant are dereferenced; a nil Item or nil pointer panics.
func Visit[R any](it Item, v Visitor[R]) R {
	switch it := it.(type) {
	case Story:
		return v.VisitStory(it)
	case *Story:
		return v.VisitStory(*it)
	case Job:
		return v.VisitJob(it)
	case *Job:
		return v.VisitJob(*it)
	case Poll:
		return v.VisitPoll(it)
	case *Poll:
		return v.VisitPoll(*it)
	case PollOpt:
		return v.VisitPollOpt(it)
	case *PollOpt:
		return v.VisitPollOpt(*it)
	case Comment:
		return v.VisitComment(it)
	case *Comment:
		return v.VisitComment(*it)
	}
	panic(fmt.Sprintf("types: cannot visit %T", it))
}
