package types

import "github.com/tluyben/hn-top/decode"

var (
	itemIDs  = decode.ArrayOf(decode.Int())
	optBool  = decode.Optional(decode.Bool())
	optText  = decode.Optional(decode.String())
	optIDs   = decode.Optional(itemIDs)
	nonEmpty = decode.NonEmptyString()
)

// ItemSchema decodes a single item, dispatching on its "type" field
var ItemSchema = decode.NewSchema("item", decode.Tagged[Item]("type",
	decode.Variant[Item]{Tag: string(KindStory), Validator: storyValidator},
	decode.Variant[Item]{Tag: string(KindJob), Validator: jobValidator},
	decode.Variant[Item]{Tag: string(KindPoll), Validator: pollValidator},
	decode.Variant[Item]{Tag: string(KindPollOpt), Validator: pollOptValidator},
	decode.Variant[Item]{Tag: string(KindComment), Validator: commentValidator},
))

// IDListSchema decodes a list of item IDs such as /topstories.json
var IDListSchema = decode.NewSchema("ids", itemIDs)

// DecodeItem validates a parsed JSON value as an Item
func DecodeItem(input any) (Item, error) {
	return decode.Decode(ItemSchema, input)
}

// DecodeIDs validates a parsed JSON value as a list of item IDs
func DecodeIDs(input any) ([]int, error) {
	return decode.Decode(IDListSchema, input)
}

func kind(o *decode.Fields, k Kind) {
	decode.Field(o, "type", decode.Literal(string(k)))
}

func common(o *decode.Fields) Common {
	return Common{
		By:      decode.Field(o, "by", nonEmpty),
		ID:      decode.Field(o, "id", decode.Int()),
		Time:    decode.Field(o, "time", decode.Int64()),
		Dead:    decode.Field(o, "dead", optBool),
		Deleted: decode.Field(o, "deleted", optBool),
		Kids:    decode.Field(o, "kids", optIDs),
	}
}

func headline(o *decode.Fields) Headline {
	return Headline{
		Common: common(o),
		Score:  decode.Field(o, "score", decode.Int()),
		Title:  decode.Field(o, "title", nonEmpty),
	}
}

var storyValidator = decode.Object("Story", func(o *decode.Fields) Item {
	kind(o, KindStory)
	return Story{
		Headline:    headline(o),
		Descendants: decode.Field(o, "descendants", decode.Int()),
		Text:        decode.Field(o, "text", optText),
		URL:         decode.Field(o, "url", optText),
	}
})

var jobValidator = decode.Object("Job", func(o *decode.Fields) Item {
	kind(o, KindJob)
	return Job{
		Headline: headline(o),
		Text:     decode.Field(o, "text", optText),
		URL:      decode.Field(o, "url", optText),
	}
})

var pollValidator = decode.Object("Poll", func(o *decode.Fields) Item {
	kind(o, KindPoll)
	return Poll{
		Headline:    headline(o),
		Descendants: decode.Field(o, "descendants", decode.Int()),
		Parts:       decode.Field(o, "parts", itemIDs),
	}
})

var pollOptValidator = decode.Object("PollOpt", func(o *decode.Fields) Item {
	kind(o, KindPollOpt)
	return PollOpt{
		Poll:  decode.Field(o, "poll", decode.Int()),
		Score: decode.Field(o, "score", decode.Int()),
		Text:  decode.Field(o, "text", decode.String()),
	}
})

var commentValidator = decode.Object("Comment", func(o *decode.Fields) Item {
	kind(o, KindComment)
	return Comment{
		Common: common(o),
		Parent: decode.Field(o, "parent", decode.Int()),
		Text:   decode.Field(o, "text", decode.String()),
	}
})
