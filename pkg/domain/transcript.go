package domain

import "time"

// Metadata identifies a single parliamentary entry within its category
// and date. All fields are fixed once extraction succeeds.
type Metadata struct {
	Category string    `json:"cat" bson:"cat"`
	ID       string    `json:"idx" bson:"idx"`
	Title    string    `json:"title" bson:"title"`
	Date     time.Time `json:"date" bson:"date"`
	URL      string    `json:"url" bson:"url"`
}

// Meta returns the entry metadata. Embedding Metadata in a record type
// is enough to satisfy the Record interface.
func (m Metadata) Meta() Metadata {
	return m
}

// Record is any extracted page record that can be analysed, rendered
// and saved.
type Record interface {
	Meta() Metadata
}

// Speech is one attributable unit of speech or text on a page.
//
// The speaker fields are nil when the speech cannot be attributed.
// Response is nil until the speech has been summarised; an empty string
// means the speech was summarised and nothing relevant was found.
type Speech struct {
	Name     *string `json:"name" bson:"name"`
	Position *string `json:"position" bson:"position"`
	URL      *string `json:"url" bson:"url"`
	Text     string  `json:"text" bson:"text"`
	Response *string `json:"response,omitempty" bson:"response,omitempty"`
}

// Attributed reports whether the speech has a named speaker.
func (s *Speech) Attributed() bool {
	return s != nil && s.Name != nil
}

// Transcript is the record for a debate entry: its metadata plus the
// ordered list of speeches made during the debate.
type Transcript struct {
	Metadata
	Speeches []*Speech `json:"speeches" bson:"speeches"`
}

// WrittenAnswer is the record for a written question and answer entry.
// The final speech block on the page is always the answer; everything
// before it is a question. Date on the embedded metadata is the date
// the question was asked, Answered is the date it was answered.
type WrittenAnswer struct {
	Metadata
	Recipient string    `json:"recipient" bson:"recipient"`
	Answered  time.Time `json:"answered" bson:"answered"`
	Questions []*Speech `json:"questions" bson:"questions"`
	Answer    *Speech   `json:"answer" bson:"answer"`
}
