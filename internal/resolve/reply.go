package resolve

// Card is a structured reply rendered as an embed by the transport.
type Card struct {
	Title string
	Body  string
	Image string
}

// Reply is what the resolver produces for one message: plain text, a card,
// both, or nothing (the zero value).
type Reply struct {
	Text string
	Card *Card
}

// Text returns a plain-text reply.
func TextReply(text string) Reply {
	return Reply{Text: text}
}

// Empty reports whether the reply carries no content at all.
func (r Reply) Empty() bool {
	return r.Text == "" && r.Card == nil
}
