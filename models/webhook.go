package models

// WebhookMessage is the transport-ready notification payload. It is built
// fresh per dispatch attempt and never persisted. The JSON shape is
// compatible with Discord-style webhooks: a text body plus zero or more
// titled sections.
type WebhookMessage struct {
	Content  string         `json:"content,omitempty"`
	Embeds   []WebhookEmbed `json:"embeds,omitempty"`
	Username string         `json:"username,omitempty"`
}

// WebhookEmbed is one titled section of a webhook message.
type WebhookEmbed struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Color       int                 `json:"color,omitempty"`
	Fields      []WebhookEmbedField `json:"fields,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
	Footer      *WebhookEmbedFooter `json:"footer,omitempty"`
}

// WebhookEmbedField is a labeled value inside an embed.
type WebhookEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// WebhookEmbedFooter is the footer line of an embed.
type WebhookEmbedFooter struct {
	Text string `json:"text"`
}
