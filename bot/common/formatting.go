package common

import (
	"strconv"
	"strings"
	"time"

	"github.com/ssorr707/discord-system-bot2/application/dto"

	"github.com/bwmarrin/discordgo"
)

// ParseHexColor converts "#RRGGBB" into an embed colour, returning fallback when s is not a colour
func ParseHexColor(s string, fallback int) int {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseInt(s, 16, 32)
	if err != nil {
		return fallback
	}
	return int(v)
}

// kindColor returns the default colour of a response kind
func kindColor(kind dto.ResponseKind) int {
	switch kind {
	case dto.ResponseError:
		return ColorError
	case dto.ResponseInfo:
		return ColorInfo
	default:
		return ColorSuccess
	}
}

// BuildEmbed renders a response as a Discord embed
func BuildEmbed(resp *dto.Response) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       resp.Title,
		Description: truncate(resp.Description, MaxEmbedDescription),
		Color:       ParseHexColor(resp.Color, kindColor(resp.Kind)),
	}

	for i, f := range resp.Fields {
		if i == MaxEmbedFields {
			break
		}
		value := f.Value
		if value == "" {
			value = "\u200b"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  truncate(value, MaxFieldValue),
			Inline: f.Inline,
		})
	}

	if resp.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: resp.Footer}
	}
	if resp.Timestamp {
		embed.Timestamp = time.Now().Format(time.RFC3339)
	}
	if resp.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: resp.ImageURL}
	}

	return embed
}

// BuildComponents renders an optional button as a single action row
func BuildComponents(button *dto.Button) []discordgo.MessageComponent {
	if button == nil {
		return nil
	}

	b := discordgo.Button{
		Label:    button.Label,
		Style:    discordgo.PrimaryButton,
		CustomID: button.CustomID,
	}
	if button.Emoji != "" {
		b.Emoji = &discordgo.ComponentEmoji{Name: button.Emoji}
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{b}},
	}
}

// BuildMessageSend renders an outbound message for ChannelMessageSendComplex
func BuildMessageSend(msg dto.OutboundMessage) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{BuildEmbed(&msg.Embed)},
		Components: BuildComponents(msg.Button),
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
