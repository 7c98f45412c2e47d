package common

import (
	"context"
	"fmt"
	"sync"

	"github.com/ssorr707/discord-system-bot2/application/dto"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// DeferResponse sends a deferred response to give more time for processing
func DeferResponse(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) error {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: flags,
		},
	})
}

// RespondWithEmbed sends an embed as an interaction response
func RespondWithEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// FollowUpWithEmbed sends an embed as a follow-up message
func FollowUpWithEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) (*discordgo.Message, error) {
	params := &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
	if ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}

	return s.FollowupMessageCreate(i.Interaction, false, params)
}

// UpdateMessage replaces the embeds of an existing interaction response
func UpdateMessage(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	return err
}

// RespondWithError sends an error message as an interaction response
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// InteractionDeferrer defers an interaction at most once and remembers whether it did
type InteractionDeferrer struct {
	session     *discordgo.Session
	interaction *discordgo.InteractionCreate
	ephemeral   bool

	once     sync.Once
	deferred bool
	err      error
}

// NewInteractionDeferrer creates a deferrer for the interaction
func NewInteractionDeferrer(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) *InteractionDeferrer {
	return &InteractionDeferrer{session: s, interaction: i, ephemeral: ephemeral}
}

// Defer acknowledges the interaction
func (d *InteractionDeferrer) Defer(ctx context.Context) error {
	d.once.Do(func() {
		d.err = DeferResponse(d.session, d.interaction, d.ephemeral)
		d.deferred = d.err == nil
	})
	return d.err
}

// Deferred reports whether the interaction has been acknowledged
func (d *InteractionDeferrer) Deferred() bool {
	return d.deferred
}

// SendResponse delivers resp as the interaction reply, editing the deferred reply when
// the interaction was already acknowledged, and then sends every follow-up.
func SendResponse(s *discordgo.Session, i *discordgo.InteractionCreate, resp *dto.Response, deferred bool) {
	fields := log.Fields{
		"guild_id": i.GuildID,
		"command":  i.ApplicationCommandData().Name,
	}

	var err error
	if deferred {
		err = UpdateMessage(s, i, BuildEmbed(resp))
	} else {
		err = RespondWithEmbed(s, i, BuildEmbed(resp), resp.Ephemeral)
	}
	if err != nil {
		log.WithFields(fields).WithError(err).Error("Failed to respond to interaction")
		return
	}

	for idx := range resp.FollowUps {
		followUp := &resp.FollowUps[idx]
		if _, err := FollowUpWithEmbed(s, i, BuildEmbed(followUp), followUp.Ephemeral); err != nil {
			log.WithFields(fields).WithError(err).Warn("Failed to send follow-up message")
		}
	}
}
