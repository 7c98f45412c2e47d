package common

import (
	"github.com/ssorr707/discord-system-bot2/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// Options gives typed access to the options of a command or subcommand by name.
// Accessors return nil when the option was not supplied.
type Options struct {
	byName   map[string]*discordgo.ApplicationCommandInteractionDataOption
	resolved *discordgo.ApplicationCommandInteractionDataResolved
}

// NewOptions indexes opts; resolved carries the role and channel objects sent with the interaction
func NewOptions(opts []*discordgo.ApplicationCommandInteractionDataOption, resolved *discordgo.ApplicationCommandInteractionDataResolved) Options {
	byName := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		byName[opt.Name] = opt
	}
	return Options{byName: byName, resolved: resolved}
}

// CommandOptions returns the top-level options of an application command
func CommandOptions(i *discordgo.InteractionCreate) Options {
	data := i.ApplicationCommandData()
	return NewOptions(data.Options, data.Resolved)
}

// Subcommand returns the name and options of the invoked subcommand
func Subcommand(i *discordgo.InteractionCreate) (string, Options) {
	data := i.ApplicationCommandData()
	for _, opt := range data.Options {
		if opt.Type == discordgo.ApplicationCommandOptionSubCommand {
			return opt.Name, NewOptions(opt.Options, data.Resolved)
		}
	}
	return "", NewOptions(nil, data.Resolved)
}

// String returns a string option
func (o Options) String(name string) *string {
	opt, ok := o.byName[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionString {
		return nil
	}
	v := opt.StringValue()
	return &v
}

// Bool returns a boolean option
func (o Options) Bool(name string) *bool {
	opt, ok := o.byName[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionBoolean {
		return nil
	}
	v := opt.BoolValue()
	return &v
}

// Int returns an integer option
func (o Options) Int(name string) *int64 {
	opt, ok := o.byName[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionInteger {
		return nil
	}
	v := opt.IntValue()
	return &v
}

// UserID returns the ID of a user option
func (o Options) UserID(name string) *int64 {
	opt, ok := o.byName[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionUser {
		return nil
	}
	rawID, _ := opt.Value.(string)
	id, err := ParseID(rawID)
	if err != nil {
		return nil
	}
	return &id
}

// Role returns a role option resolved with its position and managed flag
func (o Options) Role(name string) *entities.Role {
	opt, ok := o.byName[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionRole {
		return nil
	}
	rawID, _ := opt.Value.(string)
	id, err := ParseID(rawID)
	if err != nil {
		return nil
	}

	role := &entities.Role{ID: id}
	if o.resolved != nil {
		if r, ok := o.resolved.Roles[rawID]; ok && r != nil {
			role.Name = r.Name
			role.Position = r.Position
			role.Managed = r.Managed
		}
	}
	return role
}

// Channel returns a channel option
func (o Options) Channel(name string) *entities.Channel {
	opt, ok := o.byName[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionChannel {
		return nil
	}
	rawID, _ := opt.Value.(string)
	id, err := ParseID(rawID)
	if err != nil {
		return nil
	}

	channel := &entities.Channel{ID: id}
	if o.resolved != nil {
		if c, ok := o.resolved.Channels[rawID]; ok && c != nil {
			channel.Name = c.Name
		}
	}
	return channel
}
