package main

import (
	"strings"

	"github.com/whyrusleeping/hellabot"

	"kgeyst.com/llavatest/pkg/common"
	"kgeyst.com/llavatest/pkg/llavatest/api"
	"kgeyst.com/llavatest/pkg/llavatest/domain"
	"kgeyst.com/llavatest/pkg/llavatest/infrastructure/chat"
)

const (
	configKeyIRCServer  = "ircServer"
	configKeyIRCNick    = "ircNick"
	configKeyIRCChannel = "ircChannel"
)

func main() {
	err := mainImpl()
	if err != nil {
		panic(err)
	}
}

func mainImpl() error {
	config, err := common.LoadConfig("config.yaml")
	if err != nil {
		return err
	}
	nick := config.GetStringOrDefault(configKeyIRCNick, "llava")
	channel := "#" + strings.TrimPrefix(config.GetStringOrDefault(configKeyIRCChannel, "llava"), "#")
	serverName := config.GetStringOrDefault(configKeyIRCServer, "irc.euirc.net:6667")
	ircBot, err := hbot.NewBot(serverName, nick)
	if err != nil {
		return err
	}
	app := api.NewApp(config, chat.NewView(ircBot, channel))
	defer app.Stop()
	// App calls block (an image URL is downloaded by the caller), so they are queued instead of being run on the
	// bot's read loop. The queue keeps the order in which the commands were typed.
	commands := common.NewEventLoop(common.NewFileLogger(config.GetStringOrDefault(api.ConfigKeyLogPath, domain.DefaultLogPath)))
	defer commands.Stop()
	var trigger = hbot.Trigger{
		Condition: func(b *hbot.Bot, m *hbot.Message) bool {
			return m.Command == "PRIVMSG" && m.To == channel
		},
		Action: func(b *hbot.Bot, m *hbot.Message) bool {
			what, ok := addressedTo(nick, m.Content)
			if !ok {
				return false
			}
			commands.Schedule(func() error {
				command, argument := common.SplitCommand(what)
				switch command {
				case "image":
					app.SelectImage(argument)
				case "noimage":
					app.ClearImage()
				default:
					app.Submit(what)
				}
				return nil
			})
			return true
		},
	}
	ircBot.AddTrigger(trigger)
	ircBot.Channels = []string{channel}
	ircBot.Run()
	return nil
}

// addressedTo returns "describe this" for "llava: describe this" or "llava, describe this".
func addressedTo(nick, content string) (string, bool) {
	if len(content) < len(nick) || !strings.EqualFold(content[:len(nick)], nick) {
		return "", false
	}
	what := strings.TrimSpace(content[len(nick):])
	what = strings.TrimSpace(strings.TrimLeft(what, ":,"))
	return what, true
}
