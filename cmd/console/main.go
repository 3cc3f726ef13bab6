package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"kgeyst.com/llavatest/pkg/common"
	"kgeyst.com/llavatest/pkg/llavatest/api"
	"kgeyst.com/llavatest/pkg/llavatest/infrastructure/console"
)

const usage = `Type a prompt and press Enter to send it.
  /image <path or URL>  attach an image (PNG, JPG, GIF, BMP)
  /noimage              detach the image
  /help                 show this help
  /bye                  exit
`

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
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          console.PromptReady,
		InterruptPrompt: "^C",
		EOFPrompt:       "/bye",
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = rl.Close()
	}()
	view := console.NewView(rl.Stdout(), rl, readline.IsTerminal(readline.GetStdin()))
	app := api.NewApp(config, view)
	defer app.Stop()
	fmt.Fprint(rl.Stdout(), usage)
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil { // io.EOF
			if !errors.Is(err, io.EOF) {
				return err
			}
			break
		}
		if !strings.HasPrefix(line, "/") {
			app.Submit(line)
			continue
		}
		command, argument := common.SplitCommand(line[1:])
		switch command {
		case "image":
			app.SelectImage(argument)
		case "noimage":
			app.ClearImage()
		case "help", "?":
			fmt.Fprint(rl.Stdout(), usage)
		case "bye", "exit":
			return nil
		default:
			fmt.Fprintf(rl.Stdout(), "unknown command /%s (try /help)\n", command)
		}
	}
	return nil
}
