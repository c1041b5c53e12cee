package main

// Command is the mode the binary runs in.
type Command string

const (
	CommandServe       Command = "serve"
	CommandBrowse      Command = "browse"
	CommandHealthcheck Command = "healthcheck"
)

// ParseCommand reads the subcommand from the arguments. No or an unknown
// subcommand means serve.
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandServe
	}

	switch args[0] {
	case "browse":
		return CommandBrowse
	case "healthcheck":
		return CommandHealthcheck
	default:
		return CommandServe
	}
}
