package commands

import (
	"fmt"

	"paintrack"
)

func HandleHelp(_ []string) {
	fmt.Printf(`paintrack image service %s

usage:
  paintrack run <config_path>                   start the HTTP server
  paintrack token <config_path> <user_id> [ttl] print a bearer token (ttl like 2h, default 24h)
  paintrack version                             print the version
  paintrack help                                print this message
`, paintrack.StringVersion()) //nolint
}
