package main

import (
	"context"

	"github.com/MrSnakeDoc/cardsmith/cmd/cardextract/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
