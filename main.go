package main

import (
	"gameday-api/core/logger"
	"gameday-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Fatal("run server error", err)
	}
}
