package main

import (
	"log"

	"github.com/NVIDIA/bcm-node-labeler/pkg/cli"
)

func main() {
	if err := cli.Run(); err != nil {
		log.Fatal(err)
	}
}
