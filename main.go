package main

import (
	smartmask "github.com/smartmask/smartmask/cmd/smartmask"
)

func main() {
	smartmask.Execute()
}
