package main

import (
	"fmt"
	"log"
)

func main() {
	fmt.Println("usage: server [flags]")
	log.Println("starting") // want "log.Println is forbidden, use zerolog"
}

func usage() {
	fmt.Printf("usage\n") // want "fmt.Printf is forbidden outside main function, use zerolog"
}
