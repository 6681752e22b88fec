package nostdlog

import (
	"fmt"
	"log"
	"os"
)

func Deliver(id string) {
	log.Printf("delivering %s", id) // want "log.Printf is forbidden, use zerolog"
	fmt.Println("delivering", id)   // want "fmt.Println is forbidden outside main function, use zerolog"
}

func Fail() {
	log.Fatal("boom")   // want "log.Fatal is forbidden, use zerolog"
	fmt.Print("failed") // want "fmt.Print is forbidden outside main function, use zerolog"
}

func Render(id string) string {
	fmt.Fprintf(os.Stderr, "rendering %s\n", id)
	return fmt.Sprintf("message %s", id)
}

type worker struct{}

func (worker) main() {
	fmt.Printf("not the program entry point") // want "fmt.Printf is forbidden outside main function, use zerolog"
}
